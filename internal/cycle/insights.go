package cycle

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Display names for factor and symptom identifiers. A correlation whose
// factor or symptom has no entry here is dropped silently at synthesis
// time (logged for diagnostics); a missing label must never produce a
// malformed insight.
var factorDisplayNames = map[string]string{
	"caffeine":      "Caffeine",
	"dairy":         "Dairy",
	"sugar":         "Sugar",
	"alcohol":       "Alcohol",
	"gluten":        "Gluten",
	"spicy":         "Spicy food",
	"processed":     "Processed food",
	"chocolate":     "Chocolate",
	"red_meat":      "Red meat",
	"fried":         "Fried food",
	FactorPoorSleep: "Short sleep (under 6h)",
	FactorExercise:  "Regular exercise (20min+)",
}

var symptomDisplayNames = map[string]string{
	"cramps":            "cramps",
	"headache":          "headaches",
	"bloating":          "bloating",
	"fatigue":           "fatigue",
	"mood_swings":       "mood swings",
	"acne":              "breakouts",
	"back_pain":         "back pain",
	"breast_tenderness": "breast tenderness",
	"anxiety":           "anxiety",
	"insomnia":          "trouble sleeping",
	"nausea":            "nausea",
}

// assumed days per cycle when deriving "over N cycles" from sample size
const daysPerCycle = 28

// SynthesizeInsights converts the significant slice of the correlation
// set into user-facing insights. Only correlations passing both the
// confidence and strength gates survive.
func SynthesizeInsights(correlations []CorrelationResult) []PersonalizedInsight {
	var insights []PersonalizedInsight
	for _, c := range correlations {
		if c.Confidence < MinConfidenceShow || math.Abs(c.Correlation) < ModerateThreshold {
			continue
		}
		factorName, ok := factorDisplayNames[c.Factor]
		if !ok {
			log.Printf("[Cycle] skipping insight for unknown factor %q", c.Factor)
			continue
		}
		symptomName, ok := symptomDisplayNames[c.Symptom]
		if !ok {
			log.Printf("[Cycle] skipping insight for unknown symptom %q", c.Symptom)
			continue
		}

		adverb := "noticeably"
		if math.Abs(c.Correlation) >= StrongThreshold {
			adverb = "significantly"
		}
		cycles := c.DataPoints / daysPerCycle
		if cycles < 1 {
			cycles = 1
		}

		insight := PersonalizedInsight{
			ID:         uuid.New().String(),
			BasedOn:    fmt.Sprintf("%d logged days over ~%d cycle(s)", c.DataPoints, cycles),
			Confidence: c.Confidence,
		}
		if c.Direction == DirectionIncreases {
			insight.Type = "warning"
			insight.Title = fmt.Sprintf("%s and %s", factorName, symptomName)
			insight.Message = fmt.Sprintf("On days with %s, your %s were %s worse.",
				lowerFirst(factorName), symptomName, adverb)
			insight.Actionable = fmt.Sprintf("Try cutting back on %s for a cycle and see if your %s ease up.",
				lowerFirst(factorName), symptomName)
		} else {
			insight.Type = "positive"
			insight.Title = fmt.Sprintf("%s seems to help with %s", factorName, symptomName)
			insight.Message = fmt.Sprintf("On days with %s, your %s were %s milder.",
				lowerFirst(factorName), symptomName, adverb)
			insight.Actionable = fmt.Sprintf("Keep it up — %s looks like it's working for you.",
				lowerFirst(factorName))
		}
		insights = append(insights, insight)
	}
	return insights
}

// CycleSuggestions generates forward-looking suggestions for the days
// right before a period: luteal phase, within seven days out. Capped at
// two positive and two limiting suggestions so the list never overwhelms.
func CycleSuggestions(correlations []CorrelationResult, daysUntilPeriod int, phase Phase) []string {
	if phase != PhaseLuteal || daysUntilPeriod <= 0 || daysUntilPeriod > 7 {
		return nil
	}

	var suggestions []string
	positive, negative := 0, 0
	for _, c := range correlations {
		if c.Confidence < MinConfidenceShow || math.Abs(c.Correlation) < ModerateThreshold {
			continue
		}
		factorName, ok := factorDisplayNames[c.Factor]
		if !ok {
			continue
		}
		symptomName, ok := symptomDisplayNames[c.Symptom]
		if !ok {
			continue
		}
		switch c.Direction {
		case DirectionDecreases:
			if positive >= 2 {
				continue
			}
			positive++
			suggestions = append(suggestions, fmt.Sprintf(
				"%s has helped with your %s before — worth keeping up this week.",
				factorName, symptomName))
		case DirectionIncreases:
			if negative >= 2 {
				continue
			}
			negative++
			suggestions = append(suggestions, fmt.Sprintf(
				"Your period is %d day(s) out: consider easing off %s, which has lined up with worse %s.",
				daysUntilPeriod, lowerFirst(factorName), symptomName))
		}
	}
	return suggestions
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
