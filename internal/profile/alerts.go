package profile

import (
	"math/rand"
	"strings"

	"innerlog/internal/patterns"
)

// Alert thresholds. Confidence above the medium line upgrades severity.
const (
	alertConfidenceMin = 0.5
	severityMediumMin  = 0.75
)

// Pre-authored message templates. The texts deliberately describe the
// writing, never the writer: no category name from the catalog appears in
// user-facing copy.
var distortionMessages = map[patterns.Distortion]string{
	patterns.DistortionAllOrNothing:       "Words like \"always\" and \"never\" showed up here. Is there a middle ground worth a second look?",
	patterns.DistortionCatastrophizing:    "This entry leans toward worst-case outcomes. What is the most likely outcome, not just the worst one?",
	patterns.DistortionOvergeneralization: "One event seems to be standing in for a whole pattern here. Was this time really like every other time?",
	patterns.DistortionMindReading:        "There are some guesses about what others are thinking. Is there a way to check instead of guessing?",
	patterns.DistortionPersonalization:    "You're carrying a lot of the blame in this entry. How much of this was truly within your control?",
	patterns.DistortionShouldStatements:   "A lot of \"should\" and \"must\" in this one. Would a gentler expectation change how this feels?",
	patterns.DistortionEmotionalReasoning: "Strong feelings are being read as facts here. The feeling is real — is the conclusion?",
	patterns.DistortionLabeling:           "Some harsh names for yourself appear in this entry. Would you describe a friend that way?",
}

var horsemanMessages = map[patterns.Horseman]string{
	patterns.HorsemanCriticism:     "This conflict reads as being about who the other person is, not what happened. Naming the specific behavior can land softer.",
	patterns.HorsemanContempt:      "There's an edge of disdain in this entry. What did you once appreciate about this person?",
	patterns.HorsemanDefensiveness: "A lot of self-defense here. Is there even a small piece of their point worth owning?",
	patterns.HorsemanStonewalling:  "It sounds like you shut the conversation down. A short break with a promise to return can do the same job with less damage.",
}

var positiveMessages = [3]string{
	"There's real lightness in this entry — worth pausing to notice what made today work.",
	"Several good things showed up today. Savoring them for a moment makes them stick.",
	"Today had more than one bright spot. What would it take to get more days like this?",
}

const (
	sympatheticMessage = "Your body sounds activated in this entry. A few slow exhales, longer out than in, can help settle things."
	dorsalMessage      = "This entry sounds heavy and far away. Something small and physical — a stretch, a step outside — can be a first hand-hold back."
	anxiousMessage     = "Some worry about closeness and reassurance comes through here. That need is valid; naming it to the other person often shrinks it."
	growthMessage      = "You're talking about yourself as someone still in motion — keep that framing, it's doing work for you."
	adaptiveAck        = "You reached for something that actually helps here. That's a skill, and it showed."
	maladaptiveMessage = "The coping in this entry looks like it costs more than it gives back. What has helped on better days?"
)

// SynthesizeAlerts turns the current detection plus profile-derived
// context into a bounded list of gentle prompts: at most one message per
// eligible category. rng drives only the positive-message pool and must
// be seedable for tests.
func SynthesizeAlerts(det patterns.Result, rng *rand.Rand) []Alert {
	var alerts []Alert

	for _, d := range det.Distortions {
		if d.Confidence <= alertConfidenceMin {
			continue
		}
		alerts = append(alerts, Alert{
			Category: string(d.Pattern),
			Message:  distortionMessages[d.Pattern],
			Severity: severityFor(d.Confidence),
		})
	}

	if s := det.State; s != nil && s.Confidence > alertConfidenceMin {
		switch s.State {
		case patterns.StateSympathetic:
			alerts = append(alerts, Alert{
				Category: string(s.State), Message: sympatheticMessage, Severity: severityFor(s.Confidence),
			})
		case patterns.StateDorsalVagal:
			alerts = append(alerts, Alert{
				Category: string(s.State), Message: dorsalMessage, Severity: severityFor(s.Confidence),
			})
		}
	}

	for _, a := range det.Attachment {
		if a.Style == patterns.AttachmentAnxious && len(a.Keywords) >= 2 {
			alerts = append(alerts, Alert{
				Category: string(a.Style), Message: anxiousMessage, Severity: "low",
			})
		}
	}

	if len(det.WellBeing) >= 2 {
		alerts = append(alerts, Alert{
			Category: "well_being",
			Message:  positiveMessages[rng.Intn(len(positiveMessages))],
			Severity: "low",
		})
	}

	for _, m := range det.Mindset {
		if m.Mindset == patterns.MindsetGrowth && len(m.Keywords) >= 2 {
			alerts = append(alerts, Alert{Category: "growth_mindset", Message: growthMessage, Severity: "low"})
		}
	}

	adaptiveHit := false
	maladaptiveMatches := 0
	for _, s := range det.Strategies {
		if s.Adaptive {
			adaptiveHit = true
		} else {
			maladaptiveMatches += len(s.Keywords)
		}
	}
	if adaptiveHit {
		alerts = append(alerts, Alert{Category: "adaptive_coping", Message: adaptiveAck, Severity: "low"})
	}
	if maladaptiveMatches >= 2 {
		alerts = append(alerts, Alert{Category: "coping_strain", Message: maladaptiveMessage, Severity: "medium"})
	}

	for _, h := range det.Horsemen {
		alerts = append(alerts, Alert{
			Category: string(h.Horseman),
			Message:  horsemanMessages[h.Horseman],
			Severity: "low",
		})
	}

	return alerts
}

func severityFor(confidence float64) string {
	if confidence >= severityMediumMin {
		return "medium"
	}
	return "low"
}

// messageMentionsCategory is a guard used by tests: user-facing copy must
// never contain an internal category identifier.
func messageMentionsCategory(msg string) bool {
	lower := strings.ToLower(msg)
	terms := []string{
		"distortion", "catastrophizing", "all_or_nothing", "overgeneralization",
		"sympathetic", "dorsal", "vagal", "attachment", "horseman", "gottman",
		"maladaptive", "defense mechanism", "locus",
	}
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
