package cycle

import (
	"strings"
	"testing"
)

func TestSynthesizeInsights_LowConfidenceNeverShown(t *testing.T) {
	correlations := []CorrelationResult{
		{Factor: "caffeine", Symptom: "cramps", Correlation: 0.9, Confidence: 0.2, DataPoints: 6, Direction: DirectionIncreases},
	}
	if insights := SynthesizeInsights(correlations); len(insights) != 0 {
		t.Errorf("expected no insights below confidence gate, got %d", len(insights))
	}
}

func TestSynthesizeInsights_WeakCorrelationNeverShown(t *testing.T) {
	correlations := []CorrelationResult{
		{Factor: "caffeine", Symptom: "cramps", Correlation: 0.2, Confidence: 1.0, DataPoints: 40, Direction: DirectionIncreases},
	}
	if insights := SynthesizeInsights(correlations); len(insights) != 0 {
		t.Errorf("expected no insights below strength gate, got %d", len(insights))
	}
}

func TestSynthesizeInsights_UnknownIdentifiersDropped(t *testing.T) {
	correlations := []CorrelationResult{
		{Factor: "kombucha", Symptom: "cramps", Correlation: 0.9, Confidence: 1.0, DataPoints: 40, Direction: DirectionIncreases},
		{Factor: "caffeine", Symptom: "elbow_itch", Correlation: 0.9, Confidence: 1.0, DataPoints: 40, Direction: DirectionIncreases},
	}
	if insights := SynthesizeInsights(correlations); len(insights) != 0 {
		t.Errorf("expected unlabeled identifiers to be dropped, got %+v", insights)
	}
}

func TestSynthesizeInsights_WarningAndAdverb(t *testing.T) {
	correlations := []CorrelationResult{
		{Factor: "caffeine", Symptom: "cramps", Correlation: 0.7, Confidence: 0.8, DataPoints: 56, Direction: DirectionIncreases},
		{Factor: "dairy", Symptom: "bloating", Correlation: 0.4, Confidence: 0.8, DataPoints: 24, Direction: DirectionIncreases},
	}
	insights := SynthesizeInsights(correlations)
	if len(insights) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(insights))
	}

	strong := insights[0]
	if strong.Type != "warning" {
		t.Errorf("type = %q, want warning", strong.Type)
	}
	if strong.ID == "" {
		t.Error("expected a generated insight id")
	}
	if !strings.Contains(strong.Message, "significantly") {
		t.Errorf("strong correlation should read significantly: %q", strong.Message)
	}
	if !strings.Contains(strong.BasedOn, "56 logged days over ~2 cycle(s)") {
		t.Errorf("basedOn = %q", strong.BasedOn)
	}

	moderate := insights[1]
	if !strings.Contains(moderate.Message, "noticeably") {
		t.Errorf("moderate correlation should read noticeably: %q", moderate.Message)
	}
	if !strings.Contains(moderate.Actionable, "dairy") {
		t.Errorf("actionable should name the factor: %q", moderate.Actionable)
	}
}

func TestSynthesizeInsights_PositiveTemplate(t *testing.T) {
	correlations := []CorrelationResult{
		{Factor: FactorExercise, Symptom: "mood_swings", Correlation: -0.5, Confidence: 0.7, DataPoints: 21, Direction: DirectionDecreases},
	}
	insights := SynthesizeInsights(correlations)
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	got := insights[0]
	if got.Type != "positive" {
		t.Errorf("type = %q, want positive", got.Type)
	}
	if !strings.Contains(got.Message, "milder") {
		t.Errorf("positive message should read milder: %q", got.Message)
	}
	if !strings.Contains(got.Title, "help") {
		t.Errorf("title = %q", got.Title)
	}
}

func significantSet() []CorrelationResult {
	return []CorrelationResult{
		{Factor: "caffeine", Symptom: "cramps", Correlation: 0.7, Confidence: 0.8, Direction: DirectionIncreases},
		{Factor: "sugar", Symptom: "fatigue", Correlation: 0.5, Confidence: 0.8, Direction: DirectionIncreases},
		{Factor: "alcohol", Symptom: "headache", Correlation: 0.6, Confidence: 0.8, Direction: DirectionIncreases},
		{Factor: FactorExercise, Symptom: "mood_swings", Correlation: -0.5, Confidence: 0.8, Direction: DirectionDecreases},
		{Factor: "chocolate", Symptom: "anxiety", Correlation: -0.4, Confidence: 0.8, Direction: DirectionDecreases},
		{Factor: "dairy", Symptom: "bloating", Correlation: -0.4, Confidence: 0.8, Direction: DirectionDecreases},
	}
}

func TestCycleSuggestions_GatedToLatePrePeriodWindow(t *testing.T) {
	set := significantSet()
	cases := []struct {
		name  string
		days  int
		phase Phase
	}{
		{"wrong phase", 5, PhaseFollicular},
		{"too far out", 10, PhaseLuteal},
		{"period started", 0, PhaseLuteal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CycleSuggestions(set, tc.days, tc.phase); got != nil {
				t.Errorf("expected no suggestions, got %v", got)
			}
		})
	}
}

func TestCycleSuggestions_CappedTwoEachDirection(t *testing.T) {
	suggestions := CycleSuggestions(significantSet(), 5, PhaseLuteal)
	if len(suggestions) != 4 {
		t.Fatalf("expected 2 positive + 2 limiting suggestions, got %d: %v", len(suggestions), suggestions)
	}
	easing, keeping := 0, 0
	for _, s := range suggestions {
		if strings.Contains(s, "easing off") {
			easing++
		}
		if strings.Contains(s, "keeping up") {
			keeping++
		}
	}
	if easing != 2 || keeping != 2 {
		t.Errorf("want 2 limiting and 2 positive, got %d/%d: %v", easing, keeping, suggestions)
	}
}

func TestCycleSuggestions_SkipsInsignificantAndUnknown(t *testing.T) {
	set := []CorrelationResult{
		{Factor: "caffeine", Symptom: "cramps", Correlation: 0.2, Confidence: 0.9, Direction: DirectionIncreases},
		{Factor: "caffeine", Symptom: "cramps", Correlation: 0.7, Confidence: 0.2, Direction: DirectionIncreases},
		{Factor: "kombucha", Symptom: "cramps", Correlation: 0.7, Confidence: 0.9, Direction: DirectionIncreases},
	}
	if got := CycleSuggestions(set, 3, PhaseLuteal); got != nil {
		t.Errorf("expected no suggestions, got %v", got)
	}
}
