package cycle

import "time"

// Phase is one of the four menstrual cycle phases.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulatory  Phase = "ovulatory"
	PhaseLuteal     Phase = "luteal"
)

// SleepInfo is the self-reported sleep block of one day.
type SleepInfo struct {
	Hours   float64  `json:"hours"`
	Quality int      `json:"quality"`
	Issues  []string `json:"issues,omitempty"`
}

// DailyLog is the merged record for one calendar date (keyed YYYY-MM-DD).
// Symptom intensities are 0-3.
type DailyLog struct {
	Date            string         `json:"date"`
	FoodTags        []string       `json:"foodTags,omitempty"`
	Symptoms        map[string]int `json:"symptoms,omitempty"`
	Sleep           *SleepInfo     `json:"sleep,omitempty"`
	ExerciseMinutes int            `json:"exerciseMinutes"`
	ExerciseType    string         `json:"exerciseType,omitempty"`
	MoodScore       int            `json:"moodScore"`
	StressLevel     int            `json:"stressLevel"`
	FlowLevel       int            `json:"flowLevel"`
	Phase           Phase          `json:"phase,omitempty"`
}

// LogUpdate is a partial same-day update. Pointer scalars distinguish
// "explicitly set" from "omitted": omitted scalars keep their stored
// value, food tags are unioned, and symptoms merge per key. This
// asymmetry is deliberate and matches how re-logging behaves.
type LogUpdate struct {
	FoodTags        []string       `json:"foodTags,omitempty"`
	Symptoms        map[string]int `json:"symptoms,omitempty"`
	Sleep           *SleepInfo     `json:"sleep,omitempty"`
	ExerciseMinutes *int           `json:"exerciseMinutes,omitempty"`
	ExerciseType    *string        `json:"exerciseType,omitempty"`
	MoodScore       *int           `json:"moodScore,omitempty"`
	StressLevel     *int           `json:"stressLevel,omitempty"`
	FlowLevel       *int           `json:"flowLevel,omitempty"`
	Phase           *Phase         `json:"phase,omitempty"`
}

// Direction of a factor's association with a symptom.
const (
	DirectionIncreases = "increases"
	DirectionDecreases = "decreases"
	DirectionNeutral   = "neutral"
)

// CorrelationResult is one factor-symptom association. The whole set is
// regenerated on every analysis pass; individual results are never
// mutated in place.
type CorrelationResult struct {
	Factor      string  `json:"factor"`
	Symptom     string  `json:"symptom"`
	Correlation float64 `json:"correlation"` // [-1, 1], normalized mean difference
	Confidence  float64 `json:"confidence"`  // [0, 1], sample-size based
	DataPoints  int     `json:"dataPoints"`
	Direction   string  `json:"direction"`
}

// PersonalizedInsight is a user-facing sentence derived from one
// significant correlation.
type PersonalizedInsight struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"` // "positive" or "warning"
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	BasedOn    string  `json:"basedOn"`
	Confidence float64 `json:"confidence"`
	Actionable string  `json:"actionable"`
}

// Data is the single correlation blob persisted per user: raw logs,
// derived correlations and insights, and analysis metadata, colocated so
// one Set replaces everything atomically.
type Data struct {
	Logs          map[string]*DailyLog  `json:"logs"`
	Correlations  []CorrelationResult   `json:"correlations"`
	Insights      []PersonalizedInsight `json:"insights"`
	CyclesTracked int                   `json:"cyclesTracked"`
	LastAnalyzed  time.Time             `json:"lastAnalyzed"`
}

// NewData returns the empty correlation blob, also used as the recovery
// fallback when the stored blob is unreadable.
func NewData() *Data {
	return &Data{Logs: map[string]*DailyLog{}}
}

// InsightsReport is what CurrentInsights hands back to the caller.
type InsightsReport struct {
	Insights        []PersonalizedInsight `json:"insights"`
	CyclesTracked   int                   `json:"cyclesTracked"`
	CanShowInsights bool                  `json:"canShowInsights"`
	NextMilestone   string                `json:"nextMilestone,omitempty"`
}
