package cycle

import (
	"sort"
)

// Threshold constants for the correlation engine. The correlation value
// is a normalized mean difference (see CalculateCorrelation), so these
// were tuned against that output range, not against Pearson's r.
const (
	MinCyclesBasic        = 2
	MinCyclesPersonalized = 3
	// Eight symptom-bearing days (four per side of a split) is the
	// smallest history worth surfacing, which puts confidence at 8/30.
	// The gate has to sit below that.
	MinConfidenceShow = 0.25
	WeakThreshold     = 0.15
	ModerateThreshold = 0.3
	StrongThreshold   = 0.6

	// At least this many logs on each side of a factor split before a
	// correlation is reported at all.
	minSubsetSize = 3
	// Confidence saturates at this total sample size.
	confidenceSaturation = 30
	// Symptom intensity scale; the divisor that normalizes the mean
	// difference into [-1, 1].
	maxIntensity = 3.0

	// Split boundaries for the two binary lifestyle factors.
	poorSleepHours   = 6.0
	goodSleepHours   = 7.0
	activeMinutes    = 20
	sedentaryMinutes = 10
)

// Synthetic factor identifiers for the binary splits. Food factors use
// the raw tag (e.g. "caffeine") as identifier.
const (
	FactorPoorSleep = "sleep:poor"
	FactorExercise  = "exercise:active"
)

// CountCycles counts completed menstrual cycles over date-sorted logs: a
// cycle completes when the menstrual phase is re-entered after having
// been left. A trailing partial cycle does not count.
func CountCycles(logs []*DailyLog) int {
	completed := 0
	inCycle := false // seen menstrual, then left it
	seenMenstrual := false
	for _, l := range logs {
		if l.Phase == "" {
			continue
		}
		if l.Phase == PhaseMenstrual {
			if inCycle {
				completed++
				inCycle = false
			}
			seenMenstrual = true
		} else if seenMenstrual {
			inCycle = true
		}
	}
	return completed
}

// SortedLogs returns the logs ordered by date key. ISO date strings sort
// lexicographically, which is chronological.
func SortedLogs(logs map[string]*DailyLog) []*DailyLog {
	keys := make([]string, 0, len(logs))
	for k := range logs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*DailyLog, 0, len(keys))
	for _, k := range keys {
		out = append(out, logs[k])
	}
	return out
}

// CalculateCorrelation compares mean symptom intensity between the
// "with" and "without" subsets. It returns nil — not a zero result —
// when either subset is too small, so "no data" stays distinguishable
// from "no effect". Logs that never recorded the symptom are ignored.
func CalculateCorrelation(with, without []*DailyLog, factor, symptom string) *CorrelationResult {
	withVals := symptomValues(with, symptom)
	withoutVals := symptomValues(without, symptom)
	if len(withVals) < minSubsetSize || len(withoutVals) < minSubsetSize {
		return nil
	}

	correlation := (mean(withVals) - mean(withoutVals)) / maxIntensity
	if correlation > 1 {
		correlation = 1
	} else if correlation < -1 {
		correlation = -1
	}

	total := len(withVals) + len(withoutVals)
	confidence := float64(total) / confidenceSaturation
	if confidence > 1 {
		confidence = 1
	}

	direction := DirectionNeutral
	if correlation >= WeakThreshold {
		direction = DirectionIncreases
	} else if correlation <= -WeakThreshold {
		direction = DirectionDecreases
	}

	return &CorrelationResult{
		Factor:      factor,
		Symptom:     symptom,
		Correlation: correlation,
		Confidence:  confidence,
		DataPoints:  total,
		Direction:   direction,
	}
}

// Analyze recomputes the full correlation set from scratch: every
// observed food tag against every observed symptom, plus the sleep and
// exercise binary splits. The pass is idempotent and order-independent
// over the log history.
func Analyze(logs []*DailyLog) []CorrelationResult {
	symptoms := observedSymptoms(logs)
	var results []CorrelationResult

	for _, tag := range observedFoodTags(logs) {
		var with, without []*DailyLog
		for _, l := range logs {
			if hasTag(l, tag) {
				with = append(with, l)
			} else {
				without = append(without, l)
			}
		}
		for _, symptom := range symptoms {
			if r := CalculateCorrelation(with, without, tag, symptom); r != nil {
				results = append(results, *r)
			}
		}
	}

	// Poor vs good sleep; the 6-7h middle band is excluded entirely.
	var shortSleep, goodSleep []*DailyLog
	for _, l := range logs {
		if l.Sleep == nil {
			continue
		}
		if l.Sleep.Hours < poorSleepHours {
			shortSleep = append(shortSleep, l)
		} else if l.Sleep.Hours >= goodSleepHours {
			goodSleep = append(goodSleep, l)
		}
	}
	for _, symptom := range symptoms {
		if r := CalculateCorrelation(shortSleep, goodSleep, FactorPoorSleep, symptom); r != nil {
			results = append(results, *r)
		}
	}

	// Active vs sedentary; 10-20min days are excluded.
	var active, sedentary []*DailyLog
	for _, l := range logs {
		if l.ExerciseMinutes >= activeMinutes {
			active = append(active, l)
		} else if l.ExerciseMinutes < sedentaryMinutes {
			sedentary = append(sedentary, l)
		}
	}
	for _, symptom := range symptoms {
		if r := CalculateCorrelation(active, sedentary, FactorExercise, symptom); r != nil {
			results = append(results, *r)
		}
	}

	return results
}

func symptomValues(logs []*DailyLog, symptom string) []float64 {
	var vals []float64
	for _, l := range logs {
		if v, ok := l.Symptoms[symptom]; ok {
			vals = append(vals, float64(v))
		}
	}
	return vals
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func observedFoodTags(logs []*DailyLog) []string {
	seen := map[string]bool{}
	for _, l := range logs {
		for _, t := range l.FoodTags {
			seen[t] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func observedSymptoms(logs []*DailyLog) []string {
	seen := map[string]bool{}
	for _, l := range logs {
		for s := range l.Symptoms {
			seen[s] = true
		}
	}
	symptoms := make([]string, 0, len(seen))
	for s := range seen {
		symptoms = append(symptoms, s)
	}
	sort.Strings(symptoms)
	return symptoms
}

func hasTag(l *DailyLog, tag string) bool {
	for _, t := range l.FoodTags {
		if t == tag {
			return true
		}
	}
	return false
}
