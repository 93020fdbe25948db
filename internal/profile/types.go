package profile

import (
	"time"

	"innerlog/internal/patterns"
)

// Caps on the bounded history fields. Oldest entries are evicted first.
const (
	maxExamples     = 5
	maxStateHistory = 30
	// predominantState is a majority vote over this many recent states.
	predominantWindow = 10
)

type DistortionStat struct {
	Pattern   patterns.Distortion `json:"pattern"`
	Frequency int                 `json:"frequency"`
	LastSeen  time.Time           `json:"lastSeen"`
	Examples  []string            `json:"examples"`
}

type DefenseStat struct {
	Mechanism patterns.Defense         `json:"mechanism"`
	Maturity  patterns.DefenseMaturity `json:"maturity"`
	Frequency int                      `json:"frequency"`
	LastSeen  time.Time                `json:"lastSeen"`
}

type StrategyStat struct {
	Strategy  patterns.Strategy `json:"strategy"`
	Adaptive  bool              `json:"adaptive"`
	Frequency int               `json:"frequency"`
}

type StateEntry struct {
	State     patterns.NervousState `json:"state"`
	Timestamp time.Time             `json:"timestamp"`
}

type ValueStat struct {
	Value patterns.Value `json:"value"`
	Count int            `json:"count"`
}

type GriefStat struct {
	Style     patterns.GriefStyle `json:"style"`
	Frequency int                 `json:"frequency"`
}

type MoneyScriptStat struct {
	Script    patterns.MoneyScript `json:"script"`
	Frequency int                  `json:"frequency"`
}

type HorsemanStat struct {
	Horseman  patterns.Horseman `json:"horseman"`
	Frequency int               `json:"frequency"`
}

type LocusScores struct {
	Internal float64 `json:"internal"`
	External float64 `json:"external"`
}

type MindsetScores struct {
	Fixed  float64 `json:"fixed"`
	Growth float64 `json:"growth"`
}

// Profile is the long-lived psychological profile of one user. It is a
// plain value: the aggregator takes one in and hands one back, and the
// service owns loading and persisting it. Frequency counters only ever
// grow; blended scores stay inside [0,1] by construction.
type Profile struct {
	EntryCount  int       `json:"entryCount"`
	LastUpdated time.Time `json:"lastUpdated"`

	Distortions []DistortionStat `json:"cognitiveDistortions"`

	Defenses     []DefenseStat            `json:"defenseMechanisms"`
	DefenseLevel patterns.DefenseMaturity `json:"defenseLevel"`

	AttachmentStyle      patterns.AttachmentStyle `json:"attachmentStyle"`
	AttachmentConfidence float64                  `json:"attachmentConfidence"`

	Locus LocusScores `json:"locusOfControl"`

	Strategies    []StrategyStat `json:"regulationStrategies"`
	AdaptiveRatio float64        `json:"adaptiveRatio"`

	StateHistory     []StateEntry          `json:"stateHistory"`
	PredominantState patterns.NervousState `json:"predominantState"`

	Mindset MindsetScores `json:"mindset"`

	ValueScores []ValueStat      `json:"valueScores"`
	TopValues   []patterns.Value `json:"topValues"`

	Perma map[patterns.PermaElement]float64 `json:"permaScores"`

	Grief        []GriefStat       `json:"griefStyles"`
	MoneyScripts []MoneyScriptStat `json:"moneyScripts"`
	Horsemen     []HorsemanStat    `json:"gottmanPatterns"`
}

// NewProfile returns the well-defined empty profile used both for first
// contact and as the recovery fallback when the stored blob is unreadable.
func NewProfile() *Profile {
	perma := make(map[patterns.PermaElement]float64, len(patterns.PermaElements))
	for _, el := range patterns.PermaElements {
		perma[el] = 0.5
	}
	return &Profile{
		Locus:   LocusScores{Internal: 0.5, External: 0.5},
		Mindset: MindsetScores{Fixed: 0.5, Growth: 0.5},
		Perma:   perma,
	}
}

// Alert is one gentle, pre-authored prompt surfaced after an entry.
type Alert struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "low" or "medium"
}

// EntryAnalysis is what AnalyzeEntry hands back to the caller.
type EntryAnalysis struct {
	EntryID   string          `json:"entryId"`
	Timestamp time.Time       `json:"timestamp"`
	Detection patterns.Result `json:"detection"`
	Alerts    []Alert         `json:"alerts"`
}
