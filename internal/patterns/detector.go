package patterns

import (
	"sort"
	"strings"
)

// Match types carry the category that fired plus the exact phrases that
// triggered it, so downstream consumers can threshold on match counts.

type DistortionMatch struct {
	Pattern    Distortion `json:"pattern"`
	Keywords   []string   `json:"keywords"`
	Confidence float64    `json:"confidence"`
}

type DefenseMatch struct {
	Mechanism Defense         `json:"mechanism"`
	Maturity  DefenseMaturity `json:"maturity"`
	Keywords  []string        `json:"keywords"`
}

type AttachmentMatch struct {
	Style    AttachmentStyle `json:"style"`
	Keywords []string        `json:"keywords"`
}

type LocusMatch struct {
	Orientation LocusOrientation `json:"orientation"`
	Keywords    []string         `json:"keywords"`
}

type StrategyMatch struct {
	Strategy Strategy `json:"strategy"`
	Adaptive bool     `json:"adaptive"`
	Keywords []string `json:"keywords"`
}

type StateMatch struct {
	State      NervousState `json:"state"`
	Keywords   []string     `json:"keywords"`
	Confidence float64      `json:"confidence"`
}

type MindsetMatch struct {
	Mindset  Mindset  `json:"mindset"`
	Keywords []string `json:"keywords"`
}

type ValueMatch struct {
	Value    Value    `json:"value"`
	Keywords []string `json:"keywords"`
}

type PermaMatch struct {
	Element  PermaElement `json:"element"`
	Keywords []string     `json:"keywords"`
}

type GriefMatch struct {
	Style    GriefStyle `json:"style"`
	Keywords []string   `json:"keywords"`
}

type MoneyMatch struct {
	Script   MoneyScript `json:"script"`
	Keywords []string    `json:"keywords"`
}

type HorsemanMatch struct {
	Horseman Horseman `json:"horseman"`
	Keywords []string `json:"keywords"`
}

// Result holds the matches of one text against every category family.
type Result struct {
	Distortions  []DistortionMatch `json:"distortions"`
	Defenses     []DefenseMatch    `json:"defenses"`
	Attachment   []AttachmentMatch `json:"attachment"`
	Locus        []LocusMatch      `json:"locus"`
	Strategies   []StrategyMatch   `json:"strategies"`
	State        *StateMatch       `json:"state,omitempty"`
	Mindset      []MindsetMatch    `json:"mindset"`
	Values       []ValueMatch      `json:"values"`
	WellBeing    []PermaMatch      `json:"well_being"`
	Grief        []GriefMatch      `json:"grief"`
	MoneyScripts []MoneyMatch      `json:"money_scripts"`
	Horsemen     []HorsemanMatch   `json:"horsemen"`
}

// Detect scans one text blob against the full catalog. It is a pure
// function: no state, identical output for identical input (results are
// sorted by category so map iteration order never leaks through). Empty
// text returns an empty result.
func Detect(text string) Result {
	var res Result
	if strings.TrimSpace(text) == "" {
		return res
	}
	lower := strings.ToLower(text)

	for pattern, keywords := range distortionKeywords {
		matched := matchedKeywords(lower, keywords)
		if len(matched) == 0 {
			continue
		}
		conf := float64(len(matched)) / 3.0
		if conf > 1.0 {
			conf = 1.0
		}
		res.Distortions = append(res.Distortions, DistortionMatch{
			Pattern: pattern, Keywords: matched, Confidence: conf,
		})
	}
	sort.Slice(res.Distortions, func(i, j int) bool {
		return res.Distortions[i].Pattern < res.Distortions[j].Pattern
	})

	for mech, info := range defenseCatalog {
		if matched := matchedKeywords(lower, info.Keywords); len(matched) > 0 {
			res.Defenses = append(res.Defenses, DefenseMatch{
				Mechanism: mech, Maturity: info.Maturity, Keywords: matched,
			})
		}
	}
	sort.Slice(res.Defenses, func(i, j int) bool {
		return res.Defenses[i].Mechanism < res.Defenses[j].Mechanism
	})

	for style, keywords := range attachmentKeywords {
		if matched := matchedKeywords(lower, keywords); len(matched) > 0 {
			res.Attachment = append(res.Attachment, AttachmentMatch{Style: style, Keywords: matched})
		}
	}
	sort.Slice(res.Attachment, func(i, j int) bool {
		return res.Attachment[i].Style < res.Attachment[j].Style
	})

	for orient, keywords := range locusKeywords {
		if matched := matchedKeywords(lower, keywords); len(matched) > 0 {
			res.Locus = append(res.Locus, LocusMatch{Orientation: orient, Keywords: matched})
		}
	}
	sort.Slice(res.Locus, func(i, j int) bool {
		return res.Locus[i].Orientation < res.Locus[j].Orientation
	})

	for strat, info := range strategyCatalog {
		if matched := matchedKeywords(lower, info.Keywords); len(matched) > 0 {
			res.Strategies = append(res.Strategies, StrategyMatch{
				Strategy: strat, Adaptive: info.Adaptive, Keywords: matched,
			})
		}
	}
	sort.Slice(res.Strategies, func(i, j int) bool {
		return res.Strategies[i].Strategy < res.Strategies[j].Strategy
	})

	res.State = detectState(lower)

	for kind, keywords := range mindsetKeywords {
		if matched := matchedKeywords(lower, keywords); len(matched) > 0 {
			res.Mindset = append(res.Mindset, MindsetMatch{Mindset: kind, Keywords: matched})
		}
	}
	sort.Slice(res.Mindset, func(i, j int) bool {
		return res.Mindset[i].Mindset < res.Mindset[j].Mindset
	})

	for value, keywords := range valueKeywords {
		if matched := matchedKeywords(lower, keywords); len(matched) > 0 {
			res.Values = append(res.Values, ValueMatch{Value: value, Keywords: matched})
		}
	}
	sort.Slice(res.Values, func(i, j int) bool {
		return res.Values[i].Value < res.Values[j].Value
	})

	for element, keywords := range permaKeywords {
		if matched := matchedKeywords(lower, keywords); len(matched) > 0 {
			res.WellBeing = append(res.WellBeing, PermaMatch{Element: element, Keywords: matched})
		}
	}
	sort.Slice(res.WellBeing, func(i, j int) bool {
		return res.WellBeing[i].Element < res.WellBeing[j].Element
	})

	for style, keywords := range griefKeywords {
		if matched := matchedKeywords(lower, keywords); len(matched) > 0 {
			res.Grief = append(res.Grief, GriefMatch{Style: style, Keywords: matched})
		}
	}
	sort.Slice(res.Grief, func(i, j int) bool {
		return res.Grief[i].Style < res.Grief[j].Style
	})

	for script, keywords := range moneyKeywords {
		if matched := matchedKeywords(lower, keywords); len(matched) > 0 {
			res.MoneyScripts = append(res.MoneyScripts, MoneyMatch{Script: script, Keywords: matched})
		}
	}
	sort.Slice(res.MoneyScripts, func(i, j int) bool {
		return res.MoneyScripts[i].Script < res.MoneyScripts[j].Script
	})

	for horseman, keywords := range horsemanKeywords {
		if matched := matchedKeywords(lower, keywords); len(matched) > 0 {
			res.Horsemen = append(res.Horsemen, HorsemanMatch{Horseman: horseman, Keywords: matched})
		}
	}
	sort.Slice(res.Horsemen, func(i, j int) bool {
		return res.Horsemen[i].Horseman < res.Horsemen[j].Horseman
	})

	return res
}

// detectState scores every nervous-system state and keeps only the single
// strongest one. Confidence is the fraction of that state's keyword list
// found in the text, so longer lists need more hits to win.
func detectState(lower string) *StateMatch {
	var best *StateMatch
	// Fixed evaluation order keeps ties deterministic.
	for _, state := range []NervousState{StateVentralVagal, StateSympathetic, StateDorsalVagal} {
		keywords := stateKeywords[state]
		matched := matchedKeywords(lower, keywords)
		if len(matched) == 0 {
			continue
		}
		conf := float64(len(matched)) / float64(len(keywords))
		if best == nil || conf > best.Confidence {
			best = &StateMatch{State: state, Keywords: matched, Confidence: conf}
		}
	}
	return best
}

func matchedKeywords(lower string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
