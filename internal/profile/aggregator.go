package profile

import (
	"sort"
	"time"

	"innerlog/internal/patterns"
)

// Update applies one detection result to the profile in place. Every
// family update is an isolated transform applied unconditionally; none of
// them can veto the others. Derived fields (defense level, predominant
// state, adaptive ratio) are recomputed at the end of every call so reads
// never observe stale composites. EntryCount advances exactly once per
// call, matches or not.
func Update(p *Profile, det patterns.Result, entryText string, now time.Time) {
	updateDistortions(p, det.Distortions, entryText, now)
	updateDefenses(p, det.Defenses, now)
	updateAttachment(p, det.Attachment)
	updateLocus(p, det.Locus)
	updateStrategies(p, det.Strategies)
	updateStateHistory(p, det.State, now)
	updateMindset(p, det.Mindset)
	updateValues(p, det.Values)
	updatePerma(p, det.WellBeing)
	updateGrief(p, det.Grief)
	updateMoneyScripts(p, det.MoneyScripts)
	updateHorsemen(p, det.Horsemen)

	p.DefenseLevel = deriveDefenseLevel(p.Defenses)
	p.PredominantState = derivePredominantState(p.StateHistory)
	p.AdaptiveRatio = deriveAdaptiveRatio(p.Strategies)

	p.EntryCount++
	p.LastUpdated = now
}

func updateDistortions(p *Profile, matches []patterns.DistortionMatch, entryText string, now time.Time) {
	for _, m := range matches {
		stat := findDistortion(p, m.Pattern)
		stat.Frequency++
		stat.LastSeen = now
		stat.Examples = append(stat.Examples, excerpt(entryText, 80))
		if len(stat.Examples) > maxExamples {
			stat.Examples = stat.Examples[len(stat.Examples)-maxExamples:]
		}
	}
}

func findDistortion(p *Profile, pattern patterns.Distortion) *DistortionStat {
	for i := range p.Distortions {
		if p.Distortions[i].Pattern == pattern {
			return &p.Distortions[i]
		}
	}
	p.Distortions = append(p.Distortions, DistortionStat{Pattern: pattern})
	return &p.Distortions[len(p.Distortions)-1]
}

func updateDefenses(p *Profile, matches []patterns.DefenseMatch, now time.Time) {
	for _, m := range matches {
		found := false
		for i := range p.Defenses {
			if p.Defenses[i].Mechanism == m.Mechanism {
				p.Defenses[i].Frequency++
				p.Defenses[i].LastSeen = now
				found = true
				break
			}
		}
		if !found {
			p.Defenses = append(p.Defenses, DefenseStat{
				Mechanism: m.Mechanism, Maturity: m.Maturity, Frequency: 1, LastSeen: now,
			})
		}
	}
}

// updateAttachment only moves the profile when the new evidence is more
// confident than what it already holds, then blends 0.7 new / 0.3 old.
func updateAttachment(p *Profile, matches []patterns.AttachmentMatch) {
	var best *patterns.AttachmentMatch
	for i := range matches {
		if best == nil || len(matches[i].Keywords) > len(best.Keywords) {
			best = &matches[i]
		}
	}
	if best == nil {
		return
	}
	evidence := float64(len(best.Keywords)) / 4.0
	if evidence > 1.0 {
		evidence = 1.0
	}
	if evidence <= p.AttachmentConfidence {
		return
	}
	p.AttachmentStyle = best.Style
	p.AttachmentConfidence = 0.7*evidence + 0.3*p.AttachmentConfidence
}

func updateLocus(p *Profile, matches []patterns.LocusMatch) {
	if len(matches) == 0 {
		return
	}
	internalTarget, externalTarget := 0.0, 0.0
	for _, m := range matches {
		switch m.Orientation {
		case patterns.LocusInternal:
			internalTarget = 1.0
		case patterns.LocusExternal:
			externalTarget = 1.0
		}
	}
	p.Locus.Internal = 0.8*p.Locus.Internal + 0.2*internalTarget
	p.Locus.External = 0.8*p.Locus.External + 0.2*externalTarget
}

func updateStrategies(p *Profile, matches []patterns.StrategyMatch) {
	for _, m := range matches {
		found := false
		for i := range p.Strategies {
			if p.Strategies[i].Strategy == m.Strategy {
				p.Strategies[i].Frequency++
				found = true
				break
			}
		}
		if !found {
			p.Strategies = append(p.Strategies, StrategyStat{
				Strategy: m.Strategy, Adaptive: m.Adaptive, Frequency: 1,
			})
		}
	}
}

func updateStateHistory(p *Profile, match *patterns.StateMatch, now time.Time) {
	if match == nil {
		return
	}
	p.StateHistory = append(p.StateHistory, StateEntry{State: match.State, Timestamp: now})
	if len(p.StateHistory) > maxStateHistory {
		p.StateHistory = p.StateHistory[len(p.StateHistory)-maxStateHistory:]
	}
}

func updateMindset(p *Profile, matches []patterns.MindsetMatch) {
	if len(matches) == 0 {
		return
	}
	fixedTarget, growthTarget := 0.0, 0.0
	for _, m := range matches {
		switch m.Mindset {
		case patterns.MindsetFixed:
			fixedTarget = 1.0
		case patterns.MindsetGrowth:
			growthTarget = 1.0
		}
	}
	p.Mindset.Fixed = 0.8*p.Mindset.Fixed + 0.2*fixedTarget
	p.Mindset.Growth = 0.8*p.Mindset.Growth + 0.2*growthTarget
}

// updateValues accumulates matched-keyword counts and fully replaces the
// top-3 list, no blending.
func updateValues(p *Profile, matches []patterns.ValueMatch) {
	for _, m := range matches {
		found := false
		for i := range p.ValueScores {
			if p.ValueScores[i].Value == m.Value {
				p.ValueScores[i].Count += len(m.Keywords)
				found = true
				break
			}
		}
		if !found {
			p.ValueScores = append(p.ValueScores, ValueStat{Value: m.Value, Count: len(m.Keywords)})
		}
	}

	ranked := make([]ValueStat, len(p.ValueScores))
	copy(ranked, p.ValueScores)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Value < ranked[j].Value
	})
	p.TopValues = p.TopValues[:0]
	for i := 0; i < len(ranked) && i < 3; i++ {
		p.TopValues = append(p.TopValues, ranked[i].Value)
	}
}

func updatePerma(p *Profile, matches []patterns.PermaMatch) {
	if p.Perma == nil {
		p.Perma = make(map[patterns.PermaElement]float64, len(patterns.PermaElements))
		for _, el := range patterns.PermaElements {
			p.Perma[el] = 0.5
		}
	}
	detected := make(map[patterns.PermaElement]bool, len(matches))
	for _, m := range matches {
		detected[m.Element] = true
	}
	for _, el := range patterns.PermaElements {
		if detected[el] {
			v := p.Perma[el]*0.9 + 0.15
			if v > 1.0 {
				v = 1.0
			}
			p.Perma[el] = v
		} else {
			p.Perma[el] *= 0.98
		}
	}
}

func updateGrief(p *Profile, matches []patterns.GriefMatch) {
	for _, m := range matches {
		found := false
		for i := range p.Grief {
			if p.Grief[i].Style == m.Style {
				p.Grief[i].Frequency++
				found = true
				break
			}
		}
		if !found {
			p.Grief = append(p.Grief, GriefStat{Style: m.Style, Frequency: 1})
		}
	}
}

func updateMoneyScripts(p *Profile, matches []patterns.MoneyMatch) {
	for _, m := range matches {
		found := false
		for i := range p.MoneyScripts {
			if p.MoneyScripts[i].Script == m.Script {
				p.MoneyScripts[i].Frequency++
				found = true
				break
			}
		}
		if !found {
			p.MoneyScripts = append(p.MoneyScripts, MoneyScriptStat{Script: m.Script, Frequency: 1})
		}
	}
}

func updateHorsemen(p *Profile, matches []patterns.HorsemanMatch) {
	for _, m := range matches {
		found := false
		for i := range p.Horsemen {
			if p.Horsemen[i].Horseman == m.Horseman {
				p.Horsemen[i].Frequency++
				found = true
				break
			}
		}
		if !found {
			p.Horsemen = append(p.Horsemen, HorsemanStat{Horseman: m.Horseman, Frequency: 1})
		}
	}
}

// deriveDefenseLevel is a frequency-weighted majority vote across the
// maturity tags of every mechanism seen so far.
func deriveDefenseLevel(defenses []DefenseStat) patterns.DefenseMaturity {
	if len(defenses) == 0 {
		return ""
	}
	weights := map[patterns.DefenseMaturity]int{}
	for _, d := range defenses {
		weights[d.Maturity] += d.Frequency
	}
	best := patterns.MaturityMature
	bestWeight := -1
	for _, level := range []patterns.DefenseMaturity{patterns.MaturityMature, patterns.MaturityNeurotic, patterns.MaturityImmature} {
		if weights[level] > bestWeight {
			best = level
			bestWeight = weights[level]
		}
	}
	return best
}

// derivePredominantState is a majority vote over the last ten recorded
// states, ties broken in favor of the most recently seen state.
func derivePredominantState(history []StateEntry) patterns.NervousState {
	if len(history) == 0 {
		return ""
	}
	start := len(history) - predominantWindow
	if start < 0 {
		start = 0
	}
	counts := map[patterns.NervousState]int{}
	lastSeen := map[patterns.NervousState]int{}
	for i := start; i < len(history); i++ {
		counts[history[i].State]++
		lastSeen[history[i].State] = i
	}
	var best patterns.NervousState
	bestCount := -1
	for state, count := range counts {
		if count > bestCount || (count == bestCount && lastSeen[state] > lastSeen[best]) {
			best = state
			bestCount = count
		}
	}
	return best
}

func deriveAdaptiveRatio(strategies []StrategyStat) float64 {
	total, adaptive := 0, 0
	for _, s := range strategies {
		total += s.Frequency
		if s.Adaptive {
			adaptive += s.Frequency
		}
	}
	if total == 0 {
		return 0
	}
	return float64(adaptive) / float64(total)
}

func excerpt(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
