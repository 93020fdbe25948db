package profile

import (
	"fmt"
	"sort"
	"strings"

	"innerlog/internal/patterns"
)

// CompressedContext renders the profile into a bounded, human-readable
// summary used to prime downstream text generation. The format is a fixed
// set of labeled sections followed by communication recommendations keyed
// off profile thresholds. Sections with no signal are omitted.
func CompressedContext(p *Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User profile (from %d journal entries):\n", p.EntryCount)

	if len(p.Distortions) > 0 {
		ranked := make([]DistortionStat, len(p.Distortions))
		copy(ranked, p.Distortions)
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].Frequency != ranked[j].Frequency {
				return ranked[i].Frequency > ranked[j].Frequency
			}
			return ranked[i].Pattern < ranked[j].Pattern
		})
		names := make([]string, 0, 3)
		for i := 0; i < len(ranked) && i < 3; i++ {
			names = append(names, fmt.Sprintf("%s (x%d)", ranked[i].Pattern, ranked[i].Frequency))
		}
		fmt.Fprintf(&b, "Thinking patterns: %s\n", strings.Join(names, ", "))
	}

	if p.DefenseLevel != "" {
		top := topDefenses(p.Defenses, 2)
		fmt.Fprintf(&b, "Coping style: %s (%s)\n", p.DefenseLevel, strings.Join(top, ", "))
	}

	if p.AttachmentStyle != "" {
		fmt.Fprintf(&b, "Attachment: %s (confidence %.2f)\n", p.AttachmentStyle, p.AttachmentConfidence)
	}

	fmt.Fprintf(&b, "Agency: internal %.2f / external %.2f\n", p.Locus.Internal, p.Locus.External)
	fmt.Fprintf(&b, "Mindset: growth %.2f / fixed %.2f\n", p.Mindset.Growth, p.Mindset.Fixed)

	if len(p.TopValues) > 0 {
		vals := make([]string, len(p.TopValues))
		for i, v := range p.TopValues {
			vals[i] = string(v)
		}
		fmt.Fprintf(&b, "Values: %s\n", strings.Join(vals, ", "))
	}

	if p.PredominantState != "" {
		fmt.Fprintf(&b, "Nervous system: predominantly %s\n", p.PredominantState)
	}

	if len(p.Strategies) > 0 {
		fmt.Fprintf(&b, "Regulation: %.0f%% adaptive strategies\n", p.AdaptiveRatio*100)
	}

	if len(p.Perma) > 0 {
		sum := 0.0
		for _, v := range p.Perma {
			sum += v
		}
		fmt.Fprintf(&b, "Well-being average: %.2f\n", sum/float64(len(p.Perma)))
	}

	recs := recommendations(p)
	if len(recs) > 0 {
		b.WriteString("Communication recommendations:\n")
		for _, r := range recs {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	return b.String()
}

func recommendations(p *Profile) []string {
	var recs []string
	switch p.AttachmentStyle {
	case patterns.AttachmentAnxious:
		recs = append(recs, "Offer explicit reassurance; avoid ambiguous or delayed answers")
	case patterns.AttachmentAvoidant:
		recs = append(recs, "Respect autonomy; avoid pressuring for emotional disclosure")
	case patterns.AttachmentDisorganized:
		recs = append(recs, "Keep tone steady and predictable; avoid sudden shifts in register")
	}
	if p.Locus.External > 0.6 {
		recs = append(recs, "Gently highlight choices within the user's control")
	}
	if p.Mindset.Fixed > p.Mindset.Growth {
		recs = append(recs, "Frame setbacks as skill-building, not verdicts")
	}
	if len(p.Strategies) > 0 && p.AdaptiveRatio < 0.4 {
		recs = append(recs, "Suggest one concrete, low-effort coping step at a time")
	}
	switch p.PredominantState {
	case patterns.StateSympathetic:
		recs = append(recs, "Use a calm, slow pace; avoid urgency")
	case patterns.StateDorsalVagal:
		recs = append(recs, "Use warm, activating language; small invitations over big plans")
	}
	return recs
}

func topDefenses(defenses []DefenseStat, n int) []string {
	ranked := make([]DefenseStat, len(defenses))
	copy(ranked, defenses)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Frequency != ranked[j].Frequency {
			return ranked[i].Frequency > ranked[j].Frequency
		}
		return ranked[i].Mechanism < ranked[j].Mechanism
	})
	out := make([]string, 0, n)
	for i := 0; i < len(ranked) && i < n; i++ {
		out = append(out, string(ranked[i].Mechanism))
	}
	return out
}
