package scoring

// RiskLevel classifies a numeric score into a discrete tier. Level 1 is
// the most favorable, 5 the least. It is a pure function of its inputs,
// never stored.
type RiskLevel struct {
	Level int    `json:"level"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var likertTiers = [5]RiskLevel{
	{Level: 1, Label: "excellent", Color: "green"},
	{Level: 2, Label: "good", Color: "lightgreen"},
	{Level: 3, Label: "fair", Color: "yellow"},
	{Level: 4, Label: "warning", Color: "orange"},
	{Level: 5, Label: "critical", Color: "red"},
}

// Cut points on the 1-5 scale for drivers and the overall score. A score
// at or above cut i falls into tier i; below every cut is the last tier.
var likertCuts = [4]float64{4.0, 3.5, 3.0, 2.5}

// Retention intention is an outcome measure with its own expectations,
// so it carries a separate band set on the same 1-5 scale.
var retentionCuts = [4]float64{4.0, 3.4, 2.8, 2.2}

var enpsTiers = [4]RiskLevel{
	{Level: 1, Label: "excellent", Color: "green"},
	{Level: 2, Label: "good", Color: "lightgreen"},
	{Level: 3, Label: "warning", Color: "orange"},
	{Level: 4, Label: "critical", Color: "red"},
}

var enpsCuts = [3]float64{30, 0, -30}

func tierIndex(score float64, cuts []float64) int {
	for i, cut := range cuts {
		if score >= cut {
			return i
		}
	}
	return len(cuts)
}

// ClassifyScore maps a 1-5 score onto a risk tier. A nil score yields
// nil; a level is never fabricated from missing data. With reverse=true
// the same cut points apply to the same raw value but the tier is
// mirrored, so a low overload score reads as healthy. The numeric value
// is never renormalized.
func ClassifyScore(score *float64, reverse bool) *RiskLevel {
	if score == nil {
		return nil
	}
	idx := tierIndex(*score, likertCuts[:])
	if reverse {
		idx = len(likertTiers) - 1 - idx
	}
	tier := likertTiers[idx]
	return &tier
}

// ClassifyRetention maps a 1-5 retention-intention score onto its own
// band set.
func ClassifyRetention(score *float64) *RiskLevel {
	if score == nil {
		return nil
	}
	tier := likertTiers[tierIndex(*score, retentionCuts[:])]
	return &tier
}

// ClassifyENPS maps a -100..+100 eNPS index onto the eNPS bands.
func ClassifyENPS(score *int) *RiskLevel {
	if score == nil {
		return nil
	}
	tier := enpsTiers[tierIndex(float64(*score), enpsCuts[:])]
	return &tier
}
