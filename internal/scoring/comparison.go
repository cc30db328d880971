package scoring

import "math"

// Direction tags the sign of a period-over-period delta.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionSame Direction = "same"
)

// Category deltas smaller than this are reported as "same". The value is
// a product-tuned constant with no documented derivation; keep it in sync
// with the product owner before changing it.
const categoryDeltaEpsilon = 0.05

// Delta is one metric's change between two periods. Change is nil when
// either period lacks the metric; a delta is never taken against a
// default value.
type Delta struct {
	Current   *float64  `json:"current"`
	Previous  *float64  `json:"previous"`
	Change    *float64  `json:"change"`
	Direction Direction `json:"direction,omitempty"`
}

// PeriodComparison holds the full scoring pipeline run over two disjoint
// windows, with signed deltas.
type PeriodComparison struct {
	Overall    Delta              `json:"overall"`
	Categories map[Category]Delta `json:"categories"`
	ENPS       Delta              `json:"enps"`
}

// ComparePeriods scores both response sets independently and derives
// deltas. Category deltas use a dead-band so noise does not flip the
// direction tag; the overall and eNPS deltas compare strict sign.
func ComparePeriods(current, previous []Response) PeriodComparison {
	cmp := PeriodComparison{
		Overall:    strictDelta(OverallScore(current), OverallScore(previous)),
		Categories: make(map[Category]Delta, len(DriverCategories)),
	}

	curScores := CategoryScores(current)
	prevScores := CategoryScores(previous)
	for _, c := range DriverCategories {
		cmp.Categories[c] = deadBandDelta(curScores[c], prevScores[c])
	}

	cmp.ENPS = strictDelta(enpsFloat(current), enpsFloat(previous))
	return cmp
}

func enpsFloat(responses []Response) *float64 {
	result := CalculateENPS(responses)
	if result.Score == nil {
		return nil
	}
	return Float(float64(*result.Score))
}

func strictDelta(current, previous *float64) Delta {
	d := Delta{Current: current, Previous: previous}
	if current == nil || previous == nil {
		return d
	}
	change := *current - *previous
	d.Change = Float(change)
	switch {
	case change > 0:
		d.Direction = DirectionUp
	case change < 0:
		d.Direction = DirectionDown
	default:
		d.Direction = DirectionSame
	}
	return d
}

func deadBandDelta(current, previous *float64) Delta {
	d := Delta{Current: current, Previous: previous}
	if current == nil || previous == nil {
		return d
	}
	change := *current - *previous
	d.Change = Float(change)
	switch {
	case math.Abs(change) < categoryDeltaEpsilon:
		d.Direction = DirectionSame
	case change > 0:
		d.Direction = DirectionUp
	default:
		d.Direction = DirectionDown
	}
	return d
}
