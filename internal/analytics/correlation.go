package analytics

import (
	"errors"
	"math"
	"sort"

	"github.com/pulseup/engage-server/internal/scoring"
)

// ErrInsufficientData signals that a response set is below an analyzer's
// minimum sample size. It is an expected state for new shops, not a
// fault; callers must surface it explicitly instead of showing a
// misleading number.
var ErrInsufficientData = errors.New("not enough responses")

// MinCorrelationResponses is the smallest sample the correlation
// analyzer will accept.
const MinCorrelationResponses = 10

// Correlation is one driver category's Pearson correlation with the
// per-response overall score. Impact is |coefficient|; the list is
// ranked by impact so the first entry is the dominant driver.
type Correlation struct {
	Category    scoring.Category `json:"category"`
	Coefficient float64          `json:"coefficient"`
	Impact      float64          `json:"impact"`
}

// CorrelateCategories computes, for each driver category, the Pearson
// correlation between per-response category scores and per-response
// overall scores. Only responses carrying both values contribute to a
// category's pairs. Below MinCorrelationResponses it refuses with
// ErrInsufficientData rather than degrade silently.
func CorrelateCategories(responses []scoring.Response) ([]Correlation, error) {
	if len(responses) < MinCorrelationResponses {
		return nil, ErrInsufficientData
	}

	out := make([]Correlation, 0, len(scoring.DriverCategories))
	for _, c := range scoring.DriverCategories {
		var xs, ys []float64
		for _, r := range responses {
			x := scoring.ResponseCategoryScore(r, c)
			y := scoring.ResponseOverall(r)
			if x == nil || y == nil {
				continue
			}
			xs = append(xs, *x)
			ys = append(ys, *y)
		}
		r := pearson(xs, ys)
		out = append(out, Correlation{Category: c, Coefficient: r, Impact: math.Abs(r)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Impact > out[j].Impact
	})
	return out, nil
}

// pearson implements r = (nΣxy − ΣxΣy) / sqrt[(nΣx²−(Σx)²)(nΣy²−(Σy)²)].
// Degenerate input (constant vectors, empty pairs) yields 0, never an
// error: zero variance simply means no measurable relationship.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n == 0 {
		return 0
	}

	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
		sumY2 += ys[i] * ys[i]
	}

	denom := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}
