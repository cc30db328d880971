// Package analytics holds the derived views computed on demand from a
// shop's raw response set: monthly trends, driver correlations, response
// pattern detection and industry percentile ranking. Everything here is
// pure computation; persistence and caching live elsewhere.
package analytics

import (
	"time"

	"github.com/pulseup/engage-server/internal/scoring"
)

const trendMonthLayout = "2006-01"

// TrendPoint is one calendar month's aggregate. Months without responses
// are materialized with a zero count and nil scores so chart consumers
// always receive a contiguous axis.
type TrendPoint struct {
	Month          string                        `json:"month"`
	ResponseCount  int                           `json:"response_count"`
	OverallScore   *float64                      `json:"overall_score"`
	CategoryScores map[scoring.Category]*float64 `json:"category_scores"`
	ENPS           *int                          `json:"enps"`
}

// MonthlyTrend buckets responses by the local calendar month of their
// submission timestamp and scores each bucket. The result covers exactly
// the `months` calendar months ending at now's month, gap-filled; it is
// never a sparse list.
func MonthlyTrend(responses []scoring.Response, months int, now time.Time) []TrendPoint {
	if months < 1 {
		months = 1
	}

	buckets := make(map[string][]scoring.Response)
	for _, r := range responses {
		key := r.SubmittedAt.Format(trendMonthLayout)
		buckets[key] = append(buckets[key], r)
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)

	points := make([]TrendPoint, 0, months)
	for i := 0; i < months; i++ {
		month := first.AddDate(0, i, 0)
		key := month.Format(trendMonthLayout)
		bucket := buckets[key]

		point := TrendPoint{
			Month:          key,
			ResponseCount:  len(bucket),
			OverallScore:   scoring.OverallScore(bucket),
			CategoryScores: scoring.CategoryScores(bucket),
		}
		if enps := scoring.CalculateENPS(bucket); enps.Score != nil {
			point.ENPS = enps.Score
		}
		points = append(points, point)
	}
	return points
}
