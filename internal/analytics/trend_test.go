package analytics

import (
	"testing"
	"time"

	"github.com/pulseup/engage-server/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthResponse(year int, month time.Month, answers map[scoring.QuestionKey]int) scoring.Response {
	return scoring.Response{
		Answers:     answers,
		SubmittedAt: time.Date(year, month, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestMonthlyTrend(t *testing.T) {
	now := time.Date(2025, 12, 10, 8, 0, 0, 0, time.UTC)

	t.Run("gap-filled twelve month window", func(t *testing.T) {
		// Responses only in month 3 (March) and month 9 (September) of the
		// window; the other ten months must still be present, empty.
		responses := []scoring.Response{
			monthResponse(2025, time.March, map[scoring.QuestionKey]int{scoring.Q1: 4}),
			monthResponse(2025, time.September, map[scoring.QuestionKey]int{scoring.Q1: 2}),
		}

		points := MonthlyTrend(responses, 12, now)

		require.Len(t, points, 12)
		assert.Equal(t, "2025-01", points[0].Month)
		assert.Equal(t, "2025-12", points[11].Month)

		empty := 0
		for _, p := range points {
			if p.ResponseCount == 0 {
				empty++
				assert.Nil(t, p.OverallScore, "month %s", p.Month)
				assert.Nil(t, p.ENPS, "month %s", p.Month)
			}
		}
		assert.Equal(t, 10, empty)
	})

	t.Run("buckets score independently", func(t *testing.T) {
		eight := 8
		responses := []scoring.Response{
			monthResponse(2025, time.November, map[scoring.QuestionKey]int{scoring.Q1: 5, scoring.Q2: 5}),
			{
				Answers:     map[scoring.QuestionKey]int{scoring.Q1: 1},
				ENPSScore:   &eight,
				SubmittedAt: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			},
		}

		points := MonthlyTrend(responses, 2, now)

		require.Len(t, points, 2)

		nov, dec := points[0], points[1]
		assert.Equal(t, "2025-11", nov.Month)
		require.NotNil(t, nov.OverallScore)
		assert.Equal(t, 5.0, *nov.OverallScore)
		assert.Nil(t, nov.ENPS)

		assert.Equal(t, "2025-12", dec.Month)
		require.NotNil(t, dec.OverallScore)
		assert.Equal(t, 1.0, *dec.OverallScore)
		require.NotNil(t, dec.ENPS)
		assert.Equal(t, 0, *dec.ENPS) // single passive
	})

	t.Run("window crosses a year boundary", func(t *testing.T) {
		points := MonthlyTrend(nil, 3, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC))

		require.Len(t, points, 3)
		assert.Equal(t, "2025-11", points[0].Month)
		assert.Equal(t, "2025-12", points[1].Month)
		assert.Equal(t, "2026-01", points[2].Month)
	})

	t.Run("responses outside the window are ignored", func(t *testing.T) {
		responses := []scoring.Response{
			monthResponse(2020, time.May, map[scoring.QuestionKey]int{scoring.Q1: 5}),
		}

		points := MonthlyTrend(responses, 6, now)

		require.Len(t, points, 6)
		for _, p := range points {
			assert.Zero(t, p.ResponseCount)
		}
	})
}
