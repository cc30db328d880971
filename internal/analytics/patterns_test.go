package analytics

import (
	"testing"

	"github.com/pulseup/engage-server/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straight(v int) scoring.Response {
	answers := make(map[scoring.QuestionKey]int, len(scoring.DriverQuestionKeys))
	for _, key := range scoring.DriverQuestionKeys {
		answers[key] = v
	}
	return scoring.Response{Answers: answers}
}

func mixed() scoring.Response {
	return scoring.Response{Answers: map[scoring.QuestionKey]int{
		scoring.Q1: 3, scoring.Q2: 4, scoring.Q3: 2, scoring.Q4: 3,
		scoring.Q5: 4, scoring.Q6: 3, scoring.Q7: 2, scoring.Q8: 3, scoring.Q9: 4,
	}}
}

func TestDetectPatterns(t *testing.T) {
	t.Run("below five responses nothing fires", func(t *testing.T) {
		responses := []scoring.Response{straight(5), straight(1), straight(5), straight(1)}

		assert.Empty(t, DetectPatterns(responses))
	})

	t.Run("polarization fires on extreme-heavy answers", func(t *testing.T) {
		responses := []scoring.Response{
			straight(5), straight(1), straight(5), straight(1), mixed(),
		}

		patterns := DetectPatterns(responses)

		var found *Pattern
		for i := range patterns {
			if patterns[i].Type == PatternPolarization {
				found = &patterns[i]
			}
		}
		require.NotNil(t, found)
		assert.Equal(t, SeverityWarning, found.Severity)
		assert.Greater(t, found.Metric, polarizationRatio)
	})

	t.Run("straight-lining fires above one in ten", func(t *testing.T) {
		responses := []scoring.Response{
			straight(3), mixed(), mixed(), mixed(), mixed(),
		}

		patterns := DetectPatterns(responses)

		var found *Pattern
		for i := range patterns {
			if patterns[i].Type == PatternLowEngagement {
				found = &patterns[i]
			}
		}
		require.NotNil(t, found)
		assert.Equal(t, SeverityInfo, found.Severity)
		assert.InDelta(t, 0.2, found.Metric, 1e-9)
	})

	t.Run("single answered question is not straight-lining", func(t *testing.T) {
		one := scoring.Response{Answers: map[scoring.QuestionKey]int{scoring.Q4: 3}}
		responses := []scoring.Response{one, mixed(), mixed(), mixed(), mixed()}

		for _, p := range DetectPatterns(responses) {
			assert.NotEqual(t, PatternLowEngagement, p.Type)
		}
	})

	t.Run("high variance names the divided category", func(t *testing.T) {
		// Leadership split between 1s and 5s: population stddev 2.0.
		responses := []scoring.Response{
			{Answers: map[scoring.QuestionKey]int{scoring.Q3: 1, scoring.Q7: 3}},
			{Answers: map[scoring.QuestionKey]int{scoring.Q3: 5, scoring.Q7: 3}},
			{Answers: map[scoring.QuestionKey]int{scoring.Q3: 1, scoring.Q7: 3}},
			{Answers: map[scoring.QuestionKey]int{scoring.Q3: 5, scoring.Q7: 3}},
			{Answers: map[scoring.QuestionKey]int{scoring.Q3: 1, scoring.Q7: 3}},
			{Answers: map[scoring.QuestionKey]int{scoring.Q3: 5, scoring.Q7: 3}},
		}

		patterns := DetectPatterns(responses)

		var variance []Pattern
		for _, p := range patterns {
			if p.Type == PatternHighVariance {
				variance = append(variance, p)
			}
		}
		require.Len(t, variance, 1)
		assert.Equal(t, scoring.CategoryLeadership, variance[0].Category)
		assert.InDelta(t, 2.0, variance[0].Metric, 1e-9)
	})

	t.Run("variance needs five qualifying responses per category", func(t *testing.T) {
		// Only four responses answer q3; the category is skipped even
		// though the set as a whole is large enough.
		responses := []scoring.Response{
			{Answers: map[scoring.QuestionKey]int{scoring.Q3: 1}},
			{Answers: map[scoring.QuestionKey]int{scoring.Q3: 5}},
			{Answers: map[scoring.QuestionKey]int{scoring.Q3: 1}},
			{Answers: map[scoring.QuestionKey]int{scoring.Q3: 5}},
			mixed(), mixed(), mixed(),
		}

		for _, p := range DetectPatterns(responses) {
			if p.Type == PatternHighVariance {
				assert.NotEqual(t, scoring.CategoryLeadership, p.Category)
			}
		}
	})

	t.Run("detectors are additive and keep detection order", func(t *testing.T) {
		responses := []scoring.Response{
			straight(5), straight(1), straight(5), straight(1), straight(5), straight(1),
		}

		patterns := DetectPatterns(responses)

		require.GreaterOrEqual(t, len(patterns), 2)
		assert.Equal(t, PatternPolarization, patterns[0].Type)
		assert.Equal(t, PatternLowEngagement, patterns[1].Type)
	})

	t.Run("calm data yields no patterns", func(t *testing.T) {
		responses := []scoring.Response{mixed(), mixed(), mixed(), mixed(), mixed(), mixed()}

		assert.Empty(t, DetectPatterns(responses))
	})
}

func TestPopulationStdDev(t *testing.T) {
	// Population formula divides by n, not n-1.
	assert.InDelta(t, 2.0, populationStdDev([]float64{1, 5, 1, 5}), 1e-9)
	assert.Zero(t, populationStdDev([]float64{3, 3, 3}))
}
