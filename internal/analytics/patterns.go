package analytics

import (
	"fmt"
	"math"

	"github.com/pulseup/engage-server/internal/scoring"
)

// PatternType identifies one anomaly detector.
type PatternType string

const (
	PatternPolarization  PatternType = "polarization"
	PatternLowEngagement PatternType = "low_engagement"
	PatternHighVariance  PatternType = "high_variance"
)

// Severity of a detected pattern.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// MinPatternResponses is the smallest sample the detectors run on. Below
// it the result is an empty list, which is a valid outcome, not an error.
const MinPatternResponses = 5

// Detection thresholds. These are product-tuned constants with no
// documented derivation; confirm with the product owner before changing.
const (
	polarizationRatio    = 0.6
	straightLineRatio    = 0.1
	varianceThreshold    = 1.2
	minVarianceResponses = 5
)

// Pattern is one detected anomaly in a raw response set. Metric carries
// the value that crossed the threshold.
type Pattern struct {
	Type        PatternType      `json:"type"`
	Severity    Severity         `json:"severity"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Metric      float64          `json:"metric"`
	Category    scoring.Category `json:"category,omitempty"`
}

// DetectPatterns runs the three detectors independently over raw
// per-response answer vectors. All of them may fire at once; output
// order is detection order, not severity order.
func DetectPatterns(responses []scoring.Response) []Pattern {
	if len(responses) < MinPatternResponses {
		return nil
	}

	var patterns []Pattern
	if p := detectPolarization(responses); p != nil {
		patterns = append(patterns, *p)
	}
	if p := detectStraightLining(responses); p != nil {
		patterns = append(patterns, *p)
	}
	patterns = append(patterns, detectHighVariance(responses)...)
	return patterns
}

// detectPolarization flags a response set whose individual answers pile
// up at the scale extremes. It scans every 1-5 answer, not averages.
func detectPolarization(responses []scoring.Response) *Pattern {
	var total, extreme int
	for _, r := range responses {
		for _, v := range r.Answers {
			total++
			if v == 1 || v == 5 {
				extreme++
			}
		}
	}
	if total == 0 {
		return nil
	}

	ratio := float64(extreme) / float64(total)
	if ratio <= polarizationRatio {
		return nil
	}
	return &Pattern{
		Type:        PatternPolarization,
		Severity:    SeverityWarning,
		Title:       "Polarized answers",
		Description: fmt.Sprintf("%.0f%% of all answers sit at the scale extremes; the team may be split into strongly opposed groups", ratio*100),
		Metric:      ratio,
	}
}

// detectStraightLining flags low-engagement responding: a response is
// suspicious when all its answered driver questions carry the identical
// value.
func detectStraightLining(responses []scoring.Response) *Pattern {
	var suspicious int
	for _, r := range responses {
		if isStraightLined(r) {
			suspicious++
		}
	}

	ratio := float64(suspicious) / float64(len(responses))
	if ratio <= straightLineRatio {
		return nil
	}
	return &Pattern{
		Type:        PatternLowEngagement,
		Severity:    SeverityInfo,
		Title:       "Straight-lined responses",
		Description: fmt.Sprintf("%.0f%% of responses answered every driver question with the same value, which suggests low engagement with the survey", ratio*100),
		Metric:      ratio,
	}
}

func isStraightLined(r scoring.Response) bool {
	first := 0
	answered := 0
	for _, key := range scoring.DriverQuestionKeys {
		v, ok := r.Answer(key)
		if !ok {
			continue
		}
		answered++
		if answered == 1 {
			first = v
			continue
		}
		if v != first {
			return false
		}
	}
	return answered > 1
}

// detectHighVariance flags driver categories whose per-response averages
// spread widely, using the population standard deviation.
func detectHighVariance(responses []scoring.Response) []Pattern {
	var patterns []Pattern
	for _, c := range scoring.DriverCategories {
		var values []float64
		for _, r := range responses {
			if s := scoring.ResponseCategoryScore(r, c); s != nil {
				values = append(values, *s)
			}
		}
		if len(values) < minVarianceResponses {
			continue
		}

		sd := populationStdDev(values)
		if sd <= varianceThreshold {
			continue
		}
		patterns = append(patterns, Pattern{
			Type:        PatternHighVariance,
			Severity:    SeverityWarning,
			Title:       "Divided opinions",
			Description: fmt.Sprintf("scores for %s vary widely between respondents; experiences of this topic are not shared across the team", c),
			Metric:      sd,
			Category:    c,
		})
	}
	return patterns
}

func populationStdDev(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
