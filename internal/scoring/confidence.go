package scoring

// Confidence tiers by sample size. The estimator only looks at the
// response count, never at the scores themselves.
const (
	lowConfidenceMax      = 4
	moderateConfidenceMax = 9
)

// Confidence is a qualitative reliability tier for a report.
type Confidence struct {
	Level  string `json:"level"`
	Caveat string `json:"caveat,omitempty"`
}

// EstimateConfidence maps a response count to a reliability tier. The
// mapping is monotonic: more responses never lower the tier.
func EstimateConfidence(responseCount int) Confidence {
	switch {
	case responseCount <= lowConfidenceMax:
		return Confidence{
			Level:  "low",
			Caveat: "fewer than 5 responses; scores may swing heavily with each new submission",
		}
	case responseCount <= moderateConfidenceMax:
		return Confidence{
			Level:  "moderate",
			Caveat: "fewer than 10 responses; treat small differences with caution",
		}
	default:
		return Confidence{Level: "high"}
	}
}
