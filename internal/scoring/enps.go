package scoring

import "math"

// eNPS bucket boundaries on the 0-10 recommendation question.
const (
	promoterMin  = 9
	passiveMin   = 7
	enpsScoreMax = 10
)

// ENPSResult is the Employee Net Promoter Score derived from a response
// set. Score is nil when no response carries an eNPS answer. Percentages
// keep fractional precision; rounding is a display concern.
type ENPSResult struct {
	Score               *int     `json:"score"`
	Promoters           int      `json:"promoters"`
	Passives            int      `json:"passives"`
	Detractors          int      `json:"detractors"`
	TotalResponses      int      `json:"total_responses"`
	PromoterPercentage  *float64 `json:"promoter_percentage"`
	DetractorPercentage *float64 `json:"detractor_percentage"`
}

// CalculateENPS partitions responses into promoters (9-10), passives (7-8)
// and detractors (0-6) and derives the -100..+100 index, rounded to the
// nearest whole number. Responses without an eNPS answer are excluded
// from every count.
func CalculateENPS(responses []Response) ENPSResult {
	var result ENPSResult
	for _, r := range responses {
		if r.ENPSScore == nil {
			continue
		}
		v := *r.ENPSScore
		if v < 0 || v > enpsScoreMax {
			continue
		}
		result.TotalResponses++
		switch {
		case v >= promoterMin:
			result.Promoters++
		case v >= passiveMin:
			result.Passives++
		default:
			result.Detractors++
		}
	}

	if result.TotalResponses == 0 {
		return result
	}

	total := float64(result.TotalResponses)
	score := int(math.Round(float64(result.Promoters-result.Detractors) / total * 100))
	result.Score = &score
	result.PromoterPercentage = Float(float64(result.Promoters) / total * 100)
	result.DetractorPercentage = Float(float64(result.Detractors) / total * 100)
	return result
}
