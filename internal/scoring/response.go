package scoring

import "time"

// Response is one immutable survey submission. Answers holds only the
// questions actually answered; a missing key means the question was
// skipped and must be excluded from averages, never counted as zero.
type Response struct {
	ShopID      int64                `json:"shop_id"`
	Answers     map[QuestionKey]int  `json:"answers"`
	ENPSScore   *int                 `json:"enps_score,omitempty"`
	Comment     string               `json:"comment,omitempty"`
	SubmittedAt time.Time            `json:"submitted_at"`
}

// Answer returns the value for key and whether it was answered.
func (r Response) Answer(key QuestionKey) (int, bool) {
	v, ok := r.Answers[key]
	return v, ok
}
