package scoring

// Float returns a pointer to v. Derived scores use *float64 so that
// "no eligible answers" stays distinguishable from a genuine zero.
func Float(v float64) *float64 {
	return &v
}

// CategoryScore averages every present answer for the category's mapped
// questions across the response set. It returns nil when not a single
// eligible answer exists.
func CategoryScore(responses []Response, c Category) *float64 {
	var sum float64
	var n int
	for _, key := range QuestionsFor(c) {
		for _, r := range responses {
			if v, ok := r.Answer(key); ok {
				sum += float64(v)
				n++
			}
		}
	}
	if n == 0 {
		return nil
	}
	return Float(sum / float64(n))
}

// CategoryScores computes the score of every driver category.
func CategoryScores(responses []Response) map[Category]*float64 {
	scores := make(map[Category]*float64, len(DriverCategories))
	for _, c := range DriverCategories {
		scores[c] = CategoryScore(responses, c)
	}
	return scores
}

// OverallScore is the mean of the nine per-question averages over q1..q9.
// It is computed from the questions directly, not from the category
// scores, because categories hold unequal question counts.
func OverallScore(responses []Response) *float64 {
	var sum float64
	var n int
	for _, key := range DriverQuestionKeys {
		if avg := questionAverage(responses, key); avg != nil {
			sum += *avg
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return Float(sum / float64(n))
}

func questionAverage(responses []Response, key QuestionKey) *float64 {
	var sum float64
	var n int
	for _, r := range responses {
		if v, ok := r.Answer(key); ok {
			sum += float64(v)
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return Float(sum / float64(n))
}

// ResponseOverall averages one response's own q1..q9 answers.
func ResponseOverall(r Response) *float64 {
	var sum float64
	var n int
	for _, key := range DriverQuestionKeys {
		if v, ok := r.Answer(key); ok {
			sum += float64(v)
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return Float(sum / float64(n))
}

// ResponseCategoryScore averages one response's own answers for a category.
func ResponseCategoryScore(r Response, c Category) *float64 {
	var sum float64
	var n int
	for _, key := range QuestionsFor(c) {
		if v, ok := r.Answer(key); ok {
			sum += float64(v)
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return Float(sum / float64(n))
}
