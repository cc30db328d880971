package scoring

import "fmt"

// QuestionKey identifies one survey question (q1..q10).
type QuestionKey string

const (
	Q1  QuestionKey = "q1"
	Q2  QuestionKey = "q2"
	Q3  QuestionKey = "q3"
	Q4  QuestionKey = "q4"
	Q5  QuestionKey = "q5"
	Q6  QuestionKey = "q6"
	Q7  QuestionKey = "q7"
	Q8  QuestionKey = "q8"
	Q9  QuestionKey = "q9"
	Q10 QuestionKey = "q10"
)

// Category is one thematic grouping of survey questions.
type Category string

const (
	CategoryRelationships Category = "relationships"
	CategoryLeadership    Category = "leadership"
	CategoryEvaluation    Category = "evaluation"
	CategoryGrowth        Category = "growth"
	CategoryWorkload      Category = "workload"
	CategoryEnvironment   Category = "environment"
	CategoryAutonomy      Category = "autonomy"
	CategoryAlignment     Category = "alignment"

	// Outcome measures. Retention maps to q10, ENPS to the dedicated
	// 0-10 field on the response. Neither contributes to the overall
	// driver score.
	CategoryRetention Category = "retention"
	CategoryENPS      Category = "enps"
	CategoryFreeText  Category = "free_text"
)

// Scale describes the answer range of a question.
type Scale int

const (
	ScaleLikert Scale = iota // 1..5
	ScaleNPS                 // 0..10
)

// Question is one entry of the static survey taxonomy.
type Question struct {
	Key      QuestionKey
	Order    int
	Category Category
	Scale    Scale
}

// Questions is the full ordered taxonomy. The category mapping is fixed
// configuration; it is never derived from stored data.
var Questions = []Question{
	{Key: Q1, Order: 1, Category: CategoryRelationships, Scale: ScaleLikert},
	{Key: Q2, Order: 2, Category: CategoryRelationships, Scale: ScaleLikert},
	{Key: Q3, Order: 3, Category: CategoryLeadership, Scale: ScaleLikert},
	{Key: Q4, Order: 4, Category: CategoryEvaluation, Scale: ScaleLikert},
	{Key: Q5, Order: 5, Category: CategoryGrowth, Scale: ScaleLikert},
	{Key: Q6, Order: 6, Category: CategoryWorkload, Scale: ScaleLikert},
	{Key: Q7, Order: 7, Category: CategoryEnvironment, Scale: ScaleLikert},
	{Key: Q8, Order: 8, Category: CategoryAutonomy, Scale: ScaleLikert},
	{Key: Q9, Order: 9, Category: CategoryAlignment, Scale: ScaleLikert},
	{Key: Q10, Order: 10, Category: CategoryRetention, Scale: ScaleLikert},
}

// DriverCategories lists the eight driver categories in report order.
// Outcome measures (retention, eNPS) are deliberately absent.
var DriverCategories = []Category{
	CategoryRelationships,
	CategoryLeadership,
	CategoryEvaluation,
	CategoryGrowth,
	CategoryWorkload,
	CategoryEnvironment,
	CategoryAutonomy,
	CategoryAlignment,
}

// DriverQuestionKeys lists q1..q9, the questions feeding the overall score.
var DriverQuestionKeys = []QuestionKey{Q1, Q2, Q3, Q4, Q5, Q6, Q7, Q8, Q9}

var categoryQuestions = buildCategoryIndex()

func buildCategoryIndex() map[Category][]QuestionKey {
	idx := make(map[Category][]QuestionKey, len(Questions))
	for _, q := range Questions {
		idx[q.Category] = append(idx[q.Category], q.Key)
	}
	return idx
}

// QuestionsFor returns the question keys mapped to a category. A category
// without mapped questions is a taxonomy bug, not bad input, so it panics.
func QuestionsFor(c Category) []QuestionKey {
	keys, ok := categoryQuestions[c]
	if !ok || len(keys) == 0 {
		panic(fmt.Sprintf("scoring: category %q has no mapped questions", c))
	}
	return keys
}

// IsReverseScored reports whether a lower raw score is the healthier one
// for the category. Workload is the only reverse-scored driver: its
// questions ask about overload.
func IsReverseScored(c Category) bool {
	return c == CategoryWorkload
}
