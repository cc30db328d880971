package scoring

// BenchmarkComparison diffs one category against its industry reference
// average. Difference is nil unless both sides are present.
type BenchmarkComparison struct {
	Category   Category `json:"category"`
	Score      *float64 `json:"score"`
	Benchmark  *float64 `json:"benchmark"`
	Difference *float64 `json:"difference"`
}

// CompareBenchmarks diffs per-category scores against an industry
// benchmark map, in driver-category order.
func CompareBenchmarks(scores map[Category]*float64, benchmarks map[Category]float64) []BenchmarkComparison {
	out := make([]BenchmarkComparison, 0, len(DriverCategories))
	for _, c := range DriverCategories {
		cmp := BenchmarkComparison{Category: c, Score: scores[c]}
		if b, ok := benchmarks[c]; ok {
			cmp.Benchmark = Float(b)
		}
		if cmp.Score != nil && cmp.Benchmark != nil {
			cmp.Difference = Float(*cmp.Score - *cmp.Benchmark)
		}
		out = append(out, cmp)
	}
	return out
}

// OverallBenchmark averages the benchmark figures of the non-reverse
// driver categories only. Reverse-scored categories and outcome measures
// (retention, eNPS) must stay out of this average: including them would
// mix direction-of-good-ness, or double-count outcomes as drivers, and
// silently make the figure incomparable to the overall score.
func OverallBenchmark(benchmarks map[Category]float64) *float64 {
	var sum float64
	var n int
	for _, c := range DriverCategories {
		if IsReverseScored(c) {
			continue
		}
		if b, ok := benchmarks[c]; ok {
			sum += b
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return Float(sum / float64(n))
}
