package service

import (
	"time"

	"github.com/pulseup/engage-server/internal/analytics"
	"github.com/pulseup/engage-server/internal/scoring"
)

// CategoryReport is one category's slice of the shop report.
type CategoryReport struct {
	Category   scoring.Category   `json:"category"`
	Score      *float64           `json:"score"`
	Risk       *scoring.RiskLevel `json:"risk"`
	Benchmark  *float64           `json:"benchmark"`
	Difference *float64           `json:"difference"`
	Reverse    bool               `json:"reverse,omitempty"`
}

// Report is the full scoring view for one shop over one date window.
type Report struct {
	ShopID           int64              `json:"shop_id"`
	ShopName         string             `json:"shop_name"`
	Industry         string             `json:"industry"`
	Start            time.Time          `json:"start"`
	End              time.Time          `json:"end"`
	ResponseCount    int                `json:"response_count"`
	OverallScore     *float64           `json:"overall_score"`
	OverallRisk      *scoring.RiskLevel `json:"overall_risk"`
	OverallBenchmark *float64           `json:"overall_benchmark"`
	Categories       []CategoryReport   `json:"categories"`
	Retention        CategoryReport     `json:"retention"`
	ENPS             scoring.ENPSResult `json:"enps"`
	ENPSRisk         *scoring.RiskLevel `json:"enps_risk"`
	Confidence       scoring.Confidence `json:"confidence"`
}

// ComparisonReport holds the scoring pipeline run over a window and the
// equally sized window immediately before it.
type ComparisonReport struct {
	ShopID        int64                    `json:"shop_id"`
	CurrentStart  time.Time                `json:"current_start"`
	CurrentEnd    time.Time                `json:"current_end"`
	PreviousStart time.Time                `json:"previous_start"`
	PreviousEnd   time.Time                `json:"previous_end"`
	CurrentCount  int                      `json:"current_count"`
	PreviousCount int                      `json:"previous_count"`
	Comparison    scoring.PeriodComparison `json:"comparison"`
}

// TrendReport is the gap-filled monthly series for one shop.
type TrendReport struct {
	ShopID int64                  `json:"shop_id"`
	Months int                    `json:"months"`
	Points []analytics.TrendPoint `json:"points"`
}

// CorrelationReport ranks driver categories by their impact on the
// overall score. TopDriver is the first-ranked category.
type CorrelationReport struct {
	ShopID        int64                   `json:"shop_id"`
	ResponseCount int                     `json:"response_count"`
	TopDriver     scoring.Category        `json:"top_driver"`
	Correlations  []analytics.Correlation `json:"correlations"`
}

// PatternReport lists the anomalies detected in a shop's raw responses.
// An empty list is a normal outcome.
type PatternReport struct {
	ShopID        int64               `json:"shop_id"`
	ResponseCount int                 `json:"response_count"`
	Patterns      []analytics.Pattern `json:"patterns"`
}

// PercentileReport positions a shop inside its industry cohort.
type PercentileReport struct {
	ShopID   int64                       `json:"shop_id"`
	Industry string                      `json:"industry"`
	Result   analytics.PercentileResult `json:"result"`
}
