package api

import (
	"context"
	"time"

	"github.com/pulseup/engage-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// ReportService serves the scored report views.
type ReportService interface {
	GetReport(ctx context.Context, shopID int64, start, end time.Time) (*service.Report, error)
	GetPeriodComparison(ctx context.Context, shopID int64, start, end time.Time) (*service.ComparisonReport, error)
}

// AnalyticsService serves the derived analytics views.
type AnalyticsService interface {
	GetTrend(ctx context.Context, shopID int64, months int) (*service.TrendReport, error)
	GetCorrelations(ctx context.Context, shopID int64, start, end time.Time) (*service.CorrelationReport, error)
	GetPatterns(ctx context.Context, shopID int64, start, end time.Time) (*service.PatternReport, error)
	GetPercentile(ctx context.Context, shopID int64) (*service.PercentileReport, error)
}
