package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pulseup/engage-server/internal/service"
	"github.com/redis/go-redis/v9"
)

// MockReportService is a mock implementation of the api.ReportService
// interface for testing the HTTP handlers.
type MockReportService struct {
	GetReportFunc           func(ctx context.Context, shopID int64, start, end time.Time) (*service.Report, error)
	GetPeriodComparisonFunc func(ctx context.Context, shopID int64, start, end time.Time) (*service.ComparisonReport, error)
}

func (m *MockReportService) GetReport(ctx context.Context, shopID int64, start, end time.Time) (*service.Report, error) {
	if m.GetReportFunc != nil {
		return m.GetReportFunc(ctx, shopID, start, end)
	}
	return nil, errors.New("GetReportFunc not implemented")
}

func (m *MockReportService) GetPeriodComparison(ctx context.Context, shopID int64, start, end time.Time) (*service.ComparisonReport, error) {
	if m.GetPeriodComparisonFunc != nil {
		return m.GetPeriodComparisonFunc(ctx, shopID, start, end)
	}
	return nil, errors.New("GetPeriodComparisonFunc not implemented")
}

// MockAnalyticsService is a mock implementation of the
// api.AnalyticsService interface.
type MockAnalyticsService struct {
	GetTrendFunc        func(ctx context.Context, shopID int64, months int) (*service.TrendReport, error)
	GetCorrelationsFunc func(ctx context.Context, shopID int64, start, end time.Time) (*service.CorrelationReport, error)
	GetPatternsFunc     func(ctx context.Context, shopID int64, start, end time.Time) (*service.PatternReport, error)
	GetPercentileFunc   func(ctx context.Context, shopID int64) (*service.PercentileReport, error)
}

func (m *MockAnalyticsService) GetTrend(ctx context.Context, shopID int64, months int) (*service.TrendReport, error) {
	if m.GetTrendFunc != nil {
		return m.GetTrendFunc(ctx, shopID, months)
	}
	return nil, errors.New("GetTrendFunc not implemented")
}

func (m *MockAnalyticsService) GetCorrelations(ctx context.Context, shopID int64, start, end time.Time) (*service.CorrelationReport, error) {
	if m.GetCorrelationsFunc != nil {
		return m.GetCorrelationsFunc(ctx, shopID, start, end)
	}
	return nil, errors.New("GetCorrelationsFunc not implemented")
}

func (m *MockAnalyticsService) GetPatterns(ctx context.Context, shopID int64, start, end time.Time) (*service.PatternReport, error) {
	if m.GetPatternsFunc != nil {
		return m.GetPatternsFunc(ctx, shopID, start, end)
	}
	return nil, errors.New("GetPatternsFunc not implemented")
}

func (m *MockAnalyticsService) GetPercentile(ctx context.Context, shopID int64) (*service.PercentileReport, error) {
	if m.GetPercentileFunc != nil {
		return m.GetPercentileFunc(ctx, shopID)
	}
	return nil, errors.New("GetPercentileFunc not implemented")
}

// MockCacher is an in-memory Cacher. By default Get reports a miss and
// Set records the key written. Cache population happens on background
// goroutines, so the call log is guarded by a mutex.
type MockCacher struct {
	GetFunc func(ctx context.Context, key string, dest any) error
	SetFunc func(ctx context.Context, key string, value any, expiration time.Duration) error

	mu       sync.Mutex
	setCalls []string
}

func (m *MockCacher) Get(ctx context.Context, key string, dest any) error {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key, dest)
	}
	return redis.Nil
}

func (m *MockCacher) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	m.mu.Lock()
	m.setCalls = append(m.setCalls, key)
	m.mu.Unlock()
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	return nil
}

func (m *MockCacher) SetKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.setCalls...)
}

func (m *MockCacher) Close() error { return nil }
