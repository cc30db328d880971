package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pulseup/engage-server/internal/analytics"
	"go.uber.org/zap"
)

const (
	// DefaultTrendMonths is the trend window used when the caller does
	// not ask for one.
	DefaultTrendMonths = 12
	// MaxTrendMonths caps the trend window.
	MaxTrendMonths = 36
)

// AnalyticsService serves the derived views: monthly trends, driver
// correlations, response patterns and the industry percentile.
type AnalyticsService struct {
	storage SurveyRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService instance.
func NewAnalyticsService(storage SurveyRepository, logger *zap.Logger) *AnalyticsService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &AnalyticsService{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// GetTrend returns the gap-filled monthly series covering the `months`
// calendar months ending at the current month.
func (s *AnalyticsService) GetTrend(ctx context.Context, shopID int64, months int) (*TrendReport, error) {
	if months < 1 {
		months = DefaultTrendMonths
	}
	if months > MaxTrendMonths {
		months = MaxTrendMonths
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := fetchShop(dbCtx, s.storage, shopID); err != nil {
		return nil, err
	}

	now := s.now()
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)

	responses, err := s.storage.GetResponses(dbCtx, shopID, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("trend computed",
		zap.Int64("shop_id", shopID),
		zap.Int("months", months),
		zap.Int("responses", len(responses)))

	return &TrendReport{
		ShopID: shopID,
		Months: months,
		Points: analytics.MonthlyTrend(responses, months, now),
	}, nil
}

// GetCorrelations ranks driver categories by how strongly they track the
// per-response overall score. Below the analyzer's minimum sample it
// returns analytics.ErrInsufficientData; callers must surface that state
// rather than show a coefficient computed from too little data.
func (s *AnalyticsService) GetCorrelations(ctx context.Context, shopID int64, start, end time.Time) (*CorrelationReport, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := fetchShop(dbCtx, s.storage, shopID); err != nil {
		return nil, err
	}

	responses, err := s.storage.GetResponses(dbCtx, shopID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	correlations, err := analytics.CorrelateCategories(responses)
	if err != nil {
		return nil, fmt.Errorf("%w: have %d responses, need %d",
			err, len(responses), analytics.MinCorrelationResponses)
	}

	s.logger.Info("correlations computed",
		zap.Int64("shop_id", shopID),
		zap.Int("responses", len(responses)),
		zap.String("top_driver", string(correlations[0].Category)))

	return &CorrelationReport{
		ShopID:        shopID,
		ResponseCount: len(responses),
		TopDriver:     correlations[0].Category,
		Correlations:  correlations,
	}, nil
}

// GetPatterns scans a shop's raw responses for polarization,
// straight-lining and divided categories. An empty pattern list is a
// normal result, including for small samples.
func (s *AnalyticsService) GetPatterns(ctx context.Context, shopID int64, start, end time.Time) (*PatternReport, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := fetchShop(dbCtx, s.storage, shopID); err != nil {
		return nil, err
	}

	responses, err := s.storage.GetResponses(dbCtx, shopID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	patterns := analytics.DetectPatterns(responses)

	s.logger.Info("patterns computed",
		zap.Int64("shop_id", shopID),
		zap.Int("responses", len(responses)),
		zap.Int("patterns", len(patterns)))

	return &PatternReport{
		ShopID:        shopID,
		ResponseCount: len(responses),
		Patterns:      patterns,
	}, nil
}

// GetPercentile positions a shop's all-time overall score inside its
// industry cohort. Shops with too few responses for a stable score stay
// out of the cohort entirely.
func (s *AnalyticsService) GetPercentile(ctx context.Context, shopID int64) (*PercentileReport, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	shop, err := fetchShop(dbCtx, s.storage, shopID)
	if err != nil {
		return nil, err
	}

	cohort, err := s.storage.GetIndustryResponses(dbCtx, shop.Industry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	result, err := analytics.RankShop(shopID, cohort)
	if err != nil {
		return nil, fmt.Errorf("percentile for shop %d: %w", shopID, err)
	}

	s.logger.Info("percentile computed",
		zap.Int64("shop_id", shopID),
		zap.String("industry", shop.Industry),
		zap.Int("percentile", result.Percentile),
		zap.Int("cohort", result.TotalShops))

	return &PercentileReport{
		ShopID:   shopID,
		Industry: shop.Industry,
		Result:   *result,
	}, nil
}
