package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pulseup/engage-server/internal/repository"
	"github.com/pulseup/engage-server/internal/repository/models"
	"github.com/pulseup/engage-server/internal/scoring"
	"go.uber.org/zap"
)

const (
	dbTimeout = 1 * time.Second
)

var (
	ErrShopNotFound   = errors.New("shop not found")
	ErrNoResponses    = errors.New("no responses found")
	ErrStorageFailure = errors.New("storage failure")
)

// ReportService turns a shop's raw responses into the scored report.
type ReportService struct {
	storage SurveyRepository
	logger  *zap.Logger
}

// NewReportService creates a new ReportService instance.
func NewReportService(storage SurveyRepository, logger *zap.Logger) *ReportService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &ReportService{
		storage: storage,
		logger:  logger,
	}
}

// GetReport runs the full scoring pipeline over one shop's responses in
// [start, end]: category and overall scores with risk tiers, eNPS,
// retention, confidence and the industry benchmark comparison.
func (s *ReportService) GetReport(ctx context.Context, shopID int64, start, end time.Time) (*Report, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	shop, err := fetchShop(dbCtx, s.storage, shopID)
	if err != nil {
		return nil, err
	}

	responses, err := s.storage.GetResponses(dbCtx, shopID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if len(responses) == 0 {
		return nil, ErrNoResponses
	}

	benchmarks, err := s.storage.GetBenchmarks(dbCtx, shop.Industry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	report := &Report{
		ShopID:        shop.ID,
		ShopName:      shop.Name,
		Industry:      shop.Industry,
		Start:         start,
		End:           end,
		ResponseCount: len(responses),
		Confidence:    scoring.EstimateConfidence(len(responses)),
	}

	report.OverallScore = scoring.OverallScore(responses)
	report.OverallRisk = scoring.ClassifyScore(report.OverallScore, false)
	report.OverallBenchmark = scoring.OverallBenchmark(benchmarks)

	scores := scoring.CategoryScores(responses)
	for _, cmp := range scoring.CompareBenchmarks(scores, benchmarks) {
		reverse := scoring.IsReverseScored(cmp.Category)
		report.Categories = append(report.Categories, CategoryReport{
			Category:   cmp.Category,
			Score:      cmp.Score,
			Risk:       scoring.ClassifyScore(cmp.Score, reverse),
			Benchmark:  cmp.Benchmark,
			Difference: cmp.Difference,
			Reverse:    reverse,
		})
	}

	retention := scoring.CategoryScore(responses, scoring.CategoryRetention)
	report.Retention = CategoryReport{
		Category: scoring.CategoryRetention,
		Score:    retention,
		Risk:     scoring.ClassifyRetention(retention),
	}

	report.ENPS = scoring.CalculateENPS(responses)
	report.ENPSRisk = scoring.ClassifyENPS(report.ENPS.Score)

	s.logger.Info("report computed",
		zap.Int64("shop_id", shopID),
		zap.Int("responses", len(responses)),
		zap.Time("start", start),
		zap.Time("end", end))

	return report, nil
}

// GetPeriodComparison scores the requested window and the equally sized
// window immediately before it, then derives per-metric deltas. A
// previous period without data yields nil changes, never a delta
// against defaults.
func (s *ReportService) GetPeriodComparison(ctx context.Context, shopID int64, start, end time.Time) (*ComparisonReport, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := fetchShop(dbCtx, s.storage, shopID); err != nil {
		return nil, err
	}

	current, err := s.storage.GetResponses(dbCtx, shopID, start, end)
	if err != nil {
		return nil, fmt.Errorf("current period: %w: %v", ErrStorageFailure, err)
	}
	if len(current) == 0 {
		return nil, ErrNoResponses
	}

	duration := end.Sub(start)
	prevEnd := start.Add(-time.Nanosecond)
	prevStart := prevEnd.Add(-duration + time.Nanosecond)

	previous, err := s.storage.GetResponses(dbCtx, shopID, prevStart, prevEnd)
	if err != nil {
		return nil, fmt.Errorf("previous period: %w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("period comparison computed",
		zap.Int64("shop_id", shopID),
		zap.Int("current_responses", len(current)),
		zap.Int("previous_responses", len(previous)))

	return &ComparisonReport{
		ShopID:        shopID,
		CurrentStart:  start,
		CurrentEnd:    end,
		PreviousStart: prevStart,
		PreviousEnd:   prevEnd,
		CurrentCount:  len(current),
		PreviousCount: len(previous),
		Comparison:    scoring.ComparePeriods(current, previous),
	}, nil
}

// fetchShop maps repository errors onto the service sentinels.
func fetchShop(ctx context.Context, storage SurveyRepository, shopID int64) (models.Shop, error) {
	shop, err := storage.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Shop{}, fmt.Errorf("shop %d: %w", shopID, ErrShopNotFound)
		}
		return models.Shop{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return shop, nil
}
