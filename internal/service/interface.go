package service

import (
	"context"
	"time"

	"github.com/pulseup/engage-server/internal/repository/models"
	"github.com/pulseup/engage-server/internal/scoring"
)

// SurveyRepository defines the storage operations the report and
// analytics services depend on.
type SurveyRepository interface {
	GetShop(ctx context.Context, shopID int64) (models.Shop, error)
	GetResponses(ctx context.Context, shopID int64, start, end time.Time) ([]scoring.Response, error)
	GetIndustryResponses(ctx context.Context, industry string) (map[int64][]scoring.Response, error)
	GetBenchmarks(ctx context.Context, industry string) (map[scoring.Category]float64, error)
}
