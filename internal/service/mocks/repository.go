package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/pulseup/engage-server/internal/repository/models"
	"github.com/pulseup/engage-server/internal/scoring"
)

// MockSurveyRepository is a mock implementation of the SurveyRepository
// interface for testing the service layer.
type MockSurveyRepository struct {
	GetShopFunc              func(ctx context.Context, shopID int64) (models.Shop, error)
	GetResponsesFunc         func(ctx context.Context, shopID int64, start, end time.Time) ([]scoring.Response, error)
	GetIndustryResponsesFunc func(ctx context.Context, industry string) (map[int64][]scoring.Response, error)
	GetBenchmarksFunc        func(ctx context.Context, industry string) (map[scoring.Category]float64, error)
}

// GetShop implements the SurveyRepository interface
func (m *MockSurveyRepository) GetShop(ctx context.Context, shopID int64) (models.Shop, error) {
	if m.GetShopFunc != nil {
		return m.GetShopFunc(ctx, shopID)
	}
	return models.Shop{}, errors.New("GetShopFunc not implemented")
}

// GetResponses implements the SurveyRepository interface
func (m *MockSurveyRepository) GetResponses(ctx context.Context, shopID int64, start, end time.Time) ([]scoring.Response, error) {
	if m.GetResponsesFunc != nil {
		return m.GetResponsesFunc(ctx, shopID, start, end)
	}
	return nil, errors.New("GetResponsesFunc not implemented")
}

// GetIndustryResponses implements the SurveyRepository interface
func (m *MockSurveyRepository) GetIndustryResponses(ctx context.Context, industry string) (map[int64][]scoring.Response, error) {
	if m.GetIndustryResponsesFunc != nil {
		return m.GetIndustryResponsesFunc(ctx, industry)
	}
	return nil, errors.New("GetIndustryResponsesFunc not implemented")
}

// GetBenchmarks implements the SurveyRepository interface
func (m *MockSurveyRepository) GetBenchmarks(ctx context.Context, industry string) (map[scoring.Category]float64, error) {
	if m.GetBenchmarksFunc != nil {
		return m.GetBenchmarksFunc(ctx, industry)
	}
	return nil, errors.New("GetBenchmarksFunc not implemented")
}
