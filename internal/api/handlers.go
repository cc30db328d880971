package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pulseup/engage-server/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheDuration = 10 * time.Minute
	dateLayout           = "2006-01-02"
)

type cacheKeyType string

const (
	cacheKeyReport      cacheKeyType = "http:shop_report"
	cacheKeyComparison  cacheKeyType = "http:period_comparison"
	cacheKeyTrend       cacheKeyType = "http:monthly_trend"
	cacheKeyCorrelation cacheKeyType = "http:correlations"
	cacheKeyPatterns    cacheKeyType = "http:patterns"
	cacheKeyPercentile  cacheKeyType = "http:percentile"
)

// Handlers serves the analytics HTTP API backed by the report and
// analytics services, with read-through caching in front of both.
type Handlers struct {
	reports   ReportService
	analytics AnalyticsService
	cache     Cacher
	logger    *zap.Logger
	sfGroup   singleflight.Group
	cacheTTL  time.Duration
}

// NewHandlers initializes the HTTP handlers.
func NewHandlers(reports ReportService, analytics AnalyticsService, cache Cacher, logger *zap.Logger, ttl time.Duration) *Handlers {
	if reports == nil {
		panic("nil ReportService provided to NewHandlers")
	}
	if analytics == nil {
		panic("nil AnalyticsService provided to NewHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		reports:   reports,
		analytics: analytics,
		cache:     cache,
		logger:    logger.Named("http-handler"),
		cacheTTL:  ttl,
	}
}

// Register mounts every route on the router.
func (h *Handlers) Register(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	v1 := e.Group("/api/v1")
	shops := v1.Group("/shops/:id")
	shops.GET("/report", h.GetReport)
	shops.GET("/comparison", h.GetPeriodComparison)
	shops.GET("/trend", h.GetTrend)
	shops.GET("/correlations", h.GetCorrelations)
	shops.GET("/patterns", h.GetPatterns)
	shops.GET("/percentile", h.GetPercentile)
}

// Health reports process liveness.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(200, map[string]string{"status": "ok"})
}

// periodQuery is the start/end window of the report endpoints, bound
// from query parameters as YYYY-MM-DD dates.
type periodQuery struct {
	Start string `query:"start" validate:"required,datetime=2006-01-02"`
	End   string `query:"end" validate:"required,datetime=2006-01-02"`
}

type trendQuery struct {
	Months int `query:"months" validate:"omitempty,min=1,max=36"`
}

func shopIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(400, "shop id must be a positive integer")
	}
	return id, nil
}

// parseAndValidate binds the period query and resolves it to an
// inclusive [start, end] window.
func (h *Handlers) parseAndValidate(c echo.Context) (start, end time.Time, err error) {
	var q periodQuery
	if err = c.Bind(&q); err != nil {
		return
	}
	if err = c.Validate(&q); err != nil {
		return
	}

	start, _ = time.Parse(dateLayout, q.Start)
	end, _ = time.Parse(dateLayout, q.End)
	if end.Before(start) {
		err = echo.NewHTTPError(400, "end date must not be before start date")
		return
	}

	// End-of-day so the end date itself is included.
	end = end.Add(24*time.Hour - time.Nanosecond)
	return
}

func normalizeKey(prefix cacheKeyType, shopID int64, parts ...string) string {
	key := fmt.Sprintf("%s:%d", prefix, shopID)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func dayKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func (h *Handlers) GetReport(c echo.Context) error {
	shopID, err := shopIDParam(c)
	if err != nil {
		return err
	}
	start, end, err := h.parseAndValidate(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	cacheKey := normalizeKey(cacheKeyReport, shopID, dayKey(start), dayKey(end))

	report, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey, h.cacheTTL, h.logger, func(fetchCtx context.Context) (*service.Report, error) {
		return h.reports.GetReport(fetchCtx, shopID, start, end)
	})
	if err != nil {
		return err
	}

	return c.JSON(200, report)
}

func (h *Handlers) GetPeriodComparison(c echo.Context) error {
	shopID, err := shopIDParam(c)
	if err != nil {
		return err
	}
	start, end, err := h.parseAndValidate(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	cacheKey := normalizeKey(cacheKeyComparison, shopID, dayKey(start), dayKey(end))

	result, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey, h.cacheTTL, h.logger, func(fetchCtx context.Context) (*service.ComparisonReport, error) {
		return h.reports.GetPeriodComparison(fetchCtx, shopID, start, end)
	})
	if err != nil {
		return err
	}

	return c.JSON(200, result)
}

func (h *Handlers) GetTrend(c echo.Context) error {
	shopID, err := shopIDParam(c)
	if err != nil {
		return err
	}

	var q trendQuery
	if err := c.Bind(&q); err != nil {
		return err
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	months := q.Months
	if months == 0 {
		months = service.DefaultTrendMonths
	}

	ctx := c.Request().Context()
	cacheKey := normalizeKey(cacheKeyTrend, shopID, strconv.Itoa(months))

	trend, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey, h.cacheTTL, h.logger, func(fetchCtx context.Context) (*service.TrendReport, error) {
		return h.analytics.GetTrend(fetchCtx, shopID, months)
	})
	if err != nil {
		return err
	}

	return c.JSON(200, trend)
}

func (h *Handlers) GetCorrelations(c echo.Context) error {
	shopID, err := shopIDParam(c)
	if err != nil {
		return err
	}
	start, end, err := h.parseAndValidate(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	cacheKey := normalizeKey(cacheKeyCorrelation, shopID, dayKey(start), dayKey(end))

	result, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey, h.cacheTTL, h.logger, func(fetchCtx context.Context) (*service.CorrelationReport, error) {
		return h.analytics.GetCorrelations(fetchCtx, shopID, start, end)
	})
	if err != nil {
		return err
	}

	return c.JSON(200, result)
}

func (h *Handlers) GetPatterns(c echo.Context) error {
	shopID, err := shopIDParam(c)
	if err != nil {
		return err
	}
	start, end, err := h.parseAndValidate(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	cacheKey := normalizeKey(cacheKeyPatterns, shopID, dayKey(start), dayKey(end))

	result, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey, h.cacheTTL, h.logger, func(fetchCtx context.Context) (*service.PatternReport, error) {
		return h.analytics.GetPatterns(fetchCtx, shopID, start, end)
	})
	if err != nil {
		return err
	}

	return c.JSON(200, result)
}

func (h *Handlers) GetPercentile(c echo.Context) error {
	shopID, err := shopIDParam(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	cacheKey := normalizeKey(cacheKeyPercentile, shopID)

	result, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey, h.cacheTTL, h.logger, func(fetchCtx context.Context) (*service.PercentileReport, error) {
		return h.analytics.GetPercentile(fetchCtx, shopID)
	})
	if err != nil {
		return err
	}

	return c.JSON(200, result)
}
