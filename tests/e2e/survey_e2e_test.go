//go:build e2e

package e2e

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pulseup/engage-server/internal/api"
	"github.com/pulseup/engage-server/internal/repository"
	"github.com/pulseup/engage-server/internal/service"
	"github.com/pulseup/engage-server/tests/e2e/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE shops (
		id INTEGER PRIMARY KEY,
		company_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		industry TEXT NOT NULL
	);
	CREATE TABLE responses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		shop_id INTEGER NOT NULL,
		q1 INTEGER, q2 INTEGER, q3 INTEGER, q4 INTEGER, q5 INTEGER,
		q6 INTEGER, q7 INTEGER, q8 INTEGER, q9 INTEGER, q10 INTEGER,
		enps_score INTEGER,
		comment TEXT,
		submitted_at TIMESTAMP NOT NULL
	);
	CREATE TABLE benchmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		industry TEXT NOT NULL,
		category TEXT NOT NULL,
		average REAL NOT NULL
	);`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	_, err = db.Exec(`
	INSERT INTO shops (id, company_id, name, industry) VALUES
	(1, 1, 'Sakura Coffee', 'food_service'),
	(2, 1, 'Sakura Annex', 'food_service'),
	(3, 2, 'Harbor Deli', 'food_service'),
	(4, 3, 'Nut & Bolt', 'retail');

	INSERT INTO benchmarks (industry, category, average) VALUES
	('food_service', 'relationships', 3.6),
	('food_service', 'leadership', 3.4),
	('food_service', 'workload', 2.9);
	`)
	require.NoError(t, err)

	insert := func(shopID int64, at time.Time, answers [10]int, enps int) {
		_, err := db.Exec(`
			INSERT INTO responses (shop_id, q1, q2, q3, q4, q5, q6, q7, q8, q9, q10, enps_score, comment, submitted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, '', ?)`,
			shopID,
			answers[0], answers[1], answers[2], answers[3], answers[4],
			answers[5], answers[6], answers[7], answers[8], answers[9],
			enps, at)
		require.NoError(t, err)
	}

	// Shop 1: twelve varied responses in January 2025, four in December
	// 2024 for the previous comparison window.
	jan := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		var answers [10]int
		for j := 0; j < 10; j++ {
			answers[j] = (i+j)%4 + 1
		}
		insert(1, jan.Add(time.Duration(i)*48*time.Hour), answers, i%11)
	}

	dec := time.Date(2024, 12, 5, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		insert(1, dec.Add(time.Duration(i)*72*time.Hour), [10]int{2, 3, 2, 3, 2, 3, 2, 3, 2, 3}, 5)
	}

	// Shop 1 again: recent responses for the trend endpoint, which
	// always measures backwards from the current month.
	now := time.Now().UTC()
	for _, daysAgo := range []int{10, 12, 40, 42, 70, 72} {
		insert(1, now.AddDate(0, 0, -daysAgo), [10]int{4, 4, 3, 4, 3, 2, 4, 4, 3, 4}, 8)
	}

	// Shop 2: five identical responses, a straight-lining cohort.
	for i := 0; i < 5; i++ {
		insert(2, jan.Add(time.Duration(i)*24*time.Hour), [10]int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}, 7)
	}

	// Shop 3: three responses, enough for the percentile cohort but not
	// for correlations.
	for i := 0; i < 3; i++ {
		insert(3, jan.Add(time.Duration(i)*24*time.Hour), [10]int{4, 5, 4, 4, 5, 2, 4, 4, 5, 4}, 9)
	}

	return db
}

func setupRouter(t *testing.T, db *sql.DB) *echo.Echo {
	t.Helper()

	repo := repository.NewSurveyRepository(db)
	logger := zap.NewNop()

	reports := service.NewReportService(repo, logger)
	analytics := service.NewAnalyticsService(repo, logger)

	handlers := api.NewHandlers(reports, analytics, &mocks.InMemoryCache{}, logger, 5*time.Minute)
	return api.NewRouter(handlers, logger)
}

func doGet(router *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestE2E_GetReport(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	router := setupRouter(t, db)

	rec := doGet(router, "/api/v1/shops/1/report?start=2025-01-01&end=2025-01-31")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report service.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	assert.Equal(t, int64(1), report.ShopID)
	assert.Equal(t, "Sakura Coffee", report.ShopName)
	assert.Equal(t, "food_service", report.Industry)
	assert.Equal(t, 12, report.ResponseCount)
	assert.Len(t, report.Categories, 8)

	require.NotNil(t, report.OverallScore)
	assert.GreaterOrEqual(t, *report.OverallScore, 1.0)
	assert.LessOrEqual(t, *report.OverallScore, 5.0)
	require.NotNil(t, report.OverallRisk)

	assert.Equal(t, 12, report.ENPS.TotalResponses)
	require.NotNil(t, report.ENPS.Score)
	assert.NotEmpty(t, report.Confidence.Level)

	// Benchmarked categories carry a difference, the rest do not.
	seen := map[string]bool{}
	for _, c := range report.Categories {
		seen[string(c.Category)] = c.Benchmark != nil
	}
	assert.True(t, seen["relationships"])
	assert.False(t, seen["growth"])
}

func TestE2E_GetReport_UnknownShop(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	router := setupRouter(t, db)

	rec := doGet(router, "/api/v1/shops/99/report?start=2025-01-01&end=2025-01-31")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestE2E_GetPeriodComparison(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	router := setupRouter(t, db)

	rec := doGet(router, "/api/v1/shops/1/comparison?start=2025-01-01&end=2025-01-31")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cmp service.ComparisonReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmp))

	assert.Equal(t, 12, cmp.CurrentCount)
	assert.Equal(t, 4, cmp.PreviousCount)
	require.NotNil(t, cmp.Comparison.Overall.Current)
	require.NotNil(t, cmp.Comparison.Overall.Previous)
	assert.NotEmpty(t, cmp.Comparison.Overall.Direction)
}

func TestE2E_GetTrend(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	router := setupRouter(t, db)

	rec := doGet(router, "/api/v1/shops/1/trend?months=4")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var trend service.TrendReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trend))

	require.Len(t, trend.Points, 4)

	total := 0
	for _, p := range trend.Points {
		total += p.ResponseCount
	}
	assert.GreaterOrEqual(t, total, 6)
}

func TestE2E_GetCorrelations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	router := setupRouter(t, db)

	t.Run("enough data ranks all drivers", func(t *testing.T) {
		rec := doGet(router, "/api/v1/shops/1/correlations?start=2025-01-01&end=2025-01-31")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var result service.CorrelationReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

		assert.Equal(t, 12, result.ResponseCount)
		assert.Len(t, result.Correlations, 8)
		assert.NotEmpty(t, result.TopDriver)
	})

	t.Run("too few responses is a 422", func(t *testing.T) {
		rec := doGet(router, "/api/v1/shops/3/correlations?start=2025-01-01&end=2025-01-31")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Message, "need")
	})
}

func TestE2E_GetPatterns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	router := setupRouter(t, db)

	rec := doGet(router, "/api/v1/shops/2/patterns?start=2025-01-01&end=2025-01-31")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result service.PatternReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, 5, result.ResponseCount)

	types := []string{}
	for _, p := range result.Patterns {
		types = append(types, string(p.Type))
	}
	assert.Contains(t, types, "low_engagement")
}

func TestE2E_GetPercentile(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	router := setupRouter(t, db)

	rec := doGet(router, "/api/v1/shops/1/percentile")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result service.PercentileReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, "food_service", result.Industry)
	assert.Equal(t, 3, result.Result.TotalShops)
	assert.GreaterOrEqual(t, result.Result.Percentile, 0)
	assert.LessOrEqual(t, result.Result.Percentile, 100)
	assert.GreaterOrEqual(t, result.Result.Rank, 1)
	assert.LessOrEqual(t, result.Result.Rank, 3)
}

func TestE2E_Health(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	router := setupRouter(t, db)

	rec := doGet(router, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
