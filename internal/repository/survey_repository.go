package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pulseup/engage-server/internal/repository/models"
	"github.com/pulseup/engage-server/internal/scoring"
)

// ErrNotFound is returned when a requested shop does not exist.
var ErrNotFound = errors.New("not found")

// SurveyRepository reads shops, responses and benchmarks from the
// relational store. Scoring happens in memory, so all queries return raw
// rows; no aggregation is pushed into SQL.
type SurveyRepository struct {
	db *sql.DB
}

func NewSurveyRepository(db *sql.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// GetShop fetches one shop by id.
func (s *SurveyRepository) GetShop(ctx context.Context, shopID int64) (models.Shop, error) {
	const query = `
		SELECT id, company_id, name, industry
		FROM shops
		WHERE id = ?
	`

	var shop models.Shop
	err := s.db.QueryRowContext(ctx, query, shopID).
		Scan(&shop.ID, &shop.CompanyID, &shop.Name, &shop.Industry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Shop{}, fmt.Errorf("shop %d: %w", shopID, ErrNotFound)
		}
		return models.Shop{}, fmt.Errorf("query GetShop: %w", err)
	}
	return shop, nil
}

// GetResponses fetches one shop's responses inside [start, end].
func (s *SurveyRepository) GetResponses(ctx context.Context, shopID int64, start, end time.Time) ([]scoring.Response, error) {
	const query = `
		SELECT shop_id, q1, q2, q3, q4, q5, q6, q7, q8, q9, q10,
		       enps_score, comment, submitted_at
		FROM responses
		WHERE shop_id = ? AND submitted_at >= ? AND submitted_at <= ?
		ORDER BY submitted_at
	`

	rows, err := s.db.QueryContext(ctx, query, shopID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query GetResponses: %w", err)
	}
	defer rows.Close()

	responses, err := scanResponses(rows)
	if err != nil {
		return nil, fmt.Errorf("scan GetResponses: %w", err)
	}
	return responses, nil
}

// GetIndustryResponses fetches every response of every shop in an
// industry, grouped by shop, with no date filter. The percentile cohort
// is built from a shop's full history.
func (s *SurveyRepository) GetIndustryResponses(ctx context.Context, industry string) (map[int64][]scoring.Response, error) {
	const query = `
		SELECT r.shop_id, r.q1, r.q2, r.q3, r.q4, r.q5, r.q6, r.q7, r.q8, r.q9, r.q10,
		       r.enps_score, r.comment, r.submitted_at
		FROM responses AS r
		JOIN shops AS sh ON r.shop_id = sh.id
		WHERE sh.industry = ?
		ORDER BY r.shop_id, r.submitted_at
	`

	rows, err := s.db.QueryContext(ctx, query, industry)
	if err != nil {
		return nil, fmt.Errorf("query GetIndustryResponses: %w", err)
	}
	defer rows.Close()

	responses, err := scanResponses(rows)
	if err != nil {
		return nil, fmt.Errorf("scan GetIndustryResponses: %w", err)
	}

	byShop := make(map[int64][]scoring.Response)
	for _, r := range responses {
		byShop[r.ShopID] = append(byShop[r.ShopID], r)
	}
	return byShop, nil
}

// GetBenchmarks fetches the per-category reference averages for an
// industry. An industry without benchmark rows yields an empty map.
func (s *SurveyRepository) GetBenchmarks(ctx context.Context, industry string) (map[scoring.Category]float64, error) {
	const query = `
		SELECT category, average
		FROM benchmarks
		WHERE industry = ?
	`

	rows, err := s.db.QueryContext(ctx, query, industry)
	if err != nil {
		return nil, fmt.Errorf("query GetBenchmarks: %w", err)
	}
	defer rows.Close()

	benchmarks := make(map[scoring.Category]float64)
	for rows.Next() {
		var b models.Benchmark
		if err := rows.Scan(&b.Category, &b.Average); err != nil {
			return nil, fmt.Errorf("scan GetBenchmarks row: %w", err)
		}
		benchmarks[scoring.Category(b.Category)] = b.Average
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetBenchmarks: %w", err)
	}
	return benchmarks, nil
}

// answerColumns mirrors the q1..q10 column order of the responses table.
var answerColumns = []scoring.QuestionKey{
	scoring.Q1, scoring.Q2, scoring.Q3, scoring.Q4, scoring.Q5,
	scoring.Q6, scoring.Q7, scoring.Q8, scoring.Q9, scoring.Q10,
}

func scanResponses(rows *sql.Rows) ([]scoring.Response, error) {
	var responses []scoring.Response
	for rows.Next() {
		var (
			shopID      int64
			answers     [10]sql.NullInt64
			enps        sql.NullInt64
			comment     sql.NullString
			submittedAt time.Time
		)

		dest := make([]any, 0, 14)
		dest = append(dest, &shopID)
		for i := range answers {
			dest = append(dest, &answers[i])
		}
		dest = append(dest, &enps, &comment, &submittedAt)

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		r := scoring.Response{
			ShopID:      shopID,
			Answers:     make(map[scoring.QuestionKey]int, len(answerColumns)),
			Comment:     comment.String,
			SubmittedAt: submittedAt,
		}
		for i, key := range answerColumns {
			if answers[i].Valid {
				r.Answers[key] = int(answers[i].Int64)
			}
		}
		if enps.Valid {
			v := int(enps.Int64)
			r.ENPSScore = &v
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}
