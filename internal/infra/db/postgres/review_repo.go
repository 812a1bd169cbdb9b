package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/bryanwahyu/clausecheck/internal/domain/analysis"
	domain "github.com/bryanwahyu/clausecheck/internal/domain/review"
)

// ReviewRepository is the Postgres variant of the review repository; schema
// and semantics match the MySQL adapter.
type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, tenant_id, created_at, filename, content_type, status,
       high, medium, low, risks_total, score,
       document_url, result_json, duration_ms`

func (r *ReviewRepository) Save(ctx context.Context, rv *domain.Review) error {
	const q = `
INSERT INTO contract_reviews
(id, tenant_id, created_at, filename, content_type, status,
 high, medium, low, risks_total, score,
 document_url, result_json, duration_ms)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (id) DO UPDATE SET
 status=EXCLUDED.status,
 high=EXCLUDED.high, medium=EXCLUDED.medium, low=EXCLUDED.low, risks_total=EXCLUDED.risks_total,
 score=EXCLUDED.score, document_url=EXCLUDED.document_url,
 result_json=EXCLUDED.result_json, duration_ms=EXCLUDED.duration_ms;
`
	created := rv.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	resultJSON := "{}"
	if rv.Result != nil {
		b, err := json.Marshal(rv.Result)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		resultJSON = string(b)
	}

	_, err := r.db.ExecContext(ctx, q,
		rv.ID, rv.TenantID, created, rv.Filename, rv.ContentType, rv.Status,
		rv.Counts.High, rv.Counts.Medium, rv.Counts.Low, rv.Counts.Total, rv.Score,
		rv.DocumentURL, resultJSON, rv.DurationMS,
	)
	return err
}

func (r *ReviewRepository) Get(ctx context.Context, tenant string, id domain.ReviewID) (*domain.Review, error) {
	q := `
SELECT ` + reviewColumns + `
FROM contract_reviews
WHERE tenant_id=$1 AND id=$2 LIMIT 1;
`
	return scanReview(r.db.QueryRowContext(ctx, q, tenant, id))
}

func (r *ReviewRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `
SELECT ` + reviewColumns + `
FROM contract_reviews
WHERE tenant_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *ReviewRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	q := `
SELECT ` + reviewColumns + `
FROM contract_reviews
WHERE tenant_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, pageSize, offset)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return domain.PaginatedResult{}, fmt.Errorf("scanning row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err = rows.Err(); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("iterating rows: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contract_reviews WHERE tenant_id = $1", tenant,
	).Scan(&total); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
	}

	return domain.PaginatedResult{
		Data:       reviews,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (r *ReviewRepository) Summary(ctx context.Context, tenant string, sinceDays int) (domain.Summary, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	cut := time.Now().AddDate(0, 0, -sinceDays)

	const q = `
SELECT COUNT(*),
       COALESCE(SUM(high),0),
       COALESCE(SUM(medium),0),
       COALESCE(SUM(low),0),
       COALESCE(AVG(score),0)
FROM contract_reviews
WHERE tenant_id=$1 AND status=$2 AND created_at >= $3;
`
	var s domain.Summary
	if err := r.db.QueryRowContext(ctx, q, tenant, domain.StatusDone, cut).Scan(
		&s.TotalReviews, &s.High, &s.Medium, &s.Low, &s.AverageScore,
	); err != nil {
		return domain.Summary{}, err
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var rv domain.Review
	var hi, med, lo, tot int
	var resultJSON string
	if err := row.Scan(
		&rv.ID, &rv.TenantID, &rv.CreatedAt, &rv.Filename, &rv.ContentType, &rv.Status,
		&hi, &med, &lo, &tot, &rv.Score,
		&rv.DocumentURL, &resultJSON, &rv.DurationMS,
	); err != nil {
		return nil, err
	}
	rv.Counts = analysis.SeverityCounts{High: hi, Medium: med, Low: lo, Total: tot}
	if resultJSON != "" && resultJSON != "{}" {
		var res analysis.Result
		if err := json.Unmarshal([]byte(resultJSON), &res); err == nil {
			rv.Result = &res
		}
	}
	return &rv, nil
}
