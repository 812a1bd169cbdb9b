package mysql

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

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, tenant_id, created_at, filename, content_type, status,
       high, medium, low, risks_total, score,
       document_url, result_json, duration_ms`

// Save insert/update Review record
func (r *ReviewRepository) Save(ctx context.Context, rv *domain.Review) error {
	const q = `
INSERT INTO contract_reviews
(id, tenant_id, created_at, filename, content_type, status,
 high, medium, low, risks_total, score,
 document_url, result_json, duration_ms)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 status=VALUES(status),
 high=VALUES(high), medium=VALUES(medium), low=VALUES(low), risks_total=VALUES(risks_total),
 score=VALUES(score), document_url=VALUES(document_url),
 result_json=VALUES(result_json), duration_ms=VALUES(duration_ms);
`
	tenant := stringOrDash(rv.TenantID)
	filename := stringOrDash(rv.Filename)
	status := stringOrDash(string(rv.Status))
	created := rv.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	resultJSON, err := marshalResult(rv.Result)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, q,
		rv.ID, tenant, created, filename, rv.ContentType, status,
		rv.Counts.High, rv.Counts.Medium, rv.Counts.Low, rv.Counts.Total, rv.Score,
		rv.DocumentURL, resultJSON, rv.DurationMS,
	)
	return err
}

// Get by ID + Tenant
func (r *ReviewRepository) Get(ctx context.Context, tenant string, id domain.ReviewID) (*domain.Review, error) {
	q := `
SELECT ` + reviewColumns + `
FROM contract_reviews
WHERE tenant_id=? AND id=? LIMIT 1;
`
	return scanReview(r.db.QueryRowContext(ctx, q, tenant, id))
}

// Latest reviews per tenant
func (r *ReviewRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `
SELECT ` + reviewColumns + `
FROM contract_reviews
WHERE tenant_id=? ORDER BY created_at DESC, id DESC LIMIT ?;
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

// Paginate with offset + limit (classic pagination)
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
WHERE tenant_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;
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
		"SELECT COUNT(*) FROM contract_reviews WHERE tenant_id = ?", tenant,
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

// Summary counts review results since N days
func (r *ReviewRepository) Summary(ctx context.Context, tenant string, sinceDays int) (domain.Summary, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	cut := time.Now().AddDate(0, 0, -sinceDays)

	const q = `
SELECT COUNT(*) AS total_reviews,
       COALESCE(SUM(high),0)   AS high,
       COALESCE(SUM(medium),0) AS medium,
       COALESCE(SUM(low),0)    AS low,
       COALESCE(AVG(score),0)  AS avg_score
FROM contract_reviews
WHERE tenant_id=? AND status=? AND created_at >= ?;
`
	var s domain.Summary
	if err := r.db.QueryRowContext(ctx, q, tenant, domain.StatusDone, cut).Scan(
		&s.TotalReviews, &s.High, &s.Medium, &s.Low, &s.AverageScore,
	); err != nil {
		return domain.Summary{}, err
	}
	return s, nil
}

// rowScanner matches both *sql.Row and *sql.Rows
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
	rv.Result = unmarshalResult(resultJSON)
	return &rv, nil
}

func marshalResult(res *analysis.Result) (string, error) {
	if res == nil {
		// result_json column requires valid JSON; use empty object
		return "{}", nil
	}
	b, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("marshaling result: %w", err)
	}
	return string(b), nil
}

func unmarshalResult(raw string) *analysis.Result {
	if raw == "" || raw == "{}" {
		return nil
	}
	var res analysis.Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil
	}
	return &res
}
