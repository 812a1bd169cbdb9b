package review

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, r *Review) error
	Get(ctx context.Context, tenant string, id ReviewID) (*Review, error)
	Latest(ctx context.Context, tenant string, limit int) ([]*Review, error)
	Paginate(ctx context.Context, tenant string, page, pageSize int) (PaginatedResult, error)
	Summary(ctx context.Context, tenant string, sinceDays int) (Summary, error)
}

// Extractor port: declared-MIME dispatch from uploaded bytes to plain text.
type Extractor interface {
	Extract(doc Document) (string, error)
}

// DocumentStore port (interface untuk penyimpanan dokumen asli)
type DocumentStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Summary rekap hasil review N hari terakhir
type Summary struct {
	TotalReviews int     `json:"total_reviews"`
	High         int     `json:"high"`
	Medium       int     `json:"medium"`
	Low          int     `json:"low"`
	AverageScore float64 `json:"average_score"`
}
