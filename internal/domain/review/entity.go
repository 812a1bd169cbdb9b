package review

import (
	"time"

	"github.com/bryanwahyu/clausecheck/internal/domain/analysis"
)

// ID tipe untuk Review
type ReviewID string

// Status enum
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// MinAnalyzableChars is the minimum extracted-text length; shorter documents
// abort the pipeline before the completion API is ever called.
const MinAnalyzableChars = 100

// Document is an uploaded contract file with its declared MIME type. It lives
// only for the duration of one review; the raw bytes are never persisted by
// the pipeline itself.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
	UploadedAt  time.Time
}

// Aggregate Root: Review
type Review struct {
	ID          ReviewID                `json:"id"`
	TenantID    string                  `json:"tenant_id"`
	Filename    string                  `json:"filename"`
	ContentType string                  `json:"content_type"`
	Status      Status                  `json:"status"`
	Score       int                     `json:"score"`
	Counts      analysis.SeverityCounts `json:"counts"`
	DocumentURL string                  `json:"document_url,omitempty"`
	Result      *analysis.Result        `json:"result,omitempty"`
	DurationMS  int64                   `json:"duration_ms"`
	CreatedAt   time.Time               `json:"created_at"`
}
