package reviews

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/bryanwahyu/clausecheck/internal/application"
	"github.com/bryanwahyu/clausecheck/internal/domain/ai"
	"github.com/bryanwahyu/clausecheck/internal/domain/analysis"
	domain "github.com/bryanwahyu/clausecheck/internal/domain/review"
	"github.com/bryanwahyu/clausecheck/internal/infra/ai/prompt"
)

// Service implements use-cases untuk Review.
// The pipeline is strictly linear and single-shot: extract, guard, prompt,
// one completion exchange, parse. No retries, no partial results.
type Service struct {
	Repo      domain.Repository
	Extractor domain.Extractor
	AI        ai.Client
	Documents domain.DocumentStore
	Clock     application.Clock
}

//
// ==== USE CASES ====
//

// Command untuk review satu dokumen
type ReviewCommand struct {
	TenantID    string
	Filename    string
	ContentType string
	Data        []byte
}

// Review runs the full pipeline for one uploaded contract and persists the
// outcome. The completion API is only reached when extraction succeeded and
// the text clears the minimum-length guard.
func (s *Service) Review(ctx context.Context, cmd ReviewCommand) (*domain.Review, error) {
	now := s.Clock.Now()
	id := domain.ReviewID(uuid.New().String())

	initial := &domain.Review{
		ID:          id,
		TenantID:    cmd.TenantID,
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
		Status:      domain.StatusRunning,
		CreatedAt:   now,
	}
	if err := s.Repo.Save(ctx, initial); err != nil {
		return initial, err
	}

	text, err := s.Extractor.Extract(domain.Document{
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
		Data:        cmd.Data,
		UploadedAt:  now,
	})
	if err != nil {
		s.markFailed(initial)
		return nil, err
	}
	if n := utf8.RuneCountInString(text); n <= domain.MinAnalyzableChars {
		s.markFailed(initial)
		return nil, fmt.Errorf("%w: got %d characters, need more than %d",
			domain.ErrTextTooShort, n, domain.MinAnalyzableChars)
	}

	raw, err := s.AI.Complete(ctx, prompt.Build(text))
	if err != nil {
		s.markFailed(initial)
		return nil, err
	}

	result, err := analysis.Parse(raw)
	if err != nil {
		s.markFailed(initial)
		return nil, err
	}
	result.OriginalText = text

	// Archive the original upload. Best effort: the analysis is the product,
	// a failed copy is logged and the review still succeeds.
	var documentURL string
	if s.Documents != nil {
		key := fmt.Sprintf("%s/%s/%s", cmd.TenantID, id, cmd.Filename)
		url, uerr := s.Documents.Upload(ctx, key, cmd.ContentType, cmd.Data)
		if uerr != nil {
			log.Printf("document archive failed: tenant=%s review=%s: %v", cmd.TenantID, id, uerr)
		} else {
			documentURL = url
		}
	}

	done := &domain.Review{
		ID:          id,
		TenantID:    cmd.TenantID,
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
		Status:      domain.StatusDone,
		Score:       result.OverallScore,
		Counts:      result.Counts(),
		DocumentURL: documentURL,
		Result:      result,
		DurationMS:  s.Clock.Now().Sub(now).Milliseconds(),
		CreatedAt:   now,
	}
	if err := s.Repo.Save(ctx, done); err != nil {
		return done, err
	}
	return done, nil
}

// markFailed records the failure on the review row; the original error is
// what propagates to the caller, not any save problem here.
func (s *Service) markFailed(r *domain.Review) {
	failed := *r
	failed.Status = domain.StatusFailed
	if err := s.Repo.Save(context.Background(), &failed); err != nil {
		log.Printf("failed to mark review %s as failed: %v", r.ID, err)
	}
}

// Latest ambil N review terakhir
func (s *Service) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Review, error) {
	return s.Repo.Latest(ctx, tenant, limit)
}

// Get ambil 1 review by id
func (s *Service) Get(ctx context.Context, tenant string, id domain.ReviewID) (*domain.Review, error) {
	return s.Repo.Get(ctx, tenant, id)
}

// Paginate returns one page of reviews for a tenant.
func (s *Service) Paginate(ctx context.Context, tenant string, page, pageSize int) (domain.PaginatedResult, error) {
	return s.Repo.Paginate(ctx, tenant, page, pageSize)
}

// Summary rekap hasil review N hari terakhir
func (s *Service) Summary(ctx context.Context, tenant string, sinceDays int) (domain.Summary, error) {
	return s.Repo.Summary(ctx, tenant, sinceDays)
}

// Report renders the plain-text analysis report for a finished review and
// returns the export filename alongside the body.
func (s *Service) Report(ctx context.Context, tenant string, id domain.ReviewID) (string, string, error) {
	rv, err := s.Repo.Get(ctx, tenant, id)
	if err != nil {
		return "", "", err
	}
	if rv.Result == nil {
		return "", "", domain.ErrNoResult
	}
	now := s.Clock.Now()
	name := analysis.ReportFilename(baseName(rv.Filename), now)
	return name, analysis.RenderReport(rv.Result, rv.Filename, now), nil
}

// RevisedDocument renders the plain-text revised contract for a finished
// review and returns the export filename alongside the body.
func (s *Service) RevisedDocument(ctx context.Context, tenant string, id domain.ReviewID) (string, string, error) {
	rv, err := s.Repo.Get(ctx, tenant, id)
	if err != nil {
		return "", "", err
	}
	if rv.Result == nil {
		return "", "", domain.ErrNoResult
	}
	name := analysis.RevisedFilename(baseName(rv.Filename), s.Clock.Now())
	return name, analysis.RenderRevised(rv.Result), nil
}

func baseName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
