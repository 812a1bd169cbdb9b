package httpserver

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appreviews "github.com/bryanwahyu/clausecheck/internal/application/reviews"
	domain "github.com/bryanwahyu/clausecheck/internal/domain/review"
	"github.com/bryanwahyu/clausecheck/internal/middleware"
)

type memRepo struct {
	rows map[domain.ReviewID]*domain.Review
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[domain.ReviewID]*domain.Review)}
}

func (m *memRepo) Save(_ context.Context, r *domain.Review) error {
	m.rows[r.ID] = r
	return nil
}

func (m *memRepo) Get(_ context.Context, tenant string, id domain.ReviewID) (*domain.Review, error) {
	r, ok := m.rows[id]
	if !ok || r.TenantID != tenant {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (m *memRepo) Latest(_ context.Context, tenant string, _ int) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, r := range m.rows {
		if r.TenantID == tenant {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) Paginate(_ context.Context, tenant string, page, pageSize int) (domain.PaginatedResult, error) {
	rows, _ := m.Latest(context.Background(), tenant, 0)
	return domain.PaginatedResult{Data: rows, Total: int64(len(rows)), Page: page, PageSize: pageSize}, nil
}

func (m *memRepo) Summary(_ context.Context, _ string, _ int) (domain.Summary, error) {
	return domain.Summary{TotalReviews: len(m.rows)}, nil
}

type textExtractor struct{}

func (textExtractor) Extract(doc domain.Document) (string, error) {
	switch doc.ContentType {
	case "text/plain":
		return string(doc.Data), nil
	case "application/pdf":
		return "", domain.ErrPDFNotSupported
	default:
		return "", domain.ErrUnsupportedFormat
	}
}

type cannedClient struct{ response string }

func (c cannedClient) Complete(_ context.Context, _ string) (string, error) {
	return c.response, nil
}

type tickClock struct{}

func (tickClock) Now() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

const cannedResponse = `{
  "risks": [{"type": "medium", "category": "Payment Terms", "description": "No late fee", "explanation": "e", "suggestion": "s"}],
  "overallScore": 70,
  "totalClauses": 4,
  "revisedSections": []
}`

func newTestServer(repo *memRepo) *httptest.Server {
	svc := &appreviews.Service{
		Repo:      repo,
		Extractor: textExtractor{},
		AI:        cannedClient{response: cannedResponse},
		Clock:     tickClock{},
	}
	return httptest.NewServer(NewRouter(svc))
}

func multipartUpload(t *testing.T, url, filename, contentType, body string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("content_type", contentType))
	require.NoError(t, w.Close())

	resp, err := http.Post(url, w.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func TestCreateReview_EndToEnd(t *testing.T) {
	repo := newMemRepo()
	srv := newTestServer(repo)
	defer srv.Close()

	body := strings.Repeat("Payment due within 30 days of invoice with no late fee specified. ", 3)
	resp := multipartUpload(t, srv.URL+"/v1/acme/reviews", "contract.txt", "text/plain", body)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rv domain.Review
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rv))
	assert.Equal(t, domain.StatusDone, rv.Status)
	assert.Equal(t, 70, rv.Score)
	require.NotNil(t, rv.Result)
	require.Len(t, rv.Result.Risks, 1)
	assert.Equal(t, "risk-1", rv.Result.Risks[0].ID)

	// the same review is now retrievable
	got, err := http.Get(srv.URL + "/v1/acme/reviews/" + string(rv.ID))
	require.NoError(t, err)
	defer got.Body.Close()
	assert.Equal(t, http.StatusOK, got.StatusCode)
}

func TestCreateReview_PDFIs415(t *testing.T) {
	srv := newTestServer(newMemRepo())
	defer srv.Close()

	resp := multipartUpload(t, srv.URL+"/v1/acme/reviews", "contract.pdf", "application/pdf", "%PDF-1.7")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestCreateReview_ShortTextIs400(t *testing.T) {
	srv := newTestServer(newMemRepo())
	defer srv.Close()

	resp := multipartUpload(t, srv.URL+"/v1/acme/reviews", "short.txt", "text/plain", "too short")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateReview_BadTenantIs400(t *testing.T) {
	srv := newTestServer(newMemRepo())
	defer srv.Close()

	resp := multipartUpload(t, srv.URL+"/v1/bad%20tenant/reviews", "contract.txt", "text/plain",
		strings.Repeat("clause ", 30))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetReview_UnknownIs404(t *testing.T) {
	srv := newTestServer(newMemRepo())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/acme/reviews/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportDownload(t *testing.T) {
	repo := newMemRepo()
	srv := newTestServer(repo)
	defer srv.Close()

	body := strings.Repeat("Payment due within 30 days of invoice with no late fee specified. ", 3)
	create := multipartUpload(t, srv.URL+"/v1/acme/reviews", "contract.txt", "text/plain", body)
	defer create.Body.Close()
	var rv domain.Review
	require.NoError(t, json.NewDecoder(create.Body).Decode(&rv))

	resp, err := http.Get(srv.URL + "/v1/acme/reviews/" + string(rv.ID) + "/report")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "contract_analysis_2026-03-14.txt")
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
}

// A valid key for one tenant must not read another tenant's reviews through
// the URL, even though the row exists.
func TestTenantScopeEnforcedAgainstAuthenticatedTenant(t *testing.T) {
	repo := newMemRepo()
	repo.rows["g1"] = &domain.Review{ID: "g1", TenantID: "globex", Filename: "c.txt", Status: domain.StatusDone}

	svc := &appreviews.Service{
		Repo:      repo,
		Extractor: textExtractor{},
		AI:        cannedClient{response: cannedResponse},
		Clock:     tickClock{},
	}
	keys := map[string]string{"acme": "acme-key", "globex": "globex-key"}
	srv := httptest.NewServer(middleware.APIKeyAuth(keys)(NewRouter(svc)))
	defer srv.Close()

	get := func(key string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/globex/reviews/g1", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+key)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	cross := get("acme-key")
	defer cross.Body.Close()
	assert.Equal(t, http.StatusNotFound, cross.StatusCode)

	own := get("globex-key")
	defer own.Body.Close()
	assert.Equal(t, http.StatusOK, own.StatusCode)
}

func TestReportBeforeResultIs409(t *testing.T) {
	repo := newMemRepo()
	srv := newTestServer(repo)
	defer srv.Close()

	repo.rows["r1"] = &domain.Review{ID: "r1", TenantID: "acme", Filename: "c.txt", Status: domain.StatusRunning}

	resp, err := http.Get(srv.URL + "/v1/acme/reviews/r1/report")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
