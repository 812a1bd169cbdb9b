package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appreviews "github.com/bryanwahyu/clausecheck/internal/application/reviews"
	domai "github.com/bryanwahyu/clausecheck/internal/domain/ai"
	"github.com/bryanwahyu/clausecheck/internal/domain/analysis"
	domain "github.com/bryanwahyu/clausecheck/internal/domain/review"
	"github.com/bryanwahyu/clausecheck/internal/middleware"
)

type Router struct {
	svc *appreviews.Service
}

func NewRouter(svc *appreviews.Service) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Use(requireTenant)
		rt.Post("/reviews", r.wrap(r.handleCreateReview))
		rt.Get("/reviews", r.wrap(r.handleList))
		rt.Get("/reviews/latest", r.wrap(r.handleLatest))
		rt.Get("/reviews/{id}", r.wrap(r.handleGet))
		rt.Get("/reviews/{id}/report", r.wrap(r.handleReport))
		rt.Get("/reviews/{id}/revised", r.wrap(r.handleRevised))
		rt.Get("/summary", r.wrap(r.handleSummary))
	})

	return mux
}

// requireTenant ensures the {tenant} URL segment matches the tenant the API
// key resolved to. When auth is disabled no tenant is in the context and the
// request passes through. A mismatch answers 404 so one tenant cannot learn
// which review IDs exist under another.
func requireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		authed := middleware.GetTenantFromContext(req.Context())
		if authed != "" && authed != chi.URLParam(req, "tenant") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, req)
	})
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap translates domain sentinel errors into HTTP status codes. Every
// pipeline stage fails fast; whatever error reaches here is the first one.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, sql.ErrNoRows):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrNoResult):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, domain.ErrPDFNotSupported),
			errors.Is(err, domain.ErrUnsupportedFormat):
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		case errors.Is(err, domain.ErrTextTooShort),
			errors.Is(err, domain.ErrReadFailed):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domai.ErrQuotaExceeded):
			http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
		case errors.Is(err, domai.ErrUpstream),
			errors.Is(err, domai.ErrEmptyResponse),
			errors.Is(err, analysis.ErrMalformedResponse):
			http.Error(w, err.Error(), http.StatusBadGateway)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /v1/{tenant}/reviews
// Multipart upload: "file" part carries the document; the declared MIME type
// comes from the part header, or a "content_type" form field when the client
// needs to override it. The pipeline runs synchronously: one upload, one
// completion exchange, one response.
func (r *Router) handleCreateReview(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	if err := req.ParseMultipartForm(32 << 20); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrReadFailed, err)
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: missing file part: %v", domain.ErrReadFailed, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrReadFailed, err)
	}

	if err := middleware.ValidateFilename(header.Filename); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	contentType := header.Header.Get("Content-Type")
	if v := req.FormValue("content_type"); v != "" {
		contentType = v
	}

	rv, err := r.svc.Review(req.Context(), appreviews.ReviewCommand{
		TenantID:    tenant,
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		middleware.IncrementReviewsFailed()
		return err
	}
	middleware.IncrementReviews()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(rv)
}

// GET /v1/{tenant}/reviews?page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.svc.Paginate(req.Context(), tenant, page, size)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/reviews/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.svc.Latest(req.Context(), tenant, limit)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/reviews/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	rv, err := r.svc.Get(req.Context(), tenant, domain.ReviewID(id))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(rv)
}

// GET /v1/{tenant}/reviews/{id}/report
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	name, body, err := r.svc.Report(req.Context(), tenant, domain.ReviewID(id))
	if err != nil {
		return err
	}
	return writeAttachment(w, name, body)
}

// GET /v1/{tenant}/reviews/{id}/revised
func (r *Router) handleRevised(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	name, body, err := r.svc.RevisedDocument(req.Context(), tenant, domain.ReviewID(id))
	if err != nil {
		return err
	}
	return writeAttachment(w, name, body)
}

// GET /v1/{tenant}/summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))
	days = middleware.ValidateDays(days)

	summary, err := r.svc.Summary(req.Context(), tenant, days)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(summary)
}

func writeAttachment(w http.ResponseWriter, name, body string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, err := io.WriteString(w, body)
	return err
}
