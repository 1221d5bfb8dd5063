// Package chi exposes the HTTP API over the go-chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/promptdex/internal/domain"
	domainprompt "github.com/kailas-cloud/promptdex/internal/domain/prompt"
	"github.com/kailas-cloud/promptdex/internal/domain/search/filter"
	healthuc "github.com/kailas-cloud/promptdex/internal/usecase/health"
	promptuc "github.com/kailas-cloud/promptdex/internal/usecase/prompt"
	searchuc "github.com/kailas-cloud/promptdex/internal/usecase/search"
)

// Error codes returned in error responses.
const (
	codeBadRequest     = "bad_request"
	codeNotFound       = "not_found"
	codeInternalError  = "internal_error"
	codeValidationFail = "validation_failed"
)

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server holds the HTTP handlers.
type Server struct {
	search  *searchuc.Service
	prompts *promptuc.Service
	health  *healthuc.Service
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	prompts *promptuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:  search,
		prompts: prompts,
		health:  health,
		logger:  logger,
	}
}

// Routes mounts all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/prompts", func(r chi.Router) {
		r.Get("/search", s.SearchPrompts)
		r.Delete("/search/cache", s.InvalidateSearchCache)

		r.Post("/", s.CreatePrompt)
		r.Get("/{id}", s.GetPrompt)
		r.Delete("/{id}", s.DeactivatePrompt)
		r.Post("/{id}/usage", s.RecordPromptUsage)
	})
}

// SearchPrompts handles GET /api/prompts/search.
func (s *Server) SearchPrompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	semantic := false
	if raw := q.Get("semantic"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFail, "semantic must be a boolean")
			return
		}
		semantic = v
	}

	f, err := filtersFromQuery(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFail, err.Error())
		return
	}

	resp := s.search.Search(r.Context(), q.Get("q"), f, semantic)
	writeJSON(w, http.StatusOK, resp)
}

// InvalidateSearchCache handles DELETE /api/prompts/search/cache.
// With a q parameter it drops the entries for that query; without it the
// whole search cache is flushed.
func (s *Server) InvalidateSearchCache(w http.ResponseWriter, r *http.Request) {
	var err error
	if rawQuery := r.URL.Query().Get("q"); rawQuery != "" {
		err = s.search.InvalidateQuery(r.Context(), rawQuery)
	} else {
		err = s.search.ClearCache(r.Context())
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreatePromptRequest is the payload for POST /api/prompts.
type CreatePromptRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Content      string   `json:"content"`
	CategoryID   string   `json:"category_id"`
	CategoryName string   `json:"category_name"`
	Author       string   `json:"author"`
	Tags         []string `json:"tags"`
}

// PromptResponse is the JSON projection of a stored prompt.
type PromptResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Content      string   `json:"content"`
	CategoryID   string   `json:"category_id,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	Author       string   `json:"author"`
	Tags         []string `json:"tags"`
	UsageCount   int      `json:"usage_count"`
	CreatedAt    string   `json:"created_at"`
	IsActive     bool     `json:"is_active"`
}

// CreatePrompt handles POST /api/prompts.
func (s *Server) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	var req CreatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := s.prompts.Create(r.Context(),
		req.Title, req.Description, req.Content,
		req.CategoryID, req.CategoryName, req.Author, req.Tags)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFail, err.Error())
		return
	}

	w.Header().Set("Location", "/api/prompts/"+p.ID())
	writeJSON(w, http.StatusCreated, promptToResponse(p))
}

// GetPrompt handles GET /api/prompts/{id}.
func (s *Server) GetPrompt(w http.ResponseWriter, r *http.Request) {
	p, err := s.prompts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promptToResponse(p))
}

// DeactivatePrompt handles DELETE /api/prompts/{id} (soft delete).
func (s *Server) DeactivatePrompt(w http.ResponseWriter, r *http.Request) {
	if err := s.prompts.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordPromptUsage handles POST /api/prompts/{id}/usage.
func (s *Server) RecordPromptUsage(w http.ResponseWriter, r *http.Request) {
	if err := s.prompts.RecordUsage(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// filtersFromQuery builds search filters from URL query parameters.
// Invalid dates or counters are a validation error rather than a silently
// ignored filter.
func filtersFromQuery(q map[string][]string) (filter.Filters, error) {
	get := func(key string) string {
		if vs := q[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	f := filter.Filters{
		CategoryID:   get("category"),
		CategoryName: get("category_name"),
		Author:       get("author"),
	}

	for _, raw := range q["tags"] {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}

	for key, dst := range map[string]**time.Time{
		"date_from": &f.DateFrom,
		"date_to":   &f.DateTo,
	} {
		raw := get(key)
		if raw == "" {
			continue
		}
		ts, err := parseDate(raw)
		if err != nil {
			return filter.Filters{}, errors.New(key + " must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		*dst = &ts
	}

	for key, dst := range map[string]**int{
		"min_usage": &f.MinUsage,
		"max_usage": &f.MaxUsage,
	} {
		raw := get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter.Filters{}, errors.New(key + " must be a non-negative integer")
		}
		*dst = &n
	}

	return f, nil
}

func parseDate(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", raw)
}

func promptToResponse(p domainprompt.Prompt) PromptResponse {
	tags := p.Tags()
	if tags == nil {
		tags = []string{}
	}
	return PromptResponse{
		ID:           p.ID(),
		Title:        p.Title(),
		Description:  p.Description(),
		Content:      p.Content(),
		CategoryID:   p.CategoryID(),
		CategoryName: p.CategoryName(),
		Author:       p.Author(),
		Tags:         tags,
		UsageCount:   p.UsageCount(),
		CreatedAt:    p.CreatedAt().Format(time.RFC3339),
		IsActive:     p.IsActive(),
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrPromptNotFound) || errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, codeNotFound, "prompt not found")
		return
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
