package search

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/promptdex/internal/domain"
	"github.com/kailas-cloud/promptdex/internal/domain/search/filter"
	"github.com/kailas-cloud/promptdex/internal/domain/search/mode"
	"github.com/kailas-cloud/promptdex/internal/domain/search/query"
	"github.com/kailas-cloud/promptdex/internal/logger"
	"github.com/kailas-cloud/promptdex/internal/metrics"
)

// Defaults applied by New; override with the With* builder methods.
const (
	defaultMaxResults        = 100
	defaultCacheTTL          = 5 * time.Minute
	defaultSemanticThreshold = 0.3
	defaultSnippetMaxLen     = 200
)

// contentPreviewLimit caps the content field in result views.
const contentPreviewLimit = 500

// Service executes ranked searches over the prompt corpus with read-through
// response caching. Safe for concurrent use.
type Service struct {
	prompts PromptLister
	cache   Cache
	embed   Embedder

	maxResults        int
	cacheTTL          time.Duration
	semanticThreshold float64
	snippetMaxLen     int
}

func New(prompts PromptLister, cache Cache, embed Embedder) *Service {
	return &Service{
		prompts:           prompts,
		cache:             cache,
		embed:             embed,
		maxResults:        defaultMaxResults,
		cacheTTL:          defaultCacheTTL,
		semanticThreshold: defaultSemanticThreshold,
		snippetMaxLen:     defaultSnippetMaxLen,
	}
}

// WithLimits overrides the page cap and cache TTL. Non-positive values keep
// the current setting.
func (s *Service) WithLimits(maxResults int, cacheTTL time.Duration) *Service {
	if maxResults > 0 {
		s.maxResults = maxResults
	}
	if cacheTTL > 0 {
		s.cacheTTL = cacheTTL
	}
	return s
}

// WithSemanticThreshold overrides the minimum cosine similarity for a
// semantic hit.
func (s *Service) WithSemanticThreshold(threshold float64) *Service {
	if threshold > 0 {
		s.semanticThreshold = threshold
	}
	return s
}

// WithSnippetLength overrides the snippet truncation window.
func (s *Service) WithSnippetLength(maxLen int) *Service {
	if maxLen > 0 {
		s.snippetMaxLen = maxLen
	}
	return s
}

// Search runs one query against the corpus and returns a complete response.
// It never returns an error: every failure mode is absorbed into the
// response's search_type and error fields so callers always get a payload.
func (s *Service) Search(ctx context.Context, rawQuery string, f filter.Filters, semantic bool) Response {
	start := time.Now()
	log := logger.FromContext(ctx)

	m := mode.Lexical
	if semantic {
		m = mode.Semantic
	}

	parsed := query.Parse(rawQuery)
	if parsed.IsEmpty() {
		metrics.SearchesTotal.WithLabelValues(SearchTypeEmpty, "ok").Inc()
		return Response{
			Results:        []ResultView{},
			Query:          rawQuery,
			SearchType:     SearchTypeEmpty,
			ExecutionTime:  time.Since(start).Seconds(),
			FiltersApplied: f,
		}
	}

	key := cacheKey(rawQuery, f, m)
	if cached, ok := s.cacheLookup(ctx, key); ok {
		cached.ExecutionTime = time.Since(start).Seconds()
		metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
		metrics.SearchesTotal.WithLabelValues(cached.SearchType, "ok").Inc()
		return cached
	}
	metrics.SearchCacheTotal.WithLabelValues("miss").Inc()

	searchType := SearchTypeLexical
	var (
		matched []scoredPrompt
		err     error
	)

	if semantic {
		matched, err = s.searchSemantic(ctx, parsed, f)
		if err == nil {
			searchType = SearchTypeSemantic
		} else {
			// Semantic failures degrade silently to the lexical path;
			// the response reports the mode that actually served it.
			log.Warn("semantic search failed, falling back to lexical",
				zap.String("query", rawQuery), zap.Error(err))
			metrics.SemanticFallbacksTotal.Inc()
			matched, err = s.searchLexical(ctx, parsed, f)
		}
	} else {
		matched, err = s.searchLexical(ctx, parsed, f)
	}

	if err != nil {
		log.Error("search failed", zap.String("query", rawQuery), zap.Error(err))
		metrics.SearchesTotal.WithLabelValues(searchType, "error").Inc()
		return Response{
			Results:        []ResultView{},
			Query:          rawQuery,
			SearchType:     SearchTypeError,
			ExecutionTime:  time.Since(start).Seconds(),
			FiltersApplied: f,
			Error:          "search temporarily unavailable",
		}
	}

	matched = dedupeByTitle(matched)

	total := len(matched)
	if total > s.maxResults {
		matched = matched[:s.maxResults]
	}

	terms := parsed.Terms()
	views := make([]ResultView, 0, len(matched))
	for _, sp := range matched {
		views = append(views, s.buildView(sp, terms))
	}

	resp := Response{
		Results:        views,
		Total:          total,
		Query:          rawQuery,
		SearchType:     searchType,
		ExecutionTime:  time.Since(start).Seconds(),
		FiltersApplied: f,
		Suggestions:    buildSuggestions(parsed, views),
	}

	s.cacheStore(ctx, key, resp)

	metrics.SearchesTotal.WithLabelValues(searchType, "ok").Inc()
	metrics.SearchDuration.WithLabelValues(searchType).Observe(resp.ExecutionTime)

	return resp
}

// InvalidateQuery drops cached responses for one query under both search
// modes and the zero filter set.
func (s *Service) InvalidateQuery(ctx context.Context, rawQuery string) error {
	for _, m := range []mode.Mode{mode.Lexical, mode.Semantic} {
		if err := s.cache.Delete(ctx, cacheKey(rawQuery, filter.Filters{}, m)); err != nil {
			return err
		}
	}
	return nil
}

// ClearCache drops every cached search response.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

func (s *Service) cacheLookup(ctx context.Context, key string) (Response, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			// Cache trouble is a miss, never a failure.
			logger.FromContext(ctx).Warn("search cache read failed", zap.Error(err))
		}
		return Response{}, false
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		logger.FromContext(ctx).Warn("search cache entry corrupt", zap.String("key", key), zap.Error(err))
		return Response{}, false
	}
	return resp, true
}

func (s *Service) cacheStore(ctx context.Context, key string, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.FromContext(ctx).Warn("search response marshal failed", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		logger.FromContext(ctx).Warn("search cache write failed", zap.Error(err))
	}
}

func (s *Service) buildView(sp scoredPrompt, terms []string) ResultView {
	p := sp.prompt

	content := p.Content()
	if len(content) > contentPreviewLimit {
		content = content[:contentPreviewLimit] + "..."
	}

	tags := p.Tags()
	if tags == nil {
		tags = []string{}
	}

	return ResultView{
		ID:             p.ID(),
		Title:          p.Title(),
		Description:    p.Description(),
		Content:        content,
		Category:       p.CategoryName(),
		Author:         p.Author(),
		Tags:           tags,
		UsageCount:     p.UsageCount(),
		CreatedAt:      p.CreatedAt().Format(time.RFC3339),
		RelevanceScore: sp.score,
		MatchSnippets:  buildSnippets(p, terms, s.snippetMaxLen),
	}
}

// dedupeByTitle keeps the first (highest ranked) record for each exact
// title. Later duplicates are dropped without affecting the order of
// survivors.
func dedupeByTitle(matched []scoredPrompt) []scoredPrompt {
	seen := make(map[string]struct{}, len(matched))
	out := matched[:0]
	for _, sp := range matched {
		title := sp.prompt.Title()
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		out = append(out, sp)
	}
	return out
}
