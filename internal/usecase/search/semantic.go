package search

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/promptdex/internal/domain/prompt"
	"github.com/kailas-cloud/promptdex/internal/domain/search/filter"
	"github.com/kailas-cloud/promptdex/internal/domain/search/query"
)

// recordFingerprintLimit bounds how much record content feeds the fingerprint.
const recordFingerprintLimit = 1000

// searchSemantic fingerprints the query and every candidate record, ranks by
// cosine similarity and drops records below the threshold. Any error here is
// a fallback trigger for the caller, never a user-visible failure.
func (s *Service) searchSemantic(
	ctx context.Context, parsed query.ParsedQuery, f filter.Filters,
) ([]scoredPrompt, error) {
	queryRes, err := s.embed.Embed(ctx, parsed.SemanticText())
	if err != nil {
		return nil, fmt.Errorf("fingerprint query: %w", err)
	}

	prompts, err := s.prompts.ListActive(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}

	// Score records in parallel: per-record work is independent and
	// side-effect-free. Each goroutine writes only its own slot, and the
	// final sort makes the ordering independent of completion order.
	scores := make([]float64, len(prompts))
	keep := make([]bool, len(prompts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range prompts {
		i := i
		g.Go(func() error {
			res, embErr := s.embed.Embed(gctx, recordText(prompts[i]))
			if embErr != nil {
				return fmt.Errorf("fingerprint record %s: %w", prompts[i].ID(), embErr)
			}

			sim := cosineSimilarity(queryRes.Embedding, res.Embedding)
			if sim >= s.semanticThreshold {
				scores[i] = sim
				keep[i] = true
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var matched []scoredPrompt
	for i, p := range prompts {
		if keep[i] {
			matched = append(matched, scoredPrompt{prompt: p, score: scores[i]})
		}
	}

	sortByRelevance(matched)

	if len(matched) > s.maxResults {
		matched = matched[:s.maxResults]
	}

	return matched, nil
}

// recordText assembles the fingerprint input for a record: title,
// description and the head of the content.
func recordText(p prompt.Prompt) string {
	content := p.Content()
	if len(content) > recordFingerprintLimit {
		content = content[:recordFingerprintLimit]
	}
	return p.Title() + " " + p.Description() + " " + content
}

// cosineSimilarity returns the cosine of the angle between two vectors,
// or 0 for mismatched or zero-magnitude inputs.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
