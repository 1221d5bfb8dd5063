// Package health aggregates component checks for the health endpoint.
package health

import (
	"context"
)

// Component status values.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusDown     = "down"
)

// Report is the aggregated health snapshot.
type Report struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Service runs the component checks. The database is load-bearing: if it is
// down the whole service is down. The embedder only degrades semantic
// search, which falls back to lexical, so its failure is a degradation.
type Service struct {
	db    DBPinger
	embed EmbedChecker
}

func New(db DBPinger, embed EmbedChecker) *Service {
	return &Service{db: db, embed: embed}
}

// Check pings every component and aggregates the result.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Status:     StatusOK,
		Components: make(map[string]string),
	}

	if err := s.db.Ping(ctx); err != nil {
		report.Components["database"] = err.Error()
		report.Status = StatusDown
	} else {
		report.Components["database"] = StatusOK
	}

	if s.embed != nil {
		if err := s.embed.Check(ctx); err != nil {
			report.Components["embedder"] = err.Error()
			if report.Status == StatusOK {
				report.Status = StatusDegraded
			}
		} else {
			report.Components["embedder"] = StatusOK
		}
	}

	return report
}

// Healthy reports whether the service can serve search traffic at all.
func (r Report) Healthy() bool {
	return r.Status != StatusDown
}
