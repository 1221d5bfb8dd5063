package health

import "context"

// DBPinger checks storage connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbedChecker verifies the embedding provider can produce a vector.
type EmbedChecker interface {
	Check(ctx context.Context) error
}
