package search

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/kailas-cloud/promptdex/internal/domain/search/filter"
	"github.com/kailas-cloud/promptdex/internal/domain/search/mode"
)

// cacheSchemaVersion invalidates all cached responses when the payload
// shape changes. Bump on any Response field change.
const cacheSchemaVersion = "1"

type cacheKeyPayload struct {
	Query   string         `json:"query"`
	Filters filter.Filters `json:"filters"`
	Mode    string         `json:"mode"`
	Version string         `json:"version"`
}

// cacheKey derives a stable key from the normalized query, canonical
// filters and search mode. Struct marshaling keeps field order fixed, so
// equal inputs always hash identically.
func cacheKey(rawQuery string, f filter.Filters, m mode.Mode) string {
	payload := cacheKeyPayload{
		Query:   strings.ToLower(strings.TrimSpace(rawQuery)),
		Filters: f.Canonical(),
		Mode:    string(m),
		Version: cacheSchemaVersion,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// Filters marshaling cannot fail; fall back to the raw inputs.
		data = []byte(payload.Query + "|" + payload.Mode)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
