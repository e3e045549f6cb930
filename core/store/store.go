package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scaffold-wizard/core/storage"
	"scaffold-wizard/core/wizard"

	"go.uber.org/zap"
)

// ErrNotFound is returned by Load when no record exists for the identifier.
var ErrNotFound = errors.New("configuration not found")

// Store persists wizard configurations. Saves are append-only: every call
// writes a new record under a freshly generated identifier, so saved
// configurations are immutable and the full generation history is kept.
type Store interface {
	// Save persists the configuration under a new identifier and returns it.
	Save(ctx context.Context, cfg *wizard.Config) (string, error)

	// Load retrieves a configuration by identifier. Returns ErrNotFound
	// (wrapped) when no record exists.
	Load(ctx context.Context, id string) (*wizard.Config, error)

	// History returns one summary per saved configuration of the entity,
	// newest first. Corrupt records are skipped with a warning.
	History(ctx context.Context, entityID string) ([]GenerationSummary, error)
}

// GenerationSummary is one row of an entity's generation history.
type GenerationSummary struct {
	// ID is the record identifier.
	ID string `json:"id"`

	// EntityID is the entity the configuration targets.
	EntityID string `json:"entity_id"`

	// GeneratedAt is the time the record was saved.
	GeneratedAt time.Time `json:"generated_at"`

	// Hash is the configuration content hash.
	Hash string `json:"hash"`
}

// New creates the configured store backend: "file" (default) or "object".
func New(cfg Config, client storage.Client, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Dir, logger)
	case "object":
		if client == nil {
			return nil, fmt.Errorf("object store backend requires a storage client")
		}
		return NewObjectStore(client, cfg.Bucket, cfg.Prefix, logger), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
