package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"scaffold-wizard/core/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fileStore keeps one JSON record per configuration in a directory.
// Records are written to a temp file and renamed into place, so a
// concurrent Load or History scan never observes a partial record.
type fileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string, logger *zap.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &fileStore{dir: dir, logger: logger}, nil
}

func (s *fileStore) Save(ctx context.Context, cfg *wizard.Config) (string, error) {
	id := uuid.NewString()

	record := *cfg
	record.ID = id
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	record.Hash = wizard.ComputeHash(cfg)

	payload, err := json.MarshalIndent(&record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize configuration: %w", err)
	}

	final := filepath.Join(s.dir, id+".json")
	tmp := final + ".tmp"

	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return "", fmt.Errorf("failed to write configuration record: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize configuration record: %w", err)
	}

	s.logger.Info("Configuration saved",
		zap.String("id", id),
		zap.String("entity_id", record.EntityID),
		zap.String("hash", record.Hash),
	)
	return id, nil
}

func (s *fileStore) Load(ctx context.Context, id string) (*wizard.Config, error) {
	payload, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read configuration %s: %w", id, err)
	}

	return decodeRecord(payload, id)
}

func (s *fileStore) History(ctx context.Context, entityID string) ([]GenerationSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan store directory: %w", err)
	}

	var summaries []GenerationSummary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		payload, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.logger.Warn("Skipping unreadable configuration record",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		cfg, err := decodeRecord(payload, id)
		if err != nil {
			s.logger.Warn("Skipping corrupt configuration record",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		if !strings.EqualFold(cfg.EntityID, entityID) {
			continue
		}
		summaries = append(summaries, GenerationSummary{
			ID:          cfg.ID,
			EntityID:    cfg.EntityID,
			GeneratedAt: cfg.CreatedAt,
			Hash:        cfg.Hash,
		})
	}

	sortSummaries(summaries)
	return summaries, nil
}

// decodeRecord parses a stored record and rejects structurally empty ones.
func decodeRecord(payload []byte, id string) (*wizard.Config, error) {
	var cfg wizard.Config
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration %s: %w", id, err)
	}
	if cfg.EntityID == "" {
		return nil, fmt.Errorf("configuration %s is empty after decoding", id)
	}
	if cfg.ID == "" {
		cfg.ID = id
	}
	return &cfg, nil
}

func sortSummaries(summaries []GenerationSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].GeneratedAt.After(summaries[j].GeneratedAt)
	})
}
