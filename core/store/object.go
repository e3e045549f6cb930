package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"scaffold-wizard/core/storage"
	"scaffold-wizard/core/wizard"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// objectStore keeps one JSON object per configuration under a key prefix
// in an object storage bucket. Object puts are atomic on the provider
// side, which gives the same no-partial-read guarantee as the file
// backend's write-then-rename.
type objectStore struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger

	mu    sync.Mutex
	ready bool
}

// NewObjectStore creates an object-storage-backed store.
func NewObjectStore(client storage.Client, bucket, prefix string, logger *zap.Logger) Store {
	return &objectStore{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

func (s *objectStore) key(id string) string {
	return path.Join(s.prefix, id+".json")
}

// ensureBucket creates the target bucket on the first write. A failed
// attempt is retried on the next write; reads against a missing bucket
// already surface the provider's not-found error.
func (s *objectStore) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := storage.EnsureBucket(ctx, s.client, s.bucket); err != nil {
		return err
	}
	s.ready = true
	return nil
}

func (s *objectStore) Save(ctx context.Context, cfg *wizard.Config) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("failed to prepare configuration bucket: %w", err)
	}

	id := uuid.NewString()

	record := *cfg
	record.ID = id
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	record.Hash = wizard.ComputeHash(cfg)

	payload, err := json.Marshal(&record)
	if err != nil {
		return "", fmt.Errorf("failed to serialize configuration: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.key(id),
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to write configuration record: %w", err)
	}

	s.logger.Info("Configuration saved",
		zap.String("id", id),
		zap.String("entity_id", record.EntityID),
		zap.String("hash", record.Hash),
	)
	return id, nil
}

func (s *objectStore) Load(ctx context.Context, id string) (*wizard.Config, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration %s: %w", id, err)
	}
	defer obj.Close()

	payload, err := io.ReadAll(obj)
	if err != nil {
		// Minio reports missing keys on read, not on open.
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("configuration %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read configuration %s: %w", id, err)
	}

	return decodeRecord(payload, id)
}

func (s *objectStore) History(ctx context.Context, entityID string) ([]GenerationSummary, error) {
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix + "/",
		Recursive: true,
	})

	var summaries []GenerationSummary
	for info := range objects {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to scan configuration records: %w", info.Err)
		}
		if !strings.HasSuffix(info.Key, ".json") {
			continue
		}

		id := strings.TrimSuffix(path.Base(info.Key), ".json")
		cfg, err := s.Load(ctx, id)
		if err != nil {
			s.logger.Warn("Skipping corrupt configuration record",
				zap.String("key", info.Key), zap.Error(err))
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
