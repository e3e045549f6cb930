package generate

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"scaffold-wizard/core/storage"

	"github.com/minio/minio-go/v7"
)

// Packager bundles generated files into a downloadable archive.
type Packager interface {
	// CreateArchive writes a ZIP named after name into outputDir and
	// returns its path. Files are archived in deterministic path order.
	CreateArchive(name string, files []GeneratedFile, outputDir string) (string, error)
}

type zipPackager struct{}

// NewPackager creates the ZIP packager.
func NewPackager() Packager {
	return &zipPackager{}
}

func (p *zipPackager) CreateArchive(name string, files []GeneratedFile, outputDir string) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("nothing to archive")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	ordered := make([]GeneratedFile, len(files))
	copy(ordered, files)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].RelativePath < ordered[j].RelativePath
	})

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, file := range ordered {
		entry, err := writer.Create(file.RelativePath)
		if err != nil {
			return "", fmt.Errorf("failed to add %s to archive: %w", file.RelativePath, err)
		}
		if _, err := entry.Write([]byte(file.Content)); err != nil {
			return "", fmt.Errorf("failed to write %s to archive: %w", file.RelativePath, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize archive: %w", err)
	}

	archivePath := filepath.Join(outputDir, name+".zip")
	if err := os.WriteFile(archivePath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive %s: %w", archivePath, err)
	}
	return archivePath, nil
}

// Uploader pushes finished archives to object storage so they can be
// downloaded from somewhere other than the generating host.
type Uploader struct {
	client storage.Client
	bucket string
	prefix string
}

// NewUploader creates an archive uploader targeting bucket/prefix.
func NewUploader(client storage.Client, bucket, prefix string) *Uploader {
	return &Uploader{client: client, bucket: bucket, prefix: prefix}
}

// Upload stores the archive at archivePath under the configured prefix and
// returns the object key.
func (u *Uploader) Upload(ctx context.Context, archivePath string) (string, error) {
	payload, err := os.ReadFile(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to read archive %s: %w", archivePath, err)
	}

	if err := storage.EnsureBucket(ctx, u.client, u.bucket); err != nil {
		return "", fmt.Errorf("failed to prepare archive bucket: %w", err)
	}

	key := u.prefix + "/" + filepath.Base(archivePath)
	_, err = u.client.PutObject(ctx, u.bucket, key,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/zip"})
	if err != nil {
		return "", fmt.Errorf("failed to upload archive %s: %w", key, err)
	}
	return key, nil
}
