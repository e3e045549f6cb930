package generate

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"scaffold-wizard/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPackager_CreateArchive(t *testing.T) {
	p := NewPackager()
	dir := t.TempDir()

	files := []GeneratedFile{
		{RelativePath: "views/orders.html", Type: FileTypeView, Content: "<section/>"},
		{RelativePath: "controllers/orders_controller.go", Type: FileTypeController, Content: "package sales"},
	}

	archivePath, err := p.CreateArchive("orders", files, dir)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "orders.zip"), archivePath)

	reader, err := zip.OpenReader(archivePath)
	assert.NoError(t, err)
	defer reader.Close()

	assert.Len(t, reader.File, 2)
	// Entries are ordered by path regardless of input order.
	assert.Equal(t, "controllers/orders_controller.go", reader.File[0].Name)
	assert.Equal(t, "views/orders.html", reader.File[1].Name)

	entry, err := reader.File[0].Open()
	assert.NoError(t, err)
	content, err := io.ReadAll(entry)
	assert.NoError(t, err)
	entry.Close()
	assert.Equal(t, "package sales", string(content))
}

func TestPackager_CreateArchive_Empty(t *testing.T) {
	p := NewPackager()

	archivePath, err := p.CreateArchive("orders", nil, t.TempDir())
	assert.Error(t, err)
	assert.Empty(t, archivePath)
}

func TestUploader_Upload(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "orders.zip")
	assert.NoError(t, os.WriteFile(archivePath, []byte("zip-bytes"), 0o644))

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "wizard-bucket").Return(true, nil)
	client.On("PutObject", mock.Anything, "wizard-bucket", "archives/orders.zip",
		mock.Anything, int64(len("zip-bytes")), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	u := NewUploader(client, "wizard-bucket", "archives")
	key, err := u.Upload(context.Background(), archivePath)
	assert.NoError(t, err)
	assert.Equal(t, "archives/orders.zip", key)

	client.AssertExpectations(t)
}

func TestUploader_Upload_CreatesMissingBucket(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "orders.zip")
	assert.NoError(t, os.WriteFile(archivePath, []byte("zip-bytes"), 0o644))

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "wizard-bucket").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "wizard-bucket", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "wizard-bucket", "archives/orders.zip",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	u := NewUploader(client, "wizard-bucket", "archives")
	key, err := u.Upload(context.Background(), archivePath)
	assert.NoError(t, err)
	assert.Equal(t, "archives/orders.zip", key)

	client.AssertExpectations(t)
}

func TestUploader_Upload_MissingArchive(t *testing.T) {
	u := NewUploader(new(mocks.Client), "wizard-bucket", "archives")

	key, err := u.Upload(context.Background(), filepath.Join(t.TempDir(), "gone.zip"))
	assert.Error(t, err)
	assert.Empty(t, key)
}
