package s3

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
)

type mockUploader struct {
	key         string
	contentType string
	data        []byte
	err         error
}

func (m *mockUploader) PutObject(_ context.Context, objectKey, contentType string, data []byte) error {
	m.key = objectKey
	m.contentType = contentType
	m.data = data
	return m.err
}

func TestProofArchive_Archive(t *testing.T) {
	uploader := &mockUploader{}
	archive := NewProofArchive(uploader, zerolog.Nop())
	archive.now = func() time.Time { return time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC) }

	key, err := archive.Archive(context.Background(), "p-1", &dto.File{Name: "receipt.PDF", Data: []byte("pdf")})
	require.NoError(t, err)

	assert.Equal(t, "proofs/2024/03/07/p-1.pdf", key)
	assert.Equal(t, key, uploader.key)
	assert.Equal(t, "application/pdf", uploader.contentType)
	assert.Equal(t, []byte("pdf"), uploader.data)
}

func TestProofArchive_KeepsExplicitContentType(t *testing.T) {
	uploader := &mockUploader{}
	archive := NewProofArchive(uploader, zerolog.Nop())

	_, err := archive.Archive(context.Background(), "p-2", &dto.File{Name: "photo", ContentType: "image/jpeg", Data: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", uploader.contentType)
}

func TestProofArchive_UploadFailure(t *testing.T) {
	uploader := &mockUploader{err: errors.New("connection refused")}
	archive := NewProofArchive(uploader, zerolog.Nop())

	_, err := archive.Archive(context.Background(), "p-3", &dto.File{Name: "a.jpg"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
