// Package s3 contains the payment proof archive
package s3

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
)

// ObjectUploader uploads raw objects to a bucket
type ObjectUploader interface {
	PutObject(ctx context.Context, objectKey, contentType string, data []byte) error
}

// ProofArchive implements deps.ProofArchive
type ProofArchive struct {
	uploader ObjectUploader
	now      func() time.Time
	logger   zerolog.Logger
}

// NewProofArchive creates a new proof archive over uploader
func NewProofArchive(uploader ObjectUploader, logger zerolog.Logger) *ProofArchive {
	return &ProofArchive{
		uploader: uploader,
		now:      time.Now,
		logger:   logger,
	}
}

// Archive stores file under proofs/{YYYY}/{MM}/{DD}/{payment_id}{ext}
func (a *ProofArchive) Archive(ctx context.Context, paymentID string, file *dto.File) (string, error) {
	contentType := file.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(file.Name))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := a.now().UTC()
	objectKey := fmt.Sprintf(
		"proofs/%d/%02d/%02d/%s%s",
		now.Year(),
		now.Month(),
		now.Day(),
		paymentID,
		strings.ToLower(path.Ext(file.Name)),
	)

	if err := a.uploader.PutObject(ctx, objectKey, contentType, file.Data); err != nil {
		return "", fmt.Errorf("failed to archive proof of payment %s: %w", paymentID, err)
	}

	a.logger.Info().
		Str("payment_id", paymentID).
		Str("object_key", objectKey).
		Msg("Payment proof archived")

	return objectKey, nil
}
