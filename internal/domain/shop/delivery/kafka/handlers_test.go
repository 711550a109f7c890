package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
)

type fakeNotifier struct {
	received []dto.ProofNotification
	err      error
}

func (f *fakeNotifier) NotifyAdmins(_ context.Context, n dto.ProofNotification) error {
	f.received = append(f.received, n)
	return f.err
}

func TestHandleProofNotification(t *testing.T) {
	notifier := &fakeNotifier{}
	h := NewHandlers(notifier, zerolog.Nop())

	data, err := json.Marshal(dto.ProofNotification{
		PaymentID: "pay-1",
		UserID:    7,
		PlanKey:   "crypto_signals",
		FileID:    "file-1",
		Kind:      entities.ProofKindPhoto,
	})
	require.NoError(t, err)

	require.NoError(t, h.HandleProofNotification(context.Background(), data))
	require.Len(t, notifier.received, 1)
	assert.Equal(t, "pay-1", notifier.received[0].PaymentID)
	assert.Equal(t, int64(7), notifier.received[0].UserID)
	assert.Equal(t, entities.ProofKindPhoto, notifier.received[0].Kind)
}

func TestHandleProofNotification_InvalidPayload(t *testing.T) {
	notifier := &fakeNotifier{}
	h := NewHandlers(notifier, zerolog.Nop())

	err := h.HandleProofNotification(context.Background(), []byte("{not json"))
	require.Error(t, err)
	assert.Empty(t, notifier.received)

	err = h.HandleProofNotification(context.Background(), []byte(`{"user_id": 7}`))
	require.Error(t, err)
	assert.Empty(t, notifier.received)
}

func TestHandleProofNotification_NotifierError(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("all admins unreachable")}
	h := NewHandlers(notifier, zerolog.Nop())

	err := h.HandleProofNotification(context.Background(), []byte(`{"payment_id": "pay-2"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all admins unreachable")
}
