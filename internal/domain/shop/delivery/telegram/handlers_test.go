package telegram

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/callback"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
	pkgerrors "github.com/Alokchauhan110/Premium-Plan/pkg/errors"
)

// fakeUseCase answers the use case calls the default and callback handlers make.
// Calls it does not override panic through the nil embedded interface
type fakeUseCase struct {
	shopUseCase
	dialogueReply *dto.Reply
	dialogueErr   error
	proofReply    *dto.Reply
	proofErr      error
	checkoutErr   error
	proofs        []dto.Proof
	calls         []string
}

func (f *fakeUseCase) IsAdmin(int64) bool { return false }

func (f *fakeUseCase) HandleDialogueInput(_ context.Context, _ dto.Actor, msg dto.IncomingMessage) (*dto.Reply, error) {
	f.calls = append(f.calls, "dialogue")
	return f.dialogueReply, f.dialogueErr
}

func (f *fakeUseCase) SubmitProof(_ context.Context, _ dto.Actor, proof dto.Proof) (*dto.Reply, error) {
	f.calls = append(f.calls, "proof")
	f.proofs = append(f.proofs, proof)
	return f.proofReply, f.proofErr
}

func (f *fakeUseCase) Browse(context.Context) (*dto.Reply, error) {
	f.calls = append(f.calls, "browse")
	return &dto.Reply{Text: "plans"}, nil
}

func (f *fakeUseCase) MainMenu(context.Context) (*dto.Reply, error) {
	f.calls = append(f.calls, "menu")
	return &dto.Reply{Text: "menu"}, nil
}

func (f *fakeUseCase) SelectOffer(_ context.Context, key string) (*dto.Reply, error) {
	f.calls = append(f.calls, "offer:"+key)
	return &dto.Reply{Text: "offer " + key}, nil
}

func (f *fakeUseCase) Checkout(_ context.Context, _ dto.Actor, key string) (*dto.Reply, error) {
	f.calls = append(f.calls, "checkout:"+key)
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	return &dto.Reply{Text: "pay for " + key}, nil
}

func newTestHandlers(uc shopUseCase, api *fakeBotAPI) *Handlers {
	return &Handlers{
		uc:     uc,
		sender: newSender(api, time.Second, zerolog.Nop()),
		logger: zerolog.Nop(),
	}
}

func messageUpdate(msg models.Message) *models.Update {
	msg.From = &models.User{ID: 77, FirstName: "Buyer"}
	msg.Chat = models.Chat{ID: 77}
	return &models.Update{Message: &msg}
}

func callbackUpdate(data string, withMessage bool) *models.Update {
	query := &models.CallbackQuery{ID: "q-1", From: models.User{ID: 77}, Data: data}
	if withMessage {
		query.Message = models.MaybeInaccessibleMessage{Message: &models.Message{ID: 9, Chat: models.Chat{ID: 77}}}
	}
	return &models.Update{CallbackQuery: query}
}

func TestHandleDefault_DialogueInputComesFirst(t *testing.T) {
	uc := &fakeUseCase{dialogueReply: &dto.Reply{Text: "💵 Send the price"}}
	api := &fakeBotAPI{}
	h := newTestHandlers(uc, api)

	h.HandleDefault(context.Background(), nil, messageUpdate(models.Message{
		Photo: []models.PhotoSize{{FileID: "shot"}},
	}))

	assert.Equal(t, []string{"dialogue"}, uc.calls)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "💵 Send the price", api.sent[0].Text)
}

func TestHandleDefault_DialogueErrorIsReported(t *testing.T) {
	uc := &fakeUseCase{dialogueErr: shoperrors.ErrInvalidPrice}
	api := &fakeBotAPI{}
	h := newTestHandlers(uc, api)

	h.HandleDefault(context.Background(), nil, messageUpdate(models.Message{Text: "abc"}))

	assert.Equal(t, []string{"dialogue"}, uc.calls)
	require.Len(t, api.sent, 1)
	assert.Contains(t, api.sent[0].Text, "Price must be a positive number")
}

func TestHandleDefault_ProofWithoutDialogue(t *testing.T) {
	uc := &fakeUseCase{
		dialogueErr: shoperrors.ErrNoActiveDialogue,
		proofReply:  &dto.Reply{Text: "✅ Screenshot received"},
	}
	api := &fakeBotAPI{}
	h := newTestHandlers(uc, api)

	h.HandleDefault(context.Background(), nil, messageUpdate(models.Message{
		Photo: []models.PhotoSize{{FileID: "small"}, {FileID: "large"}},
	}))

	assert.Equal(t, []string{"dialogue", "proof"}, uc.calls)
	require.Len(t, uc.proofs, 1)
	assert.Equal(t, "large", uc.proofs[0].FileID)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "✅ Screenshot received", api.sent[0].Text)
}

func TestHandleDefault_ProofErrorIsReported(t *testing.T) {
	uc := &fakeUseCase{
		dialogueErr: shoperrors.ErrNoActiveDialogue,
		proofErr:    shoperrors.ErrPaymentUnderReview,
	}
	api := &fakeBotAPI{}
	h := newTestHandlers(uc, api)

	h.HandleDefault(context.Background(), nil, messageUpdate(models.Message{
		Document: &models.Document{FileID: "doc"},
	}))

	require.Len(t, uc.proofs, 1)
	assert.Equal(t, entities.ProofKindDocument, uc.proofs[0].Kind)
	require.Len(t, api.sent, 1)
	assert.Contains(t, api.sent[0].Text, "already under review")
}

func TestHandleDefault_FallbackForFreeText(t *testing.T) {
	uc := &fakeUseCase{dialogueErr: shoperrors.ErrNoActiveDialogue}
	api := &fakeBotAPI{}
	h := newTestHandlers(uc, api)

	h.HandleDefault(context.Background(), nil, messageUpdate(models.Message{Text: "hello"}))

	assert.Equal(t, []string{"dialogue"}, uc.calls)
	require.Len(t, api.sent, 1)
	assert.Equal(t, fallbackText, api.sent[0].Text)

	// stickers and other empty messages get no answer
	h.HandleDefault(context.Background(), nil, messageUpdate(models.Message{}))
	assert.Len(t, api.sent, 1)
}

func TestHandleCallback_Dispatch(t *testing.T) {
	tests := []struct {
		data string
		call string
	}{
		{data: callback.MustEncode(callback.ShowPlans()), call: "browse"},
		{data: callback.MustEncode(callback.MainMenu()), call: "menu"},
		{data: callback.MustEncode(callback.SelectOffer("vip")), call: "offer:vip"},
		{data: callback.MustEncode(callback.Purchase("vip")), call: "checkout:vip"},
		{data: "plan_server_premium", call: "offer:" + entities.AllAccessKey},
		{data: "purchase_server_premium", call: "checkout:" + entities.AllAccessKey},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			uc := &fakeUseCase{}
			api := &fakeBotAPI{}
			h := newTestHandlers(uc, api)

			h.HandleCallback(context.Background(), nil, callbackUpdate(tt.data, true))

			assert.Equal(t, []string{"q-1"}, api.answered)
			assert.Equal(t, []string{tt.call}, uc.calls)
			require.Len(t, api.edited, 1)
			assert.Equal(t, 9, api.edited[0].MessageID)
			assert.Empty(t, api.sent)
		})
	}
}

func TestHandleCallback_UnknownDataOnlyAnswers(t *testing.T) {
	uc := &fakeUseCase{}
	api := &fakeBotAPI{}
	h := newTestHandlers(uc, api)

	h.HandleCallback(context.Background(), nil, callbackUpdate("garbage", true))

	assert.Equal(t, []string{"q-1"}, api.answered)
	assert.Empty(t, uc.calls)
	assert.Empty(t, api.edited)
	assert.Empty(t, api.sent)
}

func TestHandleCallback_SendsWhenEditFails(t *testing.T) {
	uc := &fakeUseCase{}
	api := &fakeBotAPI{editErr: errors.New("bad request, Bad Request: message can't be edited")}
	h := newTestHandlers(uc, api)

	h.HandleCallback(context.Background(), nil, callbackUpdate(callback.MustEncode(callback.ShowPlans()), true))

	require.Len(t, api.sent, 1)
	assert.Equal(t, "plans", api.sent[0].Text)
	assert.Equal(t, int64(77), api.sent[0].ChatID)
}

func TestHandleCallback_SendsWithoutMessage(t *testing.T) {
	uc := &fakeUseCase{}
	api := &fakeBotAPI{}
	h := newTestHandlers(uc, api)

	h.HandleCallback(context.Background(), nil, callbackUpdate(callback.MustEncode(callback.Purchase("vip")), false))

	assert.Empty(t, api.edited)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "pay for vip", api.sent[0].Text)
}

func TestHandleCallback_ErrorReplacesMessage(t *testing.T) {
	uc := &fakeUseCase{checkoutErr: fmt.Errorf("%w: vip", shoperrors.ErrOfferNotFound)}
	api := &fakeBotAPI{}
	h := newTestHandlers(uc, api)

	h.HandleCallback(context.Background(), nil, callbackUpdate(callback.MustEncode(callback.Purchase("vip")), true))

	require.Len(t, api.edited, 1)
	assert.Contains(t, api.edited[0].Text, "no longer available")
	assert.NotNil(t, api.edited[0].ReplyMarkup)
}

func TestErrorReply(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		verbose  bool
		contains string
	}{
		{name: "offer gone", err: fmt.Errorf("%w: vip", shoperrors.ErrOfferNotFound), contains: "no longer available"},
		{name: "bot not admin", err: fmt.Errorf("%w: status member", shoperrors.ErrBotNotAdmin), contains: "I need to be an admin"},
		{name: "not admin", err: shoperrors.ErrNotAdmin, contains: "not authorized"},
		{name: "validation", err: shoperrors.ErrInvalidPrice, contains: "❌ Price must be a positive number"},
		{name: "state", err: shoperrors.ErrPaymentUnderReview, contains: "already under review"},
		{name: "conflict", err: shoperrors.ErrChannelKeyTaken, contains: "already exists"},
		{name: "provider", err: pkgerrors.WrapProviderError(errors.New("Bad Request: <rights>"), "telegram x failed"), contains: "&lt;rights&gt;"},
		{name: "internal hidden", err: errors.New("db down"), contains: "Something went wrong"},
		{name: "internal for admins", err: errors.New("db down"), verbose: true, contains: "<code>db down</code>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := errorReply(tt.err, tt.verbose)
			assert.Contains(t, reply.Text, tt.contains)
		})
	}
}

func TestErrorReply_OfferGoneLinksToPlans(t *testing.T) {
	reply := errorReply(shoperrors.ErrOfferNotFound, false)
	require.NotNil(t, reply.Keyboard)

	data, err := callback.Decode(reply.Keyboard.Inline[0][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, callback.ShowPlans(), data)
}

func TestCommandArgs(t *testing.T) {
	assert.Nil(t, commandArgs("/approve"))
	assert.Equal(t, []string{"pay-1"}, commandArgs("/approve pay-1"))
	assert.Equal(t, []string{"pay-1", "blurry", "photo"}, commandArgs("/reject  pay-1 blurry   photo"))
	assert.Nil(t, commandArgs("💎 Premium Plans"))
}

func TestActorFromUser(t *testing.T) {
	actor := actorFromUser(&models.User{ID: 5, FirstName: "Ann", LastName: "Lee", Username: "ann"})
	assert.Equal(t, dto.Actor{ID: 5, DisplayName: "Ann Lee", Handle: "ann"}, actor)

	actor = actorFromUser(&models.User{ID: 6, Username: "nameless"})
	assert.Equal(t, "nameless", actor.DisplayName)
}

func TestIncomingMessage_Forward(t *testing.T) {
	msg := &models.Message{
		ForwardOrigin: &models.MessageOrigin{
			Type: models.MessageOriginTypeChannel,
			MessageOriginChannel: &models.MessageOriginChannel{
				Chat: models.Chat{ID: -1001, Title: "VIP", Username: "vip"},
			},
		},
	}

	in := incomingMessage(msg)
	require.NotNil(t, in.Forward)
	assert.Equal(t, dto.ForwardFromChannel, in.Forward.Kind)
	assert.Equal(t, int64(-1001), in.Forward.ChatID)
	assert.Equal(t, "VIP", in.Forward.Title)

	in = incomingMessage(&models.Message{
		ForwardOrigin: &models.MessageOrigin{Type: models.MessageOriginTypeUser},
	})
	require.NotNil(t, in.Forward)
	assert.Equal(t, dto.ForwardFromUser, in.Forward.Kind)
	assert.Zero(t, in.Forward.ChatID)

	in = incomingMessage(&models.Message{Text: "VIP Content"})
	assert.Nil(t, in.Forward)
	assert.Equal(t, "VIP Content", in.Text)
}

func TestProofFromMessage(t *testing.T) {
	proof, ok := proofFromMessage(&models.Message{Photo: []models.PhotoSize{
		{FileID: "small"}, {FileID: "large"},
	}})
	require.True(t, ok)
	assert.Equal(t, dto.Proof{FileID: "large", Kind: entities.ProofKindPhoto}, proof)

	proof, ok = proofFromMessage(&models.Message{Document: &models.Document{FileID: "doc"}})
	require.True(t, ok)
	assert.Equal(t, entities.ProofKindDocument, proof.Kind)

	_, ok = proofFromMessage(&models.Message{Text: "hello"})
	assert.False(t, ok)
}

func TestUpdateUser(t *testing.T) {
	from := &models.User{ID: 1}
	assert.Equal(t, from, updateUser(&models.Update{Message: &models.Message{From: from}}))
	assert.Equal(t, int64(2), updateUser(&models.Update{CallbackQuery: &models.CallbackQuery{From: models.User{ID: 2}}}).ID)
	assert.Nil(t, updateUser(&models.Update{}))
}
