package telegram

import (
	"context"
	"errors"
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/callback"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/consts"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/usecase/buissines"
	pkgerrors "github.com/Alokchauhan110/Premium-Plan/pkg/errors"
)

const fallbackText = "🤖 Use the menu buttons or type /help to see what I can do."

// shopUseCase is the part of the shop use case the handlers drive
type shopUseCase interface {
	IsAdmin(userID int64) bool
	Start(ctx context.Context, actor dto.Actor) (*dto.Reply, error)
	Help(ctx context.Context, actor dto.Actor) (*dto.Reply, error)
	MainMenu(ctx context.Context) (*dto.Reply, error)
	Support(ctx context.Context) (*dto.Reply, error)
	Health(ctx context.Context) (*dto.Reply, error)
	Browse(ctx context.Context) (*dto.Reply, error)
	DemoLinks(ctx context.Context) (*dto.Reply, error)
	SelectOffer(ctx context.Context, key string) (*dto.Reply, error)
	Checkout(ctx context.Context, actor dto.Actor, key string) (*dto.Reply, error)
	SubmitProof(ctx context.Context, actor dto.Actor, proof dto.Proof) (*dto.Reply, error)
	MySubscriptions(ctx context.Context, actor dto.Actor) (*dto.Reply, error)
	PaymentStatus(ctx context.Context, actor dto.Actor) (*dto.Reply, error)
	StartOnboarding(ctx context.Context, actor dto.Actor) (*dto.Reply, error)
	CancelDialogue(ctx context.Context, actor dto.Actor) (*dto.Reply, error)
	HandleDialogueInput(ctx context.Context, actor dto.Actor, msg dto.IncomingMessage) (*dto.Reply, error)
	ManageChannels(ctx context.Context, actor dto.Actor) (*dto.Reply, error)
	SetChannelActive(ctx context.Context, actor dto.Actor, key string, active bool) (*dto.Reply, error)
	AllAccessStatus(ctx context.Context, actor dto.Actor) (*dto.Reply, error)
	SetAllAccessActive(ctx context.Context, actor dto.Actor, active bool) (*dto.Reply, error)
	SetAllAccessPrice(ctx context.Context, actor dto.Actor, priceText string) (*dto.Reply, error)
	PendingPayments(ctx context.Context, admin dto.Actor) (*dto.Reply, error)
	Approve(ctx context.Context, admin dto.Actor, ref dto.PaymentRef) (*dto.ApprovalResult, error)
	Reject(ctx context.Context, admin dto.Actor, ref dto.PaymentRef, reason string) (*dto.Reply, error)
	Regrant(ctx context.Context, admin dto.Actor, paymentID string) (*dto.ApprovalResult, error)
}

var _ shopUseCase = (*buissines.UseCase)(nil)

// Handlers contains Telegram command handlers
type Handlers struct {
	uc     shopUseCase
	sender *Sender
	logger zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *buissines.UseCase, sender *Sender, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:     uc,
		sender: sender,
		logger: logger,
	}
}

// commandFunc produces the reply of a command for the actor and its arguments
type commandFunc func(ctx context.Context, actor dto.Actor, args []string) (*dto.Reply, error)

// run executes a text command and sends its reply or the mapped error
func (h *Handlers) run(ctx context.Context, update *models.Update, command string, fn commandFunc) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	actor := actorFromUser(msg.From)
	h.logCommand(actor.ID, command, "processing")

	reply, err := fn(ctx, actor, commandArgs(msg.Text))
	if err != nil {
		h.logError(actor.ID, command, err)
		h.sendReply(ctx, msg.Chat.ID, h.errorReply(actor, err))
		return
	}

	h.sendReply(ctx, msg.Chat.ID, reply)
	h.logCommand(actor.ID, command, "success")
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandStart.Slash(), func(ctx context.Context, actor dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.Start(ctx, actor)
	})
}

// HandleHelp handles /help command and the help button
func (h *Handlers) HandleHelp(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandHelp.Slash(), func(ctx context.Context, actor dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.Help(ctx, actor)
	})
}

// HandlePlans handles /plans command and the plans button
func (h *Handlers) HandlePlans(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandPlans.Slash(), func(ctx context.Context, _ dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.Browse(ctx)
	})
}

// HandleSubscriptions handles /subscriptions command
func (h *Handlers) HandleSubscriptions(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandSubscriptions.Slash(), func(ctx context.Context, actor dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.MySubscriptions(ctx, actor)
	})
}

// HandlePayments handles /payments command
func (h *Handlers) HandlePayments(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandPayments.Slash(), func(ctx context.Context, actor dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.PaymentStatus(ctx, actor)
	})
}

// HandleDemo handles /demo command
func (h *Handlers) HandleDemo(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandDemo.Slash(), func(ctx context.Context, _ dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.DemoLinks(ctx)
	})
}

// HandleSupport handles the contact support button
func (h *Handlers) HandleSupport(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, "support", func(ctx context.Context, _ dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.Support(ctx)
	})
}

// HandleHealth handles /health command
func (h *Handlers) HandleHealth(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandHealth.Slash(), func(ctx context.Context, _ dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.Health(ctx)
	})
}

// HandleCancel handles /cancel command
func (h *Handlers) HandleCancel(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandCancel.Slash(), func(ctx context.Context, actor dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.CancelDialogue(ctx, actor)
	})
}

// HandleAddChannel handles /addchannel command
func (h *Handlers) HandleAddChannel(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandAddChannel.Slash(), func(ctx context.Context, actor dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.StartOnboarding(ctx, actor)
	})
}

// HandleManageChannels handles /managechannels command
func (h *Handlers) HandleManageChannels(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandManageChannels.Slash(), func(ctx context.Context, actor dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.ManageChannels(ctx, actor)
	})
}

// HandleChannelOn handles /channel_on <key>
func (h *Handlers) HandleChannelOn(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandChannelOn.Slash(), h.toggleChannel(consts.CommandChannelOn, true))
}

// HandleChannelOff handles /channel_off <key>
func (h *Handlers) HandleChannelOff(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandChannelOff.Slash(), h.toggleChannel(consts.CommandChannelOff, false))
}

func (h *Handlers) toggleChannel(cmd consts.Command, active bool) commandFunc {
	return func(ctx context.Context, actor dto.Actor, args []string) (*dto.Reply, error) {
		if !h.uc.IsAdmin(actor.ID) {
			return nil, shoperrors.ErrNotAdmin
		}
		if len(args) != 1 {
			return usage(cmd), nil
		}
		return h.uc.SetChannelActive(ctx, actor, args[0], active)
	}
}

// HandleAllAccess handles /allaccess [on|off|price <n>] and the server plans button
func (h *Handlers) HandleAllAccess(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandAllAccess.Slash(), func(ctx context.Context, actor dto.Actor, args []string) (*dto.Reply, error) {
		if len(args) == 0 {
			return h.uc.AllAccessStatus(ctx, actor)
		}

		switch strings.ToLower(args[0]) {
		case "on":
			return h.uc.SetAllAccessActive(ctx, actor, true)
		case "off":
			return h.uc.SetAllAccessActive(ctx, actor, false)
		case "price":
			if len(args) != 2 {
				return usage(consts.CommandAllAccess), nil
			}
			return h.uc.SetAllAccessPrice(ctx, actor, args[1])
		default:
			if !h.uc.IsAdmin(actor.ID) {
				return nil, shoperrors.ErrNotAdmin
			}
			return usage(consts.CommandAllAccess), nil
		}
	})
}

// HandlePending handles /pending command and the pending payments button
func (h *Handlers) HandlePending(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandPending.Slash(), func(ctx context.Context, actor dto.Actor, _ []string) (*dto.Reply, error) {
		return h.uc.PendingPayments(ctx, actor)
	})
}

// HandleApprove handles /approve <payment_id> and /approve <user_id> <plan_key>
func (h *Handlers) HandleApprove(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandApprove.Slash(), func(ctx context.Context, actor dto.Actor, args []string) (*dto.Reply, error) {
		if !h.uc.IsAdmin(actor.ID) {
			return nil, shoperrors.ErrNotAdmin
		}

		ref, _, err := buissines.ParsePaymentRef(args)
		if err != nil {
			return usage(consts.CommandApprove), nil
		}

		result, err := h.uc.Approve(ctx, actor, ref)
		if err != nil {
			return nil, err
		}
		return &dto.Reply{Text: result.Message}, nil
	})
}

// HandleReject handles /reject <payment_id> [reason] and /reject <user_id> <plan_key> [reason]
func (h *Handlers) HandleReject(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandReject.Slash(), func(ctx context.Context, actor dto.Actor, args []string) (*dto.Reply, error) {
		if !h.uc.IsAdmin(actor.ID) {
			return nil, shoperrors.ErrNotAdmin
		}

		ref, rest, err := buissines.ParsePaymentRef(args)
		if err != nil {
			return usage(consts.CommandReject), nil
		}

		return h.uc.Reject(ctx, actor, ref, strings.Join(rest, " "))
	})
}

// HandleRegrant handles /regrant <payment_id>
func (h *Handlers) HandleRegrant(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.run(ctx, update, consts.CommandRegrant.Slash(), func(ctx context.Context, actor dto.Actor, args []string) (*dto.Reply, error) {
		if !h.uc.IsAdmin(actor.ID) {
			return nil, shoperrors.ErrNotAdmin
		}
		if len(args) != 1 {
			return usage(consts.CommandRegrant), nil
		}

		result, err := h.uc.Regrant(ctx, actor, args[0])
		if err != nil {
			return nil, err
		}
		return &dto.Reply{Text: result.Message}, nil
	})
}

// HandleCallback handles inline keyboard presses
func (h *Handlers) HandleCallback(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	query := update.CallbackQuery
	if query == nil {
		return
	}

	actor := actorFromUser(&query.From)
	if err := h.sender.AnswerCallback(ctx, query.ID); err != nil {
		h.logger.Warn().Err(err).Int64("user_id", actor.ID).Msg("Failed to answer callback query")
	}

	data, err := callback.Decode(query.Data)
	if err != nil {
		h.logError(actor.ID, "callback", err)
		return
	}

	command := "callback:" + data.Kind.String()
	h.logCommand(actor.ID, command, "processing")

	var reply *dto.Reply
	switch data.Kind {
	case callback.KindShowPlans:
		reply, err = h.uc.Browse(ctx)
	case callback.KindMainMenu:
		reply, err = h.uc.MainMenu(ctx)
	case callback.KindSelectOffer:
		reply, err = h.uc.SelectOffer(ctx, data.Key)
	case callback.KindPurchase:
		reply, err = h.uc.Checkout(ctx, actor, data.Key)
	}
	if err != nil {
		h.logError(actor.ID, command, err)
		reply = h.errorReply(actor, err)
	}
	if reply == nil {
		return
	}

	chatID, messageID, ok := callbackMessage(query)
	if !ok {
		h.sendReply(ctx, actor.ID, reply)
		return
	}

	if err := h.sender.EditMessage(ctx, chatID, messageID, reply.Text, reply.Keyboard); err != nil {
		h.logger.Warn().Err(err).Int64("user_id", actor.ID).Msg("Failed to edit message, sending a new one")
		h.sendReply(ctx, chatID, reply)
	}

	if err == nil {
		h.logCommand(actor.ID, command, "success")
	}
}

// HandleDefault handles updates that match no command: onboarding input, payment proofs and free text
func (h *Handlers) HandleDefault(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	actor := actorFromUser(msg.From)

	reply, err := h.uc.HandleDialogueInput(ctx, actor, incomingMessage(msg))
	if !errors.Is(err, shoperrors.ErrNoActiveDialogue) {
		if err != nil {
			h.logError(actor.ID, "dialogue", err)
			h.sendReply(ctx, msg.Chat.ID, h.errorReply(actor, err))
			return
		}
		h.sendReply(ctx, msg.Chat.ID, reply)
		h.logCommand(actor.ID, "dialogue", "success")
		return
	}

	if proof, ok := proofFromMessage(msg); ok {
		h.logCommand(actor.ID, "proof", "processing")

		reply, err := h.uc.SubmitProof(ctx, actor, proof)
		if err != nil {
			h.logError(actor.ID, "proof", err)
			h.sendReply(ctx, msg.Chat.ID, h.errorReply(actor, err))
			return
		}

		h.sendReply(ctx, msg.Chat.ID, reply)
		h.logCommand(actor.ID, "proof", "success")
		return
	}

	if msg.Text != "" {
		h.sendReply(ctx, msg.Chat.ID, &dto.Reply{Text: fallbackText})
	}
}

// sendReply sends reply and logs failures
func (h *Handlers) sendReply(ctx context.Context, chatID int64, reply *dto.Reply) {
	if reply == nil || reply.Text == "" {
		return
	}
	if err := h.sender.SendMessage(ctx, chatID, reply.Text, reply.Keyboard); err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send response")
	}
}

// errorReply maps an error to the message shown to the actor
func (h *Handlers) errorReply(actor dto.Actor, err error) *dto.Reply {
	return errorReply(err, h.uc.IsAdmin(actor.ID))
}

func errorReply(err error, verbose bool) *dto.Reply {
	switch {
	case errors.Is(err, shoperrors.ErrOfferNotFound):
		return &dto.Reply{
			Text: "❌ This plan is no longer available.",
			Keyboard: &dto.Keyboard{Inline: [][]dto.Button{
				{{Text: "💎 View Plans", CallbackData: callback.MustEncode(callback.ShowPlans())}},
			}},
		}
	case errors.Is(err, shoperrors.ErrBotNotAdmin):
		return &dto.Reply{Text: buissines.RenderBotNotAdmin()}
	case pkgerrors.IsPermissionError(err):
		return &dto.Reply{Text: "❌ You're not authorized to use this command."}
	case pkgerrors.IsValidationError(err),
		pkgerrors.IsNotFoundError(err),
		pkgerrors.IsConflictError(err),
		pkgerrors.IsStateError(err):
		return &dto.Reply{Text: "❌ " + upperFirst(html.EscapeString(err.Error()))}
	case pkgerrors.IsProviderError(err):
		return &dto.Reply{Text: "⚠️ Telegram refused the request: " + html.EscapeString(err.Error())}
	}

	if verbose {
		return &dto.Reply{Text: "❌ Operation failed: <code>" + html.EscapeString(err.Error()) + "</code>"}
	}
	return &dto.Reply{Text: "❌ Something went wrong. Please try again later."}
}

func usage(cmd consts.Command) *dto.Reply {
	return &dto.Reply{Text: "ℹ️ Usage: " + html.EscapeString(cmd.Description)}
}

// actorFromUser builds the actor of an update
func actorFromUser(u *models.User) dto.Actor {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}

	return dto.Actor{
		ID:          u.ID,
		DisplayName: name,
		Handle:      u.Username,
	}
}

// commandArgs returns the words after the command
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 || !strings.HasPrefix(fields[0], "/") {
		return nil
	}
	return fields[1:]
}

// incomingMessage converts a message into onboarding dialogue input
func incomingMessage(msg *models.Message) dto.IncomingMessage {
	in := dto.IncomingMessage{Text: msg.Text}
	if msg.ForwardOrigin == nil {
		return in
	}

	origin := &dto.ForwardOrigin{Kind: dto.ForwardKind(msg.ForwardOrigin.Type)}
	if msg.ForwardOrigin.Type == models.MessageOriginTypeChannel && msg.ForwardOrigin.MessageOriginChannel != nil {
		channel := msg.ForwardOrigin.MessageOriginChannel
		origin.ChatID = channel.Chat.ID
		origin.Title = channel.Chat.Title
		origin.Username = channel.Chat.Username
	}
	in.Forward = origin

	return in
}

// proofFromMessage extracts an uploaded photo or document. The largest photo size is used
func proofFromMessage(msg *models.Message) (dto.Proof, bool) {
	if n := len(msg.Photo); n > 0 {
		return dto.Proof{FileID: msg.Photo[n-1].FileID, Kind: entities.ProofKindPhoto}, true
	}
	if msg.Document != nil {
		return dto.Proof{FileID: msg.Document.FileID, Kind: entities.ProofKindDocument}, true
	}
	return dto.Proof{}, false
}

// callbackMessage returns the message a callback button belongs to
func callbackMessage(query *models.CallbackQuery) (chatID int64, messageID int, ok bool) {
	if query.Message.Message == nil {
		return 0, 0, false
	}
	return query.Message.Message.Chat.ID, query.Message.Message.ID, true
}

// updateUser returns the user behind an update
func updateUser(update *models.Update) *models.User {
	switch {
	case update.Message != nil:
		return update.Message.From
	case update.CallbackQuery != nil:
		return &update.CallbackQuery.From
	default:
		return nil
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// logCommand logs command execution
func (h *Handlers) logCommand(userID int64, command, result string) {
	h.logger.Info().Int64("user_id", userID).Str("command", command).Str("result", result).Msg("Telegram command processed")
}

// logError logs command errors
func (h *Handlers) logError(userID int64, command string, err error) {
	h.logger.Error().Int64("user_id", userID).Str("command", command).Err(err).Msg("Telegram command failed")
}
