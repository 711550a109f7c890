// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
)

// Constants for Telegram API
const (
	MaxMessageLength = 4096
	MaxCaptionLength = 1024
	DownloadTimeout  = 60 * time.Second
	MaxProofSize     = 20 * 1024 * 1024 // Bot API download limit
)

// botAPI is the part of *tgbot.Bot used to talk to users
type botAPI interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *tgbot.EditMessageTextParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *tgbot.SendPhotoParams) (*models.Message, error)
	SendDocument(ctx context.Context, params *tgbot.SendDocumentParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *tgbot.AnswerCallbackQueryParams) (bool, error)
	GetFile(ctx context.Context, params *tgbot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

// Sender implements deps.Messenger and deps.FileDownloader
type Sender struct {
	bot            botAPI
	requestTimeout time.Duration
	httpClient     *http.Client
	logger         zerolog.Logger
}

// NewSender creates a new Sender
func NewSender(bot *tgbot.Bot, requestTimeout time.Duration, logger zerolog.Logger) *Sender {
	return newSender(bot, requestTimeout, logger)
}

func newSender(bot botAPI, requestTimeout time.Duration, logger zerolog.Logger) *Sender {
	return &Sender{
		bot:            bot,
		requestTimeout: requestTimeout,
		httpClient: &http.Client{
			Timeout: DownloadTimeout,
		},
		logger: logger,
	}
}

// SendMessage implements deps.Messenger interface
func (s *Sender) SendMessage(ctx context.Context, chatID int64, text string, keyboard *dto.Keyboard) error {
	if text == "" {
		s.logger.Warn().Int64("user_id", chatID).Msg("Attempt to send empty message")
		return fmt.Errorf("message text cannot be empty")
	}

	msgCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	_, err := s.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:             chatID,
		Text:               truncate(text, MaxMessageLength),
		ParseMode:          models.ParseModeHTML,
		ReplyMarkup:        toReplyMarkup(keyboard),
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: tgbot.True()},
	})
	if err != nil {
		return s.handleSendMessageError(chatID, err)
	}

	s.logger.Debug().Int64("user_id", chatID).Int("text_length", len(text)).Msg("Message sent")
	return nil
}

// EditMessage implements deps.Messenger interface. Reply keyboards cannot be attached to an edit
func (s *Sender) EditMessage(ctx context.Context, chatID int64, messageID int, text string, keyboard *dto.Keyboard) error {
	msgCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	params := &tgbot.EditMessageTextParams{
		ChatID:             chatID,
		MessageID:          messageID,
		Text:               truncate(text, MaxMessageLength),
		ParseMode:          models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: tgbot.True()},
	}
	if markup := inlineMarkup(keyboard); markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := s.bot.EditMessageText(msgCtx, params); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return s.handleSendMessageError(chatID, err)
	}
	return nil
}

// SendPhoto implements deps.Messenger interface
func (s *Sender) SendPhoto(ctx context.Context, chatID int64, fileRef, caption string) error {
	msgCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	_, err := s.bot.SendPhoto(msgCtx, &tgbot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileString{Data: fileRef},
		Caption:   truncate(caption, MaxCaptionLength),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return s.handleSendMessageError(chatID, err)
	}
	return nil
}

// SendDocument implements deps.Messenger interface
func (s *Sender) SendDocument(ctx context.Context, chatID int64, fileRef, caption string) error {
	msgCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	_, err := s.bot.SendDocument(msgCtx, &tgbot.SendDocumentParams{
		ChatID:    chatID,
		Document:  &models.InputFileString{Data: fileRef},
		Caption:   truncate(caption, MaxCaptionLength),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return s.handleSendMessageError(chatID, err)
	}
	return nil
}

// AnswerCallback implements deps.Messenger interface
func (s *Sender) AnswerCallback(ctx context.Context, callbackID string) error {
	msgCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	if _, err := s.bot.AnswerCallbackQuery(msgCtx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
	}); err != nil {
		return fmt.Errorf("failed to answer callback query: %w", err)
	}
	return nil
}

// Download implements deps.FileDownloader interface
func (s *Sender) Download(ctx context.Context, fileID string) (*dto.File, error) {
	fileCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	file, err := s.bot.GetFile(fileCtx, &tgbot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if file.FileSize > MaxProofSize {
		return nil, fmt.Errorf("file too large: %d bytes", file.FileSize)
	}

	downloadCtx, cancelDownload := context.WithTimeout(ctx, DownloadTimeout)
	defer cancelDownload()

	req, err := http.NewRequestWithContext(downloadCtx, http.MethodGet, s.bot.FileDownloadLink(file), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxProofSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file data: %w", err)
	}
	if len(data) > MaxProofSize {
		return nil, fmt.Errorf("file too large: more than %d bytes", MaxProofSize)
	}

	name := path.Base(file.FilePath)
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(path.Ext(name)); byExt != "" {
			contentType = byExt
		}
	}

	s.logger.Debug().
		Str("file_id", fileID).
		Str("name", name).
		Int("size", len(data)).
		Msg("File downloaded")

	return &dto.File{Name: name, ContentType: contentType, Data: data}, nil
}

// handleSendMessageError handles Telegram API errors
func (s *Sender) handleSendMessageError(chatID int64, err error) error {
	errorMsg := err.Error()

	switch {
	case strings.Contains(errorMsg, "Forbidden"), strings.Contains(errorMsg, "forbidden"):
		s.logger.Warn().Int64("user_id", chatID).Msg("User blocked the bot")
		return fmt.Errorf("user blocked the bot: %w", err)

	case strings.Contains(errorMsg, "chat not found"):
		s.logger.Warn().Int64("user_id", chatID).Msg("Chat not found")
		return fmt.Errorf("chat not found: %w", err)

	case strings.Contains(errorMsg, "Too Many Requests"), strings.Contains(errorMsg, "too many requests"):
		s.logger.Warn().Int64("user_id", chatID).Msg("Rate limit exceeded")
		return fmt.Errorf("rate limit exceeded, please try again later: %w", err)

	default:
		s.logger.Error().Int64("user_id", chatID).Err(err).Msg("Unknown error while sending message")
		return fmt.Errorf("failed to send message: %w", err)
	}
}

// toReplyMarkup converts a keyboard into Telegram markup, nil keeps the current keyboard
func toReplyMarkup(keyboard *dto.Keyboard) models.ReplyMarkup {
	if keyboard == nil {
		return nil
	}
	if markup := inlineMarkup(keyboard); markup != nil {
		return markup
	}
	if len(keyboard.Reply) == 0 {
		return nil
	}

	rows := make([][]models.KeyboardButton, 0, len(keyboard.Reply))
	for _, row := range keyboard.Reply {
		buttons := make([]models.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, models.KeyboardButton{Text: label})
		}
		rows = append(rows, buttons)
	}
	return &models.ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
}

func inlineMarkup(keyboard *dto.Keyboard) *models.InlineKeyboardMarkup {
	if keyboard == nil || len(keyboard.Inline) == 0 {
		return nil
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(keyboard.Inline))
	for _, row := range keyboard.Inline {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, models.InlineKeyboardButton{
				Text:         b.Text,
				CallbackData: b.CallbackData,
				URL:          b.URL,
			})
		}
		rows = append(rows, buttons)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// truncate cuts text to limit runes
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
