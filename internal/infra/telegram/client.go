package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"tanbih-bot/internal/apperr"
)

// ParseModeMarkdown is the lightweight markup mode the destination accepts.
const ParseModeMarkdown = tgbotapi.ModeMarkdown

// Client is the message sink adapter. It performs exactly one delivery
// attempt per call and reports failures as typed errors instead of
// panicking past its boundary. Retry policy, if any, belongs to the caller.
type Client struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	logger  *slog.Logger
	limiter *rate.Limiter
}

func NewClient(token string, chatID int64, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	// Telegram allows ~30 messages per second per bot.
	limiter := rate.NewLimiter(30, 1)

	return &Client{
		api:     bot,
		chatID:  chatID,
		logger:  logger,
		limiter: limiter,
	}, nil
}

// Deliver sends one message to the configured chat. parseMode selects the
// markup mode ("Markdown" in the reference deployment).
func (c *Client) Deliver(ctx context.Context, text string, parseMode string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &apperr.DeliveryFailureError{Err: fmt.Errorf("rate limiting: %w", err)}
	}

	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = parseMode

	resp, err := c.api.Request(msg)
	if err != nil {
		delivery := &apperr.DeliveryFailureError{Err: err}

		var tgErr *tgbotapi.Error
		if errors.As(err, &tgErr) {
			delivery.StatusCode = tgErr.Code
			delivery.Description = tgErr.Message
		} else if resp != nil && !resp.Ok {
			delivery.StatusCode = resp.ErrorCode
			delivery.Description = resp.Description
		}

		c.logger.Error("Failed to deliver message to Telegram",
			slog.Int64("chat_id", c.chatID),
			slog.Int("status_code", delivery.StatusCode),
			slog.String("description", delivery.Description),
			slog.Any("error", err))
		return delivery
	}

	c.logger.Info("Message delivered to Telegram",
		slog.Int64("chat_id", c.chatID),
		slog.Int("text_length", len(text)))
	return nil
}
