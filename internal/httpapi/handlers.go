package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tanbih-bot/internal/apperr"
	"tanbih-bot/internal/infra/telegram"
	"tanbih-bot/internal/locale"
	"tanbih-bot/internal/metrics"
	"tanbih-bot/internal/stories/notify"
)

// Sink delivers one formatted message, single attempt.
type Sink interface {
	Deliver(ctx context.Context, text string, parseMode string) error
}

// Localizer resolves message templates.
type Localizer interface {
	Get(lang, key string, params map[string]interface{}) string
}

// Handler serves the request-triggered endpoints. sink is nil when the
// Telegram credentials were absent at cold start; every handler answers 500
// in that case before any composition happens.
type Handler struct {
	sink           Sink
	composer       *notify.Composer
	localizer      Localizer
	formatter      *locale.Formatter
	logger         *slog.Logger
	lang           string
	appID          string
	ownerUID       string
	currencySymbol string
	now            func() time.Time
}

func NewHandler(
	sink Sink,
	composer *notify.Composer,
	localizer Localizer,
	formatter *locale.Formatter,
	lang, appID, ownerUID, currencySymbol string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		sink:           sink,
		composer:       composer,
		localizer:      localizer,
		formatter:      formatter,
		logger:         logger,
		lang:           lang,
		appID:          appID,
		ownerUID:       ownerUID,
		currencySymbol: currencySymbol,
		now:            time.Now,
	}
}

// NotifyNewSubscriber forwards a "new subscriber" event to the sink.
func (h *Handler) NotifyNewSubscriber(c *gin.Context) {
	if h.sink == nil {
		h.logger.Error("notifyNewSubscriber: Telegram bot token or chat ID not configured")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server configuration error for Telegram.",
		})
		return
	}

	var payload notify.EventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Bad Request: body must be a valid JSON object.",
		})
		return
	}

	event, err := notify.ParseEvent(payload)
	if err != nil {
		h.logger.Warn("notifyNewSubscriber: invalid payload", slog.Any("error", err))
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"success": false,
			"message": "Bad Request: " + err.Error() + ".",
		})
		return
	}

	text := h.composer.Compose(*event)

	if err := h.sink.Deliver(c.Request.Context(), text, telegram.ParseModeMarkdown); err != nil {
		metrics.MessagesDelivered.WithLabelValues(metrics.KindNewSubscriber, metrics.OutcomeDeliveryError).Inc()
		h.logger.Error("notifyNewSubscriber: delivery failed",
			slog.String("phone_number", event.PhoneNumber),
			slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to send notification due to an internal error.",
		})
		return
	}

	metrics.MessagesDelivered.WithLabelValues(metrics.KindNewSubscriber, metrics.OutcomeOK).Inc()
	h.logger.Info("notifyNewSubscriber: notification sent",
		slog.String("phone_number", event.PhoneNumber))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification sent successfully.",
	})
}

// TestTelegramMessage sends a self-describing diagnostic message to the
// sink so operators can verify the wiring end to end.
func (h *Handler) TestTelegramMessage(c *gin.Context) {
	if h.sink == nil {
		h.logger.Error("testTelegramMessage: Telegram bot token or chat ID not configured")
		c.String(http.StatusInternalServerError,
			"CRITICAL: Telegram bot token or chat ID not available. Check environment variables or .env file.")
		return
	}

	text := h.localizer.Get(h.lang, "test.message", map[string]interface{}{
		"app_id":    h.appID,
		"owner_uid": h.ownerUID,
		"currency":  h.currencySymbol,
		"time":      h.formatter.FormatDateTime(h.now()),
	})

	if err := h.sink.Deliver(c.Request.Context(), text, telegram.ParseModeMarkdown); err != nil {
		metrics.MessagesDelivered.WithLabelValues(metrics.KindTest, metrics.OutcomeDeliveryError).Inc()
		h.logger.Error("testTelegramMessage: delivery failed", slog.Any("error", err))
		c.String(http.StatusInternalServerError,
			"Failed to send test message to Telegram. Check the application logs for details.")
		return
	}

	metrics.MessagesDelivered.WithLabelValues(metrics.KindTest, metrics.OutcomeOK).Inc()
	c.String(http.StatusOK,
		"Test message has been sent to your Telegram bot! Please check your Telegram.")
}
