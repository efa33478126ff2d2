package environment

import (
	"context"
	"log/slog"
	"time"

	"tanbih-bot/internal/config"
	"tanbih-bot/internal/httpapi"
	"tanbih-bot/internal/locale"
	"tanbih-bot/internal/localization"
	"tanbih-bot/internal/storage"
	"tanbih-bot/internal/stories/notify"
	"tanbih-bot/internal/stories/reminder"
	"tanbih-bot/internal/stories/subs"
	"tanbih-bot/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type Services struct {
	Subscriptions    *subs.Service
	ReminderComposer *reminder.Composer
	NotifyComposer   *notify.Composer
	Localizer        *localization.Service
	Formatter        *locale.Formatter
	WorkerService    *worker.Service
	Router           *gin.Engine
}

func newServices(ctx context.Context, clients *Clients, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	var s Services

	storageImpl := storage.New(clients.SQLiteDB.DB)
	if err := storageImpl.EnsureSchema(ctx); err != nil {
		return nil, errors.Wrap(err, "ensure subscriptions schema")
	}

	formatter, err := locale.NewFormatter(
		cfg.Locale.DateLanguage,
		cfg.Locale.NumberLanguage,
		cfg.Locale.Timezone,
	)
	if err != nil {
		return nil, errors.Wrap(err, "create locale formatter")
	}
	s.Formatter = formatter

	localizer, err := localization.NewService()
	if err != nil {
		return nil, errors.Wrap(err, "load message catalog")
	}
	s.Localizer = localizer

	s.Subscriptions = subs.NewService(
		storageImpl,
		cfg.App.ID,
		cfg.App.OwnerUID,
		formatter.Location(),
		time.Now,
	)

	lang := cfg.Locale.DateLanguage
	s.ReminderComposer = reminder.NewComposer(localizer, formatter, lang, cfg.Locale.CurrencySymbol)
	s.NotifyComposer = notify.NewComposer(localizer, formatter, lang, cfg.Locale.CurrencySymbol)

	// A typed-nil client must not become a non-nil Sink interface, so the
	// sink vars are only assigned when the client exists.
	var workerSink worker.Sink
	var apiSink httpapi.Sink
	if clients.TelegramBot != nil {
		workerSink = clients.TelegramBot
		apiSink = clients.TelegramBot
	}

	s.WorkerService = worker.NewService(
		s.Subscriptions,
		workerSink,
		s.ReminderComposer,
		localizer,
		formatter.Location(),
		cfg.Reminder.Schedule,
		cfg.Reminder.WindowDays,
		cfg.App.OwnerUID,
		lang,
		logger,
	)

	handler := httpapi.NewHandler(
		apiSink,
		s.NotifyComposer,
		localizer,
		formatter,
		lang,
		cfg.App.ID,
		cfg.App.OwnerUID,
		cfg.Locale.CurrencySymbol,
		logger,
	)
	s.Router = httpapi.NewRouter(handler, logger)

	return &s, nil
}
