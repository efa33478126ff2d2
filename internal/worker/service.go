package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"tanbih-bot/internal/apperr"
	"tanbih-bot/internal/infra/telegram"
	"tanbih-bot/internal/metrics"
)

// Service runs the scheduled reminder trigger. One cron entry, one outbound
// digest per run at most, no cross-run state.
type Service struct {
	subscriptions Subscriptions
	sink          Sink // nil when the sink credentials are not configured
	composer      DigestComposer
	localizer     Localizer
	logger        *slog.Logger
	cron          *cron.Cron
	schedule      string
	windowDays    int
	ownerUID      string
	lang          string
}

func NewService(
	subscriptions Subscriptions,
	sink Sink,
	composer DigestComposer,
	localizer Localizer,
	location *time.Location,
	schedule string,
	windowDays int,
	ownerUID string,
	lang string,
	logger *slog.Logger,
) *Service {
	return &Service{
		subscriptions: subscriptions,
		sink:          sink,
		composer:      composer,
		localizer:     localizer,
		logger:        logger,
		cron:          cron.New(cron.WithLocation(location)),
		schedule:      schedule,
		windowDays:    windowDays,
		ownerUID:      ownerUID,
		lang:          lang,
	}
}

// Start registers the daily reminder job and starts the cron loop.
func (s *Service) Start() error {
	s.logger.Info("Starting worker service", slog.String("schedule", s.schedule))

	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx := context.Background()
		runID := uuid.NewString()
		logger := s.logger.With(slog.String("run_id", runID))

		logger.Info("Running subscription reminder check")
		if err := s.RunReminderJob(ctx, logger); err != nil {
			logger.Error("Reminder run failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add reminder job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Worker service started successfully")

	return nil
}

// Stop stops the cron loop. A run already in flight completes; there is no
// mid-flight abort path.
func (s *Service) Stop() {
	s.logger.Info("Stopping worker service")
	s.cron.Stop()
	s.logger.Info("Worker service stopped")
}

// RunReminderJob performs one scheduled invocation: query, compose, deliver.
// Failures are logged and reported to the sink best-effort; the job never
// re-raises into the cron loop.
func (s *Service) RunReminderJob(ctx context.Context, logger *slog.Logger) error {
	if s.sink == nil {
		metrics.ReminderRuns.WithLabelValues(metrics.OutcomeConfigMissing).Inc()
		logger.Error("Telegram bot token or chat ID not configured, skipping reminder run")
		return &apperr.ConfigurationMissingError{Key: "TELEGRAM_BOT_TOKEN/TELEGRAM_CHAT_ID"}
	}

	// Without an owner UID every query is guaranteed empty, so the run is
	// aborted and the operator chat gets a critical configuration alert.
	if s.ownerUID == "" {
		metrics.ReminderRuns.WithLabelValues(metrics.OutcomeConfigMissing).Inc()
		logger.Error("APP_OWNER_UID not configured, aborting reminder run")
		s.reportConfigMissing(ctx, logger, "APP_OWNER_UID")
		return &apperr.ConfigurationMissingError{Key: "APP_OWNER_UID"}
	}

	records, todayStart, err := s.subscriptions.ListExpiring(ctx, s.windowDays)
	if err != nil {
		metrics.ReminderRuns.WithLabelValues(metrics.OutcomeQueryFailure).Inc()
		logger.Error("Failed to query expiring subscriptions", slog.Any("error", err))
		s.reportFailure(ctx, logger, err)
		return err
	}

	text, ok := s.composer.BuildDigest(records, todayStart)
	if !ok {
		metrics.ReminderRuns.WithLabelValues(metrics.OutcomeEmpty).Inc()
		logger.Info("No subscriptions expiring inside the window",
			slog.Int("window_days", s.windowDays))
		return nil
	}

	if err := s.sink.Deliver(ctx, text, telegram.ParseModeMarkdown); err != nil {
		metrics.ReminderRuns.WithLabelValues(metrics.OutcomeDeliveryError).Inc()
		metrics.MessagesDelivered.WithLabelValues(metrics.KindDigest, metrics.OutcomeDeliveryError).Inc()
		logger.Error("Failed to deliver reminder digest", slog.Any("error", err))
		return err
	}

	metrics.ReminderRuns.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.MessagesDelivered.WithLabelValues(metrics.KindDigest, metrics.OutcomeOK).Inc()
	logger.Info("Reminder digest delivered", slog.Int("record_count", len(records)))

	return nil
}

// reportFailure forwards a processing error to the operator chat. Best
// effort: a failed alert is only logged.
func (s *Service) reportFailure(ctx context.Context, logger *slog.Logger, cause error) {
	text := s.localizer.Get(s.lang, "alerts.reminder_failure", map[string]interface{}{
		"error": cause.Error(),
	})

	if err := s.sink.Deliver(ctx, text, telegram.ParseModeMarkdown); err != nil {
		metrics.MessagesDelivered.WithLabelValues(metrics.KindAlert, metrics.OutcomeDeliveryError).Inc()
		logger.Error("Failed to deliver failure alert", slog.Any("error", err))
		return
	}
	metrics.MessagesDelivered.WithLabelValues(metrics.KindAlert, metrics.OutcomeOK).Inc()
}

// reportConfigMissing sends the critical configuration alert to the operator
// chat. Best effort, same as reportFailure.
func (s *Service) reportConfigMissing(ctx context.Context, logger *slog.Logger, key string) {
	text := s.localizer.Get(s.lang, "alerts.config_missing", map[string]interface{}{
		"key": key,
	})

	if err := s.sink.Deliver(ctx, text, telegram.ParseModeMarkdown); err != nil {
		metrics.MessagesDelivered.WithLabelValues(metrics.KindAlert, metrics.OutcomeDeliveryError).Inc()
		logger.Error("Failed to deliver configuration alert", slog.Any("error", err))
		return
	}
	metrics.MessagesDelivered.WithLabelValues(metrics.KindAlert, metrics.OutcomeOK).Inc()
}
