package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultRelaySchedule runs the relay every five seconds.
const DefaultRelaySchedule = "*/5 * * * * *"

const relayTimeout = time.Minute

// OutboxRelayJob runs OutboxRelay on a cron schedule. A tick that is still
// running when the next one fires makes the next one skip.
type OutboxRelayJob struct {
	relay    *OutboxRelay
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewOutboxRelayJob(relay *OutboxRelay, schedule string, logger *zap.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	logger = logger.With(zap.String("component", "outbox_relay_job"))
	return &OutboxRelayJob{
		relay:    relay,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})),
		),
		logger: logger,
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox relay job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running tick to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("outbox relay job stopped")
}

func (j *OutboxRelayJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
	defer cancel()

	relayed, err := j.relay.RelayOnce(ctx)
	if err != nil {
		j.logger.Error("outbox relay failed", zap.Int("relayed", relayed), zap.Error(err))
		return
	}
	if relayed > 0 {
		j.logger.Info("outbox messages relayed", zap.Int("relayed", relayed))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
