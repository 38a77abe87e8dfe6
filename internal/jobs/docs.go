// Package jobs provides scheduled background tasks for the freight service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(jobs.NewOutboxRelayJob(relay, cfg.Outbox.Schedule, logger))
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Outbox relay
//
// Commands store their domain events in outbox_events inside the same
// transaction as the state change. OutboxRelayJob polls that table, hands
// each message to the event publisher, applies booking messages to the
// search index and stamps published_at. Delivery is at least once:
// consumers deduplicate on the message id.
package jobs
