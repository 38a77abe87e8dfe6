// Package kernel holds the value objects shared by the booking and loading
// sheet aggregates: UUID identifiers, the two-letter BranchCode used to
// prefix LR numbers, and the EventRecorder aggregates embed to collect
// domain events for the outbox.
package kernel
