// Package services provides domain services that coordinate the booking and
// loading sheet aggregates.
//
// The package includes:
//   - Reconciler: applies loading, unloading and sheet cancellation rules
//     across a sheet and its member bookings
//
// Domain services hold no state and never touch persistence; the
// application layer loads the aggregates, calls the service and saves the
// result.
package services
