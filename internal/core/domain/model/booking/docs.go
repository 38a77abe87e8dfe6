// Package booking provides the Booking aggregate: a single shipment
// identified by its LR (lorry receipt) number.
//
// The package includes:
//   - Booking: the aggregate root carrying identity, consignment details and lifecycle
//   - Status: the state machine Booked -> InTransit -> Delivered, with Cancelled
//     reachable from Booked and InTransit
//   - LRType: whether the LR number was generated or supplied by an operator
//   - Consignment: the sender, receiver, article and charge details
//
// Key business rules:
//   - The LR number is assigned at construction and never changes
//   - Status only moves along the transitions above; anything else is a
//     validation error and leaves the booking untouched
//   - Every transition refreshes the update timestamp and nothing else
package booking
