package ogpl

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a loading sheet.
//
//	Created ──Depart──> InTransit ──Complete──> Completed
//	   │                    │
//	   └──Cancel──> Cancelled <──Cancel
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// Created is the initial status. Bookings are loaded while in it.
	Created

	// InTransit means the vehicle has left the origin branch.
	InTransit

	// Completed is terminal and reached through unloading.
	Completed

	// Cancelled is terminal.
	Cancelled
)

var statusNames = map[Status]string{
	Created:   "created",
	InTransit: "in_transit",
	Completed: "completed",
	Cancelled: "cancelled",
}

// ParseStatus converts the snake_case name used in the database, the API
// and published events back to a Status.
//
// Returns:
//   - the matching Status and nil
//   - Unknown and a ValueIsInvalidError for any other input
//
// Example:
//
//	s, err := ogpl.ParseStatus("in_transit") // ogpl.InTransit, nil
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a sheet status", s))
}

// Validate checks that s is one of Created, InTransit, Completed or
// Cancelled.
//
// Returns:
//   - nil if the status is valid
//   - a ValueIsInvalidError naming the raw value otherwise
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name, or "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsActive reports whether the sheet still holds its bookings.
func (s Status) IsActive() bool {
	return s == Created || s == InTransit
}

// ValidateLoad checks that bookings may be added in the current status.
func (s Status) ValidateLoad() error {
	if s != Created {
		return invalidTransition(s, "load")
	}
	return nil
}

// Depart transitions Created -> InTransit.
func (s Status) Depart() (Status, error) {
	if s != Created {
		return Unknown, invalidTransition(s, "depart")
	}
	return InTransit, nil
}

// Complete transitions InTransit -> Completed. A completed sheet is
// rejected with its own message so a repeated unloading is easy to spot.
func (s Status) Complete() (Status, error) {
	if s == Completed {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("sheet is already %s", s),
		)
	}
	if s != InTransit {
		return Unknown, invalidTransition(s, "complete")
	}
	return Completed, nil
}

// Cancel transitions Created or InTransit -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if !s.IsActive() {
		return Unknown, invalidTransition(s, "cancel")
	}
	return Cancelled, nil
}

func invalidTransition(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s, action),
	)
}
