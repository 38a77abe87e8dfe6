package booking

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a booking.
//
// State transitions:
//
//	Booked ──Load──> InTransit ──Deliver──> Delivered
//	  │  ^              │
//	  │  └──Release─────┤
//	  │                 │
//	  └──Cancel──> Cancelled <──Cancel
//
// Release is only used when the loading sheet carrying the booking is
// cancelled, so the booking can be loaded again.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// Booked is the initial status. Only booked shipments can be loaded.
	Booked

	// InTransit means the booking is on a loading sheet that has not been
	// unloaded yet.
	InTransit

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

var statusNames = map[Status]string{
	Booked:    "booked",
	InTransit: "in_transit",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

// ParseStatus converts the wire representation used by the API and the
// search index back to a Status.
//
// Returns:
//   - the matching Status and nil
//   - Unknown and a ValueIsInvalidError for any other input
//
// Example:
//
//	s, err := booking.ParseStatus("booked") // booking.Booked, nil
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a booking status", s))
}

// Validate checks that s is one of the defined statuses.
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

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Load transitions Booked -> InTransit.
func (s Status) Load() (Status, error) {
	if s != Booked {
		return Unknown, invalidTransition(s, "load")
	}
	return InTransit, nil
}

// Deliver transitions InTransit -> Delivered.
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return Unknown, invalidTransition(s, "deliver")
	}
	return Delivered, nil
}

// Cancel transitions Booked or InTransit -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Booked && s != InTransit {
		return Unknown, invalidTransition(s, "cancel")
	}
	return Cancelled, nil
}

// Release transitions InTransit -> Booked.
func (s Status) Release() (Status, error) {
	if s != InTransit {
		return Unknown, invalidTransition(s, "release")
	}
	return Booked, nil
}

func invalidTransition(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s, action),
	)
}
