package booking

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// LRType records who produced the LR number. It is stored next to the
// number but does not change how the number takes part in the sequence:
// a manual number shaped like a generated one still occupies its slot.
type LRType int

const (
	// UnknownLRType is the zero value and never valid.
	UnknownLRType LRType = iota
	// System numbers come from the sequence generator.
	System
	// Manual numbers are typed in by an operator from a pre-printed receipt.
	Manual
)

// ParseLRType converts the persisted and wire form ("system" or "manual")
// back to an LRType.
//
// Returns:
//   - the matching LRType and nil
//   - UnknownLRType and a ValueIsInvalidError for any other input
//
// Example:
//
//	t, err := booking.ParseLRType("manual") // booking.Manual, nil
func ParseLRType(s string) (LRType, error) {
	switch s {
	case "system":
		return System, nil
	case "manual":
		return Manual, nil
	}
	return UnknownLRType, errs.NewValueIsInvalidErrorWithCause("lr type is invalid", fmt.Errorf("%q is not an lr type", s))
}

// Validate checks that t is System or Manual. UnknownLRType and values
// outside the enum return a ValueIsInvalidError.
//
// Repositories call it when restoring a booking so a corrupted row is
// reported instead of silently mapped.
func (t LRType) Validate() error {
	if t != System && t != Manual {
		return errs.NewValueIsInvalidErrorWithCause("lr type is invalid", fmt.Errorf("%d is not a valid lr type", t))
	}
	return nil
}

// String returns "system", "manual" or "unknown".
func (t LRType) String() string {
	switch t {
	case System:
		return "system"
	case Manual:
		return "manual"
	}
	return "unknown"
}
