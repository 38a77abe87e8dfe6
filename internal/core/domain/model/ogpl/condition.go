package ogpl

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// ConditionStatus is the state a booking arrived in.
type ConditionStatus int

const (
	UnknownCondition ConditionStatus = iota
	Good
	Damaged
	// Missing bookings are not delivered and keep their prior status.
	Missing
)

var conditionNames = map[ConditionStatus]string{
	Good:    "good",
	Damaged: "damaged",
	Missing: "missing",
}

func ParseConditionStatus(s string) (ConditionStatus, error) {
	for status, name := range conditionNames {
		if name == s {
			return status, nil
		}
	}
	return UnknownCondition, errs.NewValueIsInvalidErrorWithCause(
		"condition is invalid", fmt.Errorf("%q is not a condition", s))
}

func (c ConditionStatus) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return "unknown"
}

func (c ConditionStatus) Validate() error {
	if _, ok := conditionNames[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("condition is invalid", fmt.Errorf("%d is not a valid condition", c))
	}
	return nil
}

// Condition records how one booking arrived. Photo is an opaque reference
// (usually a URL) supplied by the client.
type Condition struct {
	Status  ConditionStatus
	Remarks string
	Photo   string
}

func NewCondition(status ConditionStatus, remarks, photo string) (Condition, error) {
	c := Condition{
		Status:  status,
		Remarks: strings.TrimSpace(remarks),
		Photo:   strings.TrimSpace(photo),
	}
	if err := c.Validate(); err != nil {
		return Condition{}, err
	}
	return c, nil
}

// Validate rejects unknown statuses and damaged items without remarks.
func (c Condition) Validate() error {
	if err := c.Status.Validate(); err != nil {
		return err
	}
	if c.Status == Damaged && strings.TrimSpace(c.Remarks) == "" {
		return errs.NewValueIsRequiredErrorWithCause("remarks", fmt.Errorf("damaged items must be described"))
	}
	return nil
}

// Delivers reports whether the booking should be marked delivered.
func (c Condition) Delivers() bool {
	return c.Status != Missing
}
