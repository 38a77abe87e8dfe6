package booking

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

const (
	maxPartyLength   = 200
	maxQuantity      = 100000
	maxArticleLength = 200
)

// Consignment describes what is shipped and for how much. The charges are
// carried for invoicing and play no part in the lifecycle.
type Consignment struct {
	Sender        string
	Receiver      string
	Article       string
	Quantity      int
	WeightKg      float64
	FreightCharge float64
	OtherCharges  float64
}

// Total returns freight plus other charges.
func (c Consignment) Total() float64 {
	return c.FreightCharge + c.OtherCharges
}

// Validate checks required parties and non-negative amounts.
func (c Consignment) Validate() error {
	return errors.Join(
		requiredText("sender", c.Sender, maxPartyLength),
		requiredText("receiver", c.Receiver, maxPartyLength),
		requiredText("article", c.Article, maxArticleLength),
		inRange("quantity", c.Quantity, 1, maxQuantity),
		nonNegative("weight", c.WeightKg),
		nonNegative("freight charge", c.FreightCharge),
		nonNegative("other charges", c.OtherCharges),
	)
}

func requiredText(name, value string, maxLen int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	if len(value) > maxLen {
		return errs.NewValueIsOutOfRangeError(name+" length", len(value), 1, maxLen)
	}
	return nil
}

func inRange(name string, value, minValue, maxValue int) error {
	if value < minValue || value > maxValue {
		return errs.NewValueIsOutOfRangeError(name, value, minValue, maxValue)
	}
	return nil
}

func nonNegative(name string, value float64) error {
	if value < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name+" is invalid", fmt.Errorf("%v is negative", value))
	}
	return nil
}
