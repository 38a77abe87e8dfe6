package commands

import (
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

const maxBatchSize = 500

// validateBookingIDs rejects invalid ids and oversized batches. Empty is
// allowed; handlers that need at least one id check it themselves.
func validateBookingIDs(ids []kernel.UUID) error {
	if len(ids) > maxBatchSize {
		return errs.NewValueIsOutOfRangeError("booking ids", len(ids), 1, maxBatchSize)
	}
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("booking ids", fmt.Errorf("entry %d: %w", i, err))
		}
	}
	return nil
}
