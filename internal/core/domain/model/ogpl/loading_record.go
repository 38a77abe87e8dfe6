package ogpl

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
)

// LoadingRecord links a booking to the sheet it was loaded on.
type LoadingRecord struct {
	id        kernel.UUID
	ogplID    kernel.UUID
	bookingID kernel.UUID
	loadedAt  time.Time
}

// RestoreLoadingRecord rebuilds a record from persisted state.
func RestoreLoadingRecord(id, ogplID, bookingID kernel.UUID, loadedAt time.Time) (LoadingRecord, error) {
	if err := errors.Join(id.Validate(), ogplID.Validate(), bookingID.Validate()); err != nil {
		return LoadingRecord{}, err
	}
	return LoadingRecord{
		id:        id,
		ogplID:    ogplID,
		bookingID: bookingID,
		loadedAt:  loadedAt.UTC(),
	}, nil
}

func (r LoadingRecord) ID() kernel.UUID        { return r.id }
func (r LoadingRecord) OGPLID() kernel.UUID    { return r.ogplID }
func (r LoadingRecord) BookingID() kernel.UUID { return r.bookingID }
func (r LoadingRecord) LoadedAt() time.Time    { return r.loadedAt }
