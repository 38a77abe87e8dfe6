package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/ogpl"
)

// DepartOGPLCommandHandler moves a loaded sheet from Created to InTransit
// when the vehicle leaves the origin branch. Member bookings are already
// InTransit from loading and are not touched.
type DepartOGPLCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewDepartOGPLCommandHandler builds the handler. now stamps the sheet's
// updated time.
func NewDepartOGPLCommandHandler(uowFactory UoWFactory, now func() time.Time) DepartOGPLCommandHandler {
	return DepartOGPLCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle loads and locks the sheet, applies the transition and commits.
// An unknown id returns ObjectNotFoundError; a sheet with no loading records
// or not in Created returns a validation error.
func (h DepartOGPLCommandHandler) Handle(ctx context.Context, cmd DepartOGPLCommand) (*ogpl.OGPL, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OGPLRepository()

	sheet, err := repo.Get(ctx, cmd.OGPLID())
	if err != nil {
		return nil, err
	}

	if err = sheet.Depart(h.now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, sheet); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return sheet, nil
}
