// Package pgerr turns gorm errors into the error kinds the core expects.
package pgerr

import (
	"errors"
	"fmt"

	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// Wrap reports err as a DataAccessError for operation. A unique index
// violation carries ports.ErrDuplicateIdentifier so creation handlers can
// retry. The connection must be opened with gorm.Config.TranslateError.
func Wrap(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrDataAccess) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewDataAccessError(operation, fmt.Errorf("%w: %w", ports.ErrDuplicateIdentifier, err))
	}
	return errs.NewDataAccessError(operation, err)
}

// NotFound maps gorm.ErrRecordNotFound to an ObjectNotFoundError and
// anything else through Wrap.
func NotFound(operation, param, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(param, id)
	}
	return Wrap(operation, err)
}
