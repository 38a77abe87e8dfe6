package branchrepo

import (
	"context"
	"strings"

	"freight/internal/adapters/out/postgres/pgerr"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBranchRepository implements ports.BranchDirectory.
type GormBranchRepository struct {
	db *gorm.DB
}

func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// Add registers a branch.
func (r *GormBranchRepository) Add(ctx context.Context, branch ports.Branch) error {
	if err := branch.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branch id", err)
	}
	if err := branch.OrganizationID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("organization id", err)
	}
	branch.Name = strings.TrimSpace(branch.Name)
	if branch.Name == "" {
		return errs.NewValueIsRequiredError("branch name")
	}
	branch.Code = strings.TrimSpace(branch.Code)

	dto := fromPort(branch)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("insert branch", err)
	}
	return nil
}

func (r *GormBranchRepository) Branch(ctx context.Context, id kernel.UUID) (ports.Branch, error) {
	if err := id.Validate(); err != nil {
		return ports.Branch{}, err
	}

	var dto BranchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return ports.Branch{}, pgerr.NotFound("get branch", "branch", id.String(), err)
	}
	return toPort(dto)
}
