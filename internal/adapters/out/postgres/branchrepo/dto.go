// Package branchrepo stores branches and serves them as the branch
// directory used for LR numbering.
package branchrepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"github.com/google/uuid"
)

// BranchDTO is a branches row. Code is free text as entered by operators;
// only its first two letters feed the LR prefix.
type BranchDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Code           string    `gorm:"type:varchar(16);not null;default:''"`
}

func (BranchDTO) TableName() string {
	return "branches"
}

func fromPort(b ports.Branch) BranchDTO {
	return BranchDTO{
		ID:             b.ID.Bytes(),
		OrganizationID: b.OrganizationID.Bytes(),
		Name:           b.Name,
		Code:           b.Code,
	}
}

func toPort(dto BranchDTO) (ports.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Branch{}, err
	}
	org, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return ports.Branch{}, err
	}
	return ports.Branch{
		ID:             id,
		OrganizationID: org,
		Name:           dto.Name,
		Code:           dto.Code,
	}, nil
}
