package queries

import (
	"context"

	"freight/internal/core/application/numbering"
	"freight/internal/core/domain/model/kernel"
)

// NumberGenerator computes candidate numbers from the latest stored ones.
type NumberGenerator interface {
	NextLRNumber(
		ctx context.Context,
		source numbering.LRNumberSource,
		organizationID kernel.UUID,
		branchID *kernel.UUID,
	) (string, error)
	NextOGPLNumber(ctx context.Context, source numbering.OGPLNumberSource, organizationID kernel.UUID) (string, error)
}

// GenerateLRNumberQueryHandler returns the number CreateBooking would
// assign right now. Nothing is reserved: a concurrent booking may take the
// number first.
type GenerateLRNumberQueryHandler struct {
	generator NumberGenerator
	source    numbering.LRNumberSource
}

func NewGenerateLRNumberQueryHandler(
	generator NumberGenerator,
	source numbering.LRNumberSource,
) GenerateLRNumberQueryHandler {
	return GenerateLRNumberQueryHandler{generator: generator, source: source}
}

func (h GenerateLRNumberQueryHandler) Handle(ctx context.Context, query GenerateLRNumberQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}
	return h.generator.NextLRNumber(ctx, h.source, query.OrganizationID(), query.BranchID())
}

// GenerateOGPLNumberQueryHandler returns the number CreateOGPL would assign
// right now.
type GenerateOGPLNumberQueryHandler struct {
	generator NumberGenerator
	source    numbering.OGPLNumberSource
}

func NewGenerateOGPLNumberQueryHandler(
	generator NumberGenerator,
	source numbering.OGPLNumberSource,
) GenerateOGPLNumberQueryHandler {
	return GenerateOGPLNumberQueryHandler{generator: generator, source: source}
}

func (h GenerateOGPLNumberQueryHandler) Handle(ctx context.Context, query GenerateOGPLNumberQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}
	return h.generator.NextOGPLNumber(ctx, h.source, query.OrganizationID())
}
