package queries

import (
	"context"

	"freight/internal/core/ports"
)

// SearchBookingsQueryHandler queries the booking search index. Results can
// trail the database by one outbox relay tick.
type SearchBookingsQueryHandler struct {
	index ports.BookingIndex
}

func NewSearchBookingsQueryHandler(index ports.BookingIndex) SearchBookingsQueryHandler {
	return SearchBookingsQueryHandler{index: index}
}

func (h SearchBookingsQueryHandler) Handle(
	ctx context.Context,
	query SearchBookingsQuery,
) ([]ports.BookingDocument, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	search := ports.BookingSearch{
		OrganizationID: query.OrganizationID().String(),
		Text:           query.Text(),
		Limit:          query.Limit(),
	}
	if status, ok := query.Status(); ok {
		search.Status = status.String()
	}

	docs, err := h.index.Search(ctx, search)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = make([]ports.BookingDocument, 0)
	}
	return docs, nil
}
