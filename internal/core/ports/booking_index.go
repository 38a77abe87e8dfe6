package ports

import (
	"context"
	"time"
)

// BookingDocument is the searchable projection of a booking.
type BookingDocument struct {
	ID                  string    `json:"id"`
	OrganizationID      string    `json:"organization_id"`
	LRNumber            string    `json:"lr_number"`
	LRType              string    `json:"lr_type"`
	Status              string    `json:"status"`
	OriginBranchID      string    `json:"origin_branch_id,omitempty"`
	DestinationBranchID string    `json:"destination_branch_id,omitempty"`
	Sender              string    `json:"sender"`
	Receiver            string    `json:"receiver"`
	Article             string    `json:"article"`
	Quantity            int       `json:"quantity"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// BookingSearch filters a full-text booking search.
type BookingSearch struct {
	OrganizationID string
	Text           string
	Status         string
	Limit          int
}

// BookingIndex maintains and queries the booking search projection.
type BookingIndex interface {
	Index(ctx context.Context, doc BookingDocument) error
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	Search(ctx context.Context, q BookingSearch) ([]BookingDocument, error)
}
