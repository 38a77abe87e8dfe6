package postgres

import (
	"context"
	"time"

	"freight/internal/adapters/out/postgres/bookingrepo"
	"freight/internal/adapters/out/postgres/pgerr"
	"freight/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBookingSearch implements ports.BookingIndex over the bookings table
// for deployments without Elasticsearch. The table is the projection, so
// Index and UpdateStatus have nothing to do.
type GormBookingSearch struct {
	db *gorm.DB
}

func NewGormBookingSearch(db *gorm.DB) *GormBookingSearch {
	return &GormBookingSearch{db: db}
}

func (s *GormBookingSearch) Index(context.Context, ports.BookingDocument) error {
	return nil
}

func (s *GormBookingSearch) UpdateStatus(context.Context, string, string, time.Time) error {
	return nil
}

// Search matches the LR number by prefix and the parties and article by
// substring, case-insensitively.
func (s *GormBookingSearch) Search(ctx context.Context, q ports.BookingSearch) ([]ports.BookingDocument, error) {
	org, err := uuid.Parse(q.OrganizationID)
	if err != nil {
		return nil, err
	}

	pattern := "%" + bookingrepo.EscapeLike(q.Text) + "%"
	db := s.db.WithContext(ctx).
		Model(&bookingrepo.BookingDTO{}).
		Where("organization_id = ?", org).
		Where("(lr_number ILIKE ? OR sender ILIKE ? OR receiver ILIKE ? OR article ILIKE ?)",
			bookingrepo.EscapeLike(q.Text)+"%", pattern, pattern, pattern)
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}

	var rows []bookingrepo.BookingDTO
	if err = db.Order("created_at DESC").Limit(q.Limit).Find(&rows).Error; err != nil {
		return nil, pgerr.Wrap("search bookings", err)
	}

	docs := make([]ports.BookingDocument, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, searchDocument(row))
	}
	return docs, nil
}

func searchDocument(row bookingrepo.BookingDTO) ports.BookingDocument {
	doc := ports.BookingDocument{
		ID:             row.ID.String(),
		OrganizationID: row.OrganizationID.String(),
		LRNumber:       row.LRNumber,
		LRType:         row.LRType,
		Status:         row.Status,
		Sender:         row.Sender,
		Receiver:       row.Receiver,
		Article:        row.Article,
		Quantity:       row.Quantity,
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
	if row.OriginBranchID != nil {
		doc.OriginBranchID = row.OriginBranchID.String()
	}
	if row.DestinationBranchID != nil {
		doc.DestinationBranchID = row.DestinationBranchID.String()
	}
	return doc
}
