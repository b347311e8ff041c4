package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetNewDocumentsQueryHandler struct {
	db *gorm.DB
}

func NewGetNewDocumentsQueryHandler(db *gorm.DB) GetNewDocumentsQueryHandler {
	return GetNewDocumentsQueryHandler{db: db}
}

func (h GetNewDocumentsQueryHandler) Handle(
	ctx context.Context,
	query GetNewDocumentsQuery,
) ([]DocumentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.actor.RequireDispatcher("list new documents"); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, source, filename, size_bytes, sha256, created_at
		FROM order_documents
		WHERE status = 'new'
		ORDER BY created_at, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]DocumentSummary, 0)
	for rows.Next() {
		var (
			d  DocumentSummary
			id uuid.UUID
		)
		if err = rows.Scan(&id, &d.Source, &d.Filename, &d.SizeBytes, &d.SHA256, &d.CreatedAt); err != nil {
			return nil, err
		}
		if d.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
