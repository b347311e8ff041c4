package ports

import (
	"context"

	"dispatch/internal/core/domain/model/document"
	"dispatch/internal/core/domain/model/kernel"
)

type DocumentRepository interface {
	// Add inserts a document. A duplicate sha256 yields errs.DuplicateDocumentError.
	Add(ctx context.Context, aggregate *document.Document) error

	Update(ctx context.Context, aggregate *document.Document) error

	GetForUpdate(ctx context.Context, id kernel.UUID) (*document.Document, error)

	ExistsBySHA256(ctx context.Context, sha256 string) (bool, error)
}
