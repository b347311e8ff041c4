package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/document"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const documentsNamespace = "documents"

// UploadDocumentCommandHandler stores an intake PDF. Content already on file
// (same SHA-256) is refused before anything is written to the blob store.
type UploadDocumentCommandHandler struct {
	uowFactory UoWFactory
	blobs      ports.BlobStore
	clock      ports.Clock
}

func NewUploadDocumentCommandHandler(
	uowFactory UoWFactory,
	blobs ports.BlobStore,
	clock ports.Clock,
) UploadDocumentCommandHandler {
	return UploadDocumentCommandHandler{uowFactory: uowFactory, blobs: blobs, clock: clock}
}

func (h UploadDocumentCommandHandler) Handle(ctx context.Context, cmd UploadDocumentCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := cmd.Actor().RequireDispatcher("upload document"); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	docRepo := uow.DocumentRepository()
	sha := document.ContentHash(cmd.Content())

	exists, err := docRepo.ExistsBySHA256(ctx, sha)
	if err != nil {
		return kernel.UUID{}, err
	}
	if exists {
		return kernel.UUID{}, errs.NewDuplicateDocumentError(sha)
	}

	ref, err := h.blobs.Put(ctx, documentsNamespace, cmd.Filename(), cmd.Content())
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("store document: %w", err)
	}

	userID := cmd.Actor().UserID()
	doc, err := document.NewDocument(
		kernel.NewUUID(), cmd.Source(), cmd.Filename(), cmd.Content(), ref, &userID, h.clock.Now(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = docRepo.Add(ctx, doc); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return doc.ID(), nil
}
