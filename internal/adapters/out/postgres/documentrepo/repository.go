// Package documentrepo persists uploaded order documents. Content lives in
// the blob store; the row keeps its hash and reference.
package documentrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/document"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Source     string     `gorm:"not null"`
	Filename   string     `gorm:"not null"`
	SizeBytes  int64      `gorm:"not null"`
	SHA256     string     `gorm:"column:sha256;not null"`
	BlobRef    string     `gorm:"not null"`
	Status     string     `gorm:"not null"`
	OrderID    *uuid.UUID `gorm:"type:uuid"`
	UploadedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time  `gorm:"autoCreateTime:false"`
}

func (DocumentDTO) TableName() string {
	return "order_documents"
}

type GormDocumentRepository struct {
	db *gorm.DB
}

func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) Add(ctx context.Context, aggregate *document.Document) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateDocumentErrorWithCause(aggregate.SHA256(), err)
		}
		return err
	}
	return nil
}

// Update only moves status and order link; content fields never change.
func (r *GormDocumentRepository) Update(ctx context.Context, aggregate *document.Document) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DocumentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":   dto.Status,
			"order_id": dto.OrderID,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("document order", aggregate.ID().String(), result.Error)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("document", aggregate.ID().String())
	}
	return nil
}

func (r *GormDocumentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*document.Document, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DocumentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("document", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormDocumentRepository) ExistsBySHA256(ctx context.Context, sha256 string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DocumentDTO{}).
		Where("sha256 = ?", sha256).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func fromDomain(d *document.Document) DocumentDTO {
	return DocumentDTO{
		ID:         d.ID().Bytes(),
		Source:     string(d.Source()),
		Filename:   d.Filename(),
		SizeBytes:  d.SizeBytes(),
		SHA256:     d.SHA256(),
		BlobRef:    d.BlobRef(),
		Status:     string(d.Status()),
		OrderID:    kernel.OptionalBytes(d.OrderID()),
		UploadedBy: kernel.OptionalBytes(d.UploadedBy()),
		CreatedAt:  d.CreatedAt(),
	}
}

func toDomain(dto DocumentDTO) (*document.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.OptionalUUIDFromBytes(dto.OrderID)
	if err != nil {
		return nil, err
	}
	uploadedBy, err := kernel.OptionalUUIDFromBytes(dto.UploadedBy)
	if err != nil {
		return nil, err
	}
	source, err := document.ParseSource(dto.Source)
	if err != nil {
		return nil, err
	}
	status, err := document.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return document.RestoreDocument(
		id, source, dto.Filename, dto.SizeBytes, dto.SHA256, dto.BlobRef,
		status, orderID, uploadedBy, dto.CreatedAt,
	)
}
