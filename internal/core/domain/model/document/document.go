// Package document models an uploaded order document, deduplicated by the
// SHA-256 of its bytes.
package document

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument constructor")

type Source string

const (
	SourceManual Source = "manual"
	SourceEmail  Source = "email"
	SourceIkea   Source = "ikea"
	SourceOther  Source = "other"
)

func ParseSource(s string) (Source, error) {
	if s == "" {
		return SourceManual, nil
	}
	switch src := Source(s); src {
	case SourceManual, SourceEmail, SourceIkea, SourceOther:
		return src, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("source", fmt.Errorf("%q is not a valid document source", s))
	}
}

type Status string

const (
	StatusNew    Status = "new"
	StatusLinked Status = "linked"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusNew, StatusLinked:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid document status", s))
	}
}

// ContentHash is the lowercase hex SHA-256 of content.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

type Document struct {
	id         kernel.UUID
	source     Source
	filename   string
	sizeBytes  int64
	sha256     string
	blobRef    string
	status     Status
	orderID    *kernel.UUID
	uploadedBy *kernel.UUID
	createdAt  time.Time

	isConstructed bool
}

// NewDocument records freshly stored content in status new.
func NewDocument(
	id kernel.UUID,
	source Source,
	filename string,
	content []byte,
	blobRef string,
	uploadedBy *kernel.UUID,
	now time.Time,
) (*Document, error) {
	if len(content) == 0 {
		return nil, errs.NewValueIsRequiredError("file")
	}
	return build(id, source, filename, int64(len(content)), ContentHash(content), blobRef, StatusNew, nil, uploadedBy, now)
}

func RestoreDocument(
	id kernel.UUID,
	source Source,
	filename string,
	sizeBytes int64,
	sha256 string,
	blobRef string,
	status Status,
	orderID *kernel.UUID,
	uploadedBy *kernel.UUID,
	createdAt time.Time,
) (*Document, error) {
	return build(id, source, filename, sizeBytes, sha256, blobRef, status, orderID, uploadedBy, createdAt)
}

func build(
	id kernel.UUID,
	source Source,
	filename string,
	sizeBytes int64,
	sha string,
	blobRef string,
	status Status,
	orderID *kernel.UUID,
	uploadedBy *kernel.UUID,
	createdAt time.Time,
) (*Document, error) {
	_, sourceErr := ParseSource(string(source))
	_, statusErr := ParseStatus(string(status))
	var hashErr, refErr, linkErr error
	if len(sha) != sha256.Size*2 {
		hashErr = errs.NewValueIsInvalidErrorWithCause("sha256", fmt.Errorf("%q is not a hex SHA-256", sha))
	}
	if strings.TrimSpace(blobRef) == "" {
		refErr = errs.NewValueIsRequiredError("blob_ref")
	}
	if (status == StatusLinked) != (orderID != nil) {
		linkErr = errs.NewValueIsInvalidError("linked documents must reference exactly one order")
	}
	if err := errors.Join(id.Validate(), sourceErr, statusErr, hashErr, refErr, linkErr); err != nil {
		return nil, err
	}

	return &Document{
		id:            id,
		source:        source,
		filename:      filepath.Base(strings.TrimSpace(filename)),
		sizeBytes:     sizeBytes,
		sha256:        sha,
		blobRef:       blobRef,
		status:        status,
		orderID:       orderID,
		uploadedBy:    uploadedBy,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (d *Document) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDocumentIsNotConstructed
	}
	return nil
}

func (d *Document) ID() kernel.UUID {
	return d.id
}

func (d *Document) Source() Source {
	return d.source
}

func (d *Document) Filename() string {
	return d.filename
}

func (d *Document) SizeBytes() int64 {
	return d.sizeBytes
}

func (d *Document) SHA256() string {
	return d.sha256
}

func (d *Document) BlobRef() string {
	return d.blobRef
}

func (d *Document) Status() Status {
	return d.status
}

func (d *Document) OrderID() *kernel.UUID {
	return d.orderID
}

func (d *Document) UploadedBy() *kernel.UUID {
	return d.uploadedBy
}

func (d *Document) CreatedAt() time.Time {
	return d.createdAt
}

// LinkOrder ties the document to the order it produced. Linked documents are frozen.
func (d *Document) LinkOrder(orderID kernel.UUID) error {
	if d.status != StatusNew {
		return errs.NewInvalidStateError("link document", string(d.status))
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = &orderID
	d.status = StatusLinked
	return nil
}
