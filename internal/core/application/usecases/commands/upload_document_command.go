package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/document"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUploadDocumentCommandIsNotConstructed = errors.New(
	"UploadDocumentCommand must be created via NewUploadDocumentCommand constructor",
)

type UploadDocumentCommand struct {
	source   document.Source
	filename string
	content  []byte
	actor    actor.Actor

	guard guard.ConstructorGuard
}

func NewUploadDocumentCommand(
	source document.Source,
	filename string,
	content []byte,
	a actor.Actor,
) (UploadDocumentCommand, error) {
	if source == "" {
		source = document.SourceManual
	}
	_, sourceErr := document.ParseSource(string(source))
	var contentErr error
	if len(content) == 0 {
		contentErr = errs.NewValueIsRequiredError("file")
	}
	if err := errors.Join(sourceErr, contentErr, a.Validate()); err != nil {
		return UploadDocumentCommand{}, err
	}

	return UploadDocumentCommand{
		source:   source,
		filename: filename,
		content:  content,
		actor:    a,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UploadDocumentCommand) Validate() error {
	return c.guard.Validate(ErrUploadDocumentCommandIsNotConstructed)
}

func (c UploadDocumentCommand) Source() document.Source {
	return c.source
}

func (c UploadDocumentCommand) Filename() string {
	return c.filename
}

func (c UploadDocumentCommand) Content() []byte {
	return c.content
}

func (c UploadDocumentCommand) Actor() actor.Actor {
	return c.actor
}
