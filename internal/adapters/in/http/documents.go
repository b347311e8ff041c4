package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/document"

	"github.com/labstack/echo/v4"
)

// UploadDocument handles the multipart POST /api/v1/documents.
func (s *Server) UploadDocument(c echo.Context) error {
	filename, content, err := readFormFile(c, "file")
	if err != nil {
		return err
	}

	var source document.Source
	if raw := c.FormValue("source"); raw != "" {
		if source, err = document.ParseSource(raw); err != nil {
			return err
		}
	}

	cmd, err := commands.NewUploadDocumentCommand(source, filename, content, actorFrom(c))
	if err != nil {
		return err
	}
	id, err := s.commands.UploadDocument.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// GetNewDocuments handles GET /api/v1/documents.
func (s *Server) GetNewDocuments(c echo.Context) error {
	query, err := queries.NewGetNewDocumentsQuery(actorFrom(c))
	if err != nil {
		return err
	}
	docs, err := s.queries.NewDocuments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDocuments(docs))
}

// CreateOrderFromDocument handles POST /api/v1/documents/{id}/order.
func (s *Server) CreateOrderFromDocument(c echo.Context) error {
	documentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req OrderFieldsRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	fields, err := req.toFields()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderFromDocumentCommand(documentID, fields, actorFrom(c))
	if err != nil {
		return err
	}
	id, err := s.commands.CreateOrderFromDocument.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}
