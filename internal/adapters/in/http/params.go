package http

import (
	"io"
	"mime/multipart"
	"net/http"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return kernel.UUID{}, badRequest("invalid path parameter "+name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func optionalUUID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	res, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// companyFor resolves the company a lifecycle request acts for. Company users
// may leave it out; dispatchers have to name it.
func companyFor(who actor.Actor, requested *openapi_types.UUID) (kernel.UUID, error) {
	if requested != nil {
		return kernel.UUIDFromBytes(requested[:])
	}
	if id := who.CompanyID(); id != nil {
		return *id, nil
	}
	return kernel.UUID{}, badRequest("company_id is required", nil)
}

// companyFromForm is companyFor for multipart requests.
func companyFromForm(c echo.Context, who actor.Actor) (kernel.UUID, error) {
	raw := c.FormValue("company_id")
	if raw == "" {
		return companyFor(who, nil)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, badRequest("invalid company_id", err)
	}
	return id, nil
}

func readFormFile(c echo.Context, field string) (string, []byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", nil, badRequest("missing file "+field, err)
	}
	content, err := readPart(header)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, content, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	if header.Size > maxUploadBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds upload limit")
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}

func attachment(c echo.Context, contentType, filename string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, contentType, body)
}
