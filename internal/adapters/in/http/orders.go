package http

import (
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req OrderFieldsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	fields, err := req.toFields()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(fields, actorFrom(c))
	if err != nil {
		return err
	}
	id, err := s.commands.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	details, err := s.orderDetails(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderDetails(details))
}

// GetJobSheet handles GET /api/v1/orders/{id}/sheet.pdf.
func (s *Server) GetJobSheet(c echo.Context) error {
	details, err := s.orderDetails(c)
	if err != nil {
		return err
	}
	pdf, err := s.reports.JobSheet.Generate(details, s.clock.Location())
	if err != nil {
		return err
	}
	return attachment(c, "application/pdf", "auftrag-"+details.Number+".pdf", pdf)
}

func (s *Server) orderDetails(c echo.Context) (queries.OrderDetails, error) {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return queries.OrderDetails{}, err
	}
	query, err := queries.NewGetOrderQuery(orderID, actorFrom(c))
	if err != nil {
		return queries.OrderDetails{}, err
	}
	return s.queries.Order.Handle(c.Request().Context(), query)
}

// GetPool handles GET /api/v1/pool.
func (s *Server) GetPool(c echo.Context) error {
	orders, err := s.queries.Pool.Handle(c.Request().Context(), queries.NewGetPoolOrdersQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderSummaries(orders))
}

// AssignOrder handles POST /api/v1/orders/{id}/assign.
func (s *Server) AssignOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req CompanyRefRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	if req.CompanyID == nil {
		return badRequest("company_id is required", nil)
	}
	companyID, err := kernel.UUIDFromBytes(req.CompanyID[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, companyID, actorFrom(c))
	if err != nil {
		return err
	}
	if err = s.commands.AssignOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PublishToPool handles POST /api/v1/orders/{id}/publish.
func (s *Server) PublishToPool(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewPublishToPoolCommand(orderID, actorFrom(c))
	if err != nil {
		return err
	}
	if err = s.commands.PublishToPool.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// TakeFromPool handles POST /api/v1/orders/{id}/take.
func (s *Server) TakeFromPool(c echo.Context) error {
	orderID, companyID, err := s.custody(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewTakeFromPoolCommand(orderID, companyID, actorFrom(c))
	if err != nil {
		return err
	}
	if err = s.commands.TakeFromPool.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/orders/{id}/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req RejectRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	companyID, err := companyFor(actorFrom(c), req.CompanyID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, companyID, req.Reason, actorFrom(c))
	if err != nil {
		return err
	}
	if err = s.commands.RejectOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// StartOrder handles POST /api/v1/orders/{id}/start.
func (s *Server) StartOrder(c echo.Context) error {
	orderID, companyID, err := s.custody(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewStartOrderCommand(orderID, companyID, actorFrom(c))
	if err != nil {
		return err
	}
	if err = s.commands.StartOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// FinishOrder handles POST /api/v1/orders/{id}/finish.
func (s *Server) FinishOrder(c echo.Context) error {
	orderID, companyID, err := s.custody(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewFinishOrderCommand(orderID, companyID, actorFrom(c))
	if err != nil {
		return err
	}
	if err = s.commands.FinishOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReportOutcome handles the multipart POST /api/v1/orders/{id}/outcome.
func (s *Server) ReportOutcome(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	who := actorFrom(c)
	companyID, err := companyFromForm(c, who)
	if err != nil {
		return err
	}
	outcome, err := order.ParseStatus(c.FormValue("status"))
	if err != nil {
		return badRequest("status", err)
	}
	filename, content, err := readFormFile(c, "photo")
	if err != nil {
		return err
	}

	cmd, err := commands.NewReportOutcomeCommand(
		orderID,
		companyID,
		outcome,
		order.ReasonCategory(c.FormValue("reason_category")),
		c.FormValue("reason_text"),
		commands.Photo{Filename: filename, Content: content},
		who,
	)
	if err != nil {
		return err
	}
	if err = s.commands.ReportOutcome.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RecordReason handles POST /api/v1/orders/{id}/reason.
func (s *Server) RecordReason(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ReasonRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewRecordReasonCommand(orderID, order.ReasonCategory(req.Category), req.Text, actorFrom(c))
	if err != nil {
		return err
	}
	if err = s.commands.RecordReason.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateDelivery handles PUT /api/v1/orders/{id}/delivery.
func (s *Server) UpdateDelivery(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req DeliveryRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	status, err := delivery.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	update := delivery.Update{
		Status:         status,
		Carrier:        req.Carrier,
		TrackingNumber: req.TrackingNumber,
		PlannedDate:    dateOf(req.PlannedDate),
		DeliveredDate:  dateOf(req.DeliveredDate),
		Notes:          req.Notes,
	}
	cmd, err := commands.NewUpdateDeliveryCommand(orderID, update, actorFrom(c))
	if err != nil {
		return err
	}
	if err = s.commands.UpdateDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// custody reads the order from the path and the acting company from the body.
func (s *Server) custody(c echo.Context) (orderID, companyID kernel.UUID, err error) {
	orderID, err = pathUUID(c, "id")
	if err != nil {
		return orderID, companyID, err
	}
	var req CompanyRefRequest
	if err = c.Bind(&req); err != nil {
		return orderID, companyID, err
	}
	companyID, err = companyFor(actorFrom(c), req.CompanyID)
	return orderID, companyID, err
}

func dateOf(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
