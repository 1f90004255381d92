// Package http exposes the application's commands and queries over REST.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	changeOrderStatusHandler   commands.ChangeOrderStatusCommandHandler
	assignDriverHandler        commands.AssignDriverCommandHandler
	setSettlementInputsHandler commands.SetSettlementInputsCommandHandler
	submitReturnHandler        commands.SubmitReturnCommandHandler
	verifyReturnHandler        commands.VerifyReturnCommandHandler

	// Query handlers
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getOrderSummaryHandler queries.GetOrderSummaryQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	setSettlementInputsHandler commands.SetSettlementInputsCommandHandler,
	submitReturnHandler commands.SubmitReturnCommandHandler,
	verifyReturnHandler commands.VerifyReturnCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrderSummaryHandler queries.GetOrderSummaryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		changeOrderStatusHandler:   changeOrderStatusHandler,
		assignDriverHandler:        assignDriverHandler,
		setSettlementInputsHandler: setSettlementInputsHandler,
		submitReturnHandler:        submitReturnHandler,
		verifyReturnHandler:        verifyReturnHandler,
		getActiveOrdersHandler:     getActiveOrdersHandler,
		getOrderSummaryHandler:     getOrderSummaryHandler,
	}
}

// RegisterRoutes binds all order endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/driver", s.AssignDriver)
	api.POST("/orders/:id/settlement", s.SetSettlementInputs)
	api.POST("/orders/:id/return", s.SubmitReturn)
	api.POST("/orders/:id/return/verification", s.VerifyReturn)

	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/summary", s.GetOrderSummary)
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItemRequest is one order line in a create request.
type OrderItemRequest struct {
	ProductRef        string  `json:"productRef"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unitPrice"`
	BaseCurrency      string  `json:"baseCurrency"`
	PurchasePrice     float64 `json:"purchasePrice"`
	DropshippingPrice float64 `json:"dropshippingPrice"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	InvoiceNumber string             `json:"invoiceNumber"`
	Country       string             `json:"country"`
	City          string             `json:"city"`
	PhoneCode     string             `json:"phoneCode"`
	Items         []OrderItemRequest `json:"items"`
	ShippingFee   float64            `json:"shippingFee"`
	Discount      float64            `json:"discount"`
	Total         *float64           `json:"total"`
	CreatorID     string             `json:"creatorId"`
	CreatorRole   string             `json:"creatorRole"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	creatorID, err := kernel.UUIDFromString(req.CreatorID)
	if err != nil {
		return badRequest(ctx, "Invalid creator id")
	}

	items := make([]commands.CreateOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = commands.CreateOrderItem{
			ProductRef:        item.ProductRef,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			BaseCurrency:      item.BaseCurrency,
			PurchasePrice:     item.PurchasePrice,
			DropshippingPrice: item.DropshippingPrice,
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		req.InvoiceNumber,
		req.Country,
		req.City,
		req.PhoneCode,
		items,
		req.ShippingFee,
		req.Discount,
		req.Total,
		creatorID,
		req.CreatorRole,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// ChangeOrderStatusRequest is the body of POST /orders/:id/status.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ChangeOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDriverRequest is the body of POST /orders/:id/driver.
type AssignDriverRequest struct {
	DriverID   string  `json:"driverId"`
	Commission float64 `json:"commission"`
}

// AssignDriver handles POST /api/v1/orders/:id/driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AssignDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID, req.Commission)
	if err != nil {
		return badRequest(ctx, "Invalid driver data: "+err.Error())
	}

	if err := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// InvestorShareRequest is the investor share of a settlement inputs request.
type InvestorShareRequest struct {
	InvestorID string  `json:"investorId"`
	Amount     float64 `json:"amount"`
	Pending    bool    `json:"pending"`
}

// SetSettlementInputsRequest is the body of POST /orders/:id/settlement.
// Every field is optional; at least one must be present.
type SetSettlementInputsRequest struct {
	ManagerID       *string               `json:"managerId"`
	Investor        *InvestorShareRequest `json:"investor"`
	CommissionerID  *string               `json:"commissionerId"`
	ReferenceProfit *float64              `json:"referenceProfit"`
}

// SetSettlementInputs handles POST /api/v1/orders/:id/settlement.
func (s *Server) SetSettlementInputs(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req SetSettlementInputsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	managerID, err := optionalUUIDValue(req.ManagerID)
	if err != nil {
		return badRequest(ctx, "Invalid manager id")
	}
	commissionerID, err := optionalUUIDValue(req.CommissionerID)
	if err != nil {
		return badRequest(ctx, "Invalid commissioner id")
	}

	var investor *commands.InvestorShareInput
	if req.Investor != nil {
		investorID, err := kernel.UUIDFromString(req.Investor.InvestorID)
		if err != nil {
			return badRequest(ctx, "Invalid investor id")
		}
		investor = &commands.InvestorShareInput{
			InvestorID: investorID,
			Amount:     req.Investor.Amount,
			Pending:    req.Investor.Pending,
		}
	}

	cmd, err := commands.NewSetSettlementInputsCommand(
		orderID, managerID, investor, commissionerID, req.ReferenceProfit)
	if err != nil {
		return badRequest(ctx, "Invalid settlement data: "+err.Error())
	}

	if err := s.setSettlementInputsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitReturnRequest is the body of POST /orders/:id/return.
type SubmitReturnRequest struct {
	Reason string `json:"reason"`
}

// SubmitReturn handles POST /api/v1/orders/:id/return.
func (s *Server) SubmitReturn(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req SubmitReturnRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSubmitReturnCommand(orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid return data: "+err.Error())
	}

	if err := s.submitReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerifyReturnRequest is the body of POST /orders/:id/return/verification.
type VerifyReturnRequest struct {
	VerifierID string `json:"verifierId"`
}

// VerifyReturn handles POST /api/v1/orders/:id/return/verification.
func (s *Server) VerifyReturn(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req VerifyReturnRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	verifierID, err := kernel.UUIDFromString(req.VerifierID)
	if err != nil {
		return badRequest(ctx, "Invalid verifier id")
	}

	cmd, err := commands.NewVerifyReturnCommand(orderID, verifierID)
	if err != nil {
		return badRequest(ctx, "Invalid verification data: "+err.Error())
	}

	if err := s.verifyReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ActiveOrderResponse is one row of GET /orders/active.
type ActiveOrderResponse struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	Status        string `json:"status"`
	Country       string `json:"country"`
	City          string `json:"city"`
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve active orders",
		})
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, row := range orders {
		response[i] = ActiveOrderResponse{
			ID:            row.ID.String(),
			InvoiceNumber: row.InvoiceNumber,
			Status:        row.Status,
			Country:       row.Country,
			City:          row.City,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// OrderSummaryResponse is the body of GET /orders/summary.
type OrderSummaryResponse struct {
	TotalOrders      int                `json:"totalOrders"`
	TotalQty         int                `json:"totalQty"`
	DeliveredOrders  int                `json:"deliveredOrders"`
	DeliveredQty     int                `json:"deliveredQty"`
	AmountByCurrency map[string]float64 `json:"amountByCurrency"`
	TotalProfit      float64            `json:"totalProfit"`
	TotalLoss        float64            `json:"totalLoss"`
	NetProfit        float64            `json:"netProfit"`
}

// GetOrderSummary handles GET /api/v1/orders/summary. All filters are
// optional query parameters; from/to are RFC 3339 timestamps.
func (s *Server) GetOrderSummary(ctx echo.Context) error {
	agentID, err := optionalUUID(ctx.QueryParam("agentId"))
	if err != nil {
		return badRequest(ctx, "Invalid agent id")
	}
	driverID, err := optionalUUID(ctx.QueryParam("driverId"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}
	from, err := optionalTime(ctx.QueryParam("from"))
	if err != nil {
		return badRequest(ctx, "Invalid from timestamp")
	}
	to, err := optionalTime(ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, "Invalid to timestamp")
	}

	query, err := queries.NewGetOrderSummaryQuery(
		ctx.QueryParam("country"),
		ctx.QueryParam("status"),
		agentID,
		driverID,
		from,
		to,
	)
	if err != nil {
		return badRequest(ctx, "Invalid summary filter: "+err.Error())
	}

	summary, err := s.getOrderSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build order summary",
		})
	}

	amounts := make(map[string]float64, len(summary.AmountByCurrency))
	for currency, amount := range summary.AmountByCurrency {
		amounts[string(currency)] = amount
	}

	return ctx.JSON(http.StatusOK, OrderSummaryResponse{
		TotalOrders:      summary.TotalOrders,
		TotalQty:         summary.TotalQty,
		DeliveredOrders:  summary.DeliveredOrders,
		DeliveredQty:     summary.DeliveredQty,
		AmountByCurrency: amounts,
		TotalProfit:      summary.TotalProfit,
		TotalLoss:        summary.TotalLoss,
		NetProfit:        summary.NetProfit,
	})
}

func optionalUUID(raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalUUIDValue(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	return optionalUUID(*raw)
}

func optionalTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps typed domain failures onto HTTP status codes. Frozen
// orders and repeated verifications conflict with current state (409),
// a verification without submission is an unprocessable request (422).
func domainError(ctx echo.Context, err error) error {
	var (
		locked          *order.LockedError
		alreadyVerified *order.AlreadyVerifiedError
		invalidState    *order.InvalidStateError
		notFound        *errs.ObjectNotFoundError
		invalidValue    *errs.ValueIsInvalidError
		requiredValue   *errs.ValueIsRequiredError
	)

	switch {
	case errors.As(err, &locked), errors.As(err, &alreadyVerified):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.As(err, &invalidState):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.As(err, &notFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.As(err, &invalidValue), errors.As(err, &requiredValue):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
