package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// DeliveryPassRunner runs a delivery transition pass on demand.
type DeliveryPassRunner interface {
	RunOnce(ctx context.Context) (commands.DeliveryPassReport, error)
}

// Server handles HTTP requests by delegating to application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	setOrderStatusHandler    commands.SetOrderStatusCommandHandler
	setDeliveryStatusHandler commands.SetDeliveryStatusCommandHandler

	// Query handlers
	getOrdersByEmailHandler queries.GetOrdersByEmailQueryHandler
	getRecentOrdersHandler  queries.GetRecentOrdersQueryHandler
	getOrderDetailHandler   queries.GetOrderDetailQueryHandler
	getAllOrdersHandler     queries.GetAllOrdersQueryHandler

	passRunner DeliveryPassRunner
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	setOrderStatusHandler commands.SetOrderStatusCommandHandler,
	setDeliveryStatusHandler commands.SetDeliveryStatusCommandHandler,
	getOrdersByEmailHandler queries.GetOrdersByEmailQueryHandler,
	getRecentOrdersHandler queries.GetRecentOrdersQueryHandler,
	getOrderDetailHandler queries.GetOrderDetailQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	passRunner DeliveryPassRunner,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		setOrderStatusHandler:    setOrderStatusHandler,
		setDeliveryStatusHandler: setDeliveryStatusHandler,
		getOrdersByEmailHandler:  getOrdersByEmailHandler,
		getRecentOrdersHandler:   getRecentOrdersHandler,
		getOrderDetailHandler:    getOrderDetailHandler,
		getAllOrdersHandler:      getAllOrdersHandler,
		passRunner:               passRunner,
		logger:                   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	address, err := kernel.NewAddress(req.Address.City, req.Address.Street, req.Address.Zipcode)
	if err != nil {
		return writeError(ctx, err)
	}

	lines := make([]order.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		itemID, idErr := kernel.UUIDFromString(l.ItemID)
		if idErr != nil {
			return badRequest(ctx, "Invalid item id: "+l.ItemID)
		}

		line, lineErr := order.NewLine(itemID, l.ItemName, l.OrderPrice, l.Count)
		if lineErr != nil {
			return writeError(ctx, lineErr)
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewCreateOrderCommand(req.Email, address, lines)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Order creation failed", "error", err)
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: id.String()})
}

// GetOrdersByEmail handles GET /api/v1/orders?email=.
func (s *Server) GetOrdersByEmail(ctx echo.Context) error {
	query, err := queries.NewGetOrdersByEmailQuery(ctx.QueryParam("email"))
	if err != nil {
		return writeError(ctx, err)
	}

	summaries, err := s.getOrdersByEmailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toSummaryResponses(summaries))
}

// GetRecentOrders handles GET /api/v1/orders/recent?email=&limit=.
func (s *Server) GetRecentOrders(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid limit: "+raw)
		}
		limit = parsed
	}

	query, err := queries.NewGetRecentOrdersQuery(ctx.QueryParam("email"), limit)
	if err != nil {
		return writeError(ctx, err)
	}

	summaries, err := s.getRecentOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toSummaryResponses(summaries))
}

// GetOrderDetail handles GET /api/v1/orders/:id.
func (s *Server) GetOrderDetail(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderDetailQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.getOrderDetailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDetailResponse(detail))
}

// CancelOrder handles PUT /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetOrderStatus handles PATCH /api/v1/admin/orders/:id/status.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req StatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseOrderStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSetOrderStatusCommand(id, status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetDeliveryStatus handles PATCH /api/v1/admin/orders/:id/delivery-status.
func (s *Server) SetDeliveryStatus(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req StatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseDeliveryStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSetDeliveryStatusCommand(id, status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAllOrders handles GET /api/v1/admin/orders.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	items, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toListItemResponses(items))
}

// RunDeliveryPass handles POST /api/v1/admin/delivery-passes. The pass
// outlives a disconnecting client.
func (s *Server) RunDeliveryPass(ctx echo.Context) error {
	report, err := s.passRunner.RunOnce(context.WithoutCancel(ctx.Request().Context()))
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPassResponse(report))
}
