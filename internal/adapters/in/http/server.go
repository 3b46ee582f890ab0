// Package http exposes the consolidation service over REST: order intake,
// operator actions on orders and groups, and the read projections.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"ostrov/internal/core/application/usecases/commands"
	"ostrov/internal/core/application/usecases/queries"
	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/core/domain/services"
	"ostrov/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler            commands.SubmitOrderCommandHandler
	changeOrderStatusHandler      commands.ChangeOrderStatusCommandHandler
	updateGroupStatusHandler      commands.UpdateGroupStatusCommandHandler
	forceDispatchGroupHandler     commands.ForceDispatchGroupCommandHandler
	markGroupArrivedHandler       commands.MarkGroupArrivedCommandHandler
	updateGroupingSettingsHandler commands.UpdateGroupingSettingsCommandHandler

	// Query handlers
	getOrdersHandler           queries.GetOrdersQueryHandler
	getGroupsHandler           queries.GetGroupsQueryHandler
	getGroupHandler            queries.GetGroupQueryHandler
	getGroupingSettingsHandler queries.GetGroupingSettingsQueryHandler

	comparator *services.TariffComparator
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	updateGroupStatusHandler commands.UpdateGroupStatusCommandHandler,
	forceDispatchGroupHandler commands.ForceDispatchGroupCommandHandler,
	markGroupArrivedHandler commands.MarkGroupArrivedCommandHandler,
	updateGroupingSettingsHandler commands.UpdateGroupingSettingsCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getGroupsHandler queries.GetGroupsQueryHandler,
	getGroupHandler queries.GetGroupQueryHandler,
	getGroupingSettingsHandler queries.GetGroupingSettingsQueryHandler,
	comparator *services.TariffComparator,
) *Server {
	return &Server{
		submitOrderHandler:            submitOrderHandler,
		changeOrderStatusHandler:      changeOrderStatusHandler,
		updateGroupStatusHandler:      updateGroupStatusHandler,
		forceDispatchGroupHandler:     forceDispatchGroupHandler,
		markGroupArrivedHandler:       markGroupArrivedHandler,
		updateGroupingSettingsHandler: updateGroupingSettingsHandler,
		getOrdersHandler:              getOrdersHandler,
		getGroupsHandler:              getGroupsHandler,
		getGroupHandler:               getGroupHandler,
		getGroupingSettingsHandler:    getGroupingSettingsHandler,
		comparator:                    comparator,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)

	api.GET("/groups", s.GetGroups)
	api.GET("/groups/:id", s.GetGroup)
	api.POST("/groups/:id/status", s.UpdateGroupStatus)
	api.POST("/groups/:id/force-dispatch", s.ForceDispatchGroup)
	api.POST("/groups/:id/arrived", s.MarkGroupArrived)

	api.GET("/tariff/compare", s.CompareTariff)

	api.GET("/settings/:scope", s.GetGroupingSettings)
	api.PUT("/settings/:scope", s.UpdateGroupingSettings)
}

// SubmitOrder handles POST /api/v1/orders - accepts a parcel from an
// external shop system.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := make([]commands.SubmitOrderItem, len(body.Items))
	for i, item := range body.Items {
		items[i] = commands.SubmitOrderItem{
			Name:         item.Name,
			Quantity:     item.Quantity,
			PriceKopecks: item.PriceKopecks,
			WeightGrams:  item.WeightGrams,
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewSubmitOrderCommand(orderID, body.ExternalID,
		body.Recipient.Name, body.Recipient.Phone, body.Recipient.Address,
		body.Recipient.PostalCode, items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, gorm.ErrDuplicatedKey) {
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Order with this external id already exists",
			})
		}
		return s.errorResponse(ctx, handleErr, "Failed to submit order")
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.String()})
}

// GetOrders handles GET /api/v1/orders - the paginated order listing.
func (s *Server) GetOrders(ctx echo.Context) error {
	page, pageSize := pagination(ctx)

	query, err := queries.NewGetOrdersQuery(page, pageSize,
		ctx.QueryParam("status"), ctx.QueryParam("hub"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid listing parameters: " + err.Error(),
		})
	}

	result, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to retrieve orders")
	}

	response := OrderListing{
		Total:  result.Total,
		Orders: make([]OrderSummary, len(result.Orders)),
	}
	for i, row := range result.Orders {
		summary := OrderSummary{
			ID:                  row.ID.String(),
			ExternalID:          row.ExternalID,
			HubCode:             row.HubCode,
			Status:              row.Status,
			RecipientName:       row.RecipientName,
			RecipientPostalCode: row.RecipientPostalCode,
			TotalAmountKopecks:  row.TotalAmountKopecks,
			TotalWeightGrams:    row.TotalWeightGrams,
			CreatedAt:           row.CreatedAt,
		}
		if row.GroupID != nil {
			groupID := row.GroupID.String()
			summary.GroupID = &groupID
		}
		response.Orders[i] = summary
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - an operator
// moves an order along its lifecycle.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var body StatusChange
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(body.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Unknown order status: " + body.Status,
		})
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, body.Comment)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status change: " + err.Error(),
		})
	}

	if handleErr := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.errorResponse(ctx, handleErr, "Failed to change order status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetGroups handles GET /api/v1/groups - the paginated group listing.
func (s *Server) GetGroups(ctx echo.Context) error {
	page, pageSize := pagination(ctx)

	query, err := queries.NewGetGroupsQuery(page, pageSize,
		ctx.QueryParam("status"), ctx.QueryParam("hub"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid listing parameters: " + err.Error(),
		})
	}

	result, err := s.getGroupsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to retrieve groups")
	}

	response := GroupListing{
		Total:  result.Total,
		Groups: make([]GroupSummary, len(result.Groups)),
	}
	for i, row := range result.Groups {
		response.Groups[i] = GroupSummary{
			ID:               row.ID.String(),
			Number:           row.Number,
			HubCode:          row.HubCode,
			HubName:          row.HubName,
			TransportType:    row.TransportType,
			Status:           row.Status,
			OrdersCount:      row.OrdersCount,
			TotalWeightGrams: row.TotalWeightGrams,
			SavingsKopecks:   row.SavingsKopecks,
			CreatedAt:        row.CreatedAt,
			DispatchedAt:     row.DispatchedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetGroup handles GET /api/v1/groups/:id - the group detail with members.
func (s *Server) GetGroup(ctx echo.Context) error {
	groupID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid group id",
		})
	}

	query, err := queries.NewGetGroupQuery(groupID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid group id",
		})
	}

	result, err := s.getGroupHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, queries.ErrGroupNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Group not found",
			})
		}
		return s.errorResponse(ctx, err, "Failed to retrieve group")
	}

	response := GroupDetail{
		ID:                  result.ID.String(),
		Number:              result.Number,
		HubCode:             result.HubCode,
		HubName:             result.HubName,
		TransportType:       result.TransportType,
		Status:              result.Status,
		TotalWeightGrams:    result.TotalWeightGrams,
		PublicCostKopecks:   result.PublicCostKopecks,
		ContractCostKopecks: result.ContractCostKopecks,
		SavingsKopecks:      result.SavingsKopecks,
		SavingsPercent:      result.SavingsPercent,
		OperatorNote:        result.OperatorNote,
		ScheduledAt:         result.ScheduledAt,
		DispatchedAt:        result.DispatchedAt,
		ArrivedAtHubAt:      result.ArrivedAtHubAt,
		CreatedAt:           result.CreatedAt,
		Members:             make([]GroupMember, len(result.Members)),
	}
	for i, member := range result.Members {
		response.Members[i] = GroupMember{
			OrderID:             member.OrderID.String(),
			ExternalID:          member.ExternalID,
			Status:              member.Status,
			RecipientPostalCode: member.RecipientPostalCode,
			WeightGrams:         member.WeightGrams,
			PublicKopecks:       member.PublicKopecks,
			ContractKopecks:     member.ContractKopecks,
			SavingsKopecks:      member.SavingsKopecks,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateGroupStatus handles POST /api/v1/groups/:id/status - an operator
// moves a group along its lifecycle.
func (s *Server) UpdateGroupStatus(ctx echo.Context) error {
	groupID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid group id",
		})
	}

	var body StatusChange
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := group.StatusFromString(body.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Unknown group status: " + body.Status,
		})
	}

	cmd, err := commands.NewUpdateGroupStatusCommand(groupID, target, body.Comment)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status change: " + err.Error(),
		})
	}

	if handleErr := s.updateGroupStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.errorResponse(ctx, handleErr, "Failed to update group status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ForceDispatchGroup handles POST /api/v1/groups/:id/force-dispatch - an
// operator ships a group immediately, bypassing the policy thresholds.
func (s *Server) ForceDispatchGroup(ctx echo.Context) error {
	groupID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid group id",
		})
	}

	var body ForceDispatch
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewForceDispatchGroupCommand(groupID, body.Note)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid dispatch request: " + err.Error(),
		})
	}

	if handleErr := s.forceDispatchGroupHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.errorResponse(ctx, handleErr, "Failed to dispatch group")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkGroupArrived handles POST /api/v1/groups/:id/arrived - an operator
// confirms the dispatched shipment reached its destination hub.
func (s *Server) MarkGroupArrived(ctx echo.Context) error {
	groupID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid group id",
		})
	}

	cmd, err := commands.NewMarkGroupArrivedCommand(groupID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid arrival request: " + err.Error(),
		})
	}

	if handleErr := s.markGroupArrivedHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.errorResponse(ctx, handleErr, "Failed to mark group arrival")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompareTariff handles GET /api/v1/tariff/compare - quotes a single parcel
// at the public and contract tariffs for a destination index and weight.
func (s *Server) CompareTariff(ctx echo.Context) error {
	dest, err := kernel.NewPostalCode(ctx.QueryParam("postal_code"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid postal code",
		})
	}

	weightGrams, err := strconv.Atoi(ctx.QueryParam("weight_grams"))
	if err != nil || weightGrams <= 0 {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid weight",
		})
	}

	comparison, err := s.comparator.Compare(ctx.Request().Context(), dest, weightGrams)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRoute) {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Tariff provider rejected the route",
			})
		}
		if errors.Is(err, services.ErrTariffUnavailable) {
			return ctx.JSON(http.StatusServiceUnavailable, Error{
				Code:    http.StatusServiceUnavailable,
				Message: "Tariff provider is unavailable",
			})
		}
		return s.errorResponse(ctx, err, "Failed to compare tariffs")
	}

	return ctx.JSON(http.StatusOK, TariffComparison{
		PublicCostKopecks:   comparison.PublicCostKopecks,
		ContractCostKopecks: comparison.ContractCostKopecks,
		SavingsKopecks:      comparison.SavingsKopecks,
		SavingsPercent:      comparison.SavingsPercent,
		MinDays:             comparison.MinDays,
		MaxDays:             comparison.MaxDays,
	})
}

// GetGroupingSettings handles GET /api/v1/settings/:scope - the effective
// settings snapshot with its source.
func (s *Server) GetGroupingSettings(ctx echo.Context) error {
	query, err := queries.NewGetGroupingSettingsQuery(ctx.Param("scope"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid settings scope",
		})
	}

	result, err := s.getGroupingSettingsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to retrieve settings")
	}

	return ctx.JSON(http.StatusOK, GroupingSettings{
		Scope:                 result.Scope,
		Source:                result.Source,
		Enabled:               result.Enabled,
		MaxWaitHours:          result.MaxWaitHours,
		MinGroupSize:          result.MinGroupSize,
		MinSavingsKopecks:     result.MinSavingsKopecks,
		PenaltyPerHourKopecks: result.PenaltyPerHourKopecks,
		WorkerIntervalMinutes: result.WorkerIntervalMinutes,
		UpdatedAt:             result.UpdatedAt,
	})
}

// UpdateGroupingSettings handles PUT /api/v1/settings/:scope - a partial
// update merged over the scope's effective settings.
func (s *Server) UpdateGroupingSettings(ctx echo.Context) error {
	var body GroupingSettingsUpdate
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateGroupingSettingsCommand(ctx.Param("scope"),
		body.Enabled, body.MaxWaitHours, body.MinGroupSize,
		body.MinSavingsKopecks, body.PenaltyPerHourKopecks,
		body.WorkerIntervalMinutes)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid settings update: " + err.Error(),
		})
	}

	if handleErr := s.updateGroupingSettingsHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.errorResponse(ctx, handleErr, "Failed to update settings")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// errorResponse maps application errors onto HTTP statuses: missing objects
// to 404, lifecycle conflicts to 409, bad values to 400, the rest to 500.
func (s *Server) errorResponse(ctx echo.Context, err error, message string) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, group.ErrNotForming),
		errors.Is(err, group.ErrEconomicsMissing):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: message + ": " + err.Error(),
	})
}

func pagination(ctx echo.Context) (page, pageSize int) {
	page = defaultPage
	pageSize = defaultPageSize
	if v, err := strconv.Atoi(ctx.QueryParam("page")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(ctx.QueryParam("page_size")); err == nil {
		pageSize = v
	}
	return page, pageSize
}
