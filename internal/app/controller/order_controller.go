package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/service"
	apperrors "github.com/emra/admin-console/internal/errors"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

// StatusChangeRequest names the status the operator saw when choosing the action
type StatusChangeRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

func orderFilter(c *gin.Context) service.OrderFilter {
	return service.OrderFilter{
		Search: c.Query("search"),
		Status: model.OrderStatus(c.Query("status")),
	}
}

func orderListResponse(orders []model.Order, filter service.OrderFilter) gin.H {
	filtered := service.FilterOrders(orders, filter)
	return gin.H{
		"orders":   filtered,
		"count":    len(filtered),
		"counters": service.CountOrders(orders),
		"statuses": model.OrderStatuses(),
	}
}

// ListOrders returns orders narrowed by ?search= and ?status=
// GET /orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.List(c.Request.Context(), currentSession(c), model.OrderQuery{})
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch orders", nil)
		return
	}
	c.JSON(http.StatusOK, orderListResponse(orders, orderFilter(c)))
}

// ExportOrders downloads the filtered order list as a spreadsheet
// GET /orders/export
func (ctrl *OrderController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.List(c.Request.Context(), currentSession(c), model.OrderQuery{})
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch orders for export", nil)
		return
	}
	filtered := service.FilterOrders(orders, orderFilter(c))

	file, err := service.ExportOrders(filtered)
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to build order export", nil)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		log.Error("Failed to write order export", err, map[string]interface{}{
			"count": len(filtered),
		})
		return
	}

	log.Info("Orders exported", map[string]interface{}{
		"count": len(filtered),
	})
}

// GetOrder returns order details
// GET /orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	order, err := ctrl.orderService.Get(c.Request.Context(), currentSession(c), id)
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch order", map[string]interface{}{
			"order_id": id,
		})
		return
	}

	next, hasNext := order.Status.Next()
	resp := gin.H{
		"order":           order,
		"statusLabel":     order.Status.Label(),
		"paymentLabel":    order.PaymentStatus.Label(),
		"deliveryType":    order.DeliveryTypeOrDefault(),
		"totalConsistent": order.TotalConsistent(),
		"canCancel":       order.Status.CanCancel(),
	}
	if hasNext {
		resp["nextStatus"] = next
		resp["nextLabel"] = next.Label()
	}
	c.JSON(http.StatusOK, resp)
}

// AdvanceOrder moves an order to the single next status once confirmed
// POST /orders/:id/advance?confirm=true
func (ctrl *OrderController) AdvanceOrder(c *gin.Context) {
	ctrl.changeStatus(c, false)
}

// CancelOrder cancels a non-terminal order once confirmed
// POST /orders/:id/cancel?confirm=true
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	ctrl.changeStatus(c, true)
}

func (ctrl *OrderController) changeStatus(c *gin.Context, cancel bool) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Укажите текущий статус")
		return
	}

	var (
		orders []model.Order
		err    error
	)
	if cancel {
		orders, err = ctrl.orderService.Cancel(c.Request.Context(), currentSession(c), id, req.Status, isConfirmed(c))
	} else {
		orders, err = ctrl.orderService.Advance(c.Request.Context(), currentSession(c), id, req.Status, isConfirmed(c))
	}
	if err != nil {
		respondError(c, log, err, apperrors.ActionUpdate, "Failed to change order status", map[string]interface{}{
			"order_id": id,
			"from":     req.Status,
			"cancel":   cancel,
		})
		return
	}
	c.JSON(http.StatusOK, orderListResponse(orders, service.OrderFilter{}))
}
