package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gadget-store-api/internal/application"
	"github.com/oksasatya/gadget-store-api/pkg/response"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

// Place POST /api/orders
func (h *OrderHandler) Place(c *gin.Context) {
	var req application.PlaceOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "invalid payload", err)
		return
	}
	res, err := h.Svc.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	rejected := res.Rejected
	if rejected == nil {
		rejected = []application.RejectedLine{}
	}
	response.Success(c, http.StatusOK, res.Order, "order placed", gin.H{"rejected_items": rejected})
}

// List GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.Svc.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", gin.H{"count": len(orders)})
}

// UpdateStatus PUT /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, application.ErrInvalidStatus.Error(), err)
		return
	}
	o, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, o, "order status updated", nil)
}
