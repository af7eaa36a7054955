package controllers

import (
	"context"
	"net/http"

	"github.com/freshfruit/storefront/apperrors"
	"github.com/freshfruit/storefront/middleware"
	"github.com/freshfruit/storefront/models"
	"github.com/freshfruit/storefront/services"

	"github.com/gin-gonic/gin"
)

type IOrderService interface {
	Create(ctx context.Context, claims *services.Claims, req *services.CreateOrderRequest) (*models.Order, error)
	ListForUser(ctx context.Context, claims *services.Claims) ([]models.Order, error)
}

type OrderController struct {
	orderService IOrderService
}

func NewOrderController(orderService IOrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles checkout submissions
func (oc *OrderController) CreateOrder(c *gin.Context) {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.orderService.Create(c.Request.Context(), claims, &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "order": order})
}

// GetOrders returns the authenticated user's orders
func (oc *OrderController) GetOrders(c *gin.Context) {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	orders, err := oc.orderService.ListForUser(c.Request.Context(), claims)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}
