package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shubham7227/ecommerce/apperrors"
	"github.com/shubham7227/ecommerce/middleware"
	"github.com/shubham7227/ecommerce/repository"
	"github.com/shubham7227/ecommerce/services"
)

type OrderController struct {
	orders  repository.OrderRepository
	service *services.OrderService
}

func NewOrderController(orders repository.OrderRepository, service *services.OrderService) *OrderController {
	return &OrderController{
		orders:  orders,
		service: service,
	}
}

// Create converts the user's cart into an order and responds with the new
// order's public identifier.
func (oc *OrderController) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	order, err := oc.service.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		zap.L().Error("Order creation failed", zap.Error(err))
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orderId": order.OrderID})
}

// GetByID returns one order with all line items and the shipping address.
func (oc *OrderController) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	order, err := oc.orders.FindDetail(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

// Mine returns the authenticated user's order history, newest first, with
// line items truncated for compact rendering.
func (oc *OrderController) Mine(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	orders, err := oc.orders.FindByUser(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("Order listing failed", zap.Error(err))
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// GetAll returns every order document for the admin dashboard.
func (oc *OrderController) GetAll(c *gin.Context) {
	orders, err := oc.orders.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// Update changes an order's title; the product snapshot stays immutable.
func (oc *OrderController) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	var body struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	order, err := oc.orders.UpdateTitle(c.Request.Context(), id, body.Title)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

// Cancel sets the order status to Cancelled. Repeating the call is
// idempotent.
func (oc *OrderController) Cancel(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if err := oc.service.CancelOrder(c.Request.Context(), id); err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Cancelled", "id": c.Param("id")})
}
