package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shubham7227/ecommerce/apperrors"
	"github.com/shubham7227/ecommerce/middleware"
	"github.com/shubham7227/ecommerce/models"
	"github.com/shubham7227/ecommerce/repository"
)

type CartController struct {
	carts repository.CartRepository
}

func NewCartController(carts repository.CartRepository) *CartController {
	return &CartController{carts: carts}
}

// Get returns the current cart for the authenticated user, empty if none
// exists yet.
func (cc *CartController) Get(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	cart, err := cc.carts.FindByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Products: []models.CartItem{}}
	}

	c.JSON(http.StatusOK, gin.H{"data": cart})
}

// AddItem adds or bumps a product line; the cart is created implicitly on
// the first add.
func (cc *CartController) AddItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var body struct {
		ProductID string `json:"id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	productID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	cart, err := cc.carts.AddItem(c.Request.Context(), userID, models.CartItem{
		ProductID: productID,
		Quantity:  body.Quantity,
	})
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cart})
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	cart, err := cc.carts.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cart})
}
