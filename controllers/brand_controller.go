package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shubham7227/ecommerce/apperrors"
	"github.com/shubham7227/ecommerce/models"
	"github.com/shubham7227/ecommerce/repository"
)

type BrandController struct {
	brands repository.BrandRepository
}

func NewBrandController(brands repository.BrandRepository) *BrandController {
	return &BrandController{brands: brands}
}

func (bc *BrandController) Create(c *gin.Context) {
	var brand models.Brand
	if err := c.ShouldBindJSON(&brand); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	created, err := bc.brands.Create(c.Request.Context(), &brand)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (bc *BrandController) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	brand, err := bc.brands.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": brand})
}

func (bc *BrandController) GetAll(c *gin.Context) {
	brands, err := bc.brands.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": brands})
}

func (bc *BrandController) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	var body struct {
		Title         string `json:"title"`
		FeaturedImage string `json:"featuredImage"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	updates := bson.M{}
	if body.Title != "" {
		updates["title"] = body.Title
	}
	if body.FeaturedImage != "" {
		updates["featuredImage"] = body.FeaturedImage
	}

	brand, err := bc.brands.Update(c.Request.Context(), id, updates)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": brand})
}

func (bc *BrandController) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	brand, err := bc.brands.Deactivate(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": brand})
}
