package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shubham7227/ecommerce/apperrors"
	"github.com/shubham7227/ecommerce/middleware"
	"github.com/shubham7227/ecommerce/models"
	"github.com/shubham7227/ecommerce/repository"
)

const (
	defaultSearchLimit = 12
	defaultSortOrder   = `{"rating":-1}`
)

type ProductController struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	cache    *ResponseCache
}

func NewProductController(products repository.ProductRepository, reviews repository.ReviewRepository, cache *ResponseCache) *ProductController {
	return &ProductController{
		products: products,
		reviews:  reviews,
		cache:    cache,
	}
}

// parseSearchParams extracts the faceted-search query string parameters.
// The price facet is a "min,max" pair; order is a JSON sort spec like
// {"price":1}.
func parseSearchParams(c *gin.Context) (repository.SearchParams, []string, string, error) {
	params := repository.SearchParams{
		Query:      c.Query("query"),
		Categories: splitCSV(c.Query("categories")),
		Brands:     splitCSV(c.Query("brands")),
		Page:       1,
		Limit:      defaultSearchLimit,
	}

	if page, err := strconv.ParseInt(c.Query("page"), 10, 64); err == nil && page > 0 {
		params.Page = page
	}
	if limit, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && limit > 0 {
		params.Limit = limit
	}

	var priceParts []string
	if price := c.Query("price"); price != "" {
		priceParts = strings.Split(price, ",")
		if len(priceParts) != 2 {
			return params, nil, "", apperrors.New(http.StatusInternalServerError, "price must be a min,max pair", nil)
		}
		minPrice, err := strconv.ParseFloat(priceParts[0], 64)
		if err != nil {
			return params, nil, "", err
		}
		maxPrice, err := strconv.ParseFloat(priceParts[1], 64)
		if err != nil {
			return params, nil, "", err
		}
		params.MinPrice = &minPrice
		params.MaxPrice = &maxPrice
	}

	sortOrder := c.Query("order")
	if sortOrder != "" {
		var spec map[string]int
		if err := json.Unmarshal([]byte(sortOrder), &spec); err != nil {
			return params, nil, "", err
		}
		sort := bson.D{}
		for field, direction := range spec {
			sort = append(sort, bson.E{Key: field, Value: direction})
		}
		params.Sort = sort
	}

	return params, priceParts, sortOrder, nil
}

func splitCSV(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}

// Search runs the faceted product search. The price facet narrows the
// result set but never the returned priceRange bounds.
func (pc *ProductController) Search(c *gin.Context) {
	params, priceParts, sortOrder, err := parseSearchParams(c)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	cacheKey := "search:" + c.Request.URL.RawQuery
	if cached, ok := pc.cache.Get(c.Request.Context(), cacheKey); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := pc.products.Search(c.Request.Context(), params)
	if err != nil {
		zap.L().Error("Product search failed", zap.Error(err))
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	priceRange := []float64{result.MinPrice, result.MaxPrice}
	var price interface{} = priceRange
	if priceParts != nil {
		price = priceParts
	}
	if sortOrder == "" {
		sortOrder = defaultSortOrder
	}

	response := map[string]interface{}{
		"data":         result.Products,
		"page":         params.Page,
		"limit":        params.Limit,
		"categories":   params.Categories,
		"brands":       params.Brands,
		"price":        price,
		"totalResults": result.TotalResults,
		"priceRange":   priceRange,
		"sortOrder":    sortOrder,
		"query":        params.Query,
	}

	pc.cache.SetAsync(cacheKey, response)
	c.JSON(http.StatusOK, response)
}

// GetByID returns a single product with review aggregates, or an explicit
// 404 when the product does not exist.
func (pc *ProductController) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No product found"})
		return
	}

	product, err := pc.products.FindDetail(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Featured returns a random sample of active products.
func (pc *ProductController) Featured(c *gin.Context) {
	if cached, ok := pc.cache.Get(c.Request.Context(), "featured"); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := pc.products.Featured(c.Request.Context())
	if err != nil {
		zap.L().Error("Featured products query failed", zap.Error(err))
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	response := map[string]interface{}{"data": products}
	pc.cache.SetAsync("featured", response)
	c.JSON(http.StatusOK, response)
}

// BestSelling returns the top products ranked by review count.
func (pc *ProductController) BestSelling(c *gin.Context) {
	if cached, ok := pc.cache.Get(c.Request.Context(), "bestselling"); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := pc.reviews.BestSelling(c.Request.Context())
	if err != nil {
		zap.L().Error("Best sellers query failed", zap.Error(err))
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	response := map[string]interface{}{"data": products}
	pc.cache.SetAsync("bestselling", response)
	c.JSON(http.StatusOK, response)
}

// Create adds a new product. Request bodies are trusted as-is beyond the
// binding tags.
func (pc *ProductController) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	created, err := pc.products.Create(c.Request.Context(), &product)
	if err != nil {
		zap.L().Error("Product create failed", zap.Error(err))
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	pc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": created})
}

// GetAll returns every product document unfiltered.
func (pc *ProductController) GetAll(c *gin.Context) {
	products, err := pc.products.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

// Update changes a product's title; other fields are immutable here.
func (pc *ProductController) Update(c *gin.Context) {
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

	product, err := pc.products.UpdateTitle(c.Request.Context(), id, body.Title)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	pc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Delete soft-deletes a product by clearing its active flag.
func (pc *ProductController) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	product, err := pc.products.Deactivate(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	pc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// AddReview records a rating for a product.
func (pc *ProductController) AddReview(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var body struct {
		Rating float64 `json:"Rating" binding:"required,min=1,max=5"`
		Text   string  `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	review, err := pc.reviews.Create(c.Request.Context(), &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    body.Rating,
		Text:      body.Text,
	})
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	pc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": review})
}
