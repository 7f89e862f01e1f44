package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shubham7227/ecommerce/apperrors"
	"github.com/shubham7227/ecommerce/models"
	"github.com/shubham7227/ecommerce/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProductRepo struct {
	repository.ProductRepository

	searchParams repository.SearchParams
	searchResult *repository.SearchResult
	searchErr    error

	detail    *models.ProductDetail
	detailErr error
}

func (f *fakeProductRepo) Search(ctx context.Context, params repository.SearchParams) (*repository.SearchResult, error) {
	f.searchParams = params
	return f.searchResult, f.searchErr
}

func (f *fakeProductRepo) FindDetail(ctx context.Context, id primitive.ObjectID) (*models.ProductDetail, error) {
	return f.detail, f.detailErr
}

type fakeReviewRepo struct {
	repository.ReviewRepository

	bestSelling []models.ProductCard
}

func (f *fakeReviewRepo) BestSelling(ctx context.Context) ([]models.ProductCard, error) {
	return f.bestSelling, nil
}

func performRequest(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchAppliesDefaults(t *testing.T) {
	repo := &fakeProductRepo{
		searchResult: &repository.SearchResult{
			Products:     []models.ProductCard{{Title: "Widget"}},
			TotalResults: 1,
			MinPrice:     5,
			MaxPrice:     40,
		},
	}
	controller := NewProductController(repo, &fakeReviewRepo{}, nil)

	r := gin.New()
	r.GET("/products/search", controller.Search)

	w := performRequest(r, http.MethodGet, "/products/search?query=widget")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "widget", repo.searchParams.Query)
	assert.Equal(t, int64(1), repo.searchParams.Page)
	assert.Equal(t, int64(defaultSearchLimit), repo.searchParams.Limit)
	assert.Nil(t, repo.searchParams.Sort)
	assert.Nil(t, repo.searchParams.MinPrice)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, defaultSortOrder, body["sortOrder"])
	assert.Equal(t, "widget", body["query"])
	assert.Equal(t, float64(1), body["totalResults"])
	assert.Equal(t, []interface{}{float64(5), float64(40)}, body["priceRange"])
	// No price facet requested, so price echoes the computed bounds.
	assert.Equal(t, []interface{}{float64(5), float64(40)}, body["price"])
}

func TestSearchParsesFacets(t *testing.T) {
	repo := &fakeProductRepo{
		searchResult: &repository.SearchResult{MinPrice: 1, MaxPrice: 100},
	}
	controller := NewProductController(repo, &fakeReviewRepo{}, nil)

	r := gin.New()
	r.GET("/products/search", controller.Search)

	w := performRequest(r, http.MethodGet,
		"/products/search?query=phone&categories=Electronics,Audio&brands=Acme&price=10,50&order=%7B%22price%22%3A1%7D&page=3&limit=24")
	require.Equal(t, http.StatusOK, w.Code)

	params := repo.searchParams
	assert.Equal(t, []string{"Electronics", "Audio"}, params.Categories)
	assert.Equal(t, []string{"Acme"}, params.Brands)
	require.NotNil(t, params.MinPrice)
	require.NotNil(t, params.MaxPrice)
	assert.Equal(t, 10.0, *params.MinPrice)
	assert.Equal(t, 50.0, *params.MaxPrice)
	require.Len(t, params.Sort, 1)
	assert.Equal(t, "price", params.Sort[0].Key)
	assert.Equal(t, int64(3), params.Page)
	assert.Equal(t, int64(24), params.Limit)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// A requested price facet is echoed back verbatim, not the bounds.
	assert.Equal(t, []interface{}{"10", "50"}, body["price"])
	assert.Equal(t, `{"price":1}`, body["sortOrder"])
}

func TestSearchRejectsMalformedPrice(t *testing.T) {
	controller := NewProductController(&fakeProductRepo{}, &fakeReviewRepo{}, nil)

	r := gin.New()
	r.GET("/products/search", controller.Search)

	w := performRequest(r, http.MethodGet, "/products/search?price=10")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "price must be a min,max pair", body["message"])
}

func TestGetByIDMalformedHexIsNotFound(t *testing.T) {
	controller := NewProductController(&fakeProductRepo{}, &fakeReviewRepo{}, nil)

	r := gin.New()
	r.GET("/products/:id", controller.GetByID)

	w := performRequest(r, http.MethodGet, "/products/not-a-hex-id")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No product found", body["message"])
}

func TestGetByIDMissingProductIsNotFound(t *testing.T) {
	repo := &fakeProductRepo{detailErr: apperrors.ErrProductNotFound}
	controller := NewProductController(repo, &fakeReviewRepo{}, nil)

	r := gin.New()
	r.GET("/products/:id", controller.GetByID)

	w := performRequest(r, http.MethodGet, "/products/"+primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No product found", body["message"])
}

func TestGetByIDReturnsDetailEnvelope(t *testing.T) {
	rating := 4.5
	repo := &fakeProductRepo{
		detail: &models.ProductDetail{Title: "Widget", Rating: &rating, TotalReviews: 12},
	}
	controller := NewProductController(repo, &fakeReviewRepo{}, nil)

	r := gin.New()
	r.GET("/products/:id", controller.GetByID)

	w := performRequest(r, http.MethodGet, "/products/"+primitive.NewObjectID().Hex())
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data models.ProductDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Widget", body.Data.Title)
	assert.Equal(t, 12, body.Data.TotalReviews)
}

func TestBestSellingEnvelope(t *testing.T) {
	reviews := &fakeReviewRepo{
		bestSelling: []models.ProductCard{{Title: "First"}, {Title: "Second"}},
	}
	controller := NewProductController(&fakeProductRepo{}, reviews, nil)

	r := gin.New()
	r.GET("/products/bestselling", controller.BestSelling)

	w := performRequest(r, http.MethodGet, "/products/bestselling")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []models.ProductCard `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "First", body.Data[0].Title)
}
