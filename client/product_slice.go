package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/shubham7227/ecommerce/models"
)

// SearchQuery mirrors the /products/search query string.
type SearchQuery struct {
	Query      string
	Categories []string
	Brands     []string
	Price      string // "min,max"
	Order      string // JSON sort spec, e.g. {"price":1}
	Page       int
	Limit      int
}

// SearchPage is the search response envelope.
type SearchPage struct {
	Data         []models.ProductCard `json:"data"`
	Page         int64                `json:"page"`
	Limit        int64                `json:"limit"`
	Categories   []string             `json:"categories"`
	Brands       []string             `json:"brands"`
	TotalResults int64                `json:"totalResults"`
	PriceRange   []float64            `json:"priceRange"`
	SortOrder    string               `json:"sortOrder"`
	Query        string               `json:"query"`
}

// ProductSlice caches search results, the current product detail, and the
// featured/best-selling rails.
type ProductSlice struct {
	store *Store

	Search      AsyncState
	Detail      AsyncState
	Featured    AsyncState
	BestSelling AsyncState

	searchPage  *SearchPage
	detail      *models.ProductDetail
	featured    []models.ProductCard
	bestSelling []models.ProductCard
}

func newProductSlice(store *Store) *ProductSlice {
	return &ProductSlice{store: store}
}

func (q SearchQuery) encode() string {
	values := url.Values{}
	if q.Query != "" {
		values.Set("query", q.Query)
	}
	if len(q.Categories) > 0 {
		values.Set("categories", strings.Join(q.Categories, ","))
	}
	if len(q.Brands) > 0 {
		values.Set("brands", strings.Join(q.Brands, ","))
	}
	if q.Price != "" {
		values.Set("price", q.Price)
	}
	if q.Order != "" {
		values.Set("order", q.Order)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values.Encode()
}

// SearchProducts runs a faceted search and caches the page.
func (s *ProductSlice) SearchProducts(ctx context.Context, query SearchQuery) error {
	s.store.write(func() { s.Search.loading() })

	var page SearchPage
	if err := s.store.api.get(ctx, "/products/search?"+query.encode(), &page); err != nil {
		s.store.write(func() { s.Search.failed(err) })
		return err
	}

	s.store.write(func() {
		s.Search.success()
		s.searchPage = &page
	})
	return nil
}

// FetchProduct loads one product's detail view.
func (s *ProductSlice) FetchProduct(ctx context.Context, id string) error {
	s.store.write(func() { s.Detail.loading() })

	var resp struct {
		Data *models.ProductDetail `json:"data"`
	}
	if err := s.store.api.get(ctx, "/products/"+id, &resp); err != nil {
		s.store.write(func() { s.Detail.failed(err) })
		return err
	}

	s.store.write(func() {
		s.Detail.success()
		s.detail = resp.Data
	})
	return nil
}

// FetchFeatured loads the random featured sample.
func (s *ProductSlice) FetchFeatured(ctx context.Context) error {
	s.store.write(func() { s.Featured.loading() })

	var resp struct {
		Data []models.ProductCard `json:"data"`
	}
	if err := s.store.api.get(ctx, "/products/featured", &resp); err != nil {
		s.store.write(func() { s.Featured.failed(err) })
		return err
	}

	s.store.write(func() {
		s.Featured.success()
		s.featured = resp.Data
	})
	return nil
}

// FetchBestSelling loads the review-count ranking.
func (s *ProductSlice) FetchBestSelling(ctx context.Context) error {
	s.store.write(func() { s.BestSelling.loading() })

	var resp struct {
		Data []models.ProductCard `json:"data"`
	}
	if err := s.store.api.get(ctx, "/products/bestselling", &resp); err != nil {
		s.store.write(func() { s.BestSelling.failed(err) })
		return err
	}

	s.store.write(func() {
		s.BestSelling.success()
		s.bestSelling = resp.Data
	})
	return nil
}

// ResetSearch clears the search operation state back to idle.
func (s *ProductSlice) ResetSearch() {
	s.store.write(func() { s.Search.reset() })
}

func (s *ProductSlice) SearchResults() *SearchPage {
	var page *SearchPage
	s.store.read(func() { page = s.searchPage })
	return page
}

func (s *ProductSlice) ProductDetail() *models.ProductDetail {
	var detail *models.ProductDetail
	s.store.read(func() { detail = s.detail })
	return detail
}

func (s *ProductSlice) FeaturedProducts() []models.ProductCard {
	var products []models.ProductCard
	s.store.read(func() { products = s.featured })
	return products
}

func (s *ProductSlice) BestSellingProducts() []models.ProductCard {
	var products []models.ProductCard
	s.store.read(func() { products = s.bestSelling })
	return products
}

func (s *ProductSlice) SearchState() AsyncState {
	var state AsyncState
	s.store.read(func() { state = s.Search })
	return state
}

func (s *ProductSlice) DetailState() AsyncState {
	var state AsyncState
	s.store.read(func() { state = s.Detail })
	return state
}

func (s *ProductSlice) resetState() {
	s.Search.reset()
	s.Detail.reset()
	s.Featured.reset()
	s.BestSelling.reset()
	s.searchPage = nil
	s.detail = nil
	s.featured = nil
	s.bestSelling = nil
}
