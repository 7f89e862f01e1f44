package repository

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shubham7227/ecommerce/apperrors"
	"github.com/shubham7227/ecommerce/models"
	"github.com/shubham7227/ecommerce/pipeline"
)

// Tunables for the search and featured pipelines. The fuzzy bounds match the
// Atlas Search index configuration.
const (
	SearchIndexName     = "searchIndex"
	SearchMaxEdits      = 1
	SearchMaxExpansions = 100
	FeaturedSampleSize  = 5
)

// SearchParams carries the optional faceted-search filters. A nil price
// bound means the facet is absent; Sort is nil when the caller requested no
// explicit ordering.
type SearchParams struct {
	Query      string
	Categories []string
	Brands     []string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       bson.D
	Page       int64
	Limit      int64
}

// SearchResult bundles the page of products with the facet metadata the
// storefront renders around it. PriceRange is computed over the category and
// brand filters only, so narrowing the price facet never moves the
// range-selector bounds.
type SearchResult struct {
	Products     []models.ProductCard
	TotalResults int64
	MinPrice     float64
	MaxPrice     float64
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
	FindDetail(ctx context.Context, id primitive.ObjectID) (*models.ProductDetail, error)
	Featured(ctx context.Context) ([]models.ProductCard, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) (*models.Product, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}

type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection("products")}
}

// reviewSummary joins reviews and computes the card display fields.
func reviewSummary(b *pipeline.Builder) *pipeline.Builder {
	return b.
		Lookup("reviews", "_id", "ProductID", "reviews").
		AddFields(bson.M{
			"imageUrl": bson.M{"$first": "$imageURLHighRes"},
			"category": bson.M{"$first": "$category"},
			"rating":   bson.M{"$avg": "$reviews.Rating"},
		})
}

var cardProjection = bson.M{
	"_id":          1,
	"title":        1,
	"brand":        1,
	"price":        bson.M{"$round": bson.A{"$price", 2}},
	"MRP":          bson.M{"$round": bson.A{"$MRP", 2}},
	"imageUrl":     1,
	"category":     1,
	"rating":       bson.M{"$round": bson.A{"$rating", 1}},
	"totalReviews": bson.M{"$size": "$reviews"},
}

// searchPipelines assembles the three pipelines a faceted search runs: the
// result page, the total match count, and the price bounds. The bounds
// branch forks before the price facet is applied. Pagination happens right
// after filtering when no sort is requested; with a sort it must wait until
// the review join has produced the totalReviews tie-break field.
func searchPipelines(params SearchParams) (results, count, bounds mongo.Pipeline) {
	base := pipeline.New()

	if params.Query != "" {
		base.Search(SearchIndexName, "title", params.Query, SearchMaxEdits, SearchMaxExpansions)
	}

	facets := bson.M{}
	if len(params.Categories) > 0 {
		facets["category"] = bson.M{"$in": params.Categories}
	}
	if len(params.Brands) > 0 {
		facets["brand"] = bson.M{"$in": params.Brands}
	}

	boundsBuilder := base.Clone().
		Match(copyFilter(facets)).
		Group(bson.M{
			"_id":      nil,
			"maxPrice": bson.M{"$max": "$price"},
			"minPrice": bson.M{"$min": "$price"},
		})

	if params.MinPrice != nil && params.MaxPrice != nil {
		facets["price"] = bson.M{"$gte": *params.MinPrice, "$lte": *params.MaxPrice}
	}
	base.Match(facets)

	countBuilder := base.Clone().Count("count")

	if params.Sort == nil {
		base.Paginate(params.Page, params.Limit)
	}

	reviewSummary(base).Project(cardProjection)

	if params.Sort != nil {
		sort := make(bson.D, 0, len(params.Sort)+1)
		sort = append(sort, params.Sort...)
		sort = append(sort, bson.E{Key: "totalReviews", Value: -1})
		base.Sort(sort).Paginate(params.Page, params.Limit)
	}

	return base.Build(), countBuilder.Build(), boundsBuilder.Build()
}

func copyFilter(filter bson.M) bson.M {
	out := bson.M{}
	for k, v := range filter {
		out[k] = v
	}
	return out
}

func (r *MongoProductRepository) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	resultsPipe, countPipe, boundsPipe := searchPipelines(params)

	cursor, err := r.collection.Aggregate(ctx, resultsPipe)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.ProductCard{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	var countDocs []struct {
		Count int64 `bson:"count"`
	}
	countCursor, err := r.collection.Aggregate(ctx, countPipe)
	if err != nil {
		return nil, err
	}
	if err := countCursor.All(ctx, &countDocs); err != nil {
		return nil, err
	}

	var boundsDocs []struct {
		MinPrice float64 `bson:"minPrice"`
		MaxPrice float64 `bson:"maxPrice"`
	}
	boundsCursor, err := r.collection.Aggregate(ctx, boundsPipe)
	if err != nil {
		return nil, err
	}
	if err := boundsCursor.All(ctx, &boundsDocs); err != nil {
		return nil, err
	}

	result := &SearchResult{Products: products}
	if len(countDocs) > 0 {
		result.TotalResults = countDocs[0].Count
	}
	if len(boundsDocs) > 0 {
		result.MinPrice = math.Floor(boundsDocs[0].MinPrice)
		result.MaxPrice = math.Ceil(boundsDocs[0].MaxPrice)
	}
	return result, nil
}

// productDetailPipeline matches one product and annotates it with review
// aggregates.
func productDetailPipeline(id primitive.ObjectID) mongo.Pipeline {
	return pipeline.New().
		Match(bson.M{"_id": id}).
		Lookup("reviews", "_id", "ProductID", "reviews").
		AddFields(bson.M{
			"rating": bson.M{"$avg": "$reviews.Rating"},
		}).
		Project(bson.M{
			"_id":             1,
			"title":           1,
			"brand":           1,
			"price":           bson.M{"$round": bson.A{"$price", 2}},
			"MRP":             bson.M{"$round": bson.A{"$MRP", 2}},
			"description":     1,
			"feature":         1,
			"imageURL":        1,
			"imageURLHighRes": 1,
			"category":        1,
			"quantity":        1,
			"rating":          bson.M{"$round": bson.A{"$rating", 1}},
			"totalReviews":    bson.M{"$size": "$reviews"},
		}).
		Build()
}

func (r *MongoProductRepository) FindDetail(ctx context.Context, id primitive.ObjectID) (*models.ProductDetail, error) {
	cursor, err := r.collection.Aggregate(ctx, productDetailPipeline(id))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.ProductDetail
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperrors.ErrProductNotFound
	}
	return &results[0], nil
}

// featuredPipeline samples random active products for the storefront banner.
func featuredPipeline() mongo.Pipeline {
	b := pipeline.New().
		Match(bson.M{"active": true}).
		Sample(FeaturedSampleSize)
	return reviewSummary(b).
		Project(bson.M{
			"_id":      1,
			"title":    1,
			"brand":    1,
			"price":    bson.M{"$round": bson.A{"$price", 2}},
			"MRP":      bson.M{"$round": bson.A{"$MRP", 2}},
			"imageUrl": 1,
			"category": 1,
			"rating":   bson.M{"$round": bson.A{"$rating", 1}},
		}).
		Build()
}

func (r *MongoProductRepository) Featured(ctx context.Context) ([]models.ProductCard, error) {
	cursor, err := r.collection.Aggregate(ctx, featuredPipeline())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.ProductCard{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = primitive.NewObjectID()
	product.Active = true
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *MongoProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) (*models.Product, error) {
	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, err
	}
	if title != "" {
		product.Title = title
	}
	product.UpdatedAt = time.Now().UTC()

	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Deactivate soft-deletes a product by clearing its active flag.
func (r *MongoProductRepository) Deactivate(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now().UTC()}},
	).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock applies an unconditional $inc of -quantity. Stock can go
// negative when cart state and stock disagree; order creation relies on the
// surrounding transaction, not a floor check here.
func (r *MongoProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"quantity": -quantity}},
	)
	return err
}
