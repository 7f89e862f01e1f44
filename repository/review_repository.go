package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shubham7227/ecommerce/models"
	"github.com/shubham7227/ecommerce/pipeline"
)

// BestSellerCount bounds the best-seller ranking. Ties between equal review
// counts fall back to the engine's natural order.
const BestSellerCount = 10

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	BestSelling(ctx context.Context) ([]models.ProductCard, error)
}

type MongoReviewRepository struct {
	collection *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{collection: db.Collection("reviews")}
}

// bestSellerPipeline ranks products by review count, descending, then joins
// the top entries back to product data.
func bestSellerPipeline() mongo.Pipeline {
	return pipeline.New().
		Group(bson.M{
			"_id":    "$ProductID",
			"count":  bson.M{"$count": bson.M{}},
			"rating": bson.M{"$avg": "$Rating"},
		}).
		Sort(bson.D{{Key: "count", Value: -1}}).
		Limit(BestSellerCount).
		Lookup("products", "_id", "_id", "productData").
		Unwind("$productData").
		AddFields(bson.M{
			"imageUrl": bson.M{"$first": "$productData.imageURLHighRes"},
			"category": bson.M{"$first": "$productData.category"},
		}).
		Project(bson.M{
			"_id":      "$productData._id",
			"title":    "$productData.title",
			"brand":    "$productData.brand",
			"price":    bson.M{"$round": bson.A{"$productData.price", 2}},
			"MRP":      bson.M{"$round": bson.A{"$productData.MRP", 2}},
			"imageUrl": 1,
			"category": 1,
			"rating":   bson.M{"$round": bson.A{"$rating", 1}},
			"count":    1,
		}).
		Build()
}

func (r *MongoReviewRepository) BestSelling(ctx context.Context) ([]models.ProductCard, error) {
	cursor, err := r.collection.Aggregate(ctx, bestSellerPipeline())
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

func (r *MongoReviewRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
