package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shubham7227/ecommerce/apperrors"
	"github.com/shubham7227/ecommerce/models"
	"github.com/shubham7227/ecommerce/pipeline"
)

// ListingItemCap bounds how many line items the order history view carries
// per order for compact rendering. The detail view is uncapped.
const ListingItemCap = 2

type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	FindDetail(ctx context.Context, id primitive.ObjectID) (*models.OrderView, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderView, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) (*models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

type MongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{collection: db.Collection("orders")}
}

// orderLineJoin unwinds the line items and joins each to its current product
// document. Display title and image come from the product as it is now, not
// from the order-time snapshot.
func orderLineJoin(b *pipeline.Builder) *pipeline.Builder {
	return b.
		Unwind("$products").
		Lookup("products", "products.id", "_id", "productData")
}

// orderDetailPipeline assembles one order with all line items and the
// shipping address.
func orderDetailPipeline(id primitive.ObjectID) mongo.Pipeline {
	return orderLineJoin(pipeline.New().Match(bson.M{"_id": id})).
		Lookup("addresses", "addressId", "_id", "address").
		Unwind("$productData").
		Project(bson.M{
			"_id":           1,
			"orderId":       1,
			"orderDate":     1,
			"totalAmount":   1,
			"status":        1,
			"paymentMethod": 1,
			"paymentId":     1,
			"deliveredDate": 1,
			"products": bson.M{
				"id":       1,
				"imageUrl": bson.M{"$first": "$productData.imageURLHighRes"},
				"title":    "$productData.title",
				"price":    1,
				"quantity": 1,
				"subTotal": 1,
			},
			"totalItems": bson.M{"$sum": 1},
			"address":    bson.M{"$arrayElemAt": bson.A{"$address", 0}},
		}).
		Group(bson.M{
			"_id":           "$_id",
			"orderId":       bson.M{"$first": "$orderId"},
			"orderDate":     bson.M{"$first": "$orderDate"},
			"totalAmount":   bson.M{"$first": "$totalAmount"},
			"status":        bson.M{"$first": "$status"},
			"paymentMethod": bson.M{"$first": "$paymentMethod"},
			"paymentId":     bson.M{"$first": "$paymentId"},
			"deliveredDate": bson.M{"$first": "$deliveredDate"},
			"products":      bson.M{"$push": "$products"},
			"totalItems":    bson.M{"$sum": "$totalItems"},
			"address":       bson.M{"$first": "$address"},
		}).
		Project(bson.M{
			"_id":                  1,
			"orderId":              1,
			"orderDate":            1,
			"totalAmount":          1,
			"status":               1,
			"products":             1,
			"totalItems":           1,
			"paymentMethod":        1,
			"paymentId":            1,
			"deliveredDate":        1,
			"address.title":        1,
			"address.street":       1,
			"address.city":         1,
			"address.state":        1,
			"address.country":      1,
			"address.zipCode":      1,
			"address.mobileNumber": 1,
		}).
		Build()
}

// userOrdersPipeline assembles a user's order history, newest first, with
// line items truncated to ListingItemCap per order.
func userOrdersPipeline(userID primitive.ObjectID) mongo.Pipeline {
	return orderLineJoin(pipeline.New().Match(bson.M{"userId": userID})).
		Unwind("$productData").
		Project(bson.M{
			"_id":         1,
			"orderId":     1,
			"orderDate":   1,
			"totalAmount": 1,
			"status":      1,
			"products": bson.M{
				"id":       1,
				"imageUrl": bson.M{"$first": "$productData.imageURLHighRes"},
				"title":    "$productData.title",
				"price":    1,
				"quantity": 1,
			},
			"totalItems": bson.M{"$sum": 1},
		}).
		Group(bson.M{
			"_id":         "$_id",
			"orderId":     bson.M{"$first": "$orderId"},
			"orderDate":   bson.M{"$first": "$orderDate"},
			"totalAmount": bson.M{"$first": "$totalAmount"},
			"status":      bson.M{"$first": "$status"},
			"products":    bson.M{"$push": "$products"},
			"totalItems":  bson.M{"$sum": "$totalItems"},
		}).
		Project(bson.M{
			"_id":         1,
			"orderId":     1,
			"orderDate":   1,
			"totalAmount": 1,
			"status":      1,
			"products":    bson.M{"$slice": bson.A{"$products", ListingItemCap}},
			"totalItems":  1,
		}).
		Sort(bson.D{{Key: "orderDate", Value: -1}}).
		Build()
}

func (r *MongoOrderRepository) Insert(ctx context.Context, order *models.Order) error {
	_, err := r.collection.InsertOne(ctx, order)
	return err
}

func (r *MongoOrderRepository) FindDetail(ctx context.Context, id primitive.ObjectID) (*models.OrderView, error) {
	cursor, err := r.collection.Aggregate(ctx, orderDetailPipeline(id))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.OrderView
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &results[0], nil
}

func (r *MongoOrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderView, error) {
	cursor, err := r.collection.Aggregate(ctx, userOrdersPipeline(userID))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.OrderView{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoOrderRepository) UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) (*models.Order, error) {
	var order models.Order
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if title != "" {
		order.Title = title
	}

	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, order); err != nil {
		return nil, err
	}
	return &order, nil
}

// SetStatus overwrites the status unconditionally, which makes cancellation
// idempotent: cancelling a cancelled order rewrites the same value.
func (r *MongoOrderRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"status": status}
	if status == models.OrderStatusDelivered {
		update["deliveredDate"] = time.Now().UTC()
	}
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": update})
	return err
}
