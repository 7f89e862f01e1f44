package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shubham7227/ecommerce/apperrors"
	"github.com/shubham7227/ecommerce/models"
	"github.com/shubham7227/ecommerce/pipeline"
)

type CartRepository interface {
	Totals(ctx context.Context, cartID primitive.ObjectID) (*models.CartTotals, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error)
	Delete(ctx context.Context, cartID primitive.ObjectID) error
}

type MongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{collection: db.Collection("carts")}
}

// cartTotalsPipeline joins each cart line to its product and folds the cart
// into a single {totalAmount, products} document. A cart line whose product
// no longer exists drops out at the unwind, so a missing product surfaces as
// an empty result set, never as a partial total.
func cartTotalsPipeline(cartID primitive.ObjectID) mongo.Pipeline {
	return pipeline.New().
		Match(bson.M{"_id": cartID}).
		Unwind("$products").
		Lookup("products", "products.id", "_id", "productData").
		Unwind("$productData").
		Project(bson.M{
			"_id":      0,
			"id":       "$productData._id",
			"price":    "$productData.price",
			"quantity": "$products.quantity",
			"subTotal": bson.M{"$multiply": bson.A{"$productData.price", "$products.quantity"}},
		}).
		Group(bson.M{
			"_id":         nil,
			"totalAmount": bson.M{"$sum": "$subTotal"},
			"products": bson.M{"$push": bson.M{
				"id":       "$id",
				"price":    "$price",
				"quantity": "$quantity",
				"subTotal": "$subTotal",
			}},
		}).
		Project(bson.M{
			"_id":         0,
			"totalAmount": 1,
			"products":    1,
		}).
		Build()
}

// Totals computes the order snapshot for a cart. An empty aggregation result
// means the cart or a referenced product is gone; that is a fatal
// precondition failure for order creation, not an empty order.
func (r *MongoCartRepository) Totals(ctx context.Context, cartID primitive.ObjectID) (*models.CartTotals, error) {
	cursor, err := r.collection.Aggregate(ctx, cartTotalsPipeline(cartID))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.CartTotals
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperrors.ErrCartNotFound
	}
	return &results[0], nil
}

func (r *MongoCartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem adds or bumps a product line, creating the cart on first add.
func (r *MongoCartRepository) AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) (*models.Cart, error) {
	cart, err := r.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{
			ID:       primitive.NewObjectID(),
			UserID:   userID,
			Products: []models.CartItem{},
		}
	}

	found := false
	for i, existing := range cart.Products {
		if existing.ProductID == item.ProductID {
			cart.Products[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Products = append(cart.Products, item)
	}

	return cart, r.save(ctx, cart)
}

func (r *MongoCartRepository) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	cart, err := r.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperrors.ErrNotFound
	}

	items := cart.Products[:0]
	for _, item := range cart.Products {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Products = items

	return cart, r.save(ctx, cart)
}

func (r *MongoCartRepository) save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": cart.ID}, cart, opts)
	return err
}

func (r *MongoCartRepository) Delete(ctx context.Context, cartID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": cartID})
	return err
}
