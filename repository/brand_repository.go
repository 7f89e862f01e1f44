package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shubham7227/ecommerce/apperrors"
	"github.com/shubham7227/ecommerce/models"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *models.Brand) (*models.Brand, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error)
	FindAll(ctx context.Context) ([]models.Brand, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Brand, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) (*models.Brand, error)
}

type MongoBrandRepository struct {
	collection *mongo.Collection
}

func NewMongoBrandRepository(db *mongo.Database) *MongoBrandRepository {
	return &MongoBrandRepository{collection: db.Collection("brands")}
}

func (r *MongoBrandRepository) Create(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	brand.ID = primitive.NewObjectID()
	brand.Active = true
	brand.CreatedAt = time.Now().UTC()
	brand.UpdatedAt = brand.CreatedAt

	if _, err := r.collection.InsertOne(ctx, brand); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateBrand, err)
		}
		return nil, err
	}
	return brand, nil
}

func (r *MongoBrandRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	var brand models.Brand
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&brand)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *MongoBrandRepository) FindAll(ctx context.Context) ([]models.Brand, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	brands := []models.Brand{}
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *MongoBrandRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Brand, error) {
	updates["updatedAt"] = time.Now().UTC()

	var brand models.Brand
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	).Decode(&brand)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *MongoBrandRepository) Deactivate(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	return r.Update(ctx, id, bson.M{"active": false})
}
