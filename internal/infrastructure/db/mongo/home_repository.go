package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/realtyhub/listing-api/internal/core/domain"
	"github.com/realtyhub/listing-api/internal/core/ports"
)

const collectionHomes = "homes"

// HomeRepository implements ports.HomeRepository. Images are embedded in the
// home document.
type HomeRepository struct {
	col *mongo.Collection
}

func NewHomeRepository(db *mongo.Database) *HomeRepository {
	return &HomeRepository{col: db.Collection(collectionHomes)}
}

// Create inserts a new home document.
func (r *HomeRepository) Create(ctx context.Context, h *domain.Home) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("insert home: %w", err)
	}
	return nil
}

func (r *HomeRepository) FindByID(ctx context.Context, id string) (*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var h domain.Home
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHomeNotFound
		}
		return nil, fmt.Errorf("find home: %w", err)
	}
	return &h, nil
}

// List returns one page of homes matching f, newest listing first.
func (r *HomeRepository) List(ctx context.Context, f ports.HomeFilter) ([]*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	f = f.Normalized()
	opts := options.Find().
		SetSort(bson.D{{Key: "listed_date", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	return r.find(ctx, buildHomeFilter(f), opts)
}

// Search matches query case-insensitively against city, state and zip.
func (r *HomeRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "listed_date", Value: -1}}).
		SetLimit(int64(limit))

	return r.find(ctx, buildSearchFilter(query), opts)
}

// Update applies the non-nil fields of u and returns the updated document.
func (r *HomeRepository) Update(ctx context.Context, id string, u ports.HomeUpdate) (*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := buildHomeUpdate(u)
	set["updated_at"] = time.Now().UTC()

	var h domain.Home
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&h)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHomeNotFound
		}
		return nil, fmt.Errorf("update home: %w", err)
	}
	return &h, nil
}

func (r *HomeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete home: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrHomeNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the homes collection.
func (r *HomeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "realtor_id", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "listed_date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *HomeRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Home, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find homes: %w", err)
	}
	defer cur.Close(ctx)

	homes := make([]*domain.Home, 0)
	if err := cur.All(ctx, &homes); err != nil {
		return nil, fmt.Errorf("decode homes: %w", err)
	}
	return homes, nil
}

// buildHomeFilter translates a listing query into a Mongo filter. City is an
// exact, case-insensitive match; beds and baths must match exactly.
func buildHomeFilter(f ports.HomeFilter) bson.M {
	filter := bson.M{}
	if f.City != "" {
		filter["city"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(f.City) + "$", Options: "i"}
	}
	price := bson.M{}
	if f.MinPrice > 0 {
		price["$gte"] = f.MinPrice
	}
	if f.MaxPrice > 0 {
		price["$lte"] = f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	if f.Beds > 0 {
		filter["beds"] = f.Beds
	}
	if f.Baths > 0 {
		filter["baths"] = f.Baths
	}
	if f.PropertyType != "" {
		filter["property_type"] = string(f.PropertyType)
	}
	if f.RealtorID != "" {
		filter["realtor_id"] = f.RealtorID
	}
	return filter
}

func buildSearchFilter(query string) bson.M {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"city": re},
		bson.M{"state": re},
		bson.M{"zip": re},
	}}
}

func buildHomeUpdate(u ports.HomeUpdate) bson.M {
	set := bson.M{}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.City != nil {
		set["city"] = *u.City
	}
	if u.State != nil {
		set["state"] = *u.State
	}
	if u.Zip != nil {
		set["zip"] = *u.Zip
	}
	if u.PropertyType != nil {
		set["property_type"] = string(*u.PropertyType)
	}
	if u.Sqft != nil {
		set["sqft"] = *u.Sqft
	}
	if u.Beds != nil {
		set["beds"] = *u.Beds
	}
	if u.Baths != nil {
		set["baths"] = *u.Baths
	}
	return set
}
