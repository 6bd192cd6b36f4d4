package repository

import (
	"context"
	"errors"
	"fmt"
	facilitieserrors "reservo/internal/facilities/errors"
	"reservo/pkg/config"
	"reservo/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Facilities"
)

type FacilityRepository interface {
	Create(ctx context.Context, facility *model.Facility) error
	FindByID(ctx context.Context, id string) (*model.Facility, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, error)
	FindAvailable(ctx context.Context, limit int, offset int64) ([]*model.Facility, error)
	FindByType(ctx context.Context, facilityType string, limit int, offset int64) ([]*model.Facility, error)
	Update(ctx context.Context, id string, update bson.M) (*model.Facility, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
	CountByType(ctx context.Context, facilityType string) (int64, error)
}

type mongoFacilityRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoFacilityRepository(cfg *config.Config) FacilityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoFacilityRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoFacilityRepository) Create(ctx context.Context, facility *model.Facility) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	facility.CreatedAt = now
	facility.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, facility)
	if err != nil {
		return fmt.Errorf("failed to create facility: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		facility.ID = oid.Hex()
	}
	return nil
}

func (r *mongoFacilityRepository) FindByID(ctx context.Context, id string) (*model.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", facilitieserrors.ErrInvalidID, id)
	}

	var facility model.Facility
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&facility)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, facilitieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find facility: %w", err)
	}

	return &facility, nil
}

func (r *mongoFacilityRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, error) {
	return r.findWithFilter(ctx, bson.M{}, limit, offset)
}

func (r *mongoFacilityRepository) FindAvailable(ctx context.Context, limit int, offset int64) ([]*model.Facility, error) {
	return r.findWithFilter(ctx, bson.M{"is_available": true}, limit, offset)
}

func (r *mongoFacilityRepository) FindByType(ctx context.Context, facilityType string, limit int, offset int64) ([]*model.Facility, error) {
	return r.findWithFilter(ctx, bson.M{"type": facilityType}, limit, offset)
}

func (r *mongoFacilityRepository) findWithFilter(ctx context.Context, filter bson.M, limit int, offset int64) ([]*model.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find facilities: %w", err)
	}
	defer cursor.Close(ctx)

	var facilities []*model.Facility
	if err = cursor.All(ctx, &facilities); err != nil {
		return nil, fmt.Errorf("failed to decode facilities: %w", err)
	}

	return facilities, nil
}

// Update applies a partial $set and returns the updated document.
func (r *mongoFacilityRepository) Update(ctx context.Context, id string, update bson.M) (*model.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", facilitieserrors.ErrInvalidID, id)
	}

	update["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var facility model.Facility
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": update}, opts).Decode(&facility)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, facilitieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update facility: %w", err)
	}

	return &facility, nil
}

func (r *mongoFacilityRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", facilitieserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete facility: %w", err)
	}

	if result.DeletedCount == 0 {
		return facilitieserrors.ErrNotFound
	}

	return nil
}

func (r *mongoFacilityRepository) Count(ctx context.Context) (int64, error) {
	return r.countWithFilter(ctx, bson.M{})
}

func (r *mongoFacilityRepository) CountAvailable(ctx context.Context) (int64, error) {
	return r.countWithFilter(ctx, bson.M{"is_available": true})
}

func (r *mongoFacilityRepository) CountByType(ctx context.Context, facilityType string) (int64, error) {
	return r.countWithFilter(ctx, bson.M{"type": facilityType})
}

func (r *mongoFacilityRepository) countWithFilter(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count facilities: %w", err)
	}

	return count, nil
}
