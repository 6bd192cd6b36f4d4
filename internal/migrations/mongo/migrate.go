package mongo

import (
	"context"
	"fmt"
	"reservo/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Run applies schema validators and indexes. Idempotent: collMod on an
// existing collection and createIndexes with identical specs are both
// safe to repeat.
func Run(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)

	steps := []struct {
		name string
		fn   func(ctx context.Context, db *mongo.Database) error
	}{
		{"bookings collection", migrateBookings},
		{"facilities collection", migrateFacilities},
		{"slot locks collection", migrateSlotLocks},
	}

	for _, step := range steps {
		log.Info("Applying migration", "step", step.name)
		if err := step.fn(ctx, db); err != nil {
			return fmt.Errorf("migration %q failed: %w", step.name, err)
		}
	}

	log.Info("All migrations applied", "database", dbName)
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	err := db.CreateCollection(ctx, name, options.CreateCollection().SetValidator(schema))
	if err == nil {
		return nil
	}

	// Collection already exists: update the validator in place.
	res := db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
	})
	return res.Err()
}

func migrateBookings(ctx context.Context, db *mongo.Database) error {
	if err := ensureCollection(ctx, db, "Bookings", bookingSchema()); err != nil {
		return err
	}

	_, err := db.Collection("Bookings").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Conflict scans filter on facility and interval.
			Keys: bson.D{{Key: "facility_id", Value: 1}, {Key: "start_time", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_time", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	})
	return err
}

func migrateFacilities(ctx context.Context, db *mongo.Database) error {
	if err := ensureCollection(ctx, db, "Facilities", facilitySchema()); err != nil {
		return err
	}

	_, err := db.Collection("Facilities").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "type", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "is_available", Value: 1}},
		},
	})
	return err
}

func migrateSlotLocks(ctx context.Context, db *mongo.Database) error {
	if err := ensureCollection(ctx, db, "Slot_locks", slotLockSchema()); err != nil {
		return err
	}

	// TTL backstop: Mongo reaps locks whose holder died before releasing.
	_, err := db.Collection("Slot_locks").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}
