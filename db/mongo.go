package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const ImportReportsCollection = "import_reports"

// NewMongoDatabase connects to MongoDB, verifies the connection and ensures
// the indexes of the audit collections.
func NewMongoDatabase(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}
	// Ping to verify connection
	if err := cl.Ping(ctx, readpref.Primary()); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, err
	}

	d := cl.Database(dbName)
	if err := ensureIndexes(ctx, d); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, err
	}
	return cl, d, nil
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	col := d.Collection(ImportReportsCollection)

	// import_reports: post_id lookup
	if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "post_id", Value: 1}},
		Options: options.Index().SetName("idx_post_id"),
	}); err != nil {
		return err
	}
	// import_reports: newest first, filtered by outcome
	if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "outcome", Value: 1}, {Key: "started_at", Value: -1}},
		Options: options.Index().SetName("idx_outcome_started_at"),
	}); err != nil {
		return err
	}
	return nil
}
