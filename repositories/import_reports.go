package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"wp-importer/db"
	"wp-importer/models"
)

type ImportReportRepository struct {
	col *mongo.Collection
}

func NewImportReportRepository(d *mongo.Database) *ImportReportRepository {
	return &ImportReportRepository{col: d.Collection(db.ImportReportsCollection)}
}

func (r *ImportReportRepository) Insert(ctx context.Context, report models.ImportReport) (*mongo.InsertOneResult, error) {
	if report.StartedAt.IsZero() {
		report.StartedAt = time.Now()
	}
	return r.col.InsertOne(ctx, report)
}
