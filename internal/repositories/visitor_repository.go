package repositories

import (
	"context"
	"time"

	"github.com/xteonlyone/portfolio/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// VisitorRepository stores page hits for the dashboard visitor counter.
type VisitorRepository interface {
	RecordVisit(ctx context.Context, visitor *models.Visitor) error
	CountVisits(ctx context.Context) (int64, error)
}

// MongoVisitorRepository implements VisitorRepository for MongoDB
type MongoVisitorRepository struct {
	collection *mongo.Collection
}

// NewMongoVisitorRepository creates a new MongoVisitorRepository
func NewMongoVisitorRepository(db *mongo.Database) *MongoVisitorRepository {
	return &MongoVisitorRepository{collection: db.Collection("visitors")}
}

// RecordVisit inserts one hit document
func (r *MongoVisitorRepository) RecordVisit(ctx context.Context, visitor *models.Visitor) error {
	if visitor.VisitedAt.IsZero() {
		visitor.VisitedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, visitor)
	return err
}

// CountVisits counts every hit document
func (r *MongoVisitorRepository) CountVisits(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// PostgresVisitorRepository is used when no MongoDB is configured.
type PostgresVisitorRepository struct {
	db *gorm.DB
}

func NewPostgresVisitorRepository(db *gorm.DB) *PostgresVisitorRepository {
	return &PostgresVisitorRepository{db: db}
}

func (r *PostgresVisitorRepository) RecordVisit(ctx context.Context, visitor *models.Visitor) error {
	if visitor.VisitedAt.IsZero() {
		visitor.VisitedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(visitor).Error
}

func (r *PostgresVisitorRepository) CountVisits(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Visitor{}).Count(&count).Error
	return count, err
}
