package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"worksafe/internal/model"
)

// MeasureRepo handles MongoDB operations for remediation measures
type MeasureRepo interface {
	Create(ctx context.Context, measure *model.Measure) (string, error)
	ListByRisk(ctx context.Context, riskID string) ([]*model.Measure, error)
	CountImplementedPsychosocial(ctx context.Context, tenantID string, from, to time.Time) (int, error)
}

type measureRepo struct {
	collection *mongo.Collection
}

// NewMeasureRepo creates a new measure repository
func NewMeasureRepo(db *mongo.Database) MeasureRepo {
	return &measureRepo{collection: db.Collection("measures")}
}

func (r *measureRepo) Create(ctx context.Context, measure *model.Measure) (string, error) {
	if measure.CreatedAt.IsZero() {
		measure.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, measure)
	if err != nil {
		return "", err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		measure.ID = oid.Hex()
	}
	return measure.ID, nil
}

func (r *measureRepo) ListByRisk(ctx context.Context, riskID string) ([]*model.Measure, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"riskId": riskID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var measures []*model.Measure
	if err = cursor.All(ctx, &measures); err != nil {
		return nil, err
	}
	return measures, nil
}

// CountImplementedPsychosocial counts implemented health measures created
// in the period whose title or description carries the psychosocial
// signature. Same heuristic string match as risks.
func (r *measureRepo) CountImplementedPsychosocial(ctx context.Context, tenantID string, from, to time.Time) (int, error) {
	filter := bson.M{
		"tenantId": tenantID,
		"category": model.RiskCategoryHealth,
		"status":   model.MeasureStatusImplemented,
		"$or": []bson.M{
			{"title": bson.M{"$regex": psychosocialTitle, "$options": "i"}},
			{"description": bson.M{"$regex": psychosocialTitle, "$options": "i"}},
		},
		"createdAt": bson.M{"$gte": from, "$lte": to},
	}
	n, err := r.collection.CountDocuments(ctx, filter)
	return int(n), err
}
