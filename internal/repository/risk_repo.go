package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"worksafe/internal/model"
)

// psychosocialTitle is the substring that marks generated records as
// belonging to the psychosocial engine. The year report counts by this
// signature, not by a foreign key.
const psychosocialTitle = "psychosocial"

// RiskRepo handles MongoDB operations for risk records
type RiskRepo interface {
	Create(ctx context.Context, risk *model.Risk) (string, error)
	GetByID(ctx context.Context, id string) (*model.Risk, error)
	CountPsychosocial(ctx context.Context, tenantID string, from, to time.Time) (int, error)
}

type riskRepo struct {
	collection *mongo.Collection
}

// NewRiskRepo creates a new risk repository
func NewRiskRepo(db *mongo.Database) RiskRepo {
	return &riskRepo{collection: db.Collection("risks")}
}

func (r *riskRepo) Create(ctx context.Context, risk *model.Risk) (string, error) {
	if risk.CreatedAt.IsZero() {
		risk.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, risk)
	if err != nil {
		return "", err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		risk.ID = oid.Hex()
	}
	return risk.ID, nil
}

func (r *riskRepo) GetByID(ctx context.Context, id string) (*model.Risk, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var risk model.Risk
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&risk)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &risk, nil
}

// CountPsychosocial counts health risks created in the period whose title
// carries the psychosocial signature.
func (r *riskRepo) CountPsychosocial(ctx context.Context, tenantID string, from, to time.Time) (int, error) {
	filter := bson.M{
		"tenantId":  tenantID,
		"category":  model.RiskCategoryHealth,
		"title":     bson.M{"$regex": psychosocialTitle, "$options": "i"},
		"createdAt": bson.M{"$gte": from, "$lte": to},
	}
	n, err := r.collection.CountDocuments(ctx, filter)
	return int(n), err
}
