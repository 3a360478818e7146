package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"worksafe/internal/model"
)

// UserRepo handles MongoDB operations for tenant members
type UserRepo interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id string) (*model.Member, error)
	FirstByRole(ctx context.Context, tenantID, role string) (*model.Member, error)
	ListByRole(ctx context.Context, tenantID, role string) ([]*model.Member, error)
}

type userRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{collection: db.Collection("members")}
}

func (r *userRepo) Create(ctx context.Context, member *model.Member) error {
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		member.ID = oid.Hex()
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var member model.Member
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FirstByRole returns the first tenant member holding the role, or nil
// when no member qualifies.
func (r *userRepo) FirstByRole(ctx context.Context, tenantID, role string) (*model.Member, error) {
	var member model.Member
	err := r.collection.FindOne(ctx, bson.M{"tenantId": tenantID, "roles": role}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *userRepo) ListByRole(ctx context.Context, tenantID, role string) ([]*model.Member, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID, "roles": role})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []*model.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}
