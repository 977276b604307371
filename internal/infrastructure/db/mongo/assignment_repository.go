package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
)

const assignmentCollection = "role_assignments"

type AssignmentRepository struct {
	coll *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{coll: db.Collection(assignmentCollection)}
}

type mongoAssignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	WorkspaceID string             `bson:"workspace_id"`
	Role        string             `bson:"role"`
	CreatedAt   int64              `bson:"created_at"`
}

func (r *AssignmentRepository) FindForUser(ctx context.Context, userID string) ([]domain.RoleAssignment, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer cur.Close(ctx)

	var result []domain.RoleAssignment
	for cur.Next(ctx) {
		var ma mongoAssignment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode assignment: %w", err)
		}
		result = append(result, *ma.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return result, nil
}

func (r *AssignmentRepository) Find(ctx context.Context, workspaceID, userID string) (*domain.RoleAssignment, error) {
	var ma mongoAssignment
	filter := bson.M{"workspace_id": workspaceID, "user_id": userID}
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return ma.toDomain(), nil
}

// Upsert inserts the edge or, if the (user, workspace) pair already exists,
// replaces its role. The compound unique index makes the pair invariant hold
// under concurrent grants.
func (r *AssignmentRepository) Upsert(ctx context.Context, a *domain.RoleAssignment) error {
	filter := bson.M{"user_id": a.UserID, "workspace_id": a.WorkspaceID}
	update := bson.M{
		"$set":         bson.M{"role": string(a.Role)},
		"$setOnInsert": bson.M{"created_at": a.CreatedAt.Unix()},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, workspaceID, userID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"workspace_id": workspaceID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *AssignmentRepository) DeleteForUser(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}
	return nil
}

func (ma *mongoAssignment) toDomain() *domain.RoleAssignment {
	return &domain.RoleAssignment{
		ID:          ma.ID.Hex(),
		UserID:      ma.UserID,
		WorkspaceID: ma.WorkspaceID,
		Role:        domain.Role(ma.Role),
		CreatedAt:   unixToTime(ma.CreatedAt),
	}
}
