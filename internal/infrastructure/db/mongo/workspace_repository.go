package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
)

const workspaceCollection = "workspaces"

type WorkspaceRepository struct {
	coll *mongo.Collection
}

func NewWorkspaceRepository(db *mongo.Database) *WorkspaceRepository {
	return &WorkspaceRepository{coll: db.Collection(workspaceCollection)}
}

type mongoWorkspace struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *WorkspaceRepository) FindAll(ctx context.Context) ([]domain.Workspace, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer cur.Close(ctx)

	var result []domain.Workspace
	for cur.Next(ctx) {
		var mw mongoWorkspace
		if err := cur.Decode(&mw); err != nil {
			return nil, fmt.Errorf("decode workspace: %w", err)
		}
		result = append(result, *mw.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return result, nil
}

func (r *WorkspaceRepository) FindByID(ctx context.Context, id string) (*domain.Workspace, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrWorkspaceNotFound
	}

	var mw mongoWorkspace
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mw); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("find workspace: %w", err)
	}
	return mw.toDomain(), nil
}

func (r *WorkspaceRepository) Create(ctx context.Context, ws *domain.Workspace) (*domain.Workspace, error) {
	doc := mongoWorkspace{
		Name:        ws.Name,
		Description: ws.Description,
		CreatedAt:   ws.CreatedAt.Unix(),
		UpdatedAt:   ws.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert workspace: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	created := *ws
	created.ID = oid.Hex()
	return &created, nil
}

func (r *WorkspaceRepository) Update(ctx context.Context, ws *domain.Workspace) (*domain.Workspace, error) {
	oid, err := primitive.ObjectIDFromHex(ws.ID)
	if err != nil {
		return nil, domain.ErrWorkspaceNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        ws.Name,
		"description": ws.Description,
		"updated_at":  ws.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update workspace: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrWorkspaceNotFound
	}
	return ws, nil
}

func (mw *mongoWorkspace) toDomain() *domain.Workspace {
	return &domain.Workspace{
		ID:          mw.ID.Hex(),
		Name:        mw.Name,
		Description: mw.Description,
		CreatedAt:   unixToTime(mw.CreatedAt),
		UpdatedAt:   unixToTime(mw.UpdatedAt),
	}
}
