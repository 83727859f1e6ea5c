package mongostore

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lrbook/internal/domain"
)

type AgentStore struct {
	col *mongo.Collection
}

func (s *AgentStore) Create(ctx context.Context, a *domain.Agent) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.Name = strings.TrimSpace(a.Name)
	a.Location = strings.TrimSpace(a.Location)
	_, err := s.col.InsertOne(ctx, a)
	return translate(err)
}

func (s *AgentStore) Update(ctx context.Context, a *domain.Agent) error {
	res, err := s.col.UpdateOne(ctx, byID(a.ID), bson.M{"$set": bson.M{
		"name":          strings.TrimSpace(a.Name),
		"password_hash": a.PasswordHash,
		"location":      strings.TrimSpace(a.Location),
		"role":          a.Role,
		"is_active":     a.IsActive,
		"updated_at":    a.UpdatedAt,
	}})
	return matchedOrNotFound(res, err)
}

func (s *AgentStore) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	var a domain.Agent
	if err := s.col.FindOne(ctx, byID(id)).Decode(&a); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *AgentStore) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	var a domain.Agent
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := s.col.FindOne(ctx, filter).Decode(&a); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *AgentStore) List(ctx context.Context) ([]domain.Agent, error) {
	cur, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []domain.Agent{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
