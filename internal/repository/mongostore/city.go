package mongostore

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lrbook/internal/domain"
)

type CityStore struct {
	col *mongo.Collection
}

func (s *CityStore) Create(ctx context.Context, c *domain.City) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Code = domain.NormalizeCode(c.Code)
	_, err := s.col.InsertOne(ctx, c)
	return translate(err)
}

func (s *CityStore) Update(ctx context.Context, c *domain.City) error {
	res, err := s.col.UpdateOne(ctx, byID(c.ID), bson.M{"$set": bson.M{
		"name":       strings.TrimSpace(c.Name),
		"updated_at": c.UpdatedAt,
	}})
	return matchedOrNotFound(res, err)
}

func (s *CityStore) Delete(ctx context.Context, id string) error {
	return deletedOrNotFound(s.col.DeleteOne(ctx, byID(id)))
}

func (s *CityStore) GetByID(ctx context.Context, id string) (*domain.City, error) {
	var c domain.City
	if err := s.col.FindOne(ctx, byID(id)).Decode(&c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *CityStore) GetByCode(ctx context.Context, code string) (*domain.City, error) {
	var c domain.City
	if err := s.col.FindOne(ctx, bson.M{"code": domain.NormalizeCode(code)}).Decode(&c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *CityStore) List(ctx context.Context, search string) ([]domain.City, error) {
	filter := bson.M{}
	if strings.TrimSpace(search) != "" {
		rx := containsFold(search)
		filter["$or"] = bson.A{bson.M{"name": rx}, bson.M{"code": rx}}
	}

	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []domain.City{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
