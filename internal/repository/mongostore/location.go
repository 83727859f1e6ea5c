package mongostore

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lrbook/internal/domain"
	"lrbook/internal/repository"
)

type LocationStore struct {
	col *mongo.Collection
}

func (s *LocationStore) Create(ctx context.Context, l *domain.Location) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Code = domain.NormalizeCode(l.Code)
	l.Address = strings.TrimSpace(l.Address)
	_, err := s.col.InsertOne(ctx, l)
	return translate(err)
}

func (s *LocationStore) Update(ctx context.Context, l *domain.Location) error {
	res, err := s.col.UpdateOne(ctx, byID(l.ID), bson.M{"$set": bson.M{
		"name":       strings.TrimSpace(l.Name),
		"city_id":    l.CityID,
		"status":     l.Status,
		"address":    strings.TrimSpace(l.Address),
		"updated_at": l.UpdatedAt,
	}})
	return matchedOrNotFound(res, err)
}

func (s *LocationStore) Delete(ctx context.Context, id string) error {
	return deletedOrNotFound(s.col.DeleteOne(ctx, byID(id)))
}

func (s *LocationStore) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Location, error) {
	var l domain.Location
	if err := s.col.FindOne(ctx, filter, opts...).Decode(&l); err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (s *LocationStore) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	return s.findOne(ctx, byID(id))
}

func (s *LocationStore) GetByCode(ctx context.Context, code string) (*domain.Location, error) {
	return s.findOne(ctx, bson.M{"code": domain.NormalizeCode(code)})
}

func (s *LocationStore) FindByName(ctx context.Context, name string) (*domain.Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, repository.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"name": equalFold(name)},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (s *LocationStore) List(ctx context.Context, f domain.LocationFilter) ([]domain.Location, error) {
	filter := bson.M{}
	if strings.TrimSpace(f.Search) != "" {
		rx := containsFold(f.Search)
		filter["$or"] = bson.A{bson.M{"name": rx}, bson.M{"code": rx}}
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.CityID != "" {
		filter["city_id"] = f.CityID
	}

	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []domain.Location{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
