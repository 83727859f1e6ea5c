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

type CustomerStore struct {
	col *mongo.Collection
}

func normalizeCustomer(c *domain.Customer) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.GSTNumber = strings.ToUpper(strings.TrimSpace(c.GSTNumber))
}

func (s *CustomerStore) Create(ctx context.Context, c *domain.Customer) error {
	normalizeCustomer(c)
	_, err := s.col.InsertOne(ctx, c)
	return translate(err)
}

func (s *CustomerStore) Update(ctx context.Context, c *domain.Customer) error {
	normalizeCustomer(c)
	update := bson.M{"$set": bson.M{
		"name":       c.Name,
		"phone":      c.Phone,
		"address":    c.Address,
		"updated_at": c.UpdatedAt,
	}}
	// an absent GST keeps the partial unique index from matching empty values
	if c.GSTNumber != "" {
		update["$set"].(bson.M)["gst_number"] = c.GSTNumber
	} else {
		update["$unset"] = bson.M{"gst_number": ""}
	}
	return matchedOrNotFound(s.col.UpdateOne(ctx, byID(c.ID), update))
}

func (s *CustomerStore) Delete(ctx context.Context, id string) error {
	return deletedOrNotFound(s.col.DeleteOne(ctx, byID(id)))
}

func (s *CustomerStore) findOne(ctx context.Context, filter bson.M) (*domain.Customer, error) {
	var c domain.Customer
	if err := s.col.FindOne(ctx, filter).Decode(&c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *CustomerStore) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.findOne(ctx, byID(id))
}

func (s *CustomerStore) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	p := strings.TrimSpace(phone)
	if p == "" {
		return nil, repository.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"phone": p})
}

func (s *CustomerStore) FindByGST(ctx context.Context, gst string) (*domain.Customer, error) {
	g := strings.ToUpper(strings.TrimSpace(gst))
	if g == "" {
		return nil, repository.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"gst_number": g})
}

func (s *CustomerStore) List(ctx context.Context, search string, limit int) ([]domain.Customer, error) {
	filter := bson.M{}
	if strings.TrimSpace(search) != "" {
		rx := containsFold(search)
		filter["$or"] = bson.A{bson.M{"name": rx}, bson.M{"phone": rx}, bson.M{"gst_number": rx}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []domain.Customer{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
