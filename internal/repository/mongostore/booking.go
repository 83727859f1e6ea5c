package mongostore

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lrbook/internal/domain"
	"lrbook/internal/repository"
)

type BookingStore struct {
	col *mongo.Collection
}

// Create returns repository.ErrDuplicate when the LR number is taken.
func (s *BookingStore) Create(ctx context.Context, b *domain.Booking) error {
	if b.Items == nil {
		b.Items = []domain.BookingItem{}
	}
	_, err := s.col.InsertOne(ctx, b)
	return translate(err)
}

func (s *BookingStore) findOne(ctx context.Context, filter bson.M) (*domain.Booking, error) {
	var b domain.Booking
	if err := s.col.FindOne(ctx, filter).Decode(&b); err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *BookingStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.findOne(ctx, byID(id))
}

func (s *BookingStore) GetByLRNumber(ctx context.Context, lr string) (*domain.Booking, error) {
	return s.findOne(ctx, bson.M{"lr_number": strings.ToUpper(strings.TrimSpace(lr))})
}

// bookingFilter translates a domain filter into a query document.
func bookingFilter(f domain.BookingFilter) bson.M {
	filter := bson.M{}
	if f.AgentID != "" {
		filter["agent_id"] = f.AgentID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.LRType != "" {
		filter["lr_type"] = f.LRType
	}
	if f.FromCode != "" {
		filter["from_location.code"] = domain.NormalizeCode(f.FromCode)
	}
	if f.ToCode != "" {
		filter["to_location.code"] = domain.NormalizeCode(f.ToCode)
	}
	if f.DateFrom != nil || f.DateTo != nil {
		created := bson.M{}
		if f.DateFrom != nil {
			created["$gte"] = *f.DateFrom
		}
		if f.DateTo != nil {
			created["$lt"] = *f.DateTo
		}
		filter["created_at"] = created
	}
	if strings.TrimSpace(f.Query) != "" {
		rx := containsFold(f.Query)
		filter["$or"] = bson.A{
			bson.M{"lr_number": rx},
			bson.M{"sender.name": rx},
			bson.M{"receiver.name": rx},
		}
	}
	return filter
}

func (s *BookingStore) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, int64, error) {
	filter := bookingFilter(f)

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.Offset > 0 {
		opts.SetSkip(int64(f.Offset))
	}

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	out := []domain.Booking{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// statusGuard matches the booking only while it is still in from.
func statusGuard(id string, from domain.BookingStatus) bson.M {
	return bson.M{"_id": id, "status": from}
}

func (s *BookingStore) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, at time.Time) error {
	res, err := s.col.UpdateOne(ctx, statusGuard(id, from), bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": at,
	}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := s.col.CountDocuments(ctx, byID(id))
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}
