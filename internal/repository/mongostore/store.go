// Package mongostore implements the repository stores on MongoDB. Every
// record is a document keyed by its UUID in _id; booking snapshots are
// embedded sub-documents.
package mongostore

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"lrbook/internal/repository"
)

const (
	colCities    = "cities"
	colLocations = "locations"
	colCustomers = "customers"
	colAgents    = "agents"
	colBookings  = "bookings"
)

// NewSet builds a repository.Set backed by the named database.
func NewSet(client *mongo.Client, dbName string) *repository.Set {
	db := client.Database(dbName)
	return &repository.Set{
		Cities:    &CityStore{col: db.Collection(colCities)},
		Locations: &LocationStore{col: db.Collection(colLocations)},
		Customers: &CustomerStore{col: db.Collection(colCustomers)},
		Agents:    &AgentStore{col: db.Collection(colAgents)},
		Bookings:  &BookingStore{col: db.Collection(colBookings)},
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Close: client.Disconnect,
	}
}

// EnsureIndexes creates the unique natural-key indexes the stores rely on.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	unique := func(key string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	plain := func(key string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: key, Value: 1}}}
	}

	specs := map[string][]mongo.IndexModel{
		colCities:    {unique("code")},
		colLocations: {unique("code"), plain("name"), plain("city_id")},
		colCustomers: {
			unique("phone"),
			{
				Keys: bson.D{{Key: "gst_number", Value: 1}},
				Options: options.Index().SetUnique(true).
					SetPartialFilterExpression(bson.M{"gst_number": bson.M{"$type": "string"}}),
			},
		},
		colAgents: {unique("email")},
		colBookings: {
			unique("lr_number"),
			plain("agent_id"),
			plain("status"),
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	default:
		return err
	}
}

func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(s)), Options: "i"}
}

func equalFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(s)) + "$", Options: "i"}
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

func matchedOrNotFound(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func deletedOrNotFound(res *mongo.DeleteResult, err error) error {
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
