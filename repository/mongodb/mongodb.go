// Package mongodb owns the MongoDB connection and index bootstrap.
//
// Collection names and indexes are managed in one place so every repository
// package shares the same layout.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/bondyapp/bondy/cmd/config"
	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/utils/logger"
)

// Collection name constants
const (
	ColUsers         = "users"
	ColAdmins        = "admins"
	ColCompanions    = "companions"
	ColBookings      = "bookings"
	ColConversations = "conversations"
	ColMessages      = "messages"
	ColUserLocations = "user_locations"
)

var db *mongo.Database
var client *mongo.Client

// New connects to MongoDB, verifies connectivity and creates indexes.
func New(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("mongodb: connect failed: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb: ping failed: %w", err)
	}

	client = c
	db = c.Database(cfg.Mongo.Database)

	if err := ensureIndexes(ctx); err != nil {
		logger.Warn("mongodb: ensure indexes failed: " + err.Error())
	}

	return nil
}

// Get returns the connected database handle.
func Get() *mongo.Database {
	return db
}

func Close() error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// ensureIndexes creates all required indexes. The partial unique index on
// conversations guarantees at most one waiting/active thread per requester,
// closing the find-or-create race at the storage layer.
func ensureIndexes(ctx context.Context) error {
	type idx struct {
		col     string
		keys    bson.D
		unique  bool
		partial bson.D
	}

	indexes := []idx{
		// users
		{col: ColUsers, keys: bson.D{{Key: "handle", Value: 1}}, unique: true},
		{col: ColUsers, keys: bson.D{{Key: "phone", Value: 1}}, unique: true},

		// admins
		{col: ColAdmins, keys: bson.D{{Key: "email", Value: 1}}, unique: true},
		{col: ColAdmins, keys: bson.D{{Key: "phone", Value: 1}}, unique: true},

		// companions
		{col: ColCompanions, keys: bson.D{{Key: "email", Value: 1}}, unique: true},
		{col: ColCompanions, keys: bson.D{{Key: "mobile", Value: 1}}, unique: true},
		{col: ColCompanions, keys: bson.D{{Key: "is_active", Value: 1}, {Key: "is_verified", Value: 1}}},

		// bookings
		{col: ColBookings, keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{col: ColBookings, keys: bson.D{{Key: "status", Value: 1}}},
		{col: ColBookings, keys: bson.D{{Key: "assigned_companion_id", Value: 1}}},

		// conversations: at most one open thread per requester
		{
			col:    ColConversations,
			keys:   bson.D{{Key: "requester_id", Value: 1}},
			unique: true,
			partial: bson.D{{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{
				string(constant.ConversationWaiting), string(constant.ConversationActive),
			}}}}},
		},
		{col: ColConversations, keys: bson.D{{Key: "assigned_admin_id", Value: 1}, {Key: "updated_at", Value: -1}}},
		{col: ColConversations, keys: bson.D{{Key: "updated_at", Value: -1}}},

		// messages
		{col: ColMessages, keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		opts := options.Index()
		if i.unique {
			opts = opts.SetUnique(true)
		}
		if i.partial != nil {
			opts = opts.SetPartialFilterExpression(i.partial)
		}
		if i.unique || i.partial != nil {
			model.Options = opts
		}
		if _, err := db.Collection(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	return nil
}
