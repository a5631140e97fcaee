package location

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/bondyapp/bondy/model"
	"github.com/bondyapp/bondy/repository/mongodb"
)

type Mongo struct {
	col *mongo.Collection
}

type LocationRepository interface {
	Get(ctx context.Context, userID string) (*model.UserLocations, error)
	Save(ctx context.Context, data *model.UserLocations) error
}

func NewLocationRepository(db *mongo.Database) LocationRepository {
	return &Mongo{col: db.Collection(mongodb.ColUserLocations)}
}

func (s *Mongo) Get(ctx context.Context, userID string) (*model.UserLocations, error) {
	return mongodb.FindOne[model.UserLocations](ctx, s.col, bson.D{{Key: "_id", Value: userID}})
}

func (s *Mongo) Save(ctx context.Context, data *model.UserLocations) error {
	data.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := s.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: data.ID}}, data, opts)
	return mongodb.WrapError(err)
}
