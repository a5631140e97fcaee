package admin

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/bondyapp/bondy/model"
	"github.com/bondyapp/bondy/repository/mongodb"
)

type Mongo struct {
	col *mongo.Collection
}

type AdminRepository interface {
	Create(ctx context.Context, req *model.AdminEntity) (*model.AdminEntity, error)
	Get(ctx context.Context, filter *model.AdminFilter) (*model.AdminEntity, error)
	RecordLoginFailure(ctx context.Context, id string, count int, lockedUntil *time.Time) error
	ResetLoginFailures(ctx context.Context, id string) error
}

func NewAdminRepository(db *mongo.Database) AdminRepository {
	return &Mongo{col: db.Collection(mongodb.ColAdmins)}
}

func (s *Mongo) Create(ctx context.Context, data *model.AdminEntity) (*model.AdminEntity, error) {
	data.CreatedAt = time.Now()
	if _, err := s.col.InsertOne(ctx, data); err != nil {
		return nil, mongodb.WrapError(err)
	}
	return data, nil
}

func (s *Mongo) Get(ctx context.Context, filter *model.AdminFilter) (*model.AdminEntity, error) {
	query := bson.D{}
	if filter.ID != "" {
		query = append(query, bson.E{Key: "_id", Value: filter.ID})
	}
	if filter.Email != "" {
		query = append(query, bson.E{Key: "email", Value: filter.Email})
	}
	if filter.Phone != "" {
		query = append(query, bson.E{Key: "phone", Value: filter.Phone})
	}
	return mongodb.FindOne[model.AdminEntity](ctx, s.col, query)
}

func (s *Mongo) RecordLoginFailure(ctx context.Context, id string, count int, lockedUntil *time.Time) error {
	set := bson.D{
		{Key: "failed_login_count", Value: count},
		{Key: "updated_at", Value: time.Now()},
	}
	if lockedUntil != nil {
		set = append(set, bson.E{Key: "locked_until", Value: *lockedUntil})
	}
	_, err := s.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	return mongodb.WrapError(err)
}

func (s *Mongo) ResetLoginFailures(ctx context.Context, id string) error {
	_, err := s.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "failed_login_count", Value: 0},
			{Key: "updated_at", Value: time.Now()},
		}},
		{Key: "$unset", Value: bson.D{{Key: "locked_until", Value: ""}}},
	})
	return mongodb.WrapError(err)
}
