package user

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

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	UpdateProfile(ctx context.Context, id string, req *model.UpdateProfileRequest) error
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &Mongo{col: db.Collection(mongodb.ColUsers)}
}

func (s *Mongo) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	data.CreatedAt = time.Now()
	if _, err := s.col.InsertOne(ctx, data); err != nil {
		return nil, mongodb.WrapError(err)
	}
	return data, nil
}

func (s *Mongo) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := bson.D{}
	if filter.ID != "" {
		query = append(query, bson.E{Key: "_id", Value: filter.ID})
	}
	if filter.Handle != "" {
		query = append(query, bson.E{Key: "handle", Value: filter.Handle})
	}
	if filter.Phone != "" {
		query = append(query, bson.E{Key: "phone", Value: filter.Phone})
	}
	return mongodb.FindOne[model.UserEntity](ctx, s.col, query)
}

func (s *Mongo) UpdateProfile(ctx context.Context, id string, req *model.UpdateProfileRequest) error {
	set := bson.D{{Key: "updated_at", Value: time.Now()}}
	if req.Name != "" {
		set = append(set, bson.E{Key: "name", Value: req.Name})
	}
	if req.ProfilePicture != "" {
		set = append(set, bson.E{Key: "profile_picture", Value: req.ProfilePicture})
	}
	_, err := s.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	return mongodb.WrapError(err)
}
