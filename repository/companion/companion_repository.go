package companion

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

type CompanionRepository interface {
	Create(ctx context.Context, req *model.CompanionEntity) (*model.CompanionEntity, error)
	Get(ctx context.Context, filter *model.CompanionFilter) (*model.CompanionEntity, error)
	List(ctx context.Context, page, limit int) ([]*model.CompanionEntity, int64, error)
	Update(ctx context.Context, id string, req *model.UpdateCompanionRequest) error
	UpdateRating(ctx context.Context, id string, avg float64, count int64) error
}

func NewCompanionRepository(db *mongo.Database) CompanionRepository {
	return &Mongo{col: db.Collection(mongodb.ColCompanions)}
}

func (s *Mongo) Create(ctx context.Context, data *model.CompanionEntity) (*model.CompanionEntity, error) {
	data.CreatedAt = time.Now()
	if _, err := s.col.InsertOne(ctx, data); err != nil {
		return nil, mongodb.WrapError(err)
	}
	return data, nil
}

func (s *Mongo) Get(ctx context.Context, filter *model.CompanionFilter) (*model.CompanionEntity, error) {
	query := bson.D{}
	if filter.ID != "" {
		query = append(query, bson.E{Key: "_id", Value: filter.ID})
	}
	if filter.Email != "" {
		query = append(query, bson.E{Key: "email", Value: filter.Email})
	}
	if filter.Mobile != "" {
		query = append(query, bson.E{Key: "mobile", Value: filter.Mobile})
	}
	return mongodb.FindOne[model.CompanionEntity](ctx, s.col, query)
}

func (s *Mongo) List(ctx context.Context, page, limit int) ([]*model.CompanionEntity, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	total, err := s.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, mongodb.WrapError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	items, err := mongodb.FindMany[model.CompanionEntity](ctx, s.col, bson.D{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Mongo) Update(ctx context.Context, id string, req *model.UpdateCompanionRequest) error {
	set := bson.D{{Key: "updated_at", Value: time.Now()}}
	if req.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *req.Name})
	}
	if req.Specialties != nil {
		set = append(set, bson.E{Key: "specialties", Value: req.Specialties})
	}
	if req.HourlyRate != nil {
		set = append(set, bson.E{Key: "hourly_rate", Value: *req.HourlyRate})
	}
	if req.Availability != nil {
		set = append(set, bson.E{Key: "availability", Value: req.Availability})
	}
	if req.IsActive != nil {
		set = append(set, bson.E{Key: "is_active", Value: *req.IsActive})
	}
	if req.IsVerified != nil {
		set = append(set, bson.E{Key: "is_verified", Value: *req.IsVerified})
	}

	res, err := s.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return mongodb.WrapError(err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Mongo) UpdateRating(ctx context.Context, id string, avg float64, count int64) error {
	_, err := s.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "rating_avg", Value: avg},
		{Key: "rating_count", Value: count},
		{Key: "updated_at", Value: time.Now()},
	}}})
	return mongodb.WrapError(err)
}
