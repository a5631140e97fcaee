package booking

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	"github.com/bondyapp/bondy/repository/mongodb"
)

type Mongo struct {
	col *mongo.Collection
}

type BookingRepository interface {
	Create(ctx context.Context, req *model.BookingEntity) (*model.BookingEntity, error)
	GetByID(ctx context.Context, id string) (*model.BookingEntity, error)
	ListByUser(ctx context.Context, filter *model.BookingFilter) ([]*model.BookingListItem, int64, error)
	ListByStatus(ctx context.Context, status constant.BookingStatus, page, limit int) ([]*model.BookingListItem, int64, error)
	Save(ctx context.Context, data *model.BookingEntity) error
	Stats(ctx context.Context, userID string) (*model.BookingStats, error)
}

func NewBookingRepository(db *mongo.Database) BookingRepository {
	return &Mongo{col: db.Collection(mongodb.ColBookings)}
}

func (s *Mongo) Create(ctx context.Context, data *model.BookingEntity) (*model.BookingEntity, error) {
	data.CreatedAt = time.Now()
	if _, err := s.col.InsertOne(ctx, data); err != nil {
		return nil, mongodb.WrapError(err)
	}
	return data, nil
}

func (s *Mongo) GetByID(ctx context.Context, id string) (*model.BookingEntity, error) {
	return mongodb.FindOne[model.BookingEntity](ctx, s.col, bson.D{{Key: "_id", Value: id}})
}

func (s *Mongo) ListByUser(ctx context.Context, filter *model.BookingFilter) ([]*model.BookingListItem, int64, error) {
	match := bson.D{{Key: "user_id", Value: filter.UserID}}
	if filter.Status != "" {
		match = append(match, bson.E{Key: "status", Value: filter.Status})
	}
	return s.list(ctx, match, filter.Page, filter.Limit)
}

func (s *Mongo) ListByStatus(ctx context.Context, status constant.BookingStatus, page, limit int) ([]*model.BookingListItem, int64, error) {
	match := bson.D{}
	if status != "" {
		match = append(match, bson.E{Key: "status", Value: status})
	}
	return s.list(ctx, match, page, limit)
}

// list runs the shared listing pipeline: newest first, paginated, with the
// assigned companion joined in.
func (s *Mongo) list(ctx context.Context, match bson.D, page, limit int) ([]*model.BookingListItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	total, err := s.col.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, mongodb.WrapError(err)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$skip", Value: int64((page - 1) * limit)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: mongodb.ColCompanions},
			{Key: "localField", Value: "assigned_companion_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "companions"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "companion", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$companions", 0}}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "companions", Value: 0}}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, mongodb.WrapError(err)
	}
	defer cursor.Close(ctx)

	items := []*model.BookingListItem{}
	for cursor.Next(ctx) {
		var item model.BookingListItem
		if err := cursor.Decode(&item); err != nil {
			return nil, 0, err
		}
		items = append(items, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Save writes the full document back. Request-scoped mutations load, mutate
// in memory and save; last write wins.
func (s *Mongo) Save(ctx context.Context, data *model.BookingEntity) error {
	now := time.Now()
	data.UpdatedAt = &now
	res, err := s.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: data.ID}}, data)
	if err != nil {
		return mongodb.WrapError(err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Mongo) Stats(ctx context.Context, userID string) (*model.BookingStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "user_id", Value: userID}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "rating_total", Value: bson.D{{Key: "$sum", Value: "$rating"}}},
			{Key: "rated", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{bson.D{{Key: "$gt", Value: bson.A{"$rating", 0}}}, 1, 0}},
			}}}},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mongodb.WrapError(err)
	}
	defer cursor.Close(ctx)

	stats := &model.BookingStats{StatusCounts: map[string]int64{}}
	var ratingTotal, rated int64
	for cursor.Next(ctx) {
		var row struct {
			ID          string `bson:"_id"`
			Count       int64  `bson:"count"`
			RatingTotal int64  `bson:"rating_total"`
			Rated       int64  `bson:"rated"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		stats.StatusCounts[row.ID] = row.Count
		ratingTotal += row.RatingTotal
		rated += row.Rated
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if rated > 0 {
		stats.AverageRating = float64(ratingTotal) / float64(rated)
	}
	return stats, nil
}
