package conversation

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	"github.com/bondyapp/bondy/repository/mongodb"
)

var openStatuses = bson.A{
	string(constant.ConversationWaiting),
	string(constant.ConversationActive),
}

type Mongo struct {
	col      *mongo.Collection
	messages *mongo.Collection
}

type ConversationRepository interface {
	Create(ctx context.Context, req *model.ConversationEntity) (*model.ConversationEntity, error)
	GetByID(ctx context.Context, id string) (*model.ConversationEntity, error)
	FindOpenByRequester(ctx context.Context, requesterID string) (*model.ConversationEntity, error)
	ListByParticipant(ctx context.Context, userID string) ([]*model.ConversationListItem, error)
	ListForAdmin(ctx context.Context, adminID string) ([]*model.ConversationListItem, error)
	ApplyMessage(ctx context.Context, id string, last *model.LastMessage, status constant.ConversationStatus) error
	UpdateLastSeen(ctx context.Context, id, userID string, at time.Time) error
	AssignAdmin(ctx context.Context, id, adminID string) error
	SetStatus(ctx context.Context, id string, status constant.ConversationStatus) error
}

func NewConversationRepository(db *mongo.Database) ConversationRepository {
	return &Mongo{
		col:      db.Collection(mongodb.ColConversations),
		messages: db.Collection(mongodb.ColMessages),
	}
}

// Create inserts a new thread. The partial unique index on requester_id
// rejects a second open thread for the same requester with ErrDuplicate.
func (s *Mongo) Create(ctx context.Context, data *model.ConversationEntity) (*model.ConversationEntity, error) {
	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now
	if _, err := s.col.InsertOne(ctx, data); err != nil {
		return nil, mongodb.WrapError(err)
	}
	return data, nil
}

func (s *Mongo) GetByID(ctx context.Context, id string) (*model.ConversationEntity, error) {
	return mongodb.FindOne[model.ConversationEntity](ctx, s.col, bson.D{{Key: "_id", Value: id}})
}

func (s *Mongo) FindOpenByRequester(ctx context.Context, requesterID string) (*model.ConversationEntity, error) {
	return mongodb.FindOne[model.ConversationEntity](ctx, s.col, bson.D{
		{Key: "requester_id", Value: requesterID},
		{Key: "status", Value: bson.D{{Key: "$in", Value: openStatuses}}},
	})
}

func (s *Mongo) ListByParticipant(ctx context.Context, userID string) ([]*model.ConversationListItem, error) {
	return s.list(ctx, bson.D{{Key: "participants.user_id", Value: userID}})
}

// ListForAdmin returns threads assigned to the admin plus unassigned waiting
// ones, newest-updated first.
func (s *Mongo) ListForAdmin(ctx context.Context, adminID string) ([]*model.ConversationListItem, error) {
	return s.list(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "assigned_admin_id", Value: adminID}},
		bson.D{
			{Key: "assigned_admin_id", Value: bson.D{{Key: "$in", Value: bson.A{nil, ""}}}},
			{Key: "status", Value: string(constant.ConversationWaiting)},
		},
	}}})
}

func (s *Mongo) list(ctx context.Context, match bson.D) ([]*model.ConversationListItem, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "updated_at", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: mongodb.ColMessages},
			{Key: "let", Value: bson.D{{Key: "conv", Value: "$_id"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
					{Key: "$eq", Value: bson.A{"$conversation_id", "$$conv"}},
				}}}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
				bson.D{{Key: "$limit", Value: 1}},
			}},
			{Key: "as", Value: "latest"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "latest_message", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$latest", 0}}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "latest", Value: 0}}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mongodb.WrapError(err)
	}
	defer cursor.Close(ctx)

	items := []*model.ConversationListItem{}
	for cursor.Next(ctx) {
		var item model.ConversationListItem
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, cursor.Err()
}

// ApplyMessage updates the denormalized last-message snapshot and bumps the
// message counter in one atomic update.
func (s *Mongo) ApplyMessage(ctx context.Context, id string, last *model.LastMessage, status constant.ConversationStatus) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "last_message", Value: last},
			{Key: "status", Value: status},
			{Key: "updated_at", Value: time.Now()},
		}},
		{Key: "$inc", Value: bson.D{{Key: "message_count", Value: 1}}},
	}
	res, err := s.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return mongodb.WrapError(err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Mongo) UpdateLastSeen(ctx context.Context, id, userID string, at time.Time) error {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "participants.$[p].last_seen_at", Value: at},
	}}}
	opts := options.UpdateOne().SetArrayFilters([]interface{}{
		bson.D{{Key: "p.user_id", Value: userID}},
	})
	_, err := s.col.UpdateOne(ctx, filter, update, opts)
	return mongodb.WrapError(err)
}

func (s *Mongo) AssignAdmin(ctx context.Context, id, adminID string) error {
	res, err := s.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "assigned_admin_id", Value: adminID},
		{Key: "status", Value: string(constant.ConversationActive)},
		{Key: "updated_at", Value: time.Now()},
	}}})
	if err != nil {
		return mongodb.WrapError(err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Mongo) SetStatus(ctx context.Context, id string, status constant.ConversationStatus) error {
	res, err := s.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: string(status)},
		{Key: "updated_at", Value: time.Now()},
	}}})
	if err != nil {
		return mongodb.WrapError(err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
