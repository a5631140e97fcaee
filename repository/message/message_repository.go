package message

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

type Mongo struct {
	col *mongo.Collection
}

type MessageRepository interface {
	Create(ctx context.Context, req *model.MessageEntity) (*model.MessageEntity, error)
	GetByID(ctx context.Context, id string) (*model.MessageEntity, error)
	ListByConversation(ctx context.Context, conversationID string, page, limit int) ([]*model.MessageEntity, int64, error)
	MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) error
	SoftDelete(ctx context.Context, id string) error
}

func NewMessageRepository(db *mongo.Database) MessageRepository {
	return &Mongo{col: db.Collection(mongodb.ColMessages)}
}

func (s *Mongo) Create(ctx context.Context, data *model.MessageEntity) (*model.MessageEntity, error) {
	data.CreatedAt = time.Now()
	if _, err := s.col.InsertOne(ctx, data); err != nil {
		return nil, mongodb.WrapError(err)
	}
	return data, nil
}

func (s *Mongo) GetByID(ctx context.Context, id string) (*model.MessageEntity, error) {
	return mongodb.FindOne[model.MessageEntity](ctx, s.col, bson.D{{Key: "_id", Value: id}})
}

// ListByConversation returns one page of messages, newest first. Callers
// reverse the page into chronological order for the response.
func (s *Mongo) ListByConversation(ctx context.Context, conversationID string, page, limit int) ([]*model.MessageEntity, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	filter := bson.D{{Key: "conversation_id", Value: conversationID}}
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mongodb.WrapError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	items, err := mongodb.FindMany[model.MessageEntity](ctx, s.col, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// MarkRead appends a read receipt to every message in the conversation not
// authored by the reader and not already read by them.
func (s *Mongo) MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) error {
	filter := bson.D{
		{Key: "conversation_id", Value: conversationID},
		{Key: "sender.user_id", Value: bson.D{{Key: "$ne", Value: readerID}}},
		{Key: "read_by.user_id", Value: bson.D{{Key: "$ne", Value: readerID}}},
	}
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "read_by", Value: model.ReadReceipt{
		UserID: readerID,
		ReadAt: at,
	}}}}}
	_, err := s.col.UpdateMany(ctx, filter, update)
	return mongodb.WrapError(err)
}

// SoftDelete replaces the content with a placeholder; the document stays.
func (s *Mongo) SoftDelete(ctx context.Context, id string) error {
	res, err := s.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: constant.DeletedMessageContent},
		{Key: "deleted", Value: true},
	}}})
	if err != nil {
		return mongodb.WrapError(err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
