package chat

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// MessageLog records individual transcript messages, one row per message,
// alongside the turn-oriented history. Logging is best effort like the
// history mirror.
type MessageLog interface {
	Log(ctx context.Context, userID string, msg Message) error
}

type messageRecord struct {
	UserID    string    `bson:"user_id"`
	Role      string    `bson:"role"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

// MongoMessageLog stores messages in the chat_messages collection.
type MongoMessageLog struct {
	col *mongo.Collection
}

func NewMongoMessageLog(col *mongo.Collection) *MongoMessageLog {
	return &MongoMessageLog{col: col}
}

func (l *MongoMessageLog) Log(ctx context.Context, userID string, msg Message) error {
	rec := messageRecord{
		UserID:    userID,
		Role:      msg.Sender,
		Content:   msg.Text,
		CreatedAt: msg.Timestamp,
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := l.col.InsertOne(ctx, rec)
	return err
}
