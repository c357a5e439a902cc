package chat

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HistoryRepository mirrors completed turns to durable storage. The live
// transcript lives in the session; history is replayed when a user returns.
type HistoryRepository interface {
	Append(ctx context.Context, userID string, turn Turn) error
	Replay(ctx context.Context, userID string) ([]Turn, error)
}

type historyRecord struct {
	UserID      string    `bson:"user_id"`
	UserMessage string    `bson:"user_message"`
	BotResponse string    `bson:"bot_response"`
	CreatedAt   time.Time `bson:"created_at"`
}

// MongoHistoryRepository stores turns in the chat_history collection.
type MongoHistoryRepository struct {
	col *mongo.Collection
}

func NewMongoHistoryRepository(col *mongo.Collection) *MongoHistoryRepository {
	return &MongoHistoryRepository{col: col}
}

func (r *MongoHistoryRepository) Append(ctx context.Context, userID string, turn Turn) error {
	rec := historyRecord{
		UserID:      userID,
		UserMessage: turn.UserMessage,
		BotResponse: turn.BotResponse,
		CreatedAt:   turn.CreatedAt,
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, rec)
	return err
}

func (r *MongoHistoryRepository) Replay(ctx context.Context, userID string) ([]Turn, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Turn
	for cur.Next(ctx) {
		var rec historyRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, Turn{
			UserMessage: rec.UserMessage,
			BotResponse: rec.BotResponse,
			CreatedAt:   rec.CreatedAt,
		})
	}
	return out, cur.Err()
}

// MemoryHistoryRepository keeps turns in memory, for tests and running
// without MongoDB.
type MemoryHistoryRepository struct {
	mu    sync.Mutex
	turns map[string][]Turn
}

func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{turns: map[string][]Turn{}}
}

func (r *MemoryHistoryRepository) Append(ctx context.Context, userID string, turn Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	r.turns[userID] = append(r.turns[userID], turn)
	return nil
}

func (r *MemoryHistoryRepository) Replay(ctx context.Context, userID string) ([]Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src := r.turns[userID]
	out := make([]Turn, len(src))
	copy(out, src)
	return out, nil
}
