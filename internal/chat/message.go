package chat

import "time"

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one entry in the visible conversation transcript.
type Message struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Turn is a completed prompt/response pair as persisted to history.
type Turn struct {
	UserMessage string    `bson:"user_message" json:"userMessage"`
	BotResponse string    `bson:"bot_response" json:"botResponse"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}
