package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gembot/backend/internal/sentiment"
)

// ChatTurn is one user message and the bot's reply, stored in the "chats"
// collection. The log is append-only; turns are never updated or deleted.
type ChatTurn struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ChatID      int64              `bson:"chat_id" json:"chat_id"`
	UserInput   string             `bson:"user_input" json:"user_input"`
	BotResponse string             `bson:"bot_response" json:"bot_response"`
	Sentiment   sentiment.Label    `bson:"sentiment" json:"sentiment"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
