package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileAnalysis records one processed upload in the "file_analysis"
// collection. Analysis stays empty for file types with no extraction path.
// Append-only.
type FileAnalysis struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ChatID    int64              `bson:"chat_id" json:"chat_id"`
	FileName  string             `bson:"file_name" json:"file_name"`
	Analysis  string             `bson:"analysis" json:"analysis"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
