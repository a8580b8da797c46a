package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post 动态，Approved 为 true 时才对外可见
type Post struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title     string              `bson:"title" json:"title"`
	Content   string              `bson:"content" json:"content"`
	Author    string              `bson:"author" json:"author"`
	UserID    *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Date      time.Time           `bson:"date" json:"date"`
	Approved  bool                `bson:"approved" json:"approved"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
