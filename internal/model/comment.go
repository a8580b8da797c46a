package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const AnonymousAuthor = "Anonymous"

// Comment 评论，ParentID 为空表示一级评论
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID  `bson:"postId" json:"postId"`
	ParentID  *primitive.ObjectID `bson:"parentId,omitempty" json:"parentId,omitempty"`
	Author    string              `bson:"author" json:"author"`
	UserID    *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Content   string              `bson:"content" json:"content"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}
