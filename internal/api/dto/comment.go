package dto

import "time"

type CreateCommentDTO struct {
	Content  string `json:"content" validate:"required,max=1000"`
	Author   string `json:"author" validate:"max=100"`
	ParentID string `json:"parentId"`
}

type CommentDTO struct {
	ID        string        `json:"id"`
	PostID    string        `json:"postId"`
	ParentID  string        `json:"parentId,omitempty"`
	Author    string        `json:"author"`
	UserID    string        `json:"userId,omitempty"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	Replies   []*CommentDTO `json:"replies,omitempty"`
}
