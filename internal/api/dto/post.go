package dto

import "time"

type SubmitPostDTO struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=2000"`
	Author  string `json:"author" validate:"required,max=100"`
}

type PostDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	Author      string    `json:"author"`
	UserID      string    `json:"userId,omitempty"`
	Date        time.Time `json:"date"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PostApprovalDTO approved 必须显式给出
type PostApprovalDTO struct {
	Approved *bool `json:"approved" binding:"required"`
}

type PaginationDTO struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

type PostPageDTO struct {
	Items      []*PostDTO    `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}
