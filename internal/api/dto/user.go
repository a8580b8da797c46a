package dto

import "time"

type RegisterDTO struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type CredentialDTO struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileDTO 字段为空表示不修改
type UpdateProfileDTO struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
	Avatar     *string `json:"avatar" validate:"omitempty,max=500"`
	CoverImage *string `json:"coverImage" validate:"omitempty,max=500"`
	About      *string `json:"about" validate:"omitempty,max=500"`
	Location   *string `json:"location" validate:"omitempty,max=100"`
	Website    *string `json:"website" validate:"omitempty,max=200"`
	Role       *string `json:"role" validate:"omitempty,max=50"`
}

type UserDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	About      string    `json:"about"`
	Location   string    `json:"location"`
	Website    string    `json:"website"`
	Role       string    `json:"role"`
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `json:"createdAt"`
}

type LoginResultDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *UserDTO  `json:"user"`
	Roles     []string  `json:"roles"`
}

type ProfileStatsDTO struct {
	Followers int   `json:"followers"`
	Following int   `json:"following"`
	Posts     int64 `json:"posts"`
}

type ProfileDTO struct {
	User         *UserDTO        `json:"user"`
	Stats        ProfileStatsDTO `json:"stats"`
	Posts        []*PostDTO      `json:"posts"`
	IsFollowing  bool            `json:"isFollowing"`
	IsOwnProfile bool            `json:"isOwnProfile"`
}
