package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultAvatar      = "/avatar.png"
	DefaultProfileRole = "Designer"
)

// User 用户档案，password 仅存储 bcrypt 哈希
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name       string               `bson:"name" json:"name"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	Avatar     string               `bson:"avatar" json:"avatar"`
	CoverImage string               `bson:"coverImage" json:"coverImage"`
	About      string               `bson:"about" json:"about"`
	Location   string               `bson:"location" json:"location"`
	Website    string               `bson:"website" json:"website"`
	Role       string               `bson:"role" json:"role"`
	Verified   bool                 `bson:"verified" json:"verified"`
	Followers  []primitive.ObjectID `bson:"followers" json:"followers"`
	Following  []primitive.ObjectID `bson:"following" json:"following"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsFollowing 判断当前用户是否已关注 target
func (u *User) IsFollowing(target primitive.ObjectID) bool {
	for _, id := range u.Following {
		if id == target {
			return true
		}
	}
	return false
}
