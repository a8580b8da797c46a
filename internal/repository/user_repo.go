package repository

import (
	"Portfolio/internal/model"
	pmongo "Portfolio/internal/pkg/mongo"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserById(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context, limit int64) ([]*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	AddFollow(ctx context.Context, followerID, targetID primitive.ObjectID) error
	RemoveFollow(ctx context.Context, followerID, targetID primitive.ObjectID) error
}

type userRepoImpl struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepoImpl{
		col: db.Collection(pmongo.UserCollection),
	}
}

// CreateUser 插入用户，邮箱重复时返回 ErrDuplicateKey
func (s *userRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetUserById 不存在时返回 nil, nil
func (s *userRepoImpl) GetUserById(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetUserByEmail 不存在时返回 nil, nil
func (s *userRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *userRepoImpl) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers 按注册时间倒序
func (s *userRepoImpl) ListUsers(ctx context.Context, limit int64) ([]*model.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	users := make([]*model.User, 0)
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile 只更新档案字段，不触碰密码与关注关系
func (s *userRepoImpl) UpdateProfile(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"avatar":     user.Avatar,
		"coverImage": user.CoverImage,
		"about":      user.About,
		"location":   user.Location,
		"website":    user.Website,
		"role":       user.Role,
		"updatedAt":  user.UpdatedAt,
	}}
	result, err := s.col.UpdateByID(ctx, user.ID, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddFollow 双向写入关注关系，$addToSet 保证幂等
func (s *userRepoImpl) AddFollow(ctx context.Context, followerID, targetID primitive.ObjectID) error {
	now := time.Now()
	if _, err := s.col.UpdateByID(ctx, followerID, bson.M{
		"$addToSet": bson.M{"following": targetID},
		"$set":      bson.M{"updatedAt": now},
	}); err != nil {
		return err
	}
	_, err := s.col.UpdateByID(ctx, targetID, bson.M{
		"$addToSet": bson.M{"followers": followerID},
		"$set":      bson.M{"updatedAt": now},
	})
	return err
}

// RemoveFollow 双向移除关注关系
func (s *userRepoImpl) RemoveFollow(ctx context.Context, followerID, targetID primitive.ObjectID) error {
	now := time.Now()
	if _, err := s.col.UpdateByID(ctx, followerID, bson.M{
		"$pull": bson.M{"following": targetID},
		"$set":  bson.M{"updatedAt": now},
	}); err != nil {
		return err
	}
	_, err := s.col.UpdateByID(ctx, targetID, bson.M{
		"$pull": bson.M{"followers": followerID},
		"$set":  bson.M{"updatedAt": now},
	})
	return err
}
