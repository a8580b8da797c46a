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

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostById(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	ListApprovedPosts(ctx context.Context, skip, limit int64) ([]*model.Post, error)
	CountApprovedPosts(ctx context.Context) (int64, error)
	ListApprovedPostsByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*model.Post, error)
	CountApprovedPostsByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	ListAllPosts(ctx context.Context) ([]*model.Post, error)
	UpdatePostApproved(ctx context.Context, id primitive.ObjectID, approved bool) (*model.Post, error)
	ApproveAllPending(ctx context.Context) (int64, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: db.Collection(pmongo.PostCollection),
	}
}

// 公开流排序：发布时间倒序，同一时间按 _id 倒序
var feedSort = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}

func (s *postRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	res, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetPostById 不存在时返回 nil, nil
func (s *postRepoImpl) GetPostById(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// ListApprovedPosts 分页获取已审核动态
func (s *postRepoImpl) ListApprovedPosts(ctx context.Context, skip, limit int64) ([]*model.Post, error) {
	opts := options.Find().
		SetSort(feedSort).
		SetSkip(skip).
		SetLimit(limit)
	return s.find(ctx, bson.M{"approved": true}, opts)
}

func (s *postRepoImpl) CountApprovedPosts(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"approved": true})
}

// ListApprovedPostsByUser 个人主页展示的动态
func (s *postRepoImpl) ListApprovedPostsByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*model.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, bson.M{"userId": userID, "approved": true}, opts)
}

func (s *postRepoImpl) CountApprovedPostsByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"userId": userID, "approved": true})
}

// ListAllPosts 管理后台：全部动态，按创建时间倒序
func (s *postRepoImpl) ListAllPosts(ctx context.Context) ([]*model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.find(ctx, bson.M{}, opts)
}

// UpdatePostApproved 更新审核状态并返回更新后的文档，不存在时返回 nil, nil
func (s *postRepoImpl) UpdatePostApproved(ctx context.Context, id primitive.ObjectID, approved bool) (*model.Post, error) {
	update := bson.M{"$set": bson.M{"approved": approved, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post model.Post
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// ApproveAllPending 批量通过所有待审核动态
func (s *postRepoImpl) ApproveAllPending(ctx context.Context) (int64, error) {
	update := bson.M{"$set": bson.M{"approved": true, "updatedAt": time.Now()}}
	result, err := s.col.UpdateMany(ctx, bson.M{"approved": false}, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// DeletePost 返回是否删除了文档
func (s *postRepoImpl) DeletePost(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (s *postRepoImpl) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Post, error) {
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	posts := make([]*model.Post, 0)
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
