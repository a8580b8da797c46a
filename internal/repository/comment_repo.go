package repository

import (
	"Portfolio/internal/model"
	pmongo "Portfolio/internal/pkg/mongo"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentById(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	ListCommentsByPost(ctx context.Context, postID primitive.ObjectID) ([]*model.Comment, error)
	DeleteCommentsByPost(ctx context.Context, postID primitive.ObjectID) (int64, error)
}

type commentRepoImpl struct {
	col *mongo.Collection
}

func NewCommentRepo(db *mongo.Database) CommentRepo {
	return &commentRepoImpl{
		col: db.Collection(pmongo.CommentCollection),
	}
}

func (s *commentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	res, err := s.col.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	comment.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetCommentById 不存在时返回 nil, nil
func (s *commentRepoImpl) GetCommentById(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// ListCommentsByPost 帖子下全部评论(含回复)，按时间正序
func (s *commentRepoImpl) ListCommentsByPost(ctx context.Context, postID primitive.ObjectID) ([]*model.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.col.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	comments := make([]*model.Comment, 0)
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteCommentsByPost 删除帖子时级联清理评论
func (s *commentRepoImpl) DeleteCommentsByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	result, err := s.col.DeleteMany(ctx, bson.M{"postId": postID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
