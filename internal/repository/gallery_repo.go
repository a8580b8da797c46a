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

type GalleryRepo interface {
	CreateImage(ctx context.Context, img *model.GalleryImage) error
	GetImageById(ctx context.Context, id primitive.ObjectID) (*model.GalleryImage, error)
	ListImagesByStatus(ctx context.Context, status model.ImageStatus) ([]*model.GalleryImage, error)
	UpdateImageStatus(ctx context.Context, id primitive.ObjectID, status model.ImageStatus) (*model.GalleryImage, error)
	DeleteImage(ctx context.Context, id primitive.ObjectID) (bool, error)
	KeyExists(ctx context.Context, key string) (bool, error)
}

type galleryRepoImpl struct {
	col *mongo.Collection
}

func NewGalleryRepo(db *mongo.Database) GalleryRepo {
	return &galleryRepoImpl{
		col: db.Collection(pmongo.GalleryCollection),
	}
}

// CreateImage Key 重复时返回 ErrDuplicateKey
func (s *galleryRepoImpl) CreateImage(ctx context.Context, img *model.GalleryImage) error {
	res, err := s.col.InsertOne(ctx, img)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	img.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetImageById 不存在时返回 nil, nil
func (s *galleryRepoImpl) GetImageById(ctx context.Context, id primitive.ObjectID) (*model.GalleryImage, error) {
	var img model.GalleryImage
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&img)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

// ListImagesByStatus 按上传时间倒序
func (s *galleryRepoImpl) ListImagesByStatus(ctx context.Context, status model.ImageStatus) ([]*model.GalleryImage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadTimestamp", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := s.col.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	images := make([]*model.GalleryImage, 0)
	if err = cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// UpdateImageStatus 返回更新后的文档，不存在时返回 nil, nil
func (s *galleryRepoImpl) UpdateImageStatus(ctx context.Context, id primitive.ObjectID, status model.ImageStatus) (*model.GalleryImage, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var img model.GalleryImage
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&img)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (s *galleryRepoImpl) DeleteImage(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// KeyExists 判断对象名是否有对应的元数据记录
func (s *galleryRepoImpl) KeyExists(ctx context.Context, key string) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"key": key}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
