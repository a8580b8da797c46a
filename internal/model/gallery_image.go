package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ImageStatus string

const (
	ImageStatusPending  ImageStatus = "pending"
	ImageStatusApproved ImageStatus = "approved"
	ImageStatusRejected ImageStatus = "rejected"
)

// GalleryImage 相册图片元数据，Key 同时是对象存储中的对象名
type GalleryImage struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Key             string              `bson:"key" json:"key"`
	URL             string              `bson:"url" json:"url"`
	UploaderID      *primitive.ObjectID `bson:"uploaderId" json:"uploaderId"`
	UploaderEmail   *string             `bson:"uploaderEmail" json:"uploaderEmail"`
	UploadTimestamp time.Time           `bson:"uploadTimestamp" json:"uploadTimestamp"`
	Status          ImageStatus         `bson:"status" json:"status"`
	ContentType     string              `bson:"contentType" json:"contentType"`
	Size            int64               `bson:"size" json:"size"`
	Width           int                 `bson:"width" json:"width"`
	Height          int                 `bson:"height" json:"height"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
