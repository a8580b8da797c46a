package dto

import "time"

type UploadImageDTO struct {
	Image       string `json:"image" validate:"required"`
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"omitempty,max=100"`
}

type UploadResultDTO struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// GalleryImageDTO 公开相册条目
type GalleryImageDTO struct {
	ID           string    `json:"id"`
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	LastModified time.Time `json:"lastModified"`
}

// PendingImageDTO 管理端审核条目
type PendingImageDTO struct {
	ID              string    `json:"id"`
	Key             string    `json:"key"`
	URL             string    `json:"url"`
	UploaderEmail   string    `json:"uploaderEmail"`
	UploadTimestamp time.Time `json:"uploadTimestamp"`
	Status          string    `json:"status"`
	ContentType     string    `json:"contentType"`
	Size            int64     `json:"size"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
}
