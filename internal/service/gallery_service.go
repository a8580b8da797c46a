package service

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/pkg/minio"
	"Portfolio/internal/pkg/util"
	"Portfolio/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"
)

// ObjectStorage 图片二进制的存取
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (*minio.Object, error)
	Delete(ctx context.Context, key string) error
}

type GalleryService interface {
	UploadImage(ctx context.Context, uploaderID, uploaderEmail string, req *dto.UploadImageDTO) (*dto.UploadResultDTO, error)
	ListApprovedImages(ctx context.Context) ([]*dto.GalleryImageDTO, error)
	GetImage(ctx context.Context, key string) (*minio.Object, error)
	ListPendingImages(ctx context.Context) ([]*dto.PendingImageDTO, error)
	ApproveImage(ctx context.Context, imageID string) (*dto.PendingImageDTO, error)
	DenyImage(ctx context.Context, imageID string) error
}

type galleryServiceImpl struct {
	galleryRepo repository.GalleryRepo
	storage     ObjectStorage
	now         func() time.Time
}

func NewGalleryService(galleryRepo repository.GalleryRepo, storage ObjectStorage) GalleryService {
	return &galleryServiceImpl{
		galleryRepo: galleryRepo,
		storage:     storage,
		now:         time.Now,
	}
}

// UploadImage 上传图片并创建待审核记录
func (s *galleryServiceImpl) UploadImage(ctx context.Context, uploaderID, uploaderEmail string, req *dto.UploadImageDTO) (*dto.UploadResultDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, paramError(err)
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if contentType == "" {
		contentType = consts.DefaultContentType
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	data, err := util.DecodeBase64Image(req.Image)
	if err != nil {
		return nil, paramError(err)
	}
	if len(data) == 0 {
		return nil, ErrFileEmpty
	}
	if len(data) > consts.MaxImageBytes {
		return nil, ErrFileTooLarge
	}
	sniffed := util.DetectMimeType(data)
	// SVG 可携带脚本，代理同源返回时会被浏览器执行
	if sniffed == consts.MimeSVG || strings.HasPrefix(contentType, consts.MimeSVG) {
		return nil, ErrSVGNotSupported
	}
	if !strings.HasPrefix(sniffed, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	now := s.now().UTC()
	key := minio.NewGalleryKey(now, req.FileName)
	if err = s.storage.Put(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	width, height := util.ImageDimensions(data)
	img := &model.GalleryImage{
		Key:             key,
		URL:             minio.ProxyURL(key),
		UploadTimestamp: now,
		Status:          model.ImageStatusPending,
		ContentType:     contentType,
		Size:            int64(len(data)),
		Width:           width,
		Height:          height,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if uid, ok := optionalObjectID(uploaderID); ok {
		img.UploaderID = &uid
	}
	if uploaderEmail != "" {
		img.UploaderEmail = util.PtrString(uploaderEmail)
	}

	if err = s.galleryRepo.CreateImage(ctx, img); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.WarnContext(ctx, "remove uploaded object failed", "key", key, "err", delErr)
		}
		return nil, err
	}

	log.InfoContext(ctx, "gallery image uploaded", "key", key, "size", img.Size)
	return &dto.UploadResultDTO{
		ID:     img.ID.Hex(),
		Key:    img.Key,
		URL:    img.URL,
		Status: string(img.Status),
	}, nil
}

// ListApprovedImages 公开相册，最新上传在前
func (s *galleryServiceImpl) ListApprovedImages(ctx context.Context) ([]*dto.GalleryImageDTO, error) {
	images, err := s.galleryRepo.ListImagesByStatus(ctx, model.ImageStatusApproved)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.GalleryImageDTO, 0, len(images))
	for _, img := range images {
		items = append(items, &dto.GalleryImageDTO{
			ID:           img.ID.Hex(),
			Key:          img.Key,
			URL:          img.URL,
			LastModified: img.UploadTimestamp,
		})
	}
	return items, nil
}

// GetImage 图片代理读取，只放行 gallery/ 前缀
func (s *galleryServiceImpl) GetImage(ctx context.Context, key string) (*minio.Object, error) {
	if key == "" {
		return nil, ErrImageKeyMissing
	}
	if !minio.IsGalleryKey(key) {
		return nil, ErrImageKeyForbidden
	}
	obj, err := s.storage.Get(ctx, key)
	if errors.Is(err, minio.ErrObjectNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}
	if obj.ContentType == "" {
		obj.ContentType = consts.DefaultContentType
	}
	return obj, nil
}

// ListPendingImages 待审核图片，最新上传在前
func (s *galleryServiceImpl) ListPendingImages(ctx context.Context) ([]*dto.PendingImageDTO, error) {
	images, err := s.galleryRepo.ListImagesByStatus(ctx, model.ImageStatusPending)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.PendingImageDTO, 0, len(images))
	for _, img := range images {
		item, err := toPendingImageDTO(img)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ApproveImage 审核通过
func (s *galleryServiceImpl) ApproveImage(ctx context.Context, imageID string) (*dto.PendingImageDTO, error) {
	id, err := parseObjectID(imageID)
	if err != nil {
		return nil, err
	}
	img, err := s.galleryRepo.UpdateImageStatus(ctx, id, model.ImageStatusApproved)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrImageNotFound
	}
	return toPendingImageDTO(img)
}

// DenyImage 拒绝并删除，对象删除失败不影响记录删除
func (s *galleryServiceImpl) DenyImage(ctx context.Context, imageID string) error {
	id, err := parseObjectID(imageID)
	if err != nil {
		return err
	}
	img, err := s.galleryRepo.GetImageById(ctx, id)
	if err != nil {
		return err
	}
	if img == nil {
		return ErrImageNotFound
	}

	if err = s.storage.Delete(ctx, img.Key); err != nil {
		log.WarnContext(ctx, "delete denied object failed", "key", img.Key, "err", err)
	}

	deleted, err := s.galleryRepo.DeleteImage(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrImageNotFound
	}
	return nil
}

func toPendingImageDTO(img *model.GalleryImage) (*dto.PendingImageDTO, error) {
	out := &dto.PendingImageDTO{}
	if err := util.Copy(out, img); err != nil {
		return nil, err
	}
	out.Status = string(img.Status)
	out.UploaderEmail = model.AnonymousAuthor
	if img.UploaderEmail != nil && *img.UploaderEmail != "" {
		out.UploaderEmail = *img.UploaderEmail
	}
	return out, nil
}
