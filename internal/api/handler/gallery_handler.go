package handler

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/pkg/response"
	"Portfolio/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

const imageCacheControl = "public, max-age=31536000, immutable"

type GalleryHandler struct {
	gallerySvc service.GalleryService
}

func NewGalleryHandler(gallerySvc service.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallerySvc: gallerySvc}
}

func (s *GalleryHandler) Upload(c *gin.Context) {
	var req dto.UploadImageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	out, err := s.gallerySvc.UploadImage(c.Request.Context(), currentUserID(c), c.GetString(consts.CtxEmail), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedMsg(c, "Image uploaded and awaiting approval", out)
}

func (s *GalleryHandler) ListImages(c *gin.Context) {
	images, err := s.gallerySvc.ListApprovedImages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, images)
}

// ServeImage 代理读取对象存储中的图片
func (s *GalleryHandler) ServeImage(c *gin.Context) {
	obj, err := s.gallerySvc.GetImage(c.Request.Context(), c.Query("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() {
		_ = obj.Body.Close()
	}()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, map[string]string{
		"Cache-Control": imageCacheControl,
	})
}

func (s *GalleryHandler) ListPending(c *gin.Context) {
	images, err := s.gallerySvc.ListPendingImages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, images)
}

func (s *GalleryHandler) Approve(c *gin.Context) {
	img, err := s.gallerySvc.ApproveImage(c.Request.Context(), c.Param("image_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "Image approved", img)
}

func (s *GalleryHandler) Deny(c *gin.Context) {
	if err := s.gallerySvc.DenyImage(c.Request.Context(), c.Param("image_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "Image denied and deleted", nil)
}
