package handler

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/pkg/response"
	"Portfolio/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) SubmitPost(c *gin.Context) {
	var req dto.SubmitPostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.SubmitPost(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedMsg(c, "Post submitted for review", post)
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	page := queryInt(c, "page", consts.DefaultPage)
	limit := queryInt(c, "limit", consts.DefaultPageLimit)

	posts, err := s.postSvc.ListApprovedPosts(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	post, err := s.postSvc.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// ListAllPosts 管理端列表，查询失败时降级为空列表
func (s *PostHandler) ListAllPosts(c *gin.Context) {
	posts, err := s.postSvc.ListAllPosts(c.Request.Context())
	if err != nil {
		log.WarnContext(c.Request.Context(), "list all posts failed, returning empty list", "err", err)
		response.SuccessMsg(c, "Posts are temporarily unavailable", []*dto.PostDTO{})
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) SetPostApproval(c *gin.Context) {
	var req dto.PostApprovalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.SetPostApproval(c.Request.Context(), c.Param("post_id"), *req.Approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	msg := "Post rejected"
	if post.Approved {
		msg = "Post approved"
	}
	response.SuccessMsg(c, msg, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	if err := s.postSvc.DeletePost(c.Request.Context(), c.Param("post_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "Post deleted", nil)
}

func (s *PostHandler) ApproveAllPending(c *gin.Context) {
	n, err := s.postSvc.ApproveAllPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "Pending posts approved", gin.H{"modifiedCount": n})
}
