package handler

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/pkg/response"
	"Portfolio/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

func (s *CommentHandler) ListComments(c *gin.Context) {
	comments, err := s.commentSvc.ListComments(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.CreateComment(c.Request.Context(), currentUserID(c), c.Param("post_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedMsg(c, "Comment added", comment)
}
