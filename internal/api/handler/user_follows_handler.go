package handler

import (
	"Portfolio/internal/pkg/response"
	"Portfolio/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	userSvc service.UserService
}

func NewUserFollowHandler(userSvc service.UserService) *UserFollowHandler {
	return &UserFollowHandler{userSvc: userSvc}
}

func (s *UserFollowHandler) Follow(c *gin.Context) {
	if err := s.userSvc.Follow(c.Request.Context(), currentUserID(c), c.Param("user_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "Followed", gin.H{"isFollowing": true})
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	if err := s.userSvc.Unfollow(c.Request.Context(), currentUserID(c), c.Param("user_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "Unfollowed", gin.H{"isFollowing": false})
}
