package api

import (
	"Portfolio/internal/api/handler"
	"Portfolio/internal/pkg/security"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	Tokens            *security.TokenManager
	UserHandler       *handler.UserHandler
	UserFollowHandler *handler.UserFollowHandler
	PostHandler       *handler.PostHandler
	CommentHandler    *handler.CommentHandler
	GalleryHandler    *handler.GalleryHandler
}
