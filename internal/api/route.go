package api

import (
	"Portfolio/internal/api/config"
	"Portfolio/internal/api/middleware"
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/pkg/logger"
	"Portfolio/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, serverCfg config.ServerConfig) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware(serverCfg.AllowedOrigins))
	r.Use(middleware.BodyLimitMiddleware(serverCfg.MaxBodyMB))
	r.Use(middleware.AuditMiddleware())
	logger.SetupGin(r)

	authOpt := middleware.AuthOptionalMiddleware(group.Tokens)
	auth := middleware.AuthMiddleware(group.Tokens)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			response.SuccessMsg(c, "pong", nil)
		})

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/:post_id", group.PostHandler.GetPost)
			postGroup.GET("/:post_id/comments", group.CommentHandler.ListComments)

			authOptGroup := postGroup.Group("")
			authOptGroup.Use(authOpt)
			{
				authOptGroup.POST("", group.PostHandler.SubmitPost)
				authOptGroup.POST("/:post_id/comments", group.CommentHandler.CreateComment)
			}
		}

		galleryGroup := apiGroup.Group("/gallery")
		{
			galleryGroup.GET("", group.GalleryHandler.ListImages)
			galleryGroup.GET("/image", group.GalleryHandler.ServeImage)
			galleryGroup.POST("/upload", authOpt, group.GalleryHandler.Upload)
		}

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.PUT("/info", group.UserHandler.UpdateUserInfo)
			}
		}

		usersGroup := apiGroup.Group("/users")
		{
			usersGroup.GET("", group.UserHandler.ListUsers)
			usersGroup.GET("/:user_id", authOpt, group.UserHandler.GetProfile)

			followGroup := usersGroup.Group("/:user_id/follow")
			followGroup.Use(auth)
			{
				followGroup.POST("", group.UserFollowHandler.Follow)
				followGroup.DELETE("", group.UserFollowHandler.Unfollow)
			}
		}

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(auth, middleware.CheckRoles(consts.RoleAdmin))
		{
			adminGroup.GET("/posts", group.PostHandler.ListAllPosts)
			adminGroup.POST("/posts/approve-all", group.PostHandler.ApproveAllPending)
			adminGroup.PUT("/posts/:post_id/approval", group.PostHandler.SetPostApproval)
			adminGroup.DELETE("/posts/:post_id", group.PostHandler.DeletePost)

			adminGroup.GET("/gallery/pending", group.GalleryHandler.ListPending)
			adminGroup.POST("/gallery/:image_id/approve", group.GalleryHandler.Approve)
			adminGroup.POST("/gallery/:image_id/deny", group.GalleryHandler.Deny)
		}
	}

	return r
}
