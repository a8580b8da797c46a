package wire

import (
	"Portfolio/internal/api"
	"Portfolio/internal/api/config"
	"Portfolio/internal/api/handler"
	"Portfolio/internal/job"
	"Portfolio/internal/pkg/cron"
	"Portfolio/internal/pkg/minio"
	predis "Portfolio/internal/pkg/redis"
	"Portfolio/internal/pkg/security"
	"Portfolio/internal/repository"
	"Portfolio/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router      *gin.Engine
	DB          *mongo.Database
	UserService service.UserService
	CronManager *cron.Manager
}

func BuildApplication(db *mongo.Database, rdb *redis.Client, store *minio.Store, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)
	galleryRepo := repository.NewGalleryRepo(db)
	commentRepo := repository.NewCommentRepo(db)

	tokens := security.NewTokenManager(
		cfg.Auth.SessionSecret,
		cfg.Auth.Issuer,
		time.Duration(cfg.Auth.ExpiryDays)*24*time.Hour,
		predis.NewRevocationStore(rdb),
	)

	userService := service.NewUserService(userRepo, postRepo, tokens, cfg.Admin.Email)
	postService := service.NewPostService(postRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	galleryService := service.NewGalleryService(galleryRepo, store)

	handlers := &api.HandlersGroup{
		Tokens:            tokens,
		UserHandler:       handler.NewUserHandler(userService),
		UserFollowHandler: handler.NewUserFollowHandler(userService),
		PostHandler:       handler.NewPostHandler(postService),
		CommentHandler:    handler.NewCommentHandler(commentService),
		GalleryHandler:    handler.NewGalleryHandler(galleryService),
	}

	router := api.SetupRouter(handlers, cfg.Server)

	orphanJob := job.NewOrphanCleanupJob(store, galleryRepo, time.Duration(cfg.Job.OrphanMinAgeH)*time.Hour)
	cronMgr := cron.NewCronManager(orphanJob, cfg.Job.OrphanCleanup)

	return &ApplicationContainer{
		Router:      router,
		DB:          db,
		UserService: userService,
		CronManager: cronMgr,
	}, nil
}
