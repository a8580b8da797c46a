package main

import (
	"Portfolio/internal/api/config"
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/logger"
	"Portfolio/internal/pkg/mongo"
	"Portfolio/internal/repository"
	"context"
	"flag"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func main() {
	skipPosts := flag.Bool("skip-posts", false, "only create sample users")
	flag.Parse()

	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	logger.InitLogger(config.Cfg.Log)

	db, err := mongo.InitMongo(config.Cfg.Mongo)
	if err != nil {
		log.Error("Fatal error: failed to create mongo connection", "err", err)
		panic(err)
	}
	defer func() {
		_ = db.Client().Disconnect(context.Background())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)

	users, err := seedUsers(ctx, userRepo)
	if err != nil {
		log.Error("seed users failed", "err", err)
		panic(err)
	}
	if *skipPosts {
		return
	}
	if err = seedPosts(ctx, postRepo, users); err != nil {
		log.Error("seed posts failed", "err", err)
		panic(err)
	}
}

// seedUsers 按邮箱去重，已存在的用户直接复用
func seedUsers(ctx context.Context, repo repository.UserRepo) ([]*model.User, error) {
	out := make([]*model.User, 0, len(sampleUsers))
	for _, sample := range sampleUsers {
		existing, err := repo.GetUserByEmail(ctx, sample.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			out = append(out, existing)
			continue
		}

		now := time.Now().UTC()
		user := sample
		user.Password = samplePasswordHash
		user.Followers = []primitive.ObjectID{}
		user.Following = []primitive.ObjectID{}
		user.CreatedAt = now
		user.UpdatedAt = now
		if err = repo.CreateUser(ctx, &user); err != nil {
			return nil, err
		}
		out = append(out, &user)
	}
	log.Info("sample users ready", "count", len(out))
	return out, nil
}

func seedPosts(ctx context.Context, repo repository.PostRepo, users []*model.User) error {
	base := time.Now().UTC()
	for i, sample := range samplePosts {
		// 保持列表中的先后顺序
		at := base.Add(-time.Duration(i) * time.Minute)
		post := &model.Post{
			Title:     sample.Title,
			Content:   sample.Content,
			Author:    sample.Author,
			Date:      at,
			Approved:  true,
			CreatedAt: at,
			UpdatedAt: at,
		}
		if sample.Owner >= 0 {
			owner := users[sample.Owner]
			post.UserID = &owner.ID
			post.Author = owner.Name
		}
		if err := repo.CreatePost(ctx, post); err != nil {
			return err
		}
	}
	log.Info("sample posts created", "count", len(samplePosts))
	return nil
}
