package service

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/pkg/util"
	"Portfolio/internal/repository"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostService interface {
	SubmitPost(ctx context.Context, userID string, req *dto.SubmitPostDTO) (*dto.PostDTO, error)
	ListApprovedPosts(ctx context.Context, page, limit int) (*dto.PostPageDTO, error)
	GetPost(ctx context.Context, postID string) (*dto.PostDTO, error)
	ListAllPosts(ctx context.Context) ([]*dto.PostDTO, error)
	SetPostApproval(ctx context.Context, postID string, approved bool) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, postID string) error
	ApproveAllPending(ctx context.Context) (int64, error)
}

type postServiceImpl struct {
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
	now         func() time.Time
}

func NewPostService(postRepo repository.PostRepo, commentRepo repository.CommentRepo) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		now:         time.Now,
	}
}

// SubmitPost 提交动态，审核通过前不可见
func (s *postServiceImpl) SubmitPost(ctx context.Context, userID string, req *dto.SubmitPostDTO) (*dto.PostDTO, error) {
	clean := &dto.SubmitPostDTO{
		Title:   util.SanitizeText(req.Title),
		Content: util.SanitizeText(req.Content),
		Author:  util.SanitizeText(req.Author),
	}
	if err := util.ValidateDTO(clean); err != nil {
		return nil, paramError(err)
	}

	now := s.now().UTC()
	post := &model.Post{
		Title:     clean.Title,
		Content:   clean.Content,
		Author:    clean.Author,
		Date:      now,
		Approved:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if uid, ok := optionalObjectID(userID); ok {
		post.UserID = &uid
	}

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post)
}

// ListApprovedPosts 公开动态分页，按日期倒序
func (s *postServiceImpl) ListApprovedPosts(ctx context.Context, page, limit int) (*dto.PostPageDTO, error) {
	page, limit, skip := util.ClampPage(page, limit, consts.DefaultPageLimit, consts.MaxPageLimit)

	posts, err := s.postRepo.ListApprovedPosts(ctx, int64(skip), int64(limit))
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountApprovedPosts(ctx)
	if err != nil {
		return nil, err
	}

	items, err := toPostDTOs(posts)
	if err != nil {
		return nil, err
	}
	return &dto.PostPageDTO{
		Items: items,
		Pagination: dto.PaginationDTO{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasMore: int64(skip+len(items)) < total,
		},
	}, nil
}

// GetPost 获取单条已审核动态，附带渲染后的 HTML
func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*dto.PostDTO, error) {
	id, err := parseObjectID(postID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetPostById(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.Approved {
		return nil, ErrPostNotFound
	}

	out, err := toPostDTO(post)
	if err != nil {
		return nil, err
	}
	html, err := util.RenderMarkdown(post.Content)
	if err != nil {
		log.WarnContext(ctx, "render markdown failed", "post_id", postID, "err", err)
	} else {
		out.ContentHTML = html
	}
	return out, nil
}

// ListAllPosts 管理端列出全部动态
func (s *postServiceImpl) ListAllPosts(ctx context.Context) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.ListAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return toPostDTOs(posts)
}

// SetPostApproval 通过或撤回审核
func (s *postServiceImpl) SetPostApproval(ctx context.Context, postID string, approved bool) (*dto.PostDTO, error) {
	id, err := parseObjectID(postID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.UpdatePostApproved(ctx, id, approved)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return toPostDTO(post)
}

// DeletePost 删除动态及其评论
func (s *postServiceImpl) DeletePost(ctx context.Context, postID string) error {
	id, err := parseObjectID(postID)
	if err != nil {
		return err
	}
	deleted, err := s.postRepo.DeletePost(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPostNotFound
	}

	n, err := s.commentRepo.DeleteCommentsByPost(ctx, id)
	if err != nil {
		log.WarnContext(ctx, "delete post comments failed", "post_id", postID, "err", err)
	} else if n > 0 {
		log.InfoContext(ctx, "post comments deleted", "post_id", postID, "count", n)
	}
	return nil
}

// ApproveAllPending 一键通过全部待审动态
func (s *postServiceImpl) ApproveAllPending(ctx context.Context) (int64, error) {
	return s.postRepo.ApproveAllPending(ctx)
}

func toPostDTO(post *model.Post) (*dto.PostDTO, error) {
	out := &dto.PostDTO{}
	if err := util.Copy(out, post); err != nil {
		return nil, err
	}
	return out, nil
}

func toPostDTOs(posts []*model.Post) ([]*dto.PostDTO, error) {
	items := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		item, err := toPostDTO(p)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// parseObjectID 非法 hex 返回 ErrInvalidID
func parseObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// optionalObjectID 匿名调用方传空串
func optionalObjectID(hex string) (primitive.ObjectID, bool) {
	if hex == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
