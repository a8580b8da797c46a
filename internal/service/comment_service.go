package service

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/util"
	"Portfolio/internal/repository"
	"context"
	"time"
)

type CommentService interface {
	ListComments(ctx context.Context, postID string) ([]*dto.CommentDTO, error)
	CreateComment(ctx context.Context, userID string, postID string, req *dto.CreateCommentDTO) (*dto.CommentDTO, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	now         func() time.Time
}

func NewCommentService(commentRepo repository.CommentRepo, postRepo repository.PostRepo) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		now:         time.Now,
	}
}

// ListComments 一级评论按时间正序，回复挂在其下
func (s *commentServiceImpl) ListComments(ctx context.Context, postID string) ([]*dto.CommentDTO, error) {
	post, err := s.approvedPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListCommentsByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	roots := make([]*dto.CommentDTO, 0)
	byID := make(map[string]*dto.CommentDTO, len(comments))
	var replies []*dto.CommentDTO
	for _, c := range comments {
		item, err := toCommentDTO(c)
		if err != nil {
			return nil, err
		}
		if item.ParentID == "" {
			roots = append(roots, item)
			byID[item.ID] = item
		} else {
			replies = append(replies, item)
		}
	}
	for _, r := range replies {
		if parent, ok := byID[r.ParentID]; ok {
			parent.Replies = append(parent.Replies, r)
		}
	}
	return roots, nil
}

// CreateComment 只允许评论已审核动态，回复仅限一层
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID string, postID string, req *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	post, err := s.approvedPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	clean := &dto.CreateCommentDTO{
		Content:  util.SanitizeText(req.Content),
		Author:   util.SanitizeText(req.Author),
		ParentID: req.ParentID,
	}
	if err = util.ValidateDTO(clean); err != nil {
		return nil, paramError(err)
	}
	if clean.Author == "" {
		clean.Author = model.AnonymousAuthor
	}

	comment := &model.Comment{
		PostID:    post.ID,
		Author:    clean.Author,
		Content:   clean.Content,
		CreatedAt: s.now().UTC(),
	}
	if uid, ok := optionalObjectID(userID); ok {
		comment.UserID = &uid
	}

	if clean.ParentID != "" {
		parentID, err := parseObjectID(clean.ParentID)
		if err != nil {
			return nil, ErrCommentParent
		}
		parent, err := s.commentRepo.GetCommentById(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.PostID != post.ID || parent.ParentID != nil {
			return nil, ErrCommentParent
		}
		comment.ParentID = &parentID
	}

	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return toCommentDTO(comment)
}

func (s *commentServiceImpl) approvedPost(ctx context.Context, postID string) (*model.Post, error) {
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
	return post, nil
}

func toCommentDTO(c *model.Comment) (*dto.CommentDTO, error) {
	out := &dto.CommentDTO{}
	if err := util.Copy(out, c); err != nil {
		return nil, err
	}
	return out, nil
}
