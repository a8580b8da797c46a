package service

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/pkg/security"
	"Portfolio/internal/pkg/util"
	"Portfolio/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

type UserService interface {
	EnsureAdmin(ctx context.Context, name, password string) error
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, userID string) (*dto.UserDTO, error)
	UpdateUserInfo(ctx context.Context, userID string, req *dto.UpdateProfileDTO) (*dto.UserDTO, error)
	ListUsers(ctx context.Context) ([]*dto.UserDTO, error)
	GetProfile(ctx context.Context, viewerID, userID string) (*dto.ProfileDTO, error)
	Follow(ctx context.Context, followerID, targetID string) error
	Unfollow(ctx context.Context, followerID, targetID string) error
}

type UserServiceImpl struct {
	userRepo   repository.UserRepo
	postRepo   repository.PostRepo
	tokens     *security.TokenManager
	adminEmail string
	now        func() time.Time
}

func NewUserService(userRepo repository.UserRepo, postRepo repository.PostRepo, tokens *security.TokenManager, adminEmail string) UserService {
	return &UserServiceImpl{
		userRepo:   userRepo,
		postRepo:   postRepo,
		tokens:     tokens,
		adminEmail: normalizeEmail(adminEmail),
		now:        time.Now,
	}
}

// EnsureAdmin 启动时按配置创建管理员账号，已存在则跳过
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, name, password string) error {
	if s.adminEmail == "" {
		log.WarnContext(ctx, "admin account not configured")
		return nil
	}
	if password == "" {
		return ErrAdminPasswordMissing
	}
	exist, err := s.userRepo.GetUserByEmail(ctx, s.adminEmail)
	if err != nil {
		return err
	}
	if exist != nil {
		return nil
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	user := s.newUser(name, s.adminEmail, hash)
	user.Verified = true
	if err = s.userRepo.CreateUser(ctx, user); err != nil && !errors.Is(err, repository.ErrDuplicateKey) {
		return err
	}
	log.InfoContext(ctx, "admin account created", "email", s.adminEmail)
	return nil
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error) {
	clean := &dto.RegisterDTO{
		Name:     util.SanitizeText(req.Name),
		Email:    normalizeEmail(req.Email),
		Password: req.Password,
	}
	if err := util.ValidateDTO(clean); err != nil {
		return nil, paramError(err)
	}
	// 管理员账号只能由启动流程创建
	if s.isAdminEmail(clean.Email) {
		return nil, ErrUserExist
	}

	exist, err := s.userRepo.GetUserByEmail(ctx, clean.Email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUserExist
	}

	hash, err := security.HashPassword(clean.Password)
	if err != nil {
		return nil, err
	}
	user := s.newUser(clean.Name, clean.Email, hash)
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExist
		}
		return nil, err
	}
	return toUserDTO(user, true)
}

// Login 校验密码并签发会话令牌
func (s *UserServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, paramError(err)
	}

	email := normalizeEmail(req.Email)
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err = security.CheckPasswordHash(req.Password, user.Password); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	roles := s.rolesFor(user.Email)
	token, expiresAt, err := s.tokens.GenerateToken(user.ID.Hex(), user.Email, user.Name, roles)
	if err != nil {
		return nil, err
	}
	out, err := toUserDTO(user, true)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResultDTO{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      out,
		Roles:     roles,
	}, nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	if err := s.tokens.RevokeToken(ctx, token); err != nil {
		if errors.Is(err, security.ErrTokenInvalid) {
			return UnauthorizedError
		}
		return err
	}
	return nil
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, userID string) (*dto.UserDTO, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user, true)
}

// UpdateUserInfo 只更新请求中出现的字段
func (s *UserServiceImpl) UpdateUserInfo(ctx context.Context, userID string, req *dto.UpdateProfileDTO) (*dto.UserDTO, error) {
	clean := &dto.UpdateProfileDTO{
		Name:       sanitizePtr(req.Name),
		Avatar:     trimPtr(req.Avatar),
		CoverImage: trimPtr(req.CoverImage),
		About:      sanitizePtr(req.About),
		Location:   sanitizePtr(req.Location),
		Website:    trimPtr(req.Website),
		Role:       sanitizePtr(req.Role),
	}
	if clean.Name != nil && *clean.Name == "" {
		return nil, &ParamError{Msg: "name is required"}
	}
	if err := util.ValidateDTO(clean); err != nil {
		return nil, paramError(err)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	applyString(&user.Name, clean.Name)
	applyString(&user.Avatar, clean.Avatar)
	applyString(&user.CoverImage, clean.CoverImage)
	applyString(&user.About, clean.About)
	applyString(&user.Location, clean.Location)
	applyString(&user.Website, clean.Website)
	applyString(&user.Role, clean.Role)
	user.UpdatedAt = s.now().UTC()

	if err = s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserDTO(user, true)
}

// ListUsers 最新注册的用户，不返回邮箱
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*dto.UserDTO, error) {
	users, err := s.userRepo.ListUsers(ctx, consts.UserListLimit)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		item, err := toUserDTO(u, false)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// GetProfile 用户主页：资料、统计与最近的已审核动态
func (s *UserServiceImpl) GetProfile(ctx context.Context, viewerID, userID string) (*dto.ProfileDTO, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var posts []*model.Post
	var postCount int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.postRepo.ListApprovedPostsByUser(gctx, id, consts.ProfilePostLimit)
		return err
	})
	g.Go(func() error {
		var err error
		postCount, err = s.postRepo.CountApprovedPostsByUser(gctx, id)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	userDTO, err := toUserDTO(user, true)
	if err != nil {
		return nil, err
	}
	postDTOs, err := toPostDTOs(posts)
	if err != nil {
		return nil, err
	}

	profile := &dto.ProfileDTO{
		User: userDTO,
		Stats: dto.ProfileStatsDTO{
			Followers: len(user.Followers),
			Following: len(user.Following),
			Posts:     postCount,
		},
		Posts: postDTOs,
	}
	if viewer, ok := optionalObjectID(viewerID); ok {
		profile.IsOwnProfile = viewer == id
		for _, f := range user.Followers {
			if f == viewer {
				profile.IsFollowing = true
				break
			}
		}
	}
	return profile, nil
}

func (s *UserServiceImpl) Follow(ctx context.Context, followerID, targetID string) error {
	follower, target, err := s.followPair(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	return s.userRepo.AddFollow(ctx, follower, target)
}

func (s *UserServiceImpl) Unfollow(ctx context.Context, followerID, targetID string) error {
	follower, target, err := s.followPair(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	return s.userRepo.RemoveFollow(ctx, follower, target)
}

func (s *UserServiceImpl) followPair(ctx context.Context, followerID, targetID string) (primitive.ObjectID, primitive.ObjectID, error) {
	follower, ok := optionalObjectID(followerID)
	if !ok {
		return follower, primitive.NilObjectID, UnauthorizedError
	}
	target, err := parseObjectID(targetID)
	if err != nil {
		return follower, target, err
	}
	if follower == target {
		return follower, target, ErrUserFollowSelf
	}

	for _, id := range []primitive.ObjectID{follower, target} {
		user, err := s.userRepo.GetUserById(ctx, id)
		if err != nil {
			return follower, target, err
		}
		if user == nil {
			return follower, target, ErrUserNotFound
		}
	}
	return follower, target, nil
}

func (s *UserServiceImpl) getUser(ctx context.Context, userID string) (*model.User, error) {
	id, ok := optionalObjectID(userID)
	if !ok {
		return nil, UnauthorizedError
	}
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserServiceImpl) rolesFor(email string) []string {
	roles := []string{consts.RoleUser}
	if s.isAdminEmail(email) {
		roles = append(roles, consts.RoleAdmin)
	}
	return roles
}

func (s *UserServiceImpl) isAdminEmail(email string) bool {
	return s.adminEmail != "" && normalizeEmail(email) == s.adminEmail
}

func (s *UserServiceImpl) newUser(name, email, passwordHash string) *model.User {
	now := s.now().UTC()
	return &model.User{
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		Avatar:    model.DefaultAvatar,
		Role:      model.DefaultProfileRole,
		Followers: []primitive.ObjectID{},
		Following: []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func toUserDTO(user *model.User, withEmail bool) (*dto.UserDTO, error) {
	out := &dto.UserDTO{}
	if err := util.Copy(out, user); err != nil {
		return nil, err
	}
	if !withEmail {
		out.Email = ""
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	return util.PtrString(util.SanitizeText(*s))
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return util.PtrString(strings.TrimSpace(*s))
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
