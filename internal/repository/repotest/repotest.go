// Package repotest 提供内存版仓储与对象存储，供各层测试使用
package repotest

import (
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/minio"
	"Portfolio/internal/repository"
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostRepo 内存动态仓储，Err 非空时所有调用返回该错误
type PostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]model.Post
	Err   error
}

func NewPostRepo() *PostRepo {
	return &PostRepo{posts: map[primitive.ObjectID]model.Post{}}
}

func (r *PostRepo) CreatePost(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	r.posts[post.ID] = *post
	return nil
}

func (r *PostRepo) GetPostById(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PostRepo) ListApprovedPosts(_ context.Context, skip, limit int64) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	posts := r.filter(func(p model.Post) bool { return p.Approved })
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].ID.Hex() > posts[j].ID.Hex()
	})
	return window(posts, skip, limit), nil
}

func (r *PostRepo) CountApprovedPosts(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.filter(func(p model.Post) bool { return p.Approved }))), nil
}

func (r *PostRepo) ListApprovedPostsByUser(_ context.Context, userID primitive.ObjectID, limit int64) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	posts := r.filter(func(p model.Post) bool {
		return p.Approved && p.UserID != nil && *p.UserID == userID
	})
	sortByCreatedDesc(posts)
	return window(posts, 0, limit), nil
}

func (r *PostRepo) CountApprovedPostsByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	posts := r.filter(func(p model.Post) bool {
		return p.Approved && p.UserID != nil && *p.UserID == userID
	})
	return int64(len(posts)), nil
}

func (r *PostRepo) ListAllPosts(_ context.Context) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	posts := r.filter(func(model.Post) bool { return true })
	sortByCreatedDesc(posts)
	return posts, nil
}

func (r *PostRepo) UpdatePostApproved(_ context.Context, id primitive.ObjectID, approved bool) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	p.Approved = approved
	p.UpdatedAt = time.Now()
	r.posts[id] = p
	return &p, nil
}

func (r *PostRepo) ApproveAllPending(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for id, p := range r.posts {
		if !p.Approved {
			p.Approved = true
			r.posts[id] = p
			n++
		}
	}
	return n, nil
}

func (r *PostRepo) DeletePost(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	if _, ok := r.posts[id]; !ok {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

// Len 当前记录数
func (r *PostRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.posts)
}

func (r *PostRepo) filter(keep func(model.Post) bool) []*model.Post {
	out := make([]*model.Post, 0)
	for _, p := range r.posts {
		if keep(p) {
			cp := p
			out = append(out, &cp)
		}
	}
	return out
}

func sortByCreatedDesc(posts []*model.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID.Hex() > posts[j].ID.Hex()
	})
}

func window[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return []T{}
	}
	end := int64(len(items))
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}

// GalleryRepo 内存图片仓储
type GalleryRepo struct {
	mu     sync.Mutex
	images map[primitive.ObjectID]model.GalleryImage
	Err    error
}

func NewGalleryRepo() *GalleryRepo {
	return &GalleryRepo{images: map[primitive.ObjectID]model.GalleryImage{}}
}

func (r *GalleryRepo) CreateImage(_ context.Context, img *model.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.images {
		if existing.Key == img.Key {
			return repository.ErrDuplicateKey
		}
	}
	if img.ID.IsZero() {
		img.ID = primitive.NewObjectID()
	}
	r.images[img.ID] = *img
	return nil
}

func (r *GalleryRepo) GetImageById(_ context.Context, id primitive.ObjectID) (*model.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	img, ok := r.images[id]
	if !ok {
		return nil, nil
	}
	return &img, nil
}

func (r *GalleryRepo) ListImagesByStatus(_ context.Context, status model.ImageStatus) ([]*model.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*model.GalleryImage, 0)
	for _, img := range r.images {
		if img.Status == status {
			cp := img
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadTimestamp.Equal(out[j].UploadTimestamp) {
			return out[i].UploadTimestamp.After(out[j].UploadTimestamp)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (r *GalleryRepo) UpdateImageStatus(_ context.Context, id primitive.ObjectID, status model.ImageStatus) (*model.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	img, ok := r.images[id]
	if !ok {
		return nil, nil
	}
	img.Status = status
	img.UpdatedAt = time.Now()
	r.images[id] = img
	return &img, nil
}

func (r *GalleryRepo) DeleteImage(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	if _, ok := r.images[id]; !ok {
		return false, nil
	}
	delete(r.images, id)
	return true, nil
}

func (r *GalleryRepo) KeyExists(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	for _, img := range r.images {
		if img.Key == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *GalleryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.images)
}

// CommentRepo 内存评论仓储
type CommentRepo struct {
	mu       sync.Mutex
	comments map[primitive.ObjectID]model.Comment
}

func NewCommentRepo() *CommentRepo {
	return &CommentRepo{comments: map[primitive.ObjectID]model.Comment{}}
}

func (r *CommentRepo) CreateComment(_ context.Context, c *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.comments[c.ID] = *c
	return nil
}

func (r *CommentRepo) GetCommentById(_ context.Context, id primitive.ObjectID) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CommentRepo) ListCommentsByPost(_ context.Context, postID primitive.ObjectID) ([]*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Comment, 0)
	for _, c := range r.comments {
		if c.PostID == postID {
			cp := c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

func (r *CommentRepo) DeleteCommentsByPost(_ context.Context, postID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
			n++
		}
	}
	return n, nil
}

func (r *CommentRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.comments)
}

// UserRepo 内存用户仓储
type UserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]model.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[primitive.ObjectID]model.User{}}
}

func (r *UserRepo) CreateUser(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *UserRepo) GetUserById(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := cloneUser(u)
	return &cp, nil
}

func (r *UserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := cloneUser(u)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ListUsers(_ context.Context, limit int64) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		cp := cloneUser(u)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return window(out, 0, limit), nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *UserRepo) AddFollow(_ context.Context, followerID, targetID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	follower, target := r.users[followerID], r.users[targetID]
	follower.Following = addToSet(follower.Following, targetID)
	target.Followers = addToSet(target.Followers, followerID)
	r.users[followerID], r.users[targetID] = follower, target
	return nil
}

func (r *UserRepo) RemoveFollow(_ context.Context, followerID, targetID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	follower, target := r.users[followerID], r.users[targetID]
	follower.Following = pull(follower.Following, targetID)
	target.Followers = pull(target.Followers, followerID)
	r.users[followerID], r.users[targetID] = follower, target
	return nil
}

func cloneUser(u model.User) model.User {
	u.Followers = append([]primitive.ObjectID{}, u.Followers...)
	u.Following = append([]primitive.ObjectID{}, u.Following...)
	return u
}

func addToSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

func pull(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type storedObject struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

// ObjectStore 内存对象存储，DeleteErr 非空时 Delete 失败
type ObjectStore struct {
	mu        sync.Mutex
	objects   map[string]storedObject
	DeleteErr error
}

func NewObjectStore() *ObjectStore {
	return &ObjectStore{objects: map[string]storedObject{}}
}

func (s *ObjectStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = storedObject{
		data:         append([]byte{}, data...),
		contentType:  contentType,
		lastModified: time.Now(),
	}
	return nil
}

func (s *ObjectStore) Get(_ context.Context, key string) (*minio.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, minio.ErrObjectNotFound
	}
	return &minio.Object{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
	}, nil
}

func (s *ObjectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.objects, key)
	return nil
}

func (s *ObjectStore) List(_ context.Context, prefix string) ([]minio.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]minio.ObjectInfo, 0)
	for key, obj := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, minio.ObjectInfo{Key: key, Size: int64(len(obj.data)), LastModified: obj.lastModified})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// SetLastModified 测试中调整对象时间
func (s *ObjectStore) SetLastModified(key string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if obj, ok := s.objects[key]; ok {
		obj.lastModified = t
		s.objects[key] = obj
	}
}

// Has 对象是否存在
func (s *ObjectStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// RevocationStore 内存令牌黑名单
type RevocationStore struct {
	mu   sync.Mutex
	sigs map[string]time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{sigs: map[string]time.Time{}}
}

func (s *RevocationStore) Revoke(_ context.Context, signature string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sigs[signature] = time.Now().Add(ttl)
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, signature string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.sigs[signature]
	return ok && time.Now().Before(exp), nil
}
