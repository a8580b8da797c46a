package job

import (
	"Portfolio/internal/pkg/minio"
	"Portfolio/internal/repository"
	"context"
	log "log/slog"
	"time"
)

const orphanCleanupTimeout = 10 * time.Minute

// ObjectStore 清理任务需要的对象存储能力
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]minio.ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

// OrphanCleanupJob 删除没有数据库记录的相册对象
type OrphanCleanupJob struct {
	store       ObjectStore
	galleryRepo repository.GalleryRepo
	minAge      time.Duration
	now         func() time.Time
}

func NewOrphanCleanupJob(store ObjectStore, galleryRepo repository.GalleryRepo, minAge time.Duration) *OrphanCleanupJob {
	return &OrphanCleanupJob{
		store:       store,
		galleryRepo: galleryRepo,
		minAge:      minAge,
		now:         time.Now,
	}
}

func (s *OrphanCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), orphanCleanupTimeout)
	defer cancel()

	log.Info("start orphan cleanup job")
	count, err := s.RunOnce(ctx)
	if err != nil {
		log.Error("orphan cleanup job failed", "err", err)
		return
	}
	if count > 0 {
		log.Info("orphan cleanup job finished", "cleaned_count", count)
	}
}

// RunOnce 执行一次清理，返回删除的对象数
func (s *OrphanCleanupJob) RunOnce(ctx context.Context) (int, error) {
	objects, err := s.store.List(ctx, minio.GalleryPrefix)
	if err != nil {
		return 0, err
	}

	// 刚上传、记录尚未写入的对象不能删
	cutoff := s.now().Add(-s.minAge)
	count := 0
	for _, obj := range objects {
		if obj.LastModified.After(cutoff) {
			continue
		}

		exists, err := s.galleryRepo.KeyExists(ctx, obj.Key)
		if err != nil {
			log.Warn("check gallery record failed", "key", obj.Key, "err", err)
			continue
		}
		if exists {
			continue
		}

		if err = s.store.Delete(ctx, obj.Key); err != nil {
			log.Error("failed to delete orphan object", "key", obj.Key, "err", err)
			continue
		}
		count++
		log.Info("cleanup orphan object", "key", obj.Key, "size", obj.Size)
	}
	return count, nil
}
