package job

import (
	"Portfolio/internal/model"
	"Portfolio/internal/repository/repotest"
	"context"
	"testing"
	"time"
)

func TestOrphanCleanupJob_RunOnce(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewObjectStore()
	images := repotest.NewGalleryRepo()
	old := time.Now().Add(-48 * time.Hour)

	for _, key := range []string{"gallery/1-a-kept.png", "gallery/2-b-orphan.png", "gallery/3-c-fresh.png", "other/4-d.png"} {
		if err := store.Put(ctx, key, []byte("x"), "image/png"); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	store.SetLastModified("gallery/1-a-kept.png", old)
	store.SetLastModified("gallery/2-b-orphan.png", old)
	store.SetLastModified("other/4-d.png", old)

	if err := images.CreateImage(ctx, &model.GalleryImage{Key: "gallery/1-a-kept.png", Status: model.ImageStatusPending}); err != nil {
		t.Fatalf("create image: %v", err)
	}

	j := NewOrphanCleanupJob(store, images, 24*time.Hour)
	count, err := j.RunOnce(ctx)
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 deletion, got %d", count)
	}

	want := map[string]bool{
		"gallery/1-a-kept.png":   true,
		"gallery/2-b-orphan.png": false,
		"gallery/3-c-fresh.png":  true,
		"other/4-d.png":          true,
	}
	for key, present := range want {
		if store.Has(key) != present {
			t.Errorf("%s: expected present=%v", key, present)
		}
	}
	if images.Len() != 1 {
		t.Errorf("job must not touch records, have %d", images.Len())
	}
}
