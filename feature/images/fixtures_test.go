package images_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"

	"image-admin/core/database"
	"image-admin/feature/images"
	"image-admin/feature/images/models"
	"image-admin/feature/images/refindex"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeStore is an in-memory storage.Client. Unlike a call-by-call mock it
// honors listing semantics (prefix filter, StartAfter, key order), which the
// scanner's pagination depends on.
type fakeStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	listErr   error
	removeErr map[string]error
	removed   []string
	putCount  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:   make(map[string][]byte),
		removeErr: make(map[string]error),
	}
}

func (f *fakeStore) put(key string, size int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = bytes.Repeat([]byte{0xAB}, size)
}

func (f *fakeStore) putBytes(key string, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = payload
}

func (f *fakeStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

func (f *fakeStore) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return true, nil
}

func (f *fakeStore) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return nil
}

func (f *fakeStore) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	payload, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectName] = payload
	f.putCount++
	return minio.UploadInfo{Key: objectName, Size: int64(len(payload))}, nil
}

func (f *fakeStore) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.objects[objectName]
	if !ok {
		return nil, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	}
	return io.NopCloser(bytes.NewReader(payload)), nil
}

func (f *fakeStore) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.objects[objectName]
	if !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	}
	return minio.ObjectInfo{Key: objectName, Size: int64(len(payload))}, nil
}

func (f *fakeStore) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	f.mu.Lock()
	keys := make([]string, 0, len(f.objects))
	for key := range f.objects {
		keys = append(keys, key)
	}
	sizes := make(map[string]int64, len(f.objects))
	for key, payload := range f.objects {
		sizes[key] = int64(len(payload))
	}
	listErr := f.listErr
	f.mu.Unlock()
	sort.Strings(keys)

	ch := make(chan minio.ObjectInfo)
	go func() {
		defer close(ch)
		if listErr != nil {
			select {
			case ch <- minio.ObjectInfo{Err: listErr}:
			case <-ctx.Done():
			}
			return
		}
		for _, key := range keys {
			if opts.Prefix != "" && !strings.HasPrefix(key, opts.Prefix) {
				continue
			}
			if opts.StartAfter != "" && key <= opts.StartAfter {
				continue
			}
			select {
			case ch <- minio.ObjectInfo{Key: key, Size: sizes[key]}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (f *fakeStore) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.removeErr[objectName]; err != nil {
		return err
	}
	delete(f.objects, objectName)
	f.removed = append(f.removed, objectName)
	return nil
}

func (f *fakeStore) RemoveObjects(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError {
	ch := make(chan minio.RemoveObjectError)
	close(ch)
	return ch
}

// setupRefDB builds an in-memory database seeded with one referenced image
// per collection:
//
//	restaurants: logo restaurants/logo-1, banner restaurants/banner-1,
//	             gallery restaurants/gallery-1
//	menus:       menus/card-1
//	menu_items:  menu-items/dish-1
//	profiles:    avatars/ava-1
func setupRefDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(models.All()...))

	require.NoError(t, db.Create(&models.Restaurant{
		Name:           "Trattoria Uno",
		LogoPublicID:   "restaurants/logo-1",
		BannerPublicID: "restaurants/banner-1",
		Gallery:        `[{"publicId":"restaurants/gallery-1","url":"https://cdn.example.com/restaurants/gallery-1"}]`,
	}).Error)
	require.NoError(t, db.Create(&models.Menu{RestaurantID: 1, Name: "Dinner", ImagePublicID: "menus/card-1"}).Error)
	require.NoError(t, db.Create(&models.MenuItem{MenuID: 1, Name: "Carbonara", Price: 14.5, ImagePublicID: "menu-items/dish-1"}).Error)
	require.NoError(t, db.Create(&models.Profile{Email: "owner@example.com", AvatarPublicID: "avatars/ava-1"}).Error)

	return db
}

func testConfig() images.Config {
	return images.Config{
		Folders:                []string{"restaurants", "menus", "menu-items", "avatars"},
		OptimizeThresholdBytes: 1024,
		OptimizeMaxEdge:        1600,
		Concurrency:            2,
		StatsCacheTTLSeconds:   300,
		StorageLimitBytes:      1 << 20,
	}
}

// newTestService wires a service over the fake store and the seeded database.
func newTestService(t *testing.T, store *fakeStore) *images.Service {
	t.Helper()

	db := setupRefDB(t)
	refs := refindex.New(zap.NewNop(), false, refindex.DefaultCheckers(db)...)
	return images.NewService(store, "images", "https://cdn.example.com", zap.NewNop(), refs, testConfig())
}
