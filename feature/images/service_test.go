package images_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"image-admin/feature/images"
	"image-admin/feature/images/refindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFindOrphans(t *testing.T) {
	store := newFakeStore()
	store.put("menus/card-1", 100) // referenced by the seeded menu
	store.put("menus/stale-1", 100)
	store.put("menus/stale-2", 100)

	svc := newTestService(t, store)

	page, err := svc.FindOrphans(context.Background(), images.ScanFilter{Folder: "menus"})
	require.NoError(t, err)

	require.Len(t, page.OrphanedImages, 2)
	assert.Equal(t, "menus/stale-1", page.OrphanedImages[0].Asset.PublicID)
	assert.Equal(t, "menus/stale-2", page.OrphanedImages[1].Asset.PublicID)
	assert.False(t, page.OrphanedImages[0].DiscoveredAt.IsZero())
	assert.False(t, page.HasMore)

	// Nothing changed, so re-scanning the same page yields the same set.
	again, err := svc.FindOrphans(context.Background(), images.ScanFilter{Folder: "menus"})
	require.NoError(t, err)
	require.Len(t, again.OrphanedImages, 2)
	assert.Equal(t, page.OrphanedImages[0].Asset.PublicID, again.OrphanedImages[0].Asset.PublicID)
	assert.Equal(t, page.OrphanedImages[1].Asset.PublicID, again.OrphanedImages[1].Asset.PublicID)
}

func TestFindOrphansGalleryReference(t *testing.T) {
	store := newFakeStore()
	store.put("restaurants/gallery-1", 100) // referenced via the gallery JSON column
	store.put("restaurants/stale-1", 100)

	svc := newTestService(t, store)

	page, err := svc.FindOrphans(context.Background(), images.ScanFilter{Folder: "restaurants"})
	require.NoError(t, err)

	require.Len(t, page.OrphanedImages, 1)
	assert.Equal(t, "restaurants/stale-1", page.OrphanedImages[0].Asset.PublicID)
}

func TestFindOrphansEmptyFolder(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	page, err := svc.FindOrphans(context.Background(), images.ScanFilter{Folder: "menus"})
	require.NoError(t, err)
	assert.NotNil(t, page.OrphanedImages)
	assert.Empty(t, page.OrphanedImages)
	assert.False(t, page.HasMore)
}

func TestCleanupRequiresConfirmation(t *testing.T) {
	store := newFakeStore()
	store.put("menus/stale-1", 100)
	svc := newTestService(t, store)

	_, err := svc.Cleanup(context.Background(), []string{"menus/stale-1"}, false)
	require.Error(t, err)

	var invalid *images.InvalidRequestError
	assert.ErrorAs(t, err, &invalid)
	assert.Empty(t, store.removed, "nothing may be deleted without confirmation")
	assert.True(t, store.has("menus/stale-1"))
}

func TestCleanupRejectsEmptyList(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	_, err := svc.Cleanup(context.Background(), nil, true)
	require.Error(t, err)

	var invalid *images.InvalidRequestError
	assert.ErrorAs(t, err, &invalid)
}

func TestCleanupSkipsReferenced(t *testing.T) {
	store := newFakeStore()
	store.put("menus/card-1", 100)
	store.put("menus/stale-1", 100)
	store.put("menus/stale-2", 100)

	svc := newTestService(t, store)

	// menus/card-1 is referenced by the seeded menu. A stale detection
	// result that still includes it must not get it deleted.
	summary, err := svc.Cleanup(context.Background(),
		[]string{"menus/card-1", "menus/stale-1", "menus/stale-2"}, true)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Requested)
	assert.Equal(t, 2, summary.SafeToDelete)
	assert.Equal(t, 2, summary.ActuallyDeleted)
	assert.Equal(t, []string{"menus/card-1"}, summary.Skipped)
	assert.Empty(t, summary.Errors)

	assert.True(t, store.has("menus/card-1"))
	assert.False(t, store.has("menus/stale-1"))
	assert.False(t, store.has("menus/stale-2"))
}

func TestCleanupItemizesDeleteFailures(t *testing.T) {
	store := newFakeStore()
	store.put("menus/stale-1", 100)
	store.put("menus/stale-2", 100)
	store.removeErr["menus/stale-2"] = errors.New("access denied")

	svc := newTestService(t, store)

	summary, err := svc.Cleanup(context.Background(), []string{"menus/stale-1", "menus/stale-2"}, true)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SafeToDelete)
	assert.Equal(t, 1, summary.ActuallyDeleted)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "menus/stale-2", summary.Errors[0].PublicID)
	assert.Contains(t, summary.Errors[0].Error, "access denied")
}

func TestCleanupAbortsWhenRecheckFails(t *testing.T) {
	store := newFakeStore()
	store.put("menus/stale-1", 100)

	db := setupRefDB(t)
	// Breaking one collection must fail the whole cleanup: the pre-delete
	// re-check runs strict, never fail-safe.
	require.NoError(t, db.Migrator().DropTable("menus"))

	refs := refindex.New(zap.NewNop(), false, refindex.DefaultCheckers(db)...)
	svc := images.NewService(store, "images", "", zap.NewNop(), refs, testConfig())

	_, err := svc.Cleanup(context.Background(), []string{"menus/stale-1"}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference check")
	assert.Empty(t, store.removed, "a failed re-check must abort before any delete")
	assert.True(t, store.has("menus/stale-1"))
}

func TestCleanupIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.put("menus/stale-1", 100)

	svc := newTestService(t, store)

	first, err := svc.Cleanup(context.Background(), []string{"menus/stale-1"}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ActuallyDeleted)

	// The fake treats deleting an absent key as success, matching S3
	// delete semantics, so a retry converges instead of failing.
	second, err := svc.Cleanup(context.Background(), []string{"menus/stale-1"}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, second.SafeToDelete)
	assert.Empty(t, second.Errors)
}

func TestAssetDetail(t *testing.T) {
	store := newFakeStore()
	store.put("menus/card-1", 100)
	store.put("menus/stale-1", 100)

	svc := newTestService(t, store)
	ctx := context.Background()

	detail, err := svc.AssetDetail(ctx, "menus/card-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"menu"}, detail.References)
	assert.False(t, detail.Orphaned)

	detail, err = svc.AssetDetail(ctx, "menus/stale-1")
	require.NoError(t, err)
	assert.Empty(t, detail.References)
	assert.True(t, detail.Orphaned)

	_, err = svc.AssetDetail(ctx, "menus/no-such-asset")
	assert.ErrorIs(t, err, images.ErrAssetNotFound)
}

// noisePNG renders incompressible pixels so the PNG payload is reliably
// larger than its JPEG re-encode.
func noisePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOptimize(t *testing.T) {
	store := newFakeStore()
	payload := noisePNG(t, 1800, 600)
	store.putBytes("menus/hero.png", payload)
	store.put("menus/tiny.jpg", 100) // below the 1 KiB test threshold

	svc := newTestService(t, store)

	summary, err := svc.Optimize(context.Background(), "menus", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, summary.Results, 1)

	result := summary.Results[0]
	assert.Equal(t, "menus/hero.png", result.PublicID)
	assert.Equal(t, int64(len(payload)), result.BytesBefore)
	assert.Less(t, result.BytesAfter, result.BytesBefore)
	assert.True(t, result.Resized, "1800px exceeds the 1600px edge bound")

	store.mu.Lock()
	stored := len(store.objects["menus/hero.png"])
	uploads := store.putCount
	store.mu.Unlock()
	assert.Equal(t, int64(stored), result.BytesAfter, "optimized payload replaces the original in place")
	assert.Equal(t, 1, uploads, "only the over-threshold asset gets re-uploaded")
}

func TestOptimizeRejectsOversizedLimit(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	_, err := svc.Optimize(context.Background(), "menus", 51)
	require.Error(t, err)

	var invalid *images.InvalidRequestError
	assert.ErrorAs(t, err, &invalid)
}

func TestOptimizeSkipsUndecodableAsset(t *testing.T) {
	store := newFakeStore()
	store.put("menus/not-an-image.png", 4096) // over threshold, not decodable

	svc := newTestService(t, store)

	summary, err := svc.Optimize(context.Background(), "menus", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "menus/not-an-image.png", summary.Errors[0].PublicID)
	assert.True(t, store.has("menus/not-an-image.png"), "failed optimization leaves the asset untouched")
}
