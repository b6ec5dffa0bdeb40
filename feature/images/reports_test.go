package images_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"image-admin/feature/images"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	store := newFakeStore()
	store.put("restaurants/logo-1", 100)
	store.put("menus/card-1", 200)
	store.put("menus/stale-1", 300)
	store.put("avatars/ava-1", 50)
	// Lives outside every configured folder; counts toward usage only.
	store.put("misc/banner.psd", 25)

	svc := newTestService(t, store)

	report, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), report.Usage.ObjectCount)
	assert.Equal(t, int64(675), report.Usage.StorageUsedBytes)
	assert.Equal(t, int64(1<<20), report.Usage.StorageLimitBytes)
	assert.Greater(t, report.Usage.StorageUsedPercent, 0.0)
	assert.NotEmpty(t, report.Usage.StorageUsedHuman)

	require.Len(t, report.Categories, 4)
	byFolder := make(map[string]images.CategoryStat, len(report.Categories))
	for _, cat := range report.Categories {
		byFolder[cat.Folder] = cat
	}

	assert.Equal(t, int64(2), byFolder["menus"].InventoryCount)
	assert.Equal(t, int64(500), byFolder["menus"].InventoryBytes)
	assert.Equal(t, int64(1), byFolder["menus"].ReferencedCount)

	assert.Equal(t, int64(1), byFolder["restaurants"].InventoryCount)
	// Seeded logo, banner and one gallery entry.
	assert.Equal(t, int64(3), byFolder["restaurants"].ReferencedCount)

	assert.Equal(t, int64(1), byFolder["avatars"].InventoryCount)
	assert.Equal(t, int64(1), byFolder["avatars"].ReferencedCount)

	assert.Equal(t, int64(0), byFolder["menu-items"].InventoryCount)
	assert.Equal(t, int64(1), byFolder["menu-items"].ReferencedCount)
}

func TestStatsCacheInvalidation(t *testing.T) {
	store := newFakeStore()
	store.put("menus/stale-1", 100)

	svc := newTestService(t, store)
	ctx := context.Background()

	first, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Usage.ObjectCount)

	// Within the TTL the cached report is served as-is.
	store.put("menus/stale-2", 100)
	cached, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.Usage.ObjectCount)

	// A mutation through the service invalidates the cache.
	_, err = svc.Cleanup(ctx, []string{"menus/stale-1"}, true)
	require.NoError(t, err)

	fresh, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh.Usage.ObjectCount)
	assert.NotEqual(t, first.Usage.GeneratedAt, fresh.Usage.GeneratedAt)
}

func TestGenerateReportKinds(t *testing.T) {
	store := newFakeStore()
	store.put("menus/hero.png", 4096) // over the 1 KiB test threshold
	store.put("menus/tiny.jpg", 100)

	svc := newTestService(t, store)
	ctx := context.Background()

	report, err := svc.GenerateReport(ctx, images.ReportOptimization)
	require.NoError(t, err)
	opt, ok := report.(*images.OptimizationReport)
	require.True(t, ok)
	assert.Equal(t, int64(1024), opt.ThresholdBytes)
	require.Len(t, opt.Candidates, 1)
	assert.Equal(t, "menus/hero.png", opt.Candidates[0].PublicID)
	assert.Equal(t, int64(4096), opt.CandidateBytes)

	report, err = svc.GenerateReport(ctx, images.ReportUsage)
	require.NoError(t, err)
	usage, ok := report.(images.UsageReport)
	require.True(t, ok)
	assert.Equal(t, int64(2), usage.ObjectCount)

	report, err = svc.GenerateReport(ctx, images.ReportErrors)
	require.NoError(t, err)
	errs, ok := report.(images.ErrorsReport)
	require.True(t, ok)
	assert.False(t, errs.Available)

	_, err = svc.GenerateReport(ctx, images.ReportKind("bogus"))
	require.Error(t, err)
	var invalid *images.InvalidRequestError
	assert.ErrorAs(t, err, &invalid)
}

func TestWriteCSV(t *testing.T) {
	store := newFakeStore()
	store.put("menus/hero.png", 4096)
	store.put("menus/side.png", 2048)

	svc := newTestService(t, store)

	report, err := svc.GenerateReport(context.Background(), images.ReportOptimization)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, images.WriteCSV(&buf, report))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "public_id,folder,format,bytes,created_at", lines[0])
	// Largest candidate first.
	assert.True(t, strings.HasPrefix(lines[1], "menus/hero.png,"))
	assert.True(t, strings.HasPrefix(lines[2], "menus/side.png,"))
}

func TestWriteCSVRejectsAggregateReports(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	report, err := svc.Stats(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	err = images.WriteCSV(&buf, report)
	require.Error(t, err)

	var invalid *images.InvalidRequestError
	assert.ErrorAs(t, err, &invalid)
}
