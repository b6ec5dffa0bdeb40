package images

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"image-admin/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReportKind selects which admin report to generate.
type ReportKind string

const (
	ReportUsage        ReportKind = "usage"
	ReportOptimization ReportKind = "optimization"
	ReportErrors       ReportKind = "errors"
	ReportSummary      ReportKind = "summary"
)

// UsageReport describes current storage consumption against the configured
// quota.
type UsageReport struct {
	ObjectCount        int64     `json:"objectCount"`
	StorageUsedBytes   int64     `json:"storageUsedBytes"`
	StorageUsedHuman   string    `json:"storageUsedHuman"`
	StorageLimitBytes  int64     `json:"storageLimitBytes"`
	StorageUsedPercent float64   `json:"storageUsedPercent"`
	GeneratedAt        time.Time `json:"generatedAt"`
}

// CategoryStat compares one folder's remote inventory with the number of
// database references into it. A large gap hints at orphan buildup.
type CategoryStat struct {
	Folder          string `json:"folder"`
	InventoryCount  int64  `json:"inventoryCount"`
	InventoryBytes  int64  `json:"inventoryBytes"`
	ReferencedCount int64  `json:"referencedCount"`
}

// SummaryReport is the combined usage and per-folder view served by the
// stats endpoint. It is the unit cached by the stats cache.
type SummaryReport struct {
	Usage      UsageReport    `json:"usage"`
	Categories []CategoryStat `json:"categories"`
}

// OptimizationReport lists the assets above the optimization threshold,
// largest first, without mutating anything.
type OptimizationReport struct {
	ThresholdBytes      int64      `json:"thresholdBytes"`
	CandidateCount      int        `json:"candidateCount"`
	CandidateBytes      int64      `json:"candidateBytes"`
	CandidateBytesHuman string     `json:"candidateBytesHuman"`
	Candidates          []AssetRef `json:"candidates"`
	GeneratedAt         time.Time  `json:"generatedAt"`
}

// ErrorsReport is a placeholder until delivery error telemetry lands.
// Failed operations already surface itemized errors in their own responses.
type ErrorsReport struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// Stats returns the cached summary report, rebuilding it when the TTL ran
// out or a mutation invalidated it.
func (s *Service) Stats(ctx context.Context) (*SummaryReport, error) {
	return s.stats.get(ctx, s.buildStats)
}

// buildStats walks the bucket and queries the reference index in parallel.
// Unlike the per-item batches, a failed collector here fails the whole
// report, so errgroup's first-error semantics fit.
func (s *Service) buildStats(ctx context.Context) (*SummaryReport, error) {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	var totalCount, totalBytes int64
	g.Go(func() error {
		count, bytes, err := s.walkInventory(gctx, "")
		if err != nil {
			return fmt.Errorf("bucket inventory: %w", err)
		}
		totalCount, totalBytes = count, bytes
		return nil
	})

	categories := make([]CategoryStat, len(s.cfg.Folders))
	for i, folder := range s.cfg.Folders {
		g.Go(func() error {
			count, bytes, err := s.walkInventory(gctx, folder)
			if err != nil {
				return fmt.Errorf("folder %s inventory: %w", folder, err)
			}
			categories[i] = CategoryStat{Folder: folder, InventoryCount: count, InventoryBytes: bytes}
			return nil
		})
	}

	var refCounts map[string]int64
	g.Go(func() error {
		counts, err := s.refs.ReferenceCounts(gctx)
		if err != nil {
			return fmt.Errorf("reference counts: %w", err)
		}
		refCounts = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range categories {
		categories[i].ReferencedCount = refCounts[categories[i].Folder]
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Folder < categories[j].Folder
	})

	report := &SummaryReport{
		Usage: UsageReport{
			ObjectCount:        totalCount,
			StorageUsedBytes:   totalBytes,
			StorageUsedHuman:   utils.HumanBytes(totalBytes),
			StorageLimitBytes:  s.cfg.StorageLimitBytes,
			StorageUsedPercent: utils.Percent(totalBytes, s.cfg.StorageLimitBytes),
			GeneratedAt:        time.Now().UTC(),
		},
		Categories: categories,
	}

	s.logger.Debug("Built storage stats",
		zap.Int64("objects", totalCount),
		zap.Int64("bytes", totalBytes),
		zap.Duration("took", time.Since(start)))

	return report, nil
}

// walkInventory pages through one folder (or the whole bucket when folder is
// empty) and totals object count and size.
func (s *Service) walkInventory(ctx context.Context, folder string) (int64, int64, error) {
	const walkPageSize = 500
	const maxWalkPages = 200

	var count, bytes int64
	cursor := ""
	for page := 0; page < maxWalkPages; page++ {
		result, err := s.scanner.ScanPage(ctx, ScanFilter{
			Folder:   folder,
			PageSize: walkPageSize,
			Cursor:   cursor,
		})
		if err != nil {
			return 0, 0, err
		}
		for _, asset := range result.Assets {
			count++
			bytes += asset.Bytes
		}
		if !result.HasMore {
			break
		}
		cursor = result.NextCursor
	}
	return count, bytes, nil
}

// GenerateReport builds the report for the given kind. The returned value
// serializes to JSON; tabular reports can also be rendered as CSV with
// WriteCSV.
func (s *Service) GenerateReport(ctx context.Context, kind ReportKind) (any, error) {
	switch kind {
	case ReportUsage:
		summary, err := s.Stats(ctx)
		if err != nil {
			return nil, err
		}
		return summary.Usage, nil

	case ReportSummary:
		return s.Stats(ctx)

	case ReportOptimization:
		return s.optimizationReport(ctx)

	case ReportErrors:
		return ErrorsReport{
			Available: false,
			Message:   "delivery error telemetry is not collected; failed operations are itemized in their own responses",
		}, nil

	default:
		return nil, invalidRequest("unknown report type: " + string(kind))
	}
}

func (s *Service) optimizationReport(ctx context.Context) (*OptimizationReport, error) {
	candidates, err := s.optimizationCandidates(ctx, "")
	if err != nil {
		return nil, err
	}

	var total int64
	for _, asset := range candidates {
		total += asset.Bytes
	}

	return &OptimizationReport{
		ThresholdBytes:      s.cfg.OptimizeThresholdBytes,
		CandidateCount:      len(candidates),
		CandidateBytes:      total,
		CandidateBytesHuman: utils.HumanBytes(total),
		Candidates:          candidates,
		GeneratedAt:         time.Now().UTC(),
	}, nil
}

// WriteCSV renders a tabular report as CSV. Only the optimization report is
// a flat asset listing; the aggregate reports are JSON-only.
func WriteCSV(w io.Writer, report any) error {
	opt, ok := report.(*OptimizationReport)
	if !ok {
		return invalidRequest("csv format is only available for the optimization report")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"public_id", "folder", "format", "bytes", "created_at"}); err != nil {
		return err
	}
	for _, asset := range opt.Candidates {
		row := []string{
			asset.PublicID,
			asset.Folder,
			asset.Format,
			strconv.FormatInt(asset.Bytes, 10),
			asset.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
