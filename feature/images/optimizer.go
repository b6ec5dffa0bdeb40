package images

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"image-admin/core/batch"

	"github.com/disintegration/imaging"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	defaultOptimizeLimit = 10
	maxOptimizeLimit     = 50
	jpegQuality          = 80
)

// Optimize re-encodes the largest over-threshold assets in a folder under
// the configured concurrency ceiling. Candidates come from the same walk the
// optimization report uses; the transform happens in place (same public id),
// so references stay valid. Per-asset failures are itemized, never fatal.
func (s *Service) Optimize(ctx context.Context, folder string, limit int) (*OptimizeSummary, error) {
	if limit <= 0 {
		limit = defaultOptimizeLimit
	}
	if limit > maxOptimizeLimit {
		return nil, invalidRequest(fmt.Sprintf("limit must not exceed %d per invocation", maxOptimizeLimit))
	}

	candidates, err := s.optimizationCandidates(ctx, folder)
	if err != nil {
		return nil, err
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	outcomes := batch.Run(ctx, candidates, s.optimizeAsset, batch.Options{
		Concurrency: s.cfg.Concurrency,
		OnProgress: func(done, total int) {
			s.logger.Info("Optimization progress", zap.Int("done", done), zap.Int("total", total))
		},
	})

	summary := &OptimizeSummary{
		Processed: len(outcomes),
		Results:   []OptimizeResult{},
		Errors:    []ItemError{},
	}
	for _, outcome := range outcomes {
		if outcome.Success {
			summary.Successful++
			summary.Results = append(summary.Results, outcome.Result)
			continue
		}
		summary.Failed++
		summary.Errors = append(summary.Errors, ItemError{
			PublicID: outcome.Item.PublicID,
			Error:    outcome.Error,
		})
	}

	if summary.Processed > 0 {
		s.stats.invalidate()
	}

	return summary, nil
}

// optimizationCandidates walks the folder's full inventory and returns the
// assets above the size threshold, largest first.
func (s *Service) optimizationCandidates(ctx context.Context, folder string) ([]AssetRef, error) {
	// The walk is bounded: admin buckets hold thousands of assets, not
	// millions, and each page is one listing call.
	const walkPageSize = 200
	const maxWalkPages = 50

	var candidates []AssetRef
	cursor := ""
	for page := 0; page < maxWalkPages; page++ {
		result, err := s.scanner.ScanPage(ctx, ScanFilter{
			Folder:   folder,
			PageSize: walkPageSize,
			Cursor:   cursor,
		})
		if err != nil {
			return nil, err
		}
		for _, asset := range result.Assets {
			if asset.Bytes >= s.cfg.OptimizeThresholdBytes {
				candidates = append(candidates, asset)
			}
		}
		if !result.HasMore {
			break
		}
		cursor = result.NextCursor
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Bytes > candidates[j].Bytes
	})
	return candidates, nil
}

// optimizeAsset is the unit of work for one transformation: download,
// decode, bound the longest edge, re-encode as JPEG, upload in place.
// If re-encoding does not shrink the asset, the original is kept.
func (s *Service) optimizeAsset(ctx context.Context, ref AssetRef) (OptimizeResult, error) {
	result := OptimizeResult{PublicID: ref.PublicID, BytesBefore: ref.Bytes, BytesAfter: ref.Bytes}

	reader, err := s.client.GetObject(ctx, s.bucket, ref.PublicID, minio.GetObjectOptions{})
	if err != nil {
		return result, fmt.Errorf("download %s: %w", ref.PublicID, err)
	}
	defer reader.Close()

	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return result, fmt.Errorf("decode %s: %w", ref.PublicID, err)
	}

	bounds := img.Bounds()
	maxEdge := s.cfg.OptimizeMaxEdge
	if maxEdge > 0 && (bounds.Dx() > maxEdge || bounds.Dy() > maxEdge) {
		img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
		result.Resized = true
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return result, fmt.Errorf("encode %s: %w", ref.PublicID, err)
	}

	encoded := int64(buf.Len())
	if encoded >= ref.Bytes {
		// Already smaller than our re-encode; leave the original untouched.
		s.logger.Debug("Skipping upload, re-encode did not shrink asset",
			zap.String("public_id", ref.PublicID),
			zap.Int64("original_bytes", ref.Bytes),
			zap.Int64("encoded_bytes", encoded),
		)
		return result, nil
	}

	_, err = s.client.PutObject(ctx, s.bucket, ref.PublicID, &buf, encoded, minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return result, fmt.Errorf("upload %s: %w", ref.PublicID, err)
	}

	result.BytesAfter = encoded
	s.logger.Info("Optimized asset",
		zap.String("public_id", ref.PublicID),
		zap.Int64("bytes_before", result.BytesBefore),
		zap.Int64("bytes_after", result.BytesAfter),
		zap.Bool("resized", result.Resized),
	)
	return result, nil
}
