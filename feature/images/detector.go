package images

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// FindOrphans returns one page of assets with zero references.
//
// It composes one scanner page with one batched reference check and nothing
// more: exhaustive scans are the caller's responsibility via repeated
// cursor-following requests, which bounds memory and request latency.
// Candidates are never persisted; cleanup re-verifies before deleting, so a
// reference appearing after this snapshot is still honored.
func (s *Service) FindOrphans(ctx context.Context, filter ScanFilter) (*OrphanPage, error) {
	index := s.refs
	if s.cfg.StrictChecks {
		index = s.refs.Strict()
	}

	page, err := s.scanner.ScanPage(ctx, filter)
	if err != nil {
		return nil, err
	}

	publicIDs := make([]string, len(page.Assets))
	for i, asset := range page.Assets {
		publicIDs[i] = asset.PublicID
	}

	refs, err := index.IsReferencedBatch(ctx, publicIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &OrphanPage{
		OrphanedImages: []OrphanCandidate{},
		NextCursor:     page.NextCursor,
		HasMore:        page.HasMore,
	}
	for _, asset := range page.Assets {
		if refs[asset.PublicID] {
			continue
		}
		result.OrphanedImages = append(result.OrphanedImages, OrphanCandidate{
			Asset:        asset,
			DiscoveredAt: now,
		})
	}

	s.logger.Debug("Orphan detection page complete",
		zap.String("folder", filter.Folder),
		zap.Int("scanned", len(page.Assets)),
		zap.Int("orphaned", len(result.OrphanedImages)),
		zap.Bool("has_more", result.HasMore),
	)

	return result, nil
}
