package images

import (
	"context"
	"fmt"

	"image-admin/core/batch"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Cleanup deletes the requested assets after proving each one unreferenced.
//
// The caller's earlier orphan detection is treated as a hint, never as a
// fact: the reference index is re-queried over exactly the requested ids
// immediately before deletion, closing the detect-then-delete race. The
// re-check runs strict — if any collection cannot answer, the whole cleanup
// aborts before touching the host. Ids found referenced at re-check time are
// skipped and logged; delete failures are itemized, not fatal.
func (s *Service) Cleanup(ctx context.Context, publicIDs []string, confirmed bool) (*CleanupSummary, error) {
	if !confirmed {
		return nil, invalidRequest("cleanup requires explicit confirmation (confirmDeletion: true)")
	}
	if len(publicIDs) == 0 {
		return nil, invalidRequest("publicIds must not be empty")
	}

	refs, err := s.refs.Strict().IsReferencedBatch(ctx, publicIDs)
	if err != nil {
		return nil, fmt.Errorf("pre-delete reference check: %w", err)
	}

	summary := &CleanupSummary{
		Requested: len(publicIDs),
		Errors:    []ItemError{},
	}

	safe := make([]string, 0, len(publicIDs))
	for _, id := range publicIDs {
		if refs[id] {
			summary.Skipped = append(summary.Skipped, id)
			s.logger.Warn("Skipping referenced asset",
				zap.String("public_id", id),
				zap.String("decision", "skip"),
			)
			continue
		}
		safe = append(safe, id)
	}
	summary.SafeToDelete = len(safe)

	if len(safe) == 0 {
		return summary, nil
	}

	outcomes := batch.Run(ctx, safe, s.deleteAsset, batch.Options{
		Concurrency: s.cfg.Concurrency,
		OnProgress: func(done, total int) {
			s.logger.Info("Cleanup progress", zap.Int("done", done), zap.Int("total", total))
		},
	})

	for _, outcome := range outcomes {
		if outcome.Success {
			summary.ActuallyDeleted++
			s.logger.Info("Deleted orphaned asset",
				zap.String("public_id", outcome.Item),
				zap.String("decision", "delete"),
			)
			continue
		}
		summary.Errors = append(summary.Errors, ItemError{
			PublicID: outcome.Item,
			Error:    outcome.Error,
		})
		s.logger.Error("Asset deletion failed",
			zap.String("public_id", outcome.Item),
			zap.String("error", outcome.Error),
		)
	}

	s.stats.invalidate()

	return summary, nil
}

// deleteAsset is the unit of work for one deletion. Deleting an id the host
// no longer has is reported by the host as a per-item error, which keeps
// concurrent cleanups of the same asset safe.
func (s *Service) deleteAsset(ctx context.Context, publicID string) (struct{}, error) {
	if err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return struct{}{}, fmt.Errorf("delete %s: %w", publicID, err)
	}
	return struct{}{}, nil
}
