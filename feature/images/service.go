package images

import (
	"context"

	"image-admin/core/storage"
	"image-admin/feature/images/refindex"

	"go.uber.org/zap"
)

// Service orchestrates the image administration engine: orphan detection,
// confirmation-gated cleanup, bulk optimization, and reporting.
//
// The service is stateless between invocations; the only durable state it
// touches is the reference columns of the business collections (read-only)
// and the remote host's catalog (mutated only through delete and transform).
type Service struct {
	client  storage.Client
	bucket  string
	logger  *zap.Logger
	refs    *refindex.Index
	scanner *Scanner
	cfg     Config
	stats   *statsCache
}

// NewService creates a new image administration service.
func NewService(client storage.Client, bucket, baseURL string, logger *zap.Logger, refs *refindex.Index, cfg Config) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		logger:  logger,
		refs:    refs,
		scanner: NewScanner(client, bucket, baseURL),
		cfg:     cfg,
		stats:   newStatsCache(cfg.StatsCacheTTL()),
	}
}

// AssetDetail returns one asset's metadata plus the entity types that
// currently reference it.
func (s *Service) AssetDetail(ctx context.Context, publicID string) (*AssetDetail, error) {
	asset, err := s.scanner.Stat(ctx, publicID)
	if err != nil {
		return nil, err
	}

	references, err := s.refs.References(ctx, publicID)
	if err != nil {
		return nil, err
	}

	return &AssetDetail{
		Asset:      *asset,
		References: references,
		Orphaned:   len(references) == 0,
	}, nil
}
