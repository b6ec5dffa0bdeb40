package images

import "time"

// AssetRef is a remote asset's identity as known to the engine. It is an
// immutable snapshot taken per scan page and is never persisted locally.
type AssetRef struct {
	// PublicID is the unique key in the remote host (the object key).
	PublicID string `json:"publicId"`

	// SecureURL is the public serving URL, when a base URL is configured.
	SecureURL string `json:"secureUrl,omitempty"`

	// Format is the file format derived from the key extension.
	Format string `json:"format"`

	// Width and Height are filled from object metadata when available
	// (single-asset lookups); zero means unknown.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Bytes is the stored size.
	Bytes int64 `json:"bytes"`

	// CreatedAt is the host-side creation (last modified) timestamp.
	CreatedAt time.Time `json:"createdAt"`

	// Folder is the logical folder (key prefix) the asset lives in.
	Folder string `json:"folder"`

	// Tags are the host-side object tags, when present.
	Tags []string `json:"tags,omitempty"`
}

// ScanFilter selects one page of the remote inventory.
type ScanFilter struct {
	// Folder restricts the scan to one logical folder; empty scans everything.
	Folder string

	// PageSize is the maximum number of assets per page.
	PageSize int

	// Cursor is the opaque continuation token from the previous page.
	Cursor string
}

// ScanResult is one page of the remote inventory.
type ScanResult struct {
	Assets     []AssetRef `json:"assets"`
	NextCursor string     `json:"nextCursor,omitempty"`
	HasMore    bool       `json:"hasMore"`
}

// OrphanCandidate is an asset with zero references at detection time.
// Purely transient; cleanup re-verifies before acting.
type OrphanCandidate struct {
	Asset        AssetRef  `json:"asset"`
	DiscoveredAt time.Time `json:"discoveredAt"`
}

// OrphanPage is one page of orphan candidates.
type OrphanPage struct {
	OrphanedImages []OrphanCandidate `json:"orphanedImages"`
	NextCursor     string            `json:"nextCursor,omitempty"`
	HasMore        bool              `json:"hasMore"`
}

// ItemError is one failed item inside a batch response, detailed enough for
// an operator to retry just the failed subset.
type ItemError struct {
	PublicID string `json:"publicId"`
	Error    string `json:"error"`
}

// CleanupSummary is the outcome of one cleanup invocation.
type CleanupSummary struct {
	// Requested is the number of public ids in the request.
	Requested int `json:"requested"`

	// SafeToDelete is how many passed the pre-delete reference re-check.
	SafeToDelete int `json:"safeToDelete"`

	// ActuallyDeleted is how many deletions the host confirmed.
	ActuallyDeleted int `json:"actuallyDeleted"`

	// Skipped lists ids that turned out to be referenced at re-check time.
	Skipped []string `json:"skipped,omitempty"`

	// Errors itemizes failed deletions.
	Errors []ItemError `json:"errors"`
}

// OptimizeResult is the per-asset outcome of one optimization.
type OptimizeResult struct {
	PublicID    string `json:"publicId"`
	BytesBefore int64  `json:"bytesBefore"`
	BytesAfter  int64  `json:"bytesAfter"`
	Resized     bool   `json:"resized"`
}

// OptimizeSummary aggregates a bulk optimization run.
type OptimizeSummary struct {
	Processed  int              `json:"processed"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Results    []OptimizeResult `json:"results"`
	Errors     []ItemError      `json:"errors"`
}

// AssetDetail is a single asset's metadata plus its current references.
type AssetDetail struct {
	Asset      AssetRef `json:"asset"`
	References []string `json:"references"`
	Orphaned   bool     `json:"orphaned"`
}
