package images

import "time"

// Config holds configuration for the image administration engine.
type Config struct {
	// Folders are the logical asset folders scanned for stats and cleanup.
	Folders []string `mapstructure:"folders" default:"restaurants,menus,menu-items,avatars"`
	// OptimizeThresholdBytes is the size floor above which an asset becomes
	// an optimization candidate.
	OptimizeThresholdBytes int64 `mapstructure:"optimize_threshold_bytes" default:"1048576"`
	// OptimizeMaxEdge is the longest allowed edge (in pixels) after optimization.
	OptimizeMaxEdge int `mapstructure:"optimize_max_edge" default:"1600"`
	// Concurrency is the ceiling for batch delete/transform operations.
	Concurrency int `mapstructure:"concurrency" default:"5"`
	// StatsCacheTTLSeconds is how long usage/category stats are cached.
	StatsCacheTTLSeconds int `mapstructure:"stats_cache_ttl_seconds" default:"300"`
	// StorageLimitBytes is the operator-set storage quota used for
	// percentage-of-limit reporting (the host itself has no quota API).
	StorageLimitBytes int64 `mapstructure:"storage_limit_bytes" default:"26843545600"`
	// StrictChecks makes detection reads surface reference-checker errors
	// instead of assuming referenced. Cleanup always runs strict.
	StrictChecks bool `mapstructure:"strict_checks" default:"false"`
}

// StatsCacheTTL returns the cache TTL as a duration.
func (c Config) StatsCacheTTL() time.Duration {
	return time.Duration(c.StatsCacheTTLSeconds) * time.Second
}
