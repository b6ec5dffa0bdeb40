package utils

import (
	"fmt"
	"strconv"
)

// HumanBytes formats a byte count as a short human-readable string (e.g. "1.2 MiB").
func HumanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Percent returns used as a percentage of limit, rounded to one decimal.
// A non-positive limit yields 0 rather than a division error.
func Percent(used, limit int64) float64 {
	if limit <= 0 {
		return 0
	}
	return float64(int64(float64(used)/float64(limit)*1000)) / 10
}

// ToInt64 coerces loosely typed numeric values (as produced by JSON decoding
// or metadata maps) into an int64. Unparseable values yield 0.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int64(f)
		}
		return 0
	case []byte:
		return ToInt64(string(v))
	default:
		return 0
	}
}
