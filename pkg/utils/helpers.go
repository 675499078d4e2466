package utils

import (
	"fmt"
	"strconv"
	"time"
)

// ParseU64 converts a decimal string to a uint64. Move u64 values arrive from
// the indexer API as JSON strings to avoid precision loss in clients.
func ParseU64(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid u64 %q: %w", s, err)
	}
	return v, nil
}

// ParseUnixSecs converts a decimal unix-seconds string to a UTC time.
func ParseUnixSecs(s string) (time.Time, error) {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid unix timestamp %q: %w", s, err)
	}
	return time.Unix(secs, 0).UTC(), nil
}
