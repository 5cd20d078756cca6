package utils

import (
	"net/url"
	"strings"

	"github.com/docker/go-units"
)

// IsURL reports whether s should be fetched over HTTP rather than read from
// disk. Only absolute http and https URLs qualify.
func IsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return true
	}
	return false
}

// ParseSize parses a human size such as "50MB" or "1GiB" into bytes, using
// binary multiples. An empty string is 0.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	return units.RAMInBytes(s)
}

func HumanSize(n int64) string {
	return units.BytesSize(float64(n))
}
