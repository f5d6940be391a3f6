// Package keys derives cache keys for route metadata entries.
package keys

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

const prefix = "eia:meta"

// RouteKey builds the cache key for one route's metadata. The readable
// segment is sanitized for the store; the hash suffix keeps distinct
// route ids distinct even when sanitization collides.
func RouteKey(routeID string) string {
	id := strings.TrimSpace(routeID)
	sum := xxhash.Sum64String(id)
	return fmt.Sprintf("%s:%s:h=%016x", prefix, sanitize(id), sum)
}

func sanitize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		out := rune(0)
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			out = '_'
		case isAlphaNum(r) || r == '_' || r == '-' || r == '/':
			out = r
		default:
			// any other rune (including non-ASCII) becomes '-'
			out = '-'
		}
		if (out == '_' || out == '-') && out == prev {
			continue
		}
		b.WriteRune(out)
		prev = out
	}
	return b.String()
}

func isAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		unicode.IsDigit(r)
}
