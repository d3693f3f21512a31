// Derive cluster-safe identifiers from user-provided names.
//
// Kubernetes object names accept only lowercase RFC 1123 labels, and some
// external systems (Grafana dashboard UIDs) enforce stricter length ceilings.
// Names passing through here are deterministic: the same input always yields
// the same output, so derived objects can be found again without bookkeeping.
package names

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

// max length of most kubernetes object names.
const MaxClusterNameLength = 63

// max length of a Grafana dashboard UID.
const MaxDashboardUIDLength = 40

var (
	invalidChars    = regexp.MustCompile(`[^a-z0-9-]`)
	leadingHyphens  = regexp.MustCompile(`^-+`)
	trailingHyphens = regexp.MustCompile(`-+$`)
)

// Sanitize lowercases name, replaces every character outside [a-z0-9-] with
// "-" and strips leading/trailing hyphens.
func Sanitize(name string) string {
	s := invalidChars.ReplaceAllString(strings.ToLower(name), "-")
	s = leadingHyphens.ReplaceAllString(s, "")
	s = trailingHyphens.ReplaceAllString(s, "")
	return s
}

// ShortHash returns 6 hex characters derived from s with SHAKE-256.
func ShortHash(s string) string {
	sum := make([]byte, 3)
	sha3.ShakeSum256(sum, []byte(s))
	return fmt.Sprintf("%x", sum)
}

// SanitizeWithHash sanitizes name, truncates it to fit maxLen and appends
// "-" + ShortHash of the pre-truncation string.
//
// The suffix keeps two long names distinct even when truncation would make
// their prefixes collide.
func SanitizeWithHash(name string, maxLen int) string {
	s := Sanitize(name)
	limit := maxLen - 7 // room for "-" and 6 hash chars
	if limit < 0 {
		limit = 0
	}
	prefix := s
	if limit < len(prefix) {
		prefix = prefix[:limit]
	}
	prefix = trailingHyphens.ReplaceAllString(prefix, "")
	return prefix + "-" + ShortHash(s)
}

// ForCluster derives a kubernetes-safe name with a collision suffix.
func ForCluster(name string) string {
	return SanitizeWithHash(name, MaxClusterNameLength)
}

// ForDashboard derives a Grafana dashboard UID.
func ForDashboard(name string) string {
	return SanitizeWithHash(name, MaxDashboardUIDLength)
}
