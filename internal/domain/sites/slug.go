package sites

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

/*
	Slug helpers
	------------
	- Responsible ONLY for:
	  • generating URL-safe slugs
	  • keeping them unique among non-archived sites
	- No resolver logic, no auth logic here
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from a site name.
// Example: "Acme Store!" -> "acme-store"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "site"
	}
	return base
}

// IsValidSlug reports whether a user-supplied slug is acceptable as-is.
// Purely-numeric slugs are rejected: the resolver treats an all-digit
// first path segment as a site id.
func IsValidSlug(slug string) bool {
	if slug == "" || len(slug) > 80 {
		return false
	}
	if slug != MakeSlug(slug) {
		return false
	}
	if allDigits.MatchString(slug) {
		return false
	}
	return slug != "preview" && slug != "api"
}

var allDigits = regexp.MustCompile(`^[0-9]+$`)

// EnsureUniqueSlug returns base, or base-2, base-3, ... — the first candidate
// not taken by another non-archived site. excludeID skips the site being
// renamed.
func EnsureUniqueSlug(db *gorm.DB, base string, excludeID uint) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		var count int64
		q := db.Model(&Site{}).
			Where("slug = ? AND status <> ?", candidate, StatusArchived)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
