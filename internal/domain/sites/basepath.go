package sites

import (
	"fmt"
	"strings"
)

// Mount describes which URL shape a request used to reach a site.
// The base path of every link inside a rendered page depends on it.
type Mount string

const (
	MountSlug    Mount = "slug"    // /{slug}/...
	MountIDSlug  Mount = "idslug"  // /{id}/{slug}/...
	MountPreview Mount = "preview" // /preview/sites/{id}/...
)

// BasePath builds the mount-aware URL prefix for a site.
func BasePath(s Site, m Mount) string {
	switch m {
	case MountIDSlug:
		return fmt.Sprintf("/%d/%s", s.ID, s.Slug)
	case MountPreview:
		return fmt.Sprintf("/preview/sites/%d", s.ID)
	default:
		return "/" + s.Slug
	}
}

// RewriteHref turns a block-authored relative link into an absolute,
// mount-aware URL. External, anchor and protocol links pass through
// untouched.
func RewriteHref(base, href string) string {
	h := strings.TrimSpace(href)
	if h == "" || strings.HasPrefix(h, "#") {
		return href
	}
	lower := strings.ToLower(h)
	if strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") {
		return href
	}
	// already rewritten
	if h == base || strings.HasPrefix(h, base+"/") {
		return h
	}
	h = strings.TrimPrefix(h, "./")
	if !strings.HasPrefix(h, "/") {
		h = "/" + h
	}
	if h == "/" {
		return base
	}
	return base + h
}

// linkKeys are the props the block catalog uses for navigation targets.
var linkKeys = map[string]bool{
	"href": true,
	"link": true,
	"url":  true,
}

// RewriteLinks walks decoded block props and rewrites every link-bearing
// string value in place. Nested objects and arrays are handled so list
// blocks (menus, galleries) get the same treatment.
func RewriteLinks(base string, props map[string]any) {
	for k, v := range props {
		switch val := v.(type) {
		case string:
			if linkKeys[k] {
				props[k] = RewriteHref(base, val)
			}
		case map[string]any:
			RewriteLinks(base, val)
		case []any:
			for _, item := range val {
				if m, ok := item.(map[string]any); ok {
					RewriteLinks(base, m)
				}
			}
		}
	}
}
