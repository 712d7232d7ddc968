package auth

import (
	"net/url"
	"strings"
)

// protectedSlugs are the storefront pages that require a site-scoped
// identity. Everything else renders for anonymous visitors.
var protectedSlugs = map[string]bool{
	"cart":    true,
	"profile": true,
}

func IsProtectedSlug(slug string) bool {
	return protectedSlugs[slug]
}

// LoginRedirect builds the site's login URL carrying the captured path.
func LoginRedirect(basePath, currentPath string) string {
	return basePath + "/auth?returnTo=" + url.QueryEscape(currentPath)
}

// SafeReturnTo validates a captured return-to path before replaying it.
// Only same-site relative paths under the site's own base path survive;
// anything else (absolute URLs, protocol-relative tricks, foreign base
// paths, backslash smuggling) collapses to the base path.
func SafeReturnTo(basePath, returnTo string) string {
	rt := strings.TrimSpace(returnTo)
	if rt == "" {
		return basePath
	}
	if !strings.HasPrefix(rt, "/") || strings.HasPrefix(rt, "//") {
		return basePath
	}
	if strings.ContainsAny(rt, "\\\r\n") || strings.Contains(rt, "://") {
		return basePath
	}
	if rt == basePath || strings.HasPrefix(rt, basePath+"/") || strings.HasPrefix(rt, basePath+"?") {
		return rt
	}
	return basePath
}
