package storefront

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/auth"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/apperr"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/pages"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"

	"github.com/gin-gonic/gin"
)

/*
	Storefront surface
	------------------
	Two entry styles share the one resolver:

	  • JSON lookups under /api/v1/storefront/... for the SPA shell
	  • the raw URL shapes (/{slug}/..., /{id}/{slug}/...,
	    /preview/sites/{id}/...) served via the router's NoRoute hook,
	    where stale-slug and login redirects are real 302s
*/

// GET /api/v1/storefront/sites/by-slug/:slug
func SiteBySlug(c *gin.Context) {
	res, err := sites.Resolve(database.DB, sites.Ref{Slug: c.Param("slug")})
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Site not available"})
		return
	}
	if res.Unpublished && !isOwnerRequest(c, res.Site) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": toSiteDTO(res.Site)})
}

// GET /api/v1/storefront/sites/:id
func SiteByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not available"})
		return
	}
	res, err := sites.Resolve(database.DB, sites.Ref{ID: uint(id), HasID: true})
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Site not available"})
		return
	}
	if res.Unpublished && !isOwnerRequest(c, res.Site) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": toSiteDTO(res.Site)})
}

// GET /api/v1/storefront/resolve?path=/...
//
// Maps any of the three URL shapes to a canonical resolution. The SPA
// router calls this before fetching a composed page and performs the
// navigation redirectTo asks for.
func ResolvePath(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	ref, err := sites.ParsePath(path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not available"})
		return
	}
	res, err := sites.Resolve(database.DB, ref)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Not available"})
		return
	}

	c.JSON(http.StatusOK, ResolveResponse{
		Site:        toSiteDTO(res.Site),
		Mount:       string(res.Mount),
		BasePath:    sites.BasePath(res.Site, res.Mount),
		PageSlug:    pageSlugOf(ref.SubPath),
		Unpublished: res.Unpublished,
		RedirectTo:  res.RedirectTo,
	})
}

// ServePath handles the raw storefront URL shapes. Wired as the router's
// NoRoute handler so it owns every path the API surface doesn't.
func ServePath(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not available"})
		return
	}
	path := c.Request.URL.Path

	ref, err := sites.ParsePath(path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not available"})
		return
	}
	res, err := sites.Resolve(database.DB, ref)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Not available"})
		return
	}

	// stale slug: one redirect to the canonical path, never a render
	if res.RedirectTo != "" {
		c.Redirect(http.StatusFound, res.RedirectTo)
		return
	}

	base := sites.BasePath(res.Site, res.Mount)
	slug := pageSlugOf(ref.SubPath)

	authoring := false
	if res.Mount == sites.MountPreview {
		if !isOwnerRequest(c, res.Site) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}
		authoring = true
	}

	// unpublished site on a public mount: neutral notice, no content
	if res.Unpublished && !authoring {
		c.JSON(http.StatusOK, gin.H{
			"site":        toSiteDTO(res.Site),
			"unpublished": true,
			"notice":      "This store is not published yet",
		})
		return
	}

	// protected storefront pages need a site-scoped identity
	if auth.IsProtectedSlug(slug) && !hasCustomerFor(c, res.Site.ID) {
		c.Redirect(http.StatusFound, auth.LoginRedirect(base, base+"/"+slug))
		return
	}

	composed, err := pages.ComposePage(database.DB, res.Site, slug, pages.ComposeOptions{
		Authoring: authoring,
		BasePath:  base,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page"})
		return
	}

	c.JSON(http.StatusOK, PageResponse{
		Site:     toSiteDTO(res.Site),
		BasePath: base,
		Page:     toPageDTO(composed.Page),
		Blocks:   composed.Blocks,
	})
}

// GET /api/v1/storefront/sites/:id/pages/*pageSlug?mount=...
//
// Composed page for the SPA. Same rules as ServePath, JSON all the way
// (the login redirect is reported, not issued).
func ComposedPage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not available"})
		return
	}
	res, err := sites.Resolve(database.DB, sites.Ref{ID: uint(id), HasID: true})
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Site not available"})
		return
	}

	mount := sites.Mount(c.DefaultQuery("mount", string(sites.MountIDSlug)))
	switch mount {
	case sites.MountSlug, sites.MountIDSlug, sites.MountPreview:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown mount"})
		return
	}
	base := sites.BasePath(res.Site, mount)
	slug := pageSlugOf(c.Param("pageSlug"))

	authoring := false
	if mount == sites.MountPreview {
		if !isOwnerRequest(c, res.Site) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}
		authoring = true
	}

	if res.Unpublished && !authoring {
		c.JSON(http.StatusOK, gin.H{
			"site":        toSiteDTO(res.Site),
			"unpublished": true,
			"notice":      "This store is not published yet",
		})
		return
	}

	if auth.IsProtectedSlug(slug) && !hasCustomerFor(c, res.Site.ID) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":      "Unauthenticated",
			"redirectTo": auth.LoginRedirect(base, base+"/"+slug),
		})
		return
	}

	composed, err := pages.ComposePage(database.DB, res.Site, slug, pages.ComposeOptions{
		Authoring: authoring,
		BasePath:  base,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page"})
		return
	}

	c.JSON(http.StatusOK, PageResponse{
		Site:     toSiteDTO(res.Site),
		BasePath: base,
		Page:     toPageDTO(composed.Page),
		Blocks:   composed.Blocks,
	})
}

/* ---------------- helpers ---------------- */

// pageSlugOf extracts the page slug from a sub-path: the first segment,
// empty meaning the home page.
func pageSlugOf(subPath string) string {
	p := strings.Trim(subPath, "/")
	if p == "" {
		return ""
	}
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}

// isOwnerRequest reports whether the caller holds a platform identity that
// owns the site (or the admin role).
func isOwnerRequest(c *gin.Context, site sites.Site) bool {
	token := auth.TokenFromRequest(c, auth.AccessCookie)
	if token == "" {
		return false
	}
	claims, err := auth.VerifyPlatform(token, auth.TypeAccess)
	if err != nil {
		return false
	}
	return claims.SubjectID() == site.OwnerID || claims.Role == "admin"
}

// hasCustomerFor reports whether the caller holds a site-scoped identity
// for THIS site. A token for another site counts as anonymous here and is
// logged by the verification path.
func hasCustomerFor(c *gin.Context, siteID uint) bool {
	token := auth.TokenFromRequest(c, auth.AccessCookie)
	if token == "" {
		return false
	}
	claims, err := auth.VerifyCustomer(token, auth.TypeAccess)
	if err != nil {
		return false
	}
	return claims.SiteID == siteID
}
