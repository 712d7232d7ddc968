package middleware

import (
	"net/http"

	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"

	"github.com/gin-gonic/gin"
)

// RequireSiteOwner loads the :siteId site and rejects callers who neither
// own it nor carry the admin role. The loaded site is stashed in the
// context so handlers don't query it twice.
func RequireSiteOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		siteID := siteIDParam(c)
		if siteID == 0 {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Site not found"})
			return
		}

		var site sites.Site
		if err := database.DB.First(&site, "id = ?", siteID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Site not found"})
			return
		}

		userID := c.GetUint("user_id")
		if site.OwnerID != userID && c.GetString("role") != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		c.Set("site", site)
		c.Next()
	}
}

// SiteFromContext returns the site loaded by RequireSiteOwner.
func SiteFromContext(c *gin.Context) (sites.Site, bool) {
	v, ok := c.Get("site")
	if !ok {
		return sites.Site{}, false
	}
	s, ok := v.(sites.Site)
	return s, ok
}
