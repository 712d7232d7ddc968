package siteapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/app/http/middleware"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/blocks"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/pages"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// ------------------------------
// GET /sites (owner)
// ------------------------------
func ListSites(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var out []sites.Site
	if err := ownerSitesQuery(database.DB, userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sites"})
		return
	}

	dtos := make([]SiteDTO, 0, len(out))
	for _, s := range out {
		dtos = append(dtos, toSiteDTO(s))
	}
	c.JSON(http.StatusOK, gin.H{"sites": dtos})
}

// ------------------------------
// POST /sites (owner)
// ------------------------------
func CreateSite(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
		Slug string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	base := req.Slug
	if base == "" {
		base = sites.MakeSlug(req.Name)
	}
	if !sites.IsValidSlug(base) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
		return
	}

	var site sites.Site
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := sites.EnsureUniqueSlug(tx, base, 0)
		if err != nil {
			return err
		}

		site = sites.Site{
			Slug:    slug,
			Name:    req.Name,
			Status:  sites.StatusDraft,
			OwnerID: userID,
		}
		if err := tx.Create(&site).Error; err != nil {
			return err
		}

		return seedStarterPages(tx, site.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create site"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"site": toSiteDTO(site)})
}

// seedStarterPages gives a fresh site its layout page (pinned header and
// footer) and a home page, so the storefront renders from the first second.
func seedStarterPages(tx *gorm.DB, siteID uint) error {
	layout := pages.Page{
		SiteID:  siteID,
		Slug:    pages.LayoutSlug,
		Type:    pages.TypeCustom,
		Title:   "Layout",
		Visible: false,
	}
	if err := tx.Create(&layout).Error; err != nil {
		return err
	}

	starter := []blocks.BlockInstance{
		{PageID: layout.ID, TemplateKey: "header", Props: json.RawMessage(`{}`), SortIndex: 0, Pinned: true, PinnedSlot: blocks.SlotHeader},
		{PageID: layout.ID, TemplateKey: "footer", Props: json.RawMessage(`{}`), SortIndex: 0, Pinned: true, PinnedSlot: blocks.SlotFooter},
	}
	for i := range starter {
		if err := tx.Create(&starter[i]).Error; err != nil {
			return err
		}
	}

	home := pages.Page{
		SiteID:  siteID,
		Slug:    "home",
		Type:    pages.TypeHome,
		Title:   "Home",
		Visible: true,
	}
	if err := tx.Create(&home).Error; err != nil {
		return err
	}
	hero := blocks.BlockInstance{
		PageID:      home.ID,
		TemplateKey: "hero",
		Props:       json.RawMessage(`{"title":"Welcome"}`),
		SortIndex:   0,
	}
	return tx.Create(&hero).Error
}

// ------------------------------
// PATCH /sites/:siteId (owner)
// ------------------------------
func UpdateSite(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	var req struct {
		Name         *string `json:"name"`
		Slug         *string `json:"slug"`
		CustomDomain *string `json:"custom_domain"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		if !sites.IsValidSlug(*req.Slug) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
			return
		}
		var count int64
		if err := database.DB.Model(&sites.Site{}).
			Where("slug = ? AND status <> ? AND id <> ?", *req.Slug, sites.StatusArchived, site.ID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already taken"})
			return
		}
		updates["slug"] = *req.Slug
	}
	if req.CustomDomain != nil {
		updates["custom_domain"] = *req.CustomDomain
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"site": toSiteDTO(site)})
		return
	}

	if err := database.DB.Model(&site).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update site"})
		return
	}

	var fresh sites.Site
	database.DB.First(&fresh, "id = ?", site.ID)
	c.JSON(http.StatusOK, gin.H{"site": toSiteDTO(fresh)})
}

// ------------------------------
// POST /sites/:siteId/publish, /unpublish; DELETE /sites/:siteId
// ------------------------------
func PublishSite(c *gin.Context)   { setSiteStatus(c, sites.StatusPublished) }
func UnpublishSite(c *gin.Context) { setSiteStatus(c, sites.StatusDraft) }
func ArchiveSite(c *gin.Context)   { setSiteStatus(c, sites.StatusArchived) }

func setSiteStatus(c *gin.Context, status string) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	if err := database.DB.Model(&sites.Site{}).
		Where("id = ?", site.ID).
		Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update site"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
