package siteapi

import (
	"errors"
	"net/http"

	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/app/http/middleware"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/pages"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func pageForSite(c *gin.Context, siteID uint) (*pages.Page, bool) {
	pageID := c.Param("pageId")

	var page pages.Page
	err := database.DB.First(&page, "id = ? AND site_id = ?", pageID, siteID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return nil, false
	}
	return &page, true
}

// ------------------------------
// GET /sites/:siteId/pages (owner)
// ------------------------------
func ListPages(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	var out []pages.Page
	if err := sitePagesQuery(database.DB, site.ID).
		Preload("Blocks", func(db *gorm.DB) *gorm.DB { return orderedBlocks(db) }).
		Order("slug ASC").
		Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}

	dtos := make([]PageDTO, 0, len(out))
	for _, p := range out {
		dtos = append(dtos, toPageDTO(p))
	}
	c.JSON(http.StatusOK, gin.H{"pages": dtos})
}

// ------------------------------
// POST /sites/:siteId/pages (owner)
// ------------------------------
func CreatePage(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	var req struct {
		Slug  string `json:"slug" binding:"required"`
		Type  string `json:"type"`
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Slug == pages.LayoutSlug {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reserved slug"})
		return
	}
	if req.Type == "" {
		req.Type = pages.TypeCustom
	}
	if !pages.IsValidType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown page type"})
		return
	}

	var count int64
	if err := sitePagesQuery(database.DB, site.ID).
		Where("slug = ?", req.Slug).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A page with this slug already exists"})
		return
	}

	page := pages.Page{
		SiteID:  site.ID,
		Slug:    req.Slug,
		Type:    req.Type,
		Title:   req.Title,
		Visible: true,
	}
	if err := database.DB.Create(&page).Error; err != nil {
		// the pre-check can lose a race; the unique index is the authority
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "A page with this slug already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"page": toPageDTO(page)})
}

// ------------------------------
// PATCH /sites/:siteId/pages/:pageId (owner)
// ------------------------------
func UpdatePage(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	page, ok := pageForSite(c, site.ID)
	if !ok {
		return
	}
	if page.IsLayout() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Layout page cannot be edited directly"})
		return
	}

	var req struct {
		Slug    *string `json:"slug"`
		Type    *string `json:"type"`
		Title   *string `json:"title"`
		Visible *bool   `json:"visible"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{}
	if req.Slug != nil {
		if *req.Slug == pages.LayoutSlug || *req.Slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
			return
		}
		var count int64
		if err := sitePagesQuery(database.DB, site.ID).
			Where("slug = ? AND id <> ?", *req.Slug, page.ID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "A page with this slug already exists"})
			return
		}
		updates["slug"] = *req.Slug
	}
	if req.Type != nil {
		if !pages.IsValidType(*req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown page type"})
			return
		}
		updates["type"] = *req.Type
	}
	if req.Title != nil && *req.Title != "" {
		updates["title"] = *req.Title
	}
	if req.Visible != nil {
		updates["visible"] = *req.Visible
	}

	if len(updates) > 0 {
		if err := database.DB.Model(page).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "A page with this slug already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page"})
			return
		}
	}

	var fresh pages.Page
	database.DB.First(&fresh, "id = ?", page.ID)
	c.JSON(http.StatusOK, gin.H{"page": toPageDTO(fresh)})
}

// ------------------------------
// DELETE /sites/:siteId/pages/:pageId (owner)
// ------------------------------
func DeletePage(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	page, ok := pageForSite(c, site.ID)
	if !ok {
		return
	}
	if page.IsLayout() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Layout page cannot be deleted"})
		return
	}

	if err := database.DB.Delete(page).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete page"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
