package siteapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/app/http/middleware"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/apperr"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/blocks"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// GET /sites/:siteId/pages/:pageId/blocks (owner)
// ------------------------------
func ListBlocks(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	page, ok := pageForSite(c, site.ID)
	if !ok {
		return
	}

	var out []blocks.BlockInstance
	if err := orderedBlocks(database.DB.Where("page_id = ?", page.ID)).
		Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blocks"})
		return
	}

	dtos := make([]BlockDTO, 0, len(out))
	for _, b := range out {
		dtos = append(dtos, BlockDTO{
			ID:          b.ID,
			TemplateKey: b.TemplateKey,
			SortIndex:   b.SortIndex,
			Pinned:      b.Pinned,
			PinnedSlot:  b.PinnedSlot,
			Props:       b.Props,
		})
	}
	c.JSON(http.StatusOK, gin.H{"blocks": dtos})
}

// ------------------------------
// POST /sites/:siteId/pages/:pageId/blocks (owner)
// ------------------------------
func CreateBlock(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	page, ok := pageForSite(c, site.ID)
	if !ok {
		return
	}

	var req struct {
		TemplateKey string          `json:"templateKey" binding:"required"`
		Props       json.RawMessage `json:"props"`
		PinnedSlot  string          `json:"pinnedSlot"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, known := blocks.Get(req.TemplateKey); !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown block template"})
		return
	}
	if req.PinnedSlot != "" && req.PinnedSlot != blocks.SlotHeader && req.PinnedSlot != blocks.SlotFooter {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown pinned slot"})
		return
	}
	// pinned blocks only live on the layout page
	if req.PinnedSlot != "" && !page.IsLayout() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pinned blocks belong to the layout page"})
		return
	}
	if len(req.Props) == 0 {
		req.Props = json.RawMessage(`{}`)
	}

	var block blocks.BlockInstance
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// next free sort index; ties are impossible because inserts and
		// reorders share this transaction-scoped max
		var maxIdx struct{ Max int }
		if err := tx.Model(&blocks.BlockInstance{}).
			Select("COALESCE(MAX(sort_index), -1) AS max").
			Where("page_id = ? AND pinned = ?", page.ID, req.PinnedSlot != "").
			Scan(&maxIdx).Error; err != nil {
			return err
		}

		block = blocks.BlockInstance{
			PageID:      page.ID,
			TemplateKey: req.TemplateKey,
			Props:       req.Props,
			SortIndex:   maxIdx.Max + 1,
			Pinned:      req.PinnedSlot != "",
			PinnedSlot:  req.PinnedSlot,
		}
		return tx.Create(&block).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create block"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"block": BlockDTO{
		ID:          block.ID,
		TemplateKey: block.TemplateKey,
		SortIndex:   block.SortIndex,
		Pinned:      block.Pinned,
		PinnedSlot:  block.PinnedSlot,
		Props:       block.Props,
	}})
}

// ------------------------------
// PATCH /sites/:siteId/pages/:pageId/blocks/:blockId (owner)
// ------------------------------
func UpdateBlock(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	page, ok := pageForSite(c, site.ID)
	if !ok {
		return
	}

	var req struct {
		Props json.RawMessage `json:"props" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := database.DB.Model(&blocks.BlockInstance{}).
		Where("id = ? AND page_id = ?", c.Param("blockId"), page.ID).
		Update("props", req.Props)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update block"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Block not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /sites/:siteId/pages/:pageId/blocks/:blockId (owner)
// ------------------------------
func DeleteBlock(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	page, ok := pageForSite(c, site.ID)
	if !ok {
		return
	}

	res := database.DB.
		Where("id = ? AND page_id = ?", c.Param("blockId"), page.ID).
		Delete(&blocks.BlockInstance{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete block"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Block not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// PUT /sites/:siteId/pages/:pageId/blocks/reorder (owner)
// ------------------------------
//
// Rewrites sort indexes 0..n-1 for the UNPINNED blocks of the page in the
// order given. The submitted list must cover every unpinned block exactly
// once: a partial list would leave two blocks sharing an index. Rewriting
// the whole range leaves no ties behind.
func ReorderBlocks(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	page, ok := pageForSite(c, site.ID)
	if !ok {
		return
	}

	var req struct {
		BlockIDs []string `json:"block_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.BlockIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "block_ids required"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&blocks.BlockInstance{}).
			Where("page_id = ? AND pinned = false", page.ID).
			Pluck("id", &existing).Error; err != nil {
			return err
		}
		if !sameIDSet(req.BlockIDs, existing) {
			return apperr.ErrValidation
		}

		for i, blockID := range req.BlockIDs {
			if err := tx.Model(&blocks.BlockInstance{}).
				Where("id = ? AND page_id = ? AND pinned = false", blockID, page.ID).
				Update("sort_index", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, apperr.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "block_ids must list every unpinned block of the page exactly once"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder blocks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// sameIDSet reports whether submitted contains exactly the ids in existing,
// each once.
func sameIDSet(submitted, existing []string) bool {
	if len(submitted) != len(existing) {
		return false
	}
	remaining := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		remaining[id] = struct{}{}
	}
	for _, id := range submitted {
		if _, ok := remaining[id]; !ok {
			return false
		}
		delete(remaining, id)
	}
	return true
}
