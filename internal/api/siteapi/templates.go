package siteapi

import (
	"net/http"

	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/blocks"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /templates/blocks (public)
// ------------------------------
//
// The block catalog the editor palette is built from. In-code, so the
// list is the same for every site.
func ListBlockTemplates(c *gin.Context) {
	type templateDTO struct {
		Key            string         `json:"key"`
		Category       string         `json:"category"`
		Defaults       map[string]any `json:"defaults"`
		Variants       []string       `json:"variants"`
		DefaultVariant string         `json:"defaultVariant"`
		Preview        string         `json:"preview,omitempty"`
	}

	all := blocks.List()
	dtos := make([]templateDTO, 0, len(all))
	for _, t := range all {
		dtos = append(dtos, templateDTO{
			Key:            t.Key,
			Category:       t.Category,
			Defaults:       t.Defaults,
			Variants:       t.Variants,
			DefaultVariant: t.DefaultVariant,
			Preview:        t.Preview,
		})
	}
	c.JSON(http.StatusOK, gin.H{"templates": dtos})
}

// ------------------------------
// GET /templates/blocks/:key (public)
// ------------------------------
func GetBlockTemplate(c *gin.Context) {
	t, ok := blocks.Get(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown block template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": t})
}
