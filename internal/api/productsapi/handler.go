package productsapi

import (
	"net/http"
	"strconv"

	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/app/http/middleware"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/products"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"

	"github.com/gin-gonic/gin"
)

type ProductDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	Active   bool   `json:"active"`
}

func toProductDTO(p products.Product) ProductDTO {
	return ProductDTO{ID: p.ID, Name: p.Name, Price: p.Price, Currency: p.Currency, Active: p.Active}
}

// ------------------------------
// GET /storefront/sites/:id/products (public)
// ------------------------------
func ListPublic(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}
	var site sites.Site
	if err := database.DB.First(&site, "id = ?", uint(id)).Error; err != nil || !site.IsPublished() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	var out []products.Product
	if err := database.DB.
		Where("site_id = ? AND active = true", site.ID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	dtos := make([]ProductDTO, 0, len(out))
	for _, p := range out {
		dtos = append(dtos, toProductDTO(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": dtos})
}

// ------------------------------
// GET /sites/:siteId/products (owner)
// ------------------------------
func ListProducts(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	var out []products.Product
	if err := database.DB.
		Where("site_id = ?", site.ID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	dtos := make([]ProductDTO, 0, len(out))
	for _, p := range out {
		dtos = append(dtos, toProductDTO(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": dtos})
}

// ------------------------------
// POST /sites/:siteId/products (owner)
// ------------------------------
func CreateProduct(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		Price    int64  `json:"price" binding:"required,min=0"`
		Currency string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}

	product := products.Product{
		SiteID:   site.ID,
		Name:     req.Name,
		Price:    req.Price,
		Currency: req.Currency,
		Active:   true,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": toProductDTO(product)})
}

// ------------------------------
// PATCH /sites/:siteId/products/:productId (owner)
// ------------------------------
func UpdateProduct(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	var req struct {
		Name   *string `json:"name"`
		Price  *int64  `json:"price"`
		Active *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
			return
		}
		updates["price"] = *req.Price
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	res := database.DB.Model(&products.Product{}).
		Where("id = ? AND site_id = ?", c.Param("productId"), site.ID).
		Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /sites/:siteId/products/:productId (owner)
// ------------------------------
func DeleteProduct(c *gin.Context) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	res := database.DB.
		Where("id = ? AND site_id = ?", c.Param("productId"), site.ID).
		Delete(&products.Product{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
