package cartapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/apperr"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/carts"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/products"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

/*
	Cart endpoints
	--------------
	Identity is never invented server-side: the caller either presents a
	site-scoped token (CustomerAuth middleware fills customer_id) or a
	?sessionId=... it generated and persisted itself. Exactly one of the
	two keys the cart.
*/

func siteForCart(c *gin.Context) (*sites.Site, bool) {
	id, err := strconv.ParseUint(c.Param("siteId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return nil, false
	}
	var site sites.Site
	if err := database.DB.First(&site, "id = ?", uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return nil, false
	}
	if site.IsArchived() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return nil, false
	}
	return &site, true
}

func ownerFromRequest(c *gin.Context) (carts.Owner, bool) {
	if customerID := c.GetUint("customer_id"); customerID != 0 {
		return carts.Authenticated(customerID), true
	}
	if sessionID := c.Query("sessionId"); sessionID != "" {
		// client-generated, but must be a UUID so the cart keyspace is
		// not guessable
		if _, err := uuid.Parse(sessionID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId must be a UUID"})
			return carts.Owner{}, false
		}
		return carts.Anonymous(sessionID), true
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "sessionId or a customer session is required"})
	return carts.Owner{}, false
}

func cartJSON(cart *carts.Cart) gin.H {
	var total int64
	for _, it := range cart.Items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return gin.H{"cart": cart, "total": total}
}

// ------------------------------
// GET /sites/:siteId/cart?sessionId=...
// ------------------------------
func GetCart(c *gin.Context) {
	site, ok := siteForCart(c)
	if !ok {
		return
	}
	owner, ok := ownerFromRequest(c)
	if !ok {
		return
	}

	cart, err := carts.Find(database.DB, site.ID, owner)
	if errors.Is(err, apperr.ErrNotFound) {
		// lazily created on first add; an absent cart is just empty
		c.JSON(http.StatusOK, gin.H{"cart": gin.H{"site_id": site.ID, "items": []carts.CartItem{}}, "total": 0})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, cartJSON(cart))
}

// ------------------------------
// POST /sites/:siteId/cart/items
// ------------------------------
func AddItem(c *gin.Context) {
	site, ok := siteForCart(c)
	if !ok {
		return
	}
	owner, ok := ownerFromRequest(c)
	if !ok {
		return
	}

	var input struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var product products.Product
	if err := database.DB.First(&product, "id = ? AND site_id = ? AND active = true", input.ProductID, site.ID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
		return
	}

	cart, err := carts.GetOrCreate(database.DB, site.ID, owner)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Failed to load cart"})
		return
	}

	item, err := carts.AddItem(database.DB, cart.ID, product, input.Quantity)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Failed to add item to cart"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// ------------------------------
// PATCH /sites/:siteId/cart/items/:itemId
// ------------------------------
func UpdateItem(c *gin.Context) {
	site, ok := siteForCart(c)
	if !ok {
		return
	}
	owner, ok := ownerFromRequest(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	cart, err := carts.Find(database.DB, site.ID, owner)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Cart not found"})
		return
	}

	item, err := carts.UpdateItemQuantity(database.DB, cart.ID, uint(itemID), input.Quantity)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Failed to update cart item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// ------------------------------
// DELETE /sites/:siteId/cart/items/:itemId
// ------------------------------
func RemoveItem(c *gin.Context) {
	site, ok := siteForCart(c)
	if !ok {
		return
	}
	owner, ok := ownerFromRequest(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	cart, err := carts.Find(database.DB, site.ID, owner)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Cart not found"})
		return
	}

	if err := carts.RemoveItem(database.DB, cart.ID, uint(itemID)); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": "Failed to delete item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
}

// ------------------------------
// DELETE /sites/:siteId/cart
// ------------------------------
func ClearCart(c *gin.Context) {
	site, ok := siteForCart(c)
	if !ok {
		return
	}
	owner, ok := ownerFromRequest(c)
	if !ok {
		return
	}

	cart, err := carts.Find(database.DB, site.ID, owner)
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	if err := carts.Clear(database.DB, cart.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
