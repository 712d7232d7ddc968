package authapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/auth"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/carts"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/customers"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

/*
	Customer auth (site-scoped)
	---------------------------
	Customers belong to exactly one site. Their tokens are minted on the
	storefront audience and are unusable for the dashboard or any other
	site. Login also owns cart correlation: a supplied anonymous session id
	is merged into the customer's cart before the response goes out.
*/

func siteForCustomerAuth(c *gin.Context) (*sites.Site, bool) {
	raw := c.Param("siteId")
	id, err := strconv.ParseUint(raw, 10, 32)
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

// issueCustomerSession mints the storefront pair and installs cookies.
func issueCustomerSession(c *gin.Context, customer customers.Customer) (string, error) {
	access, err := auth.MintCustomer(customer, auth.TypeAccess)
	if err != nil {
		return "", err
	}
	refresh, err := auth.MintCustomer(customer, auth.TypeRefresh)
	if err != nil {
		return "", err
	}
	auth.SetAuthCookies(c, access, refresh)
	return access, nil
}

// safeSiteReturnTo validates a captured return-to path against every base
// path the site can legitimately be mounted on. Tampered or off-site values
// collapse to the slug mount base.
func safeSiteReturnTo(site sites.Site, returnTo string) string {
	fallback := sites.BasePath(site, sites.MountSlug)
	if returnTo == "" {
		return fallback
	}
	for _, m := range []sites.Mount{sites.MountSlug, sites.MountIDSlug, sites.MountPreview} {
		base := sites.BasePath(site, m)
		if auth.SafeReturnTo(base, returnTo) == returnTo {
			return returnTo
		}
	}
	return fallback
}

// POST /auth/register-customer/:siteId
func RegisterCustomer(c *gin.Context) {
	site, ok := siteForCustomerAuth(c)
	if !ok {
		return
	}

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !isPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long and contain both letters and numbers"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	customer := customers.Customer{
		SiteID:   site.ID,
		Email:    input.Email,
		Password: string(hashed),
		Name:     input.Name,
	}
	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered for this store"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account created"})
}

// POST /auth/login-customer/:siteId
//
// Body may carry the anonymous sessionId (triggers the cart merge) and the
// returnTo captured before the login redirect.
func LoginCustomer(c *gin.Context) {
	site, ok := siteForCustomerAuth(c)
	if !ok {
		return
	}

	var input struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
		SessionID string `json:"sessionId"`
		ReturnTo  string `json:"returnTo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customer customers.Customer
	err := database.DB.First(&customer, "site_id = ? AND email = ?", site.ID, input.Email).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	mergeWarning := ""
	if input.SessionID != "" {
		if err := carts.MergeAnonymousCart(database.DB, site.ID, input.SessionID, customer.ID); err != nil {
			// soft warning: the anonymous cart is untouched, login still succeeds
			fmt.Println("⚠️ cart merge failed:", err)
			mergeWarning = "Your cart could not be merged yet, it is still saved"
		}
	}

	access, err := issueCustomerSession(c, customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	resp := gin.H{
		"token":      access,
		"site_id":    site.ID,
		"redirectTo": safeSiteReturnTo(*site, input.ReturnTo),
	}
	if mergeWarning != "" {
		resp["warning"] = mergeWarning
	}
	c.JSON(http.StatusOK, resp)
}
