package authapi

import (
	"net/http"

	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/auth"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/customers"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// POST /auth/refresh
//
// Re-mints an access token from a still-valid refresh token. The refresh
// token is NOT rotated, so concurrent refreshes from sibling requests can
// never invalidate each other. Any failure fails closed: cookies cleared,
// caller is anonymous from here on.
func Refresh(c *gin.Context) {
	token := auth.TokenFromRequest(c, auth.RefreshCookie)
	if token == "" {
		failClosed(c)
		return
	}

	// Each attempt pins one (audience, key) pair; nothing inside the token
	// decides which scope it verifies against.
	if claims, err := auth.VerifyPlatform(token, auth.TypeRefresh); err == nil {
		var user users.User
		if err := database.DB.First(&user, "id = ?", claims.SubjectID()).Error; err != nil {
			failClosed(c)
			return
		}
		access, err := auth.MintPlatform(user, auth.TypeAccess)
		if err != nil {
			failClosed(c)
			return
		}
		auth.SetAuthCookies(c, access, token)
		c.JSON(http.StatusOK, gin.H{"token": access, "scope": auth.AudiencePlatform})
		return
	}

	if claims, err := auth.VerifyCustomer(token, auth.TypeRefresh); err == nil {
		var customer customers.Customer
		if err := database.DB.First(&customer, "id = ? AND site_id = ?", claims.SubjectID(), claims.SiteID).Error; err != nil {
			failClosed(c)
			return
		}
		access, err := auth.MintCustomer(customer, auth.TypeAccess)
		if err != nil {
			failClosed(c)
			return
		}
		auth.SetAuthCookies(c, access, token)
		c.JSON(http.StatusOK, gin.H{"token": access, "scope": auth.AudienceStorefront, "site_id": customer.SiteID})
		return
	}

	failClosed(c)
}

func failClosed(c *gin.Context) {
	auth.ClearAuthCookies(c)
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
}

// GET /auth/me — scope-aware identity echo.
func Me(c *gin.Context) {
	token := auth.TokenFromRequest(c, auth.AccessCookie)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	if claims, err := auth.VerifyPlatform(token, auth.TypeAccess); err == nil {
		var user users.User
		if err := database.DB.First(&user, "id = ?", claims.SubjectID()).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"scope": auth.AudiencePlatform,
			"user": gin.H{
				"id":          user.ID,
				"email":       user.Email,
				"name":        user.Name,
				"lastname":    user.Lastname,
				"role":        user.Role,
				"is_verified": user.IsVerified,
			},
		})
		return
	}

	if claims, err := auth.VerifyCustomer(token, auth.TypeAccess); err == nil {
		var customer customers.Customer
		if err := database.DB.First(&customer, "id = ? AND site_id = ?", claims.SubjectID(), claims.SiteID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"scope": auth.AudienceStorefront,
			"customer": gin.H{
				"id":      customer.ID,
				"site_id": customer.SiteID,
				"email":   customer.Email,
				"name":    customer.Name,
			},
		})
		return
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
}
