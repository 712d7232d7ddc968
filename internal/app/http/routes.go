package routes

import (
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/api/adminapi"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/api/authapi"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/api/cartapi"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/api/checkout"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/api/productsapi"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/api/siteapi"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/api/storefront"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1.GET("/templates/blocks", siteapi.ListBlockTemplates)
	v1.GET("/templates/blocks/:key", siteapi.GetBlockTemplate)

	// ✅ Apply input sanitization to public write routes only
	public := v1.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/auth/register", authapi.Register)
	public.POST("/auth/login", authapi.Login)
	public.GET("/verify", authapi.VerifyEmail)
	public.POST("/auth/refresh", authapi.Refresh)
	public.POST("/auth/logout", authapi.Logout)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Site-scoped customer auth. Login merges the anonymous cart when the
	// request carries a sessionId.
	public.POST("/auth/register-customer/:siteId", authapi.RegisterCustomer)
	public.POST("/auth/login-customer/:siteId", authapi.LoginCustomer)

	v1.GET("/auth/me", authapi.Me)

	// Public storefront lookups
	v1.GET("/storefront/sites/by-slug/:slug", storefront.SiteBySlug)
	v1.GET("/storefront/sites/:id", storefront.SiteByID)
	v1.GET("/storefront/resolve", storefront.ResolvePath)
	v1.GET("/storefront/sites/:id/pages/*pageSlug", storefront.ComposedPage)
	v1.GET("/storefront/sites/:id/products", productsapi.ListPublic)

	// Cart: anonymous via ?sessionId=..., or the site-scoped token
	cart := v1.Group("/sites/:siteId/cart")
	cart.Use(middleware.CustomerAuth(false))
	cart.GET("", cartapi.GetCart)
	cart.DELETE("", cartapi.ClearCart)
	cart.POST("/items", cartapi.AddItem)
	cart.PATCH("/items/:itemId", cartapi.UpdateItem)
	cart.DELETE("/items/:itemId", cartapi.RemoveItem)

	// Checkout needs a real customer identity
	v1.POST("/sites/:siteId/checkout", middleware.CustomerAuth(true), checkout.CreateCheckoutSession)

	// Authenticated platform users
	auth := v1.Group("/")
	auth.Use(middleware.PlatformAuth())
	auth.GET("/sites", siteapi.ListSites)
	auth.POST("/sites", siteapi.CreateSite)

	// Per-site owner routes
	owner := auth.Group("/sites/:siteId")
	owner.Use(middleware.RequireSiteOwner())
	owner.PATCH("", siteapi.UpdateSite)
	owner.DELETE("", siteapi.ArchiveSite)
	owner.POST("/publish", siteapi.PublishSite)
	owner.POST("/unpublish", siteapi.UnpublishSite)

	owner.GET("/pages", siteapi.ListPages)
	owner.POST("/pages", siteapi.CreatePage)
	owner.PATCH("/pages/:pageId", siteapi.UpdatePage)
	owner.DELETE("/pages/:pageId", siteapi.DeletePage)

	owner.GET("/pages/:pageId/blocks", siteapi.ListBlocks)
	owner.POST("/pages/:pageId/blocks", siteapi.CreateBlock)
	owner.PATCH("/pages/:pageId/blocks/:blockId", siteapi.UpdateBlock)
	owner.DELETE("/pages/:pageId/blocks/:blockId", siteapi.DeleteBlock)
	owner.PUT("/pages/:pageId/blocks/reorder", siteapi.ReorderBlocks)

	owner.GET("/products", productsapi.ListProducts)
	owner.POST("/products", productsapi.CreateProduct)
	owner.PATCH("/products/:productId", productsapi.UpdateProduct)
	owner.DELETE("/products/:productId", productsapi.DeleteProduct)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.PlatformAuth(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/sites", adminapi.ListAllSites)
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/user/:id", adminapi.GetUserDetails)

	// Everything else is a storefront URL: /{slug}/..., /{id}/{slug}/...,
	// /preview/sites/{id}/... Stale-slug and login redirects are real 302s.
	r.NoRoute(storefront.ServePath)
}
