package adminapi

import (
	"net/http"
	"time"

	"github.com/M-a-K-s-1-M/neshopify-sub001/database"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/customers"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	SiteCount  int    `json:"site_count"`
}

type AdminSite struct {
	ID         uint      `json:"id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	OwnerEmail string    `json:"owner_email"`
	CreatedAt  time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalUsers     int            `json:"total_users"`
	TotalSites     int            `json:"total_sites"`
	TotalCustomers int            `json:"total_customers"`
	SitesPerStatus map[string]int `json:"sites_per_status"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard 👑",
	})
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("id ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	type ownerCount struct {
		OwnerID uint
		Count   int
	}
	var counts []ownerCount
	database.DB.Model(&sites.Site{}).
		Select("owner_id, COUNT(id) as count").
		Group("owner_id").
		Scan(&counts)
	perOwner := map[uint]int{}
	for _, oc := range counts {
		perOwner[oc.OwnerID] = oc.Count
	}

	var adminUsers []AdminUser
	for _, u := range all {
		adminUsers = append(adminUsers, AdminUser{
			ID:         u.ID,
			Name:       u.Name,
			Lastname:   u.Lastname,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			SiteCount:  perOwner[u.ID],
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func ListAllSites(c *gin.Context) {
	type row struct {
		sites.Site
		OwnerEmail string
	}
	var rows []row
	err := database.DB.
		Table("sites").
		Select("sites.*, users.email AS owner_email").
		Joins("LEFT JOIN users ON users.id = sites.owner_id").
		Order("sites.id ASC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sites"})
		return
	}

	var result []AdminSite
	for _, r := range rows {
		result = append(result, AdminSite{
			ID:         r.ID,
			Slug:       r.Slug,
			Name:       r.Name,
			Status:     r.Status,
			OwnerEmail: r.OwnerEmail,
			CreatedAt:  r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, result)
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers, totalSites, totalCustomers int64
	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&sites.Site{}).Count(&totalSites)
	database.DB.Model(&customers.Customer{}).Count(&totalCustomers)

	stats.TotalUsers = int(totalUsers)
	stats.TotalSites = int(totalSites)
	stats.TotalCustomers = int(totalCustomers)

	type statusCount struct {
		Status string
		Count  int
	}
	var counts []statusCount
	database.DB.Model(&sites.Site{}).
		Select("status, COUNT(id) as count").
		Group("status").
		Scan(&counts)

	stats.SitesPerStatus = map[string]int{}
	for _, sc := range counts {
		stats.SitesPerStatus[sc.Status] = sc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var owned []sites.Site
	if err := database.DB.Where("owner_id = ?", userID).Find(&owned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"sites": owned,
	})
}
