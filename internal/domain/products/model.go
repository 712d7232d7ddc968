package products

import "time"

// Product is the minimal per-site catalog entry carts and product-grid
// blocks reference. Prices are integer cents.
type Product struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	SiteID   uint   `gorm:"not null;index" json:"site_id"`
	Name     string `gorm:"not null" json:"name"`
	Price    int64  `gorm:"not null" json:"price"`
	Currency string `gorm:"type:varchar(3);not null;default:'usd'" json:"currency"`
	Active   bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
