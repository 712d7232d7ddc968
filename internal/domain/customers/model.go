package customers

import "time"

// Customer is a site-scoped identity: a storefront account that exists for
// exactly one site. It is a different kind of principal than users.User and
// the two must never authorize each other's endpoints.
type Customer struct {
	ID       uint   `gorm:"primaryKey"`
	SiteID   uint   `gorm:"not null;uniqueIndex:idx_customers_site_email"`
	Email    string `gorm:"not null;uniqueIndex:idx_customers_site_email"`
	Password string `gorm:"not null"`
	Name     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
