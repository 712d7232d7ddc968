package carts

import "time"

// Cart is keyed by (site, owner) where owner is exactly one of an anonymous
// session id or an authenticated customer id. The partial unique indexes
// enforce one cart per owner per site and serialize concurrent creates.
type Cart struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SiteID uint `gorm:"not null;index;uniqueIndex:idx_carts_site_session;uniqueIndex:idx_carts_site_customer" json:"site_id"`

	SessionID  *string `gorm:"uniqueIndex:idx_carts_site_session" json:"session_id,omitempty"`
	CustomerID *uint   `gorm:"uniqueIndex:idx_carts_site_customer" json:"customer_id,omitempty"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem freezes the unit price at the moment of add; it is never
// live-repriced afterwards.
type CartItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	CartID    uint  `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	ProductID uint  `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"product_id"`
	UnitPrice int64 `gorm:"not null" json:"unit_price"`
	Quantity  int   `gorm:"not null" json:"quantity"`

	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Owner is the discriminated cart key: Anonymous{sessionID} or
// Authenticated{customerID}, never both.
type Owner struct {
	sessionID  string
	customerID uint
}

func Anonymous(sessionID string) Owner {
	return Owner{sessionID: sessionID}
}

func Authenticated(customerID uint) Owner {
	return Owner{customerID: customerID}
}

func (o Owner) IsAnonymous() bool { return o.sessionID != "" }

func (o Owner) Valid() bool {
	return (o.sessionID != "") != (o.customerID != 0)
}
