package pages

import (
	"time"

	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/blocks"
)

const (
	TypeHome    = "home"
	TypeCatalog = "catalog"
	TypeCart    = "cart"
	TypeProfile = "profile"
	TypeCustom  = "custom"
)

// LayoutSlug is the reserved internal slug holding the shared header/footer
// blocks of a site. It is never directly routable.
const LayoutSlug = "__layout"

func IsValidType(t string) bool {
	switch t {
	case TypeHome, TypeCatalog, TypeCart, TypeProfile, TypeCustom:
		return true
	}
	return false
}

type Page struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	SiteID uint   `gorm:"not null;uniqueIndex:idx_pages_site_slug" json:"site_id"`
	Slug   string `gorm:"not null;uniqueIndex:idx_pages_site_slug" json:"slug"`

	Type    string `gorm:"not null;default:'custom'" json:"type"`
	Title   string `gorm:"not null" json:"title"`
	Visible bool   `gorm:"not null;default:true" json:"visible"`

	Blocks []blocks.BlockInstance `gorm:"foreignKey:PageID;references:ID;constraint:OnDelete:CASCADE;" json:"blocks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Page) IsLayout() bool {
	return p.Slug == LayoutSlug
}
