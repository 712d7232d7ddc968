package sites

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Site struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Unique only among live sites: an archived site keeps its slug for the
	// record, but releases it for reuse.
	Slug string `gorm:"not null;uniqueIndex:idx_sites_active_slug,where:status <> 'archived'" json:"slug"`
	Name string `gorm:"not null" json:"name"`

	CustomDomain *string `gorm:"column:custom_domain;uniqueIndex:idx_sites_custom_domain" json:"custom_domain,omitempty"`

	Status  string `gorm:"not null;default:'draft';index" json:"status"`
	OwnerID uint   `gorm:"not null;index" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Site) IsPublished() bool {
	return s.Status == StatusPublished
}

func (s Site) IsArchived() bool {
	return s.Status == StatusArchived
}
