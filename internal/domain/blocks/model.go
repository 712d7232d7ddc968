package blocks

import (
	"encoding/json"
	"time"
)

const (
	SlotHeader = "header"
	SlotFooter = "footer"
)

// BlockInstance is one configured occurrence of a catalog template on a page.
// SortIndex orders unpinned blocks; pinned blocks live in a fixed slot and
// are excluded from reordering.
type BlockInstance struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	PageID      string `gorm:"type:uuid;not null;index" json:"page_id"`
	TemplateKey string `gorm:"not null;index" json:"template_key"`

	Props json.RawMessage `gorm:"type:jsonb;not null;default:'{}'" json:"props"`

	SortIndex  int    `gorm:"not null;default:0;index" json:"sort_index"`
	Pinned     bool   `gorm:"not null;default:false" json:"pinned"`
	PinnedSlot string `gorm:"not null;default:''" json:"pinned_slot,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateRecord mirrors the in-code catalog into a read-only table so the
// editor can list templates with plain DB queries. Seeded at startup,
// never written by the composition layer.
type TemplateRecord struct {
	Key      string          `gorm:"primaryKey" json:"key"`
	Category string          `gorm:"not null;index" json:"category"`
	Schema   json.RawMessage `gorm:"type:jsonb;not null;default:'{}'" json:"schema"`
	Preview  string          `json:"preview,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
