package blocks

import (
	"encoding/json"

	"gorm.io/gorm"
)

/*
	Block template registry
	-----------------------
	The catalog is defined in code and shared by every site. The rendering
	path only ever reads it. Schema here is deliberately loose: a map of
	prop name -> default value. Historical instances that no longer match
	degrade to these defaults instead of failing the page.
*/

const (
	CategoryLayout   = "layout"
	CategoryContent  = "content"
	CategoryCommerce = "commerce"
)

type Template struct {
	Key      string `json:"key"`
	Category string `json:"category"`

	// Defaults double as the schema description: known props and the value
	// used when an instance is missing or mistypes one.
	Defaults map[string]any `json:"defaults"`

	Variants       []string `json:"variants"`
	DefaultVariant string   `json:"default_variant"`

	Preview string `json:"preview,omitempty"`
}

var catalog = []Template{
	{
		Key:      "header",
		Category: CategoryLayout,
		Defaults: map[string]any{
			"title": "",
			"links": []any{},
		},
		Variants:       []string{"classic", "centered"},
		DefaultVariant: "classic",
		Preview:        "/previews/header.png",
	},
	{
		Key:      "footer",
		Category: CategoryLayout,
		Defaults: map[string]any{
			"text":  "",
			"links": []any{},
		},
		Variants:       []string{"simple", "columns"},
		DefaultVariant: "simple",
		Preview:        "/previews/footer.png",
	},
	{
		Key:      "hero",
		Category: CategoryContent,
		Defaults: map[string]any{
			"title":    "",
			"subtitle": "",
			"image":    "",
			"cta":      map[string]any{"label": "", "href": ""},
		},
		Variants:       []string{"banner", "split", "minimal"},
		DefaultVariant: "banner",
		Preview:        "/previews/hero.png",
	},
	{
		Key:      "text",
		Category: CategoryContent,
		Defaults: map[string]any{
			"body": "",
		},
		Variants:       []string{"plain", "quote"},
		DefaultVariant: "plain",
	},
	{
		Key:      "image",
		Category: CategoryContent,
		Defaults: map[string]any{
			"src":     "",
			"alt":     "",
			"caption": "",
		},
		Variants:       []string{"full", "inset"},
		DefaultVariant: "full",
	},
	{
		Key:      "gallery",
		Category: CategoryContent,
		Defaults: map[string]any{
			"images": []any{},
		},
		Variants:       []string{"grid", "carousel"},
		DefaultVariant: "grid",
		Preview:        "/previews/gallery.png",
	},
	{
		Key:      "product-grid",
		Category: CategoryCommerce,
		Defaults: map[string]any{
			"title": "",
			"limit": float64(12),
		},
		Variants:       []string{"grid", "list"},
		DefaultVariant: "grid",
		Preview:        "/previews/product-grid.png",
	},
	{
		Key:      "cart-summary",
		Category: CategoryCommerce,
		Defaults: map[string]any{
			"empty_text": "Your cart is empty",
		},
		Variants:       []string{"table", "compact"},
		DefaultVariant: "table",
	},
	{
		Key:      "profile-form",
		Category: CategoryCommerce,
		Defaults: map[string]any{
			"title": "Your profile",
		},
		Variants:       []string{"full"},
		DefaultVariant: "full",
	},
}

var byKey = func() map[string]Template {
	m := make(map[string]Template, len(catalog))
	for _, t := range catalog {
		m[t.Key] = t
	}
	return m
}()

// List returns the full catalog in declaration order.
func List() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Get looks up one template by key.
func Get(key string) (Template, bool) {
	t, ok := byKey[key]
	return t, ok
}

// SeedTemplates upserts the catalog into the read-only mirror table.
func SeedTemplates(db *gorm.DB) error {
	for _, t := range catalog {
		schema, err := json.Marshal(t.Defaults)
		if err != nil {
			return err
		}
		rec := TemplateRecord{
			Key:      t.Key,
			Category: t.Category,
			Schema:   schema,
			Preview:  t.Preview,
		}
		if err := db.Save(&rec).Error; err != nil {
			return err
		}
	}
	return nil
}
