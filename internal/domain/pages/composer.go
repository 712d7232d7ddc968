package pages

import (
	"errors"
	"log"
	"sort"

	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/apperr"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/blocks"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"

	"gorm.io/gorm"
)

/*
	Page composer
	-------------
	Resolves "which page, which blocks, in which order" for one render.
	Page row and block rows are read inside a single transaction so a
	concurrent editor save can never leak a half-written block list into
	a render.
*/

type ComposeOptions struct {
	// Authoring renders invisible pages too (editor / preview capacity).
	Authoring bool
	// BasePath is the mount-aware prefix links are rewritten against.
	BasePath string
}

type ComposedBlock struct {
	ID       string         `json:"id"`
	Template string         `json:"template"`
	Variant  string         `json:"variant"`
	Pinned   bool           `json:"pinned"`
	Slot     string         `json:"slot,omitempty"`
	Props    map[string]any `json:"props"`
}

type ComposedPage struct {
	Page   Page            `json:"page"`
	Blocks []ComposedBlock `json:"blocks"`
}

// ComposePage loads the page for slug within site and assembles its block
// sequence: layout header blocks, then the page's own unpinned blocks by
// ascending sort index, then layout footer blocks.
func ComposePage(db *gorm.DB, site sites.Site, slug string, opts ComposeOptions) (*ComposedPage, error) {
	if slug == LayoutSlug {
		// layout-only slug, refuse standalone rendering
		return nil, apperr.ErrNotFound
	}

	var page Page
	var layoutBlocks, ownBlocks []blocks.BlockInstance

	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := findPage(tx, site.ID, slug)
		if err != nil {
			return err
		}
		if !p.Visible && !opts.Authoring {
			return apperr.ErrNotFound
		}
		page = *p

		if err := tx.
			Where("page_id = ? AND pinned = false", page.ID).
			Order("sort_index ASC").
			Find(&ownBlocks).Error; err != nil {
			return err
		}

		var layout Page
		err = tx.First(&layout, "site_id = ? AND slug = ?", site.ID, LayoutSlug).Error
		if err == nil {
			if err := tx.
				Where("page_id = ? AND pinned = true", layout.ID).
				Order("sort_index ASC").
				Find(&layoutBlocks).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ordered := OrderBlocks(layoutBlocks, ownBlocks)

	out := &ComposedPage{Page: page, Blocks: make([]ComposedBlock, 0, len(ordered))}
	for _, b := range ordered {
		tmpl, ok := blocks.Get(b.TemplateKey)
		if !ok {
			// template removed from the catalog: skip, don't fail the page
			log.Printf("compose: skipping block %s, unknown template %q", b.ID, b.TemplateKey)
			continue
		}
		props := blocks.ApplyDefaults(tmpl, blocks.DecodeProps(b.Props))
		if opts.BasePath != "" {
			sites.RewriteLinks(opts.BasePath, props)
		}
		out.Blocks = append(out.Blocks, ComposedBlock{
			ID:       b.ID,
			Template: b.TemplateKey,
			Variant:  blocks.ResolveVariant(tmpl, props),
			Pinned:   b.Pinned,
			Slot:     b.PinnedSlot,
			Props:    props,
		})
	}

	return out, nil
}

// findPage implements home resolution: an empty slug prefers the page with
// an explicit home type over a page merely slugged "home".
func findPage(tx *gorm.DB, siteID uint, slug string) (*Page, error) {
	var page Page

	if slug == "" {
		err := tx.First(&page, "site_id = ? AND type = ?", siteID, TypeHome).Error
		if err == nil {
			return &page, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		slug = "home"
	}

	err := tx.First(&page, "site_id = ? AND slug = ?", siteID, slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// OrderBlocks merges layout-pinned blocks with a page's own unpinned blocks
// into the deterministic render order: header slot < unpinned (ascending
// sort index, id as tiebreak) < footer slot. Reorder keeps indexes tie-free,
// but rows written before that guard existed may still collide, so the
// tiebreak makes the order a function of the set alone.
func OrderBlocks(layout, own []blocks.BlockInstance) []blocks.BlockInstance {
	var header, footer []blocks.BlockInstance
	for _, b := range layout {
		switch b.PinnedSlot {
		case blocks.SlotFooter:
			footer = append(footer, b)
		default:
			header = append(header, b)
		}
	}

	byIndexThenID := func(s []blocks.BlockInstance) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].SortIndex != s[j].SortIndex {
				return s[i].SortIndex < s[j].SortIndex
			}
			return s[i].ID < s[j].ID
		}
	}
	sort.Slice(header, byIndexThenID(header))
	sort.Slice(footer, byIndexThenID(footer))

	unpinned := make([]blocks.BlockInstance, 0, len(own))
	for _, b := range own {
		if !b.Pinned {
			unpinned = append(unpinned, b)
		}
	}
	sort.Slice(unpinned, byIndexThenID(unpinned))

	out := make([]blocks.BlockInstance, 0, len(header)+len(unpinned)+len(footer))
	out = append(out, header...)
	out = append(out, unpinned...)
	out = append(out, footer...)
	return out
}
