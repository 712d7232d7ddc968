package siteapi

import (
	"encoding/json"

	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/pages"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"
)

type SiteDTO struct {
	ID           uint    `json:"id"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	CustomDomain *string `json:"custom_domain,omitempty"`
}

type BlockDTO struct {
	ID          string          `json:"id"`
	TemplateKey string          `json:"templateKey"`
	SortIndex   int             `json:"sortIndex"`
	Pinned      bool            `json:"pinned"`
	PinnedSlot  string          `json:"pinnedSlot,omitempty"`
	Props       json.RawMessage `json:"props"`
}

type PageDTO struct {
	ID      string     `json:"id"`
	Slug    string     `json:"slug"`
	Type    string     `json:"type"`
	Title   string     `json:"title"`
	Visible bool       `json:"visible"`
	Blocks  []BlockDTO `json:"blocks,omitempty"`
}

func toSiteDTO(s sites.Site) SiteDTO {
	return SiteDTO{
		ID:           s.ID,
		Slug:         s.Slug,
		Name:         s.Name,
		Status:       s.Status,
		CustomDomain: s.CustomDomain,
	}
}

func toPageDTO(p pages.Page) PageDTO {
	dto := PageDTO{
		ID:      p.ID,
		Slug:    p.Slug,
		Type:    p.Type,
		Title:   p.Title,
		Visible: p.Visible,
		Blocks:  make([]BlockDTO, 0, len(p.Blocks)),
	}
	for _, b := range p.Blocks {
		dto.Blocks = append(dto.Blocks, BlockDTO{
			ID:          b.ID,
			TemplateKey: b.TemplateKey,
			SortIndex:   b.SortIndex,
			Pinned:      b.Pinned,
			PinnedSlot:  b.PinnedSlot,
			Props:       b.Props,
		})
	}
	return dto
}
