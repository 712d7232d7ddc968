package storefront

import (
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/pages"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"
)

type SiteDTO struct {
	ID     uint   `json:"id"`
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type PageDTO struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Visible bool   `json:"visible"`
}

type ResolveResponse struct {
	Site        SiteDTO `json:"site"`
	Mount       string  `json:"mount"`
	BasePath    string  `json:"basePath"`
	PageSlug    string  `json:"pageSlug"`
	Unpublished bool    `json:"unpublished,omitempty"`
	RedirectTo  string  `json:"redirectTo,omitempty"`
}

type PageResponse struct {
	Site     SiteDTO               `json:"site"`
	BasePath string                `json:"basePath"`
	Page     PageDTO               `json:"page"`
	Blocks   []pages.ComposedBlock `json:"blocks"`
}

func toSiteDTO(s sites.Site) SiteDTO {
	return SiteDTO{ID: s.ID, Slug: s.Slug, Name: s.Name, Status: s.Status}
}

func toPageDTO(p pages.Page) PageDTO {
	return PageDTO{ID: p.ID, Slug: p.Slug, Type: p.Type, Title: p.Title, Visible: p.Visible}
}
