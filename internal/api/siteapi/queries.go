package siteapi

import (
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/pages"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/sites"

	"gorm.io/gorm"
)

func ownerSitesQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&sites.Site{}).
		Where("owner_id = ? AND status <> ?", userID, sites.StatusArchived)
}

func sitePagesQuery(db *gorm.DB, siteID uint) *gorm.DB {
	return db.Model(&pages.Page{}).Where("site_id = ?", siteID)
}

func orderedBlocks(db *gorm.DB) *gorm.DB {
	return db.Order("pinned DESC, sort_index ASC")
}
