package carts

import (
	"errors"
	"time"

	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/apperr"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/products"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrCreate returns the cart for (site, owner), creating it lazily on
// first use. A concurrent create losing the unique-index race falls back
// to reading the winner's row.
func GetOrCreate(db *gorm.DB, siteID uint, owner Owner) (*Cart, error) {
	if !owner.Valid() {
		return nil, apperr.ErrValidation
	}

	cart, err := find(db, siteID, owner)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := Cart{SiteID: siteID}
	if owner.IsAnonymous() {
		sid := owner.sessionID
		fresh.SessionID = &sid
	} else {
		cid := owner.customerID
		fresh.CustomerID = &cid
	}

	if err := db.Create(&fresh).Error; err != nil {
		// lost the race against a sibling request, the row exists now
		return find(db, siteID, owner)
	}
	fresh.Items = []CartItem{}
	return &fresh, nil
}

// Find returns the cart for (site, owner) with items, or apperr.ErrNotFound.
func Find(db *gorm.DB, siteID uint, owner Owner) (*Cart, error) {
	cart, err := find(db, siteID, owner)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	return cart, err
}

func find(db *gorm.DB, siteID uint, owner Owner) (*Cart, error) {
	q := db.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("added_at ASC, id ASC") })
	var cart Cart
	var err error
	if owner.IsAnonymous() {
		err = q.First(&cart, "site_id = ? AND session_id = ?", siteID, owner.sessionID).Error
	} else {
		err = q.First(&cart, "site_id = ? AND customer_id = ?", siteID, owner.customerID).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem adds qty of a product to the cart, freezing the unit price at
// the current product price. Quantities are strictly additive: the update
// is a single `quantity = quantity + ?` statement, never a read-modify-write
// overwrite, so concurrent adds cannot lose each other.
func AddItem(db *gorm.DB, cartID uint, p products.Product, qty int) (*CartItem, error) {
	if qty < 1 {
		return nil, apperr.ErrValidation
	}

	bump := func() (int64, error) {
		res := db.Model(&CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, p.ID).
			Update("quantity", gorm.Expr("quantity + ?", qty))
		return res.RowsAffected, res.Error
	}

	affected, err := bump()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		item := CartItem{
			CartID:    cartID,
			ProductID: p.ID,
			UnitPrice: p.Price,
			Quantity:  qty,
			AddedAt:   time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			// a sibling insert won the (cart_id, product_id) race
			if _, err2 := bump(); err2 != nil {
				return nil, err2
			}
		}
	}

	var item CartItem
	if err := db.First(&item, "cart_id = ? AND product_id = ?", cartID, p.ID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity sets an item's quantity (>= 1).
func UpdateItemQuantity(db *gorm.DB, cartID, itemID uint, qty int) (*CartItem, error) {
	if qty < 1 {
		return nil, apperr.ErrValidation
	}
	res := db.Model(&CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", qty)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrNotFound
	}
	var item CartItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one item from the cart.
func RemoveItem(db *gorm.DB, cartID, itemID uint) error {
	res := db.Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Clear removes every item but keeps the cart row.
func Clear(db *gorm.DB, cartID uint) error {
	return db.Where("cart_id = ?", cartID).Delete(&CartItem{}).Error
}

// FoldItems merges anonymous items into the authenticated item list. Items
// for the same product sum quantities and keep the authenticated cart's
// frozen unit price; products only in the anonymous cart carry their own
// frozen price over. Pure so the arithmetic is testable in isolation.
func FoldItems(dst, src []CartItem) []CartItem {
	out := make([]CartItem, len(dst))
	copy(out, dst)

	index := make(map[uint]int, len(out))
	for i, it := range out {
		index[it.ProductID] = i
	}

	for _, it := range src {
		if i, ok := index[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		out = append(out, CartItem{
			ProductID: it.ProductID,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			AddedAt:   it.AddedAt,
		})
		index[it.ProductID] = len(out) - 1
	}
	return out
}

// MergeAnonymousCart folds the anonymous cart for (site, sessionID) into the
// customer's cart and deletes the anonymous cart as the last step of the same
// transaction — a retried merge finds nothing left to merge. One automatic
// retry on a lost write race; contents are never half-moved.
func MergeAnonymousCart(db *gorm.DB, siteID uint, sessionID string, customerID uint) error {
	err := mergeOnce(db, siteID, sessionID, customerID)
	if errors.Is(err, apperr.ErrConflict) {
		return mergeOnce(db, siteID, sessionID, customerID)
	}
	return err
}

func mergeOnce(db *gorm.DB, siteID uint, sessionID string, customerID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var anon Cart
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&anon, "site_id = ? AND session_id = ?", siteID, sessionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// nothing to merge (or an earlier attempt already finished)
			return nil
		}
		if err != nil {
			return err
		}

		dst, err := GetOrCreate(tx, siteID, Authenticated(customerID))
		if err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&Cart{}, "id = ?", dst.ID).Error; err != nil {
			return err
		}

		var dstItems, srcItems []CartItem
		if err := tx.Where("cart_id = ?", dst.ID).Find(&dstItems).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", anon.ID).Find(&srcItems).Error; err != nil {
			return err
		}

		for _, it := range FoldItems(dstItems, srcItems) {
			it.CartID = dst.ID
			if err := tx.Save(&it).Error; err != nil {
				return err
			}
		}

		// last step of the transaction: drop the anonymous cart so a retry
		// sees nothing to merge
		if err := tx.Where("cart_id = ?", anon.ID).Delete(&CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&anon).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrConflict
	}
	return err
}
