package mysql

import (
	"fmt"

	"record-store/internal/domain"

	"gorm.io/gorm"
)

// Stock mutations run as single guarded UPDATEs on the product row and are
// only ever called from inside the order transaction, so a concurrent
// checkout's read-then-write cannot interleave with them.

func decrementStock(tx *gorm.DB, productID uint64, quantity int64) error {
	res := tx.Model(&domain.Product{}).
		Where("id = ? AND quantity >= ?", productID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	// zero rows means the product is gone or the guard failed; either way the
	// checkout must not go through
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", productID, domain.ErrInsufficientStock)
	}
	return nil
}

func incrementStock(tx *gorm.DB, productID uint64, quantity int64) error {
	return tx.Model(&domain.Product{}).
		Where("id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
}
