package mysql

import (
	"context"
	"errors"
	"fmt"
	"log"

	"record-store/internal/domain"
	"record-store/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// CreateOrder writes the order row, its items (via the association) and the
// per-product stock decrements in one transaction. Any failure rolls the whole
// thing back: no order, no items, no inventory change.
func (r *orderRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			log.Printf("order create error: %v", err)
			return err
		}

		for _, item := range order.Items {
			if err := decrementStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUserID(ctx context.Context, userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("FindByUserID error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) List(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []domain.Order
	if err := q.Find(&out).Error; err != nil {
		log.Printf("List error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	type row struct {
		Status domain.OrderStatus
		Count  int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// UpdateStatus locks the order row for the duration of the transaction so the
// old-status read, the transition check and any restock are serialized against
// concurrent updates of the same order. Re-applying the current status is a
// no-op and never restocks twice.
func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, newStatus domain.OrderStatus) (*domain.Order, domain.OrderStatus, error) {
	var order domain.Order
	var oldStatus domain.OrderStatus

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			First(&order, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		oldStatus = order.Status
		if order.Status == newStatus {
			return nil
		}
		if !domain.CanTransition(order.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, newStatus)
		}

		if newStatus == domain.StatusCancelled {
			for _, item := range order.Items {
				// weak reference: a since-deleted product affects zero rows,
				// which mirrors the storefront tolerating missing products
				if err := incrementStock(tx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}

		// updating through the loaded model keeps the returned struct in step
		// with the row, updated_at included
		return tx.Model(&order).Update("status", newStatus).Error
	})
	if err != nil {
		return nil, "", err
	}
	return &order, oldStatus, nil
}
