package mysql

import (
	"context"
	"errors"
	"log"

	"record-store/internal/domain"
	"record-store/internal/repository"

	"gorm.io/gorm"
)

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) GetProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("Album.Artist").
		First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("GetProduct error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) LowStock(ctx context.Context, threshold int64) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Preload("Album.Artist").
		Where("quantity <= ?", threshold).
		Order("quantity ASC").
		Find(&products).Error
	if err != nil {
		log.Printf("LowStock error: %v", err)
		return nil, err
	}
	return products, nil
}
