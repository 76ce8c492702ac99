package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"record-store/internal/domain"
	"record-store/internal/repository"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

// CartService owns the session cart and the read side of the catalog. Product
// lookups go through a short-lived redis cache so repeated add-to-cart clicks
// on a hot release do not hammer the database.
type CartService struct {
	carts       repository.CartStore
	catalog     repository.CatalogRepository
	redisClient *redis.Client
}

func NewCartService(carts repository.CartStore, catalog repository.CatalogRepository) *CartService {
	return &CartService{
		carts:   carts,
		catalog: catalog,
	}
}

func (s *CartService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return s.carts.Get(ctx, sessionID)
}

// AddItem puts a product into the session cart. The unit price and display
// metadata are snapshotted on first insertion; re-adding the same product only
// merges quantities.
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID uint64, quantity int64) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.getProductWithCache(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	image := product.ImgPath
	if image == "" {
		image = product.Album.ImgPath
	}

	cart.Add(domain.CartItem{
		ProductID:   product.ID,
		Title:       product.Album.Title,
		Artist:      product.Album.Artist.Name,
		Image:       image,
		UnitPrice:   product.Price,
		Quantity:    quantity,
		MaxQuantity: product.Quantity,
	})

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID uint64, quantity int64) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.UpdateQuantity(productID, quantity) {
		return nil, domain.ErrItemNotInCart
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID uint64) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.Remove(productID) {
		return nil, domain.ErrItemNotInCart
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetProduct serves the storefront product view.
func (s *CartService) GetProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	product, err := s.getProductWithCache(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// LowStockProducts backs the admin inventory alert view.
func (s *CartService) LowStockProducts(ctx context.Context, threshold int64) ([]domain.Product, error) {
	return s.catalog.LowStock(ctx, threshold)
}

func (s *CartService) getProductWithCache(ctx context.Context, productID uint64) (*domain.Product, error) {
	cacheKey := fmt.Sprintf("product:%d", productID)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var prod domain.Product
			if err := json.Unmarshal([]byte(cached), &prod); err == nil {
				return &prod, nil
			}
		}
	}

	prod, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil && prod != nil {
		if data, err := json.Marshal(prod); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, time.Minute)
		}
	}

	return prod, nil
}

// WarmupProductCache primes the product cache for a set of ids, typically the
// current front-page releases. Lookup failures are logged, not fatal.
func (s *CartService) WarmupProductCache(ctx context.Context, productIDs []uint64) error {
	if s.redisClient == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, id := range productIDs {
		id := id
		g.Go(func() error {
			prod, err := s.catalog.GetProduct(ctx, id)
			if err != nil {
				log.Printf("Failed to warm up cache for product %d: %v", id, err)
				return nil
			}
			if prod != nil {
				cacheKey := fmt.Sprintf("product:%d", id)
				if data, err := json.Marshal(prod); err == nil {
					s.redisClient.Set(ctx, cacheKey, data, 5*time.Minute)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
