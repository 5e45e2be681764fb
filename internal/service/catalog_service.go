package service

import (
	"context"
	"strings"
	"time"

	"github.com/peptide-store/internal/cache"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/repository"
)

// CatalogService 商品目录只读服务，Redis 启用时走读缓存
type CatalogService struct {
	productRepo repository.ProductRepository
	store       *cache.Store
	ttl         time.Duration
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(productRepo repository.ProductRepository, store *cache.Store, ttlSeconds int) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		store:       store,
		ttl:         resolveCacheTTL(ttlSeconds),
	}
}

// ListProducts 列出上架商品
func (s *CatalogService) ListProducts(ctx context.Context, category, search string) ([]models.Product, error) {
	category = strings.TrimSpace(category)
	search = strings.TrimSpace(search)
	key := cache.ProductListKey(category, search)

	var cached []models.Product
	if hit, err := s.store.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", key, "error", err)
	} else if hit {
		return cached, nil
	}

	products, err := s.productRepo.List(repository.ProductListFilter{
		Category:   category,
		Search:     search,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	if err := s.store.SetJSON(ctx, key, products, s.ttl); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
	return products, nil
}

// GetProduct 获取上架商品，不存在或已下架返回 ErrProductNotFound
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	key := cache.ProductKey(id)

	var cached models.Product
	if hit, err := s.store.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", key, "error", err)
	} else if hit {
		return &cached, nil
	}

	product, err := s.productRepo.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.store.SetJSON(ctx, key, product, s.ttl); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
	return product, nil
}

func resolveCacheTTL(seconds int) time.Duration {
	if seconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(seconds) * time.Second
}
