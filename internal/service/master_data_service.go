package service

import (
	"context"
	"time"

	"github.com/peptide-store/internal/cache"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/repository"
)

// PaymentMethodOption 前台可见的支付方式
type PaymentMethodOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// MasterDataService 配送方式与支付方式只读服务
type MasterDataService struct {
	repo  repository.MasterDataRepository
	store *cache.Store
	ttl   time.Duration
}

// NewMasterDataService 创建主数据服务
func NewMasterDataService(repo repository.MasterDataRepository, store *cache.Store, ttlSeconds int) *MasterDataService {
	return &MasterDataService{
		repo:  repo,
		store: store,
		ttl:   resolveCacheTTL(ttlSeconds),
	}
}

// ListShipmentMethods 启用的配送方式，按运费升序
func (s *MasterDataService) ListShipmentMethods(ctx context.Context) ([]models.ShipmentMethod, error) {
	var cached []models.ShipmentMethod
	if hit, err := s.store.GetJSON(ctx, cache.KeyShipmentMethods, &cached); err != nil {
		logger.Warnw("master_data_cache_read_failed", "key", cache.KeyShipmentMethods, "error", err)
	} else if hit {
		return cached, nil
	}

	methods, err := s.repo.ListActiveShipmentMethods()
	if err != nil {
		return nil, err
	}
	if methods == nil {
		methods = []models.ShipmentMethod{}
	}
	if err := s.store.SetJSON(ctx, cache.KeyShipmentMethods, methods, s.ttl); err != nil {
		logger.Warnw("master_data_cache_write_failed", "key", cache.KeyShipmentMethods, "error", err)
	}
	return methods, nil
}

// ListPaymentMethods 启用的支付方式，仅返回 id 与名称
func (s *MasterDataService) ListPaymentMethods(ctx context.Context) ([]PaymentMethodOption, error) {
	var cached []PaymentMethodOption
	if hit, err := s.store.GetJSON(ctx, cache.KeyPaymentMethods, &cached); err != nil {
		logger.Warnw("master_data_cache_read_failed", "key", cache.KeyPaymentMethods, "error", err)
	} else if hit {
		return cached, nil
	}

	methods, err := s.repo.ListActivePaymentMethods()
	if err != nil {
		return nil, err
	}
	options := make([]PaymentMethodOption, 0, len(methods))
	for _, method := range methods {
		options = append(options, PaymentMethodOption{ID: method.ID, Name: method.Name})
	}
	if err := s.store.SetJSON(ctx, cache.KeyPaymentMethods, options, s.ttl); err != nil {
		logger.Warnw("master_data_cache_write_failed", "key", cache.KeyPaymentMethods, "error", err)
	}
	return options, nil
}

// ResolveShipmentFee 查询配送方式运费，不存在或未启用返回 ErrShipmentMethodNotFound
func (s *MasterDataService) ResolveShipmentFee(shipmentMethodID uint) (*models.ShipmentMethod, error) {
	return resolveShipmentMethod(s.repo, shipmentMethodID)
}

func resolveShipmentMethod(repo repository.MasterDataRepository, id uint) (*models.ShipmentMethod, error) {
	if id == 0 {
		return nil, ErrShipmentMethodNotFound
	}
	method, err := repo.GetActiveShipmentMethod(id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, ErrShipmentMethodNotFound
	}
	return method, nil
}

func resolvePaymentMethod(repo repository.MasterDataRepository, id uint) (*models.PaymentMethod, error) {
	if id == 0 {
		return nil, ErrPaymentMethodNotFound
	}
	method, err := repo.GetActivePaymentMethod(id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, ErrPaymentMethodNotFound
	}
	return method, nil
}
