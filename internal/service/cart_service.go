package service

import (
	"time"

	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/repository"
)

// CartProductView 购物车中的商品行
type CartProductView struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	Price       models.Money `json:"price"`
	FilePath    string       `json:"file_path"`
}

// CartView 购物车响应，价格实时读取商品
type CartView struct {
	ID       uint              `json:"id"`
	Products []CartProductView `json:"products"`
	Subtotal models.Money      `json:"subtotal"`
}

// CartService 活跃购物车生命周期
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

// GetActiveCart 获取用户活跃购物车，不存在时返回 nil
// 已下架或删除的商品不展示，也不计入小计
func (s *CartService) GetActiveCart(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetActiveWithItems(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, nil
	}

	view := &CartView{ID: cart.ID, Products: make([]CartProductView, 0, len(cart.Items))}
	lines := make([]PricedLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		product := item.Product
		if product == nil || !product.IsActive || product.DeletedAt.Valid {
			continue
		}
		view.Products = append(view.Products, CartProductView{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Quantity:    item.Quantity,
			Price:       product.Price,
			FilePath:    product.FilePath,
		})
		lines = append(lines, PricedLine{ProductID: product.ID, Quantity: item.Quantity, UnitPrice: product.Price})
	}
	view.Subtotal = models.NewMoneyFromDecimal(ComputeSubtotal(lines))
	return view, nil
}

// AddItem 加入购物车，已存在的商品行累加数量；quantity<=0 时按 1 处理
func (s *CartService) AddItem(userID, productID uint, quantity int) error {
	if productID == 0 {
		return ErrProductRequired
	}
	if quantity <= 0 {
		quantity = 1
	}
	product, err := s.productRepo.GetActiveByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	cart, err := s.findOrCreateActiveCart(userID)
	if err != nil {
		return err
	}

	item, err := s.cartRepo.GetItem(cart.ID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		createErr := s.cartRepo.CreateItem(&models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		})
		if createErr == nil {
			return s.cartRepo.Touch(cart.ID, userID, s.now())
		}
		if !repository.IsUniqueViolation(createErr) {
			return createErr
		}
		// 并发加入同一商品，回读后累加
		item, err = s.cartRepo.GetItem(cart.ID, productID)
		if err != nil {
			return err
		}
		if item == nil {
			return createErr
		}
	}
	if err := s.cartRepo.IncrementItem(item.ID, quantity); err != nil {
		return err
	}
	return s.cartRepo.Touch(cart.ID, userID, s.now())
}

// UpdateItemQuantity 设置商品数量
func (s *CartService) UpdateItemQuantity(userID, productID uint, quantity int) error {
	if productID == 0 {
		return ErrProductRequired
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartNotFound
	}
	affected, err := s.cartRepo.UpdateItemQuantity(cart.ID, productID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return s.cartRepo.Touch(cart.ID, userID, s.now())
}

// RemoveItem 移除商品行
func (s *CartService) RemoveItem(userID, productID uint) error {
	if productID == 0 {
		return ErrProductRequired
	}
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartNotFound
	}
	affected, err := s.cartRepo.DeleteItem(cart.ID, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return s.cartRepo.Touch(cart.ID, userID, s.now())
}

// findOrCreateActiveCart 懒创建活跃购物车
// 并发首次加购时唯一索引只允许一个创建成功，失败方回读胜出的购物车
func (s *CartService) findOrCreateActiveCart(userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart, err = s.cartRepo.CreateActive(userID)
	if err == nil {
		return cart, nil
	}
	if !repository.IsUniqueViolation(err) {
		return nil, err
	}
	existing, readErr := s.cartRepo.GetActiveByUser(userID)
	if readErr != nil {
		return nil, readErr
	}
	if existing == nil {
		return nil, err
	}
	logger.Infow("cart_create_conflict_resolved", "user_id", userID, "cart_id", existing.ID)
	return existing, nil
}
