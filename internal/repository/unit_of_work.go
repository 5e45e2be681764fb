package repository

import "gorm.io/gorm"

// TxRepositories 同一事务内可用的仓库集合
type TxRepositories struct {
	Carts           CartRepository
	Orders          OrderRepository
	PromotionUsages PromotionUsageRepository
}

// UnitOfWork 事务边界，fn 返回错误时整体回滚
type UnitOfWork interface {
	Transaction(fn func(repos TxRepositories) error) error
}

// GormUnitOfWork GORM 实现
type GormUnitOfWork struct {
	db              *gorm.DB
	carts           CartRepository
	orders          OrderRepository
	promotionUsages PromotionUsageRepository
}

// NewUnitOfWork 创建事务执行器
func NewUnitOfWork(db *gorm.DB, carts CartRepository, orders OrderRepository, usages PromotionUsageRepository) *GormUnitOfWork {
	return &GormUnitOfWork{
		db:              db,
		carts:           carts,
		orders:          orders,
		promotionUsages: usages,
	}
}

// Transaction 在数据库事务中执行 fn
func (u *GormUnitOfWork) Transaction(fn func(repos TxRepositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(TxRepositories{
			Carts:           u.carts.WithTx(tx),
			Orders:          u.orders.WithTx(tx),
			PromotionUsages: u.promotionUsages.WithTx(tx),
		})
	})
}
