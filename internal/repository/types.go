package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Category   string
	Search     string
	OnlyActive bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	Keyword  string
}

// PromotionListFilter 查询促销列表的过滤条件
type PromotionListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	IsActive *bool
}
