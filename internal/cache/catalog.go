package cache

import "fmt"

// 商品目录与主数据缓存 key
const (
	KeyProductList     = "catalog:products"
	KeyShipmentMethods = "master:shipment_methods"
	KeyPaymentMethods  = "master:payment_methods"
)

// ProductKey 单个商品缓存 key
func ProductKey(id uint) string {
	return fmt.Sprintf("catalog:product:%d", id)
}

// ProductListKey 带过滤条件的商品列表缓存 key
func ProductListKey(category, search string) string {
	if category == "" && search == "" {
		return KeyProductList
	}
	return fmt.Sprintf("%s:%s:%s", KeyProductList, category, search)
}
