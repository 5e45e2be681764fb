package service

import (
	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PricedLine 一行计价条目，单价取自当前商品
type PricedLine struct {
	ProductID   uint
	Name        string
	Description string
	FilePath    string
	Quantity    int
	UnitPrice   models.Money
}

// LineTotal 单价 × 数量
func (l PricedLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Quote 价格试算结果，Total = Subtotal + DeliveryFee - Discount
type Quote struct {
	Subtotal    models.Money      `json:"subtotal"`
	DeliveryFee models.Money      `json:"delivery_fee"`
	Discount    models.Money      `json:"discount"`
	Total       models.Money      `json:"total"`
	Promotion   *PromotionSummary `json:"promotion"`
}

// ComputeSubtotal Σ(单价 × 数量)
func ComputeSubtotal(lines []PricedLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	return subtotal.Round(2)
}

// ApplyDiscount 计算优惠金额
// discount 按百分比且不超过小计；fixed 取 min(value, 小计)；free_shipping 等于运费
func ApplyDiscount(subtotal, shipmentFee decimal.Decimal, promotion *models.Promotion) decimal.Decimal {
	if promotion == nil {
		return decimal.Zero
	}
	value := promotion.Value.Decimal
	if value.IsNegative() {
		value = decimal.Zero
	}
	var discount decimal.Decimal
	switch promotion.Type {
	case constants.PromotionTypeDiscount:
		discount = subtotal.Mul(value).Div(hundred)
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	case constants.PromotionTypeFixed:
		discount = decimal.Min(value, subtotal)
	case constants.PromotionTypeFreeShipping:
		discount = shipmentFee
	default:
		discount = decimal.Zero
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount.Round(2)
}

// BuildQuote 组合小计、运费与优惠得到总价，总价不小于 0
func BuildQuote(subtotal, shipmentFee decimal.Decimal, promotion *models.Promotion) Quote {
	discount := ApplyDiscount(subtotal, shipmentFee, promotion)
	total := subtotal.Add(shipmentFee).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	quote := Quote{
		Subtotal:    models.NewMoneyFromDecimal(subtotal),
		DeliveryFee: models.NewMoneyFromDecimal(shipmentFee),
		Discount:    models.NewMoneyFromDecimal(discount),
		Total:       models.NewMoneyFromDecimal(total),
	}
	if promotion != nil {
		quote.Promotion = SummarizePromotion(promotion)
	}
	return quote
}

// pricedLinesFromCart 从购物车明细生成计价条目，商品缺失或下架时返回 ErrProductNotAvailable
func pricedLinesFromCart(cart *models.Cart) ([]PricedLine, error) {
	lines := make([]PricedLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		product := item.Product
		if product == nil || !product.IsActive || product.DeletedAt.Valid {
			return nil, ErrProductNotAvailable
		}
		lines = append(lines, PricedLine{
			ProductID:   item.ProductID,
			Name:        product.Name,
			Description: product.Description,
			FilePath:    product.FilePath,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
		})
	}
	return lines, nil
}
