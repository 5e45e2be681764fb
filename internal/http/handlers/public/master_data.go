package public

import (
	"github.com/peptide-store/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListShipmentMethods 配送方式列表
func (h *Handler) ListShipmentMethods(c *gin.Context) {
	methods, err := h.MasterDataService.ListShipmentMethods(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch shipment methods", err)
		return
	}
	response.Success(c, "Shipment methods fetched successfully", methods)
}

// ListPaymentMethods 支付方式列表
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.MasterDataService.ListPaymentMethods(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch payment methods", err)
		return
	}
	response.Success(c, "Payment methods fetched successfully", methods)
}
