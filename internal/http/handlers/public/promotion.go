package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/peptide-store/internal/constants"
	handlershared "github.com/peptide-store/internal/http/handlers/shared"
	"github.com/peptide-store/internal/http/response"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/repository"
	"github.com/peptide-store/internal/service"

	"github.com/gin-gonic/gin"
)

// ValidatePromotionRequest 促销码校验请求
type ValidatePromotionRequest struct {
	Code string `json:"code"`
}

// CreatePromotionRequest 创建促销码请求
type CreatePromotionRequest struct {
	Code        string       `json:"code"`
	Type        string       `json:"type"`
	Value       models.Money `json:"value"`
	StartsAt    *time.Time   `json:"startsAt"`
	ExpiresAt   *time.Time   `json:"expiresAt"`
	Description *string      `json:"description"`
	IsActive    *bool        `json:"isActive"`
	UsageLimit  int          `json:"usageLimit"`
}

// TogglePromotionRequest 启停促销码请求
type TogglePromotionRequest struct {
	ID       uint  `json:"id"`
	IsActive *bool `json:"isActive"`
}

// ValidatePromotion 校验促销码，不占用
func (h *Handler) ValidatePromotion(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ValidatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Code is required", nil)
		return
	}
	promotion, err := h.PromotionService.Validate(req.Code, uid)
	if err != nil {
		respondWithMappedError(c, err, promotionValidateErrorRules, response.CodeInternal, "Failed to validate promotion")
		return
	}
	response.Success(c, "Promotion validated successfully", service.SummarizePromotion(promotion))
}

// ListPromotions 促销码分页列表
func (h *Handler) ListPromotions(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, constants.MaxPageSize)
	filter := repository.PromotionListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	}
	if raw := strings.TrimSpace(c.Query("isActive")); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &active
		}
	}
	promotions, total, err := h.PromotionService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch promotions", err)
		return
	}
	response.SuccessWithPage(c, "Promotions fetched successfully", promotions, response.BuildPagination(page, pageSize, total))
}

// CreatePromotion 创建促销码
func (h *Handler) CreatePromotion(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Code and type are required", nil)
		return
	}
	promotion, err := h.PromotionService.Create(service.CreatePromotionInput{
		Code:        req.Code,
		Type:        req.Type,
		Value:       req.Value,
		UsageLimit:  req.UsageLimit,
		StartsAt:    req.StartsAt,
		ExpiresAt:   req.ExpiresAt,
		Description: req.Description,
		IsActive:    req.IsActive,
		ActorID:     uid,
	})
	if err != nil {
		respondWithMappedError(c, err, promotionManageErrorRules, response.CodeInternal, "Failed to create promotion")
		return
	}
	response.Created(c, "Promotion created successfully", gin.H{"id": promotion.ID})
}

// TogglePromotion 启用或停用促销码
func (h *Handler) TogglePromotion(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req TogglePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 || req.IsActive == nil {
		respondError(c, response.CodeBadRequest, "id and isActive are required", nil)
		return
	}
	if err := h.PromotionService.SetActive(req.ID, *req.IsActive, uid); err != nil {
		respondWithMappedError(c, err, promotionManageErrorRules, response.CodeInternal, "Failed to update promotion")
		return
	}
	response.Success(c, "Promotion updated successfully", gin.H{"id": req.ID, "isActive": *req.IsActive})
}
