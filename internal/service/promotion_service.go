package service

import (
	"strings"
	"time"

	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/repository"

	"github.com/shopspring/decimal"
)

// PromotionSummary 促销码校验结果
type PromotionSummary struct {
	ID          uint         `json:"id"`
	Code        string       `json:"code"`
	Type        string       `json:"type"`
	Value       models.Money `json:"value"`
	Description *string      `json:"description"`
}

// CreatePromotionInput 创建促销码参数
type CreatePromotionInput struct {
	Code        string
	Type        string
	Value       models.Money
	UsageLimit  int
	StartsAt    *time.Time
	ExpiresAt   *time.Time
	Description *string
	IsActive    *bool
	ActorID     uint
}

// PromotionService 促销码校验与管理
type PromotionService struct {
	promotionRepo repository.PromotionRepository
	usageRepo     repository.PromotionUsageRepository
	now           func() time.Time
}

// NewPromotionService 创建促销服务
func NewPromotionService(promotionRepo repository.PromotionRepository, usageRepo repository.PromotionUsageRepository) *PromotionService {
	return &PromotionService{
		promotionRepo: promotionRepo,
		usageRepo:     usageRepo,
		now:           time.Now,
	}
}

// NormalizePromotionCode 去除首尾空白并转大写
func NormalizePromotionCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate 校验促销码对用户是否可用，不写入使用记录
func (s *PromotionService) Validate(code string, userID uint) (*models.Promotion, error) {
	normalized := NormalizePromotionCode(code)
	if normalized == "" {
		return nil, ErrPromotionCodeRequired
	}
	promotion, err := s.promotionRepo.GetRedeemableByCode(normalized, s.now())
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	if err := checkPromotionRedeemable(s.usageRepo, promotion, userID); err != nil {
		return nil, err
	}
	return promotion, nil
}

// checkPromotionRedeemable 检查用户是否已使用以及总次数上限
func checkPromotionRedeemable(usageRepo repository.PromotionUsageRepository, promotion *models.Promotion, userID uint) error {
	used, err := usageRepo.ExistsByPromotionAndUser(promotion.ID, userID)
	if err != nil {
		return err
	}
	if used {
		return ErrPromotionAlreadyUsed
	}
	if promotion.UsageLimit > 0 {
		count, err := usageRepo.CountByPromotion(promotion.ID)
		if err != nil {
			return err
		}
		if count >= int64(promotion.UsageLimit) {
			return ErrPromotionUsageLimitReached
		}
	}
	return nil
}

// List 促销码分页列表
func (s *PromotionService) List(filter repository.PromotionListFilter) ([]models.Promotion, int64, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	return s.promotionRepo.List(filter)
}

// Create 创建促销码
func (s *PromotionService) Create(input CreatePromotionInput) (*models.Promotion, error) {
	code := NormalizePromotionCode(input.Code)
	promotionType := strings.ToLower(strings.TrimSpace(input.Type))
	if code == "" || promotionType == "" {
		return nil, ErrPromotionFieldsRequired
	}
	if !isPromotionTypeValid(promotionType) {
		return nil, ErrPromotionTypeInvalid
	}
	value := input.Value.Decimal
	if value.IsNegative() {
		return nil, ErrPromotionValueInvalid
	}
	if promotionType == constants.PromotionTypeDiscount && value.GreaterThan(hundred) {
		return nil, ErrPromotionValueInvalid
	}
	if promotionType == constants.PromotionTypeFreeShipping {
		value = decimal.Zero
	}
	if input.UsageLimit < 0 {
		return nil, ErrPromotionValueInvalid
	}
	if input.StartsAt != nil && input.ExpiresAt != nil && input.ExpiresAt.Before(*input.StartsAt) {
		return nil, ErrPromotionWindowInvalid
	}

	existing, err := s.promotionRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPromotionCodeExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed != "" {
			description = &trimmed
		}
	}
	promotion := &models.Promotion{
		Code:        code,
		Type:        promotionType,
		Value:       models.NewMoneyFromDecimal(value),
		UsageLimit:  input.UsageLimit,
		StartsAt:    input.StartsAt,
		ExpiresAt:   input.ExpiresAt,
		IsActive:    isActive,
		Description: description,
		CreatedBy:   input.ActorID,
	}
	if err := s.promotionRepo.Create(promotion); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrPromotionCodeExists
		}
		return nil, err
	}
	logger.Infow("promotion_created", "promotion_id", promotion.ID, "code", promotion.Code, "actor_id", input.ActorID)
	return promotion, nil
}

// SetActive 启用或停用促销码
func (s *PromotionService) SetActive(id uint, active bool, actorID uint) error {
	if id == 0 {
		return ErrPromotionNotFound
	}
	affected, err := s.promotionRepo.SetActive(id, active, actorID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPromotionNotFound
	}
	logger.Infow("promotion_toggled", "promotion_id", id, "is_active", active, "actor_id", actorID)
	return nil
}

func isPromotionTypeValid(promotionType string) bool {
	for _, item := range constants.PromotionTypes {
		if item == promotionType {
			return true
		}
	}
	return false
}

// SummarizePromotion 促销摘要，nil 返回 nil
func SummarizePromotion(promotion *models.Promotion) *PromotionSummary {
	if promotion == nil {
		return nil
	}
	return &PromotionSummary{
		ID:          promotion.ID,
		Code:        promotion.Code,
		Type:        promotion.Type,
		Value:       promotion.Value,
		Description: promotion.Description,
	}
}
