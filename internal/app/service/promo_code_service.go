package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/pkg/adminapi"
)

// PromoCodeInput is the promo code form as submitted
type PromoCodeInput struct {
	Code           string             `json:"code"`
	DiscountType   model.DiscountType `json:"discountType"`
	DiscountValue  FormValue          `json:"discountValue"`
	MinOrderAmount FormValue          `json:"minOrderAmount"`
	MaxUses        FormValue          `json:"maxUses"`
	ExpiresAt      *time.Time         `json:"expiresAt"`
	IsActive       *bool              `json:"isActive"`
}

type PromoCodeService interface {
	List(ctx context.Context, sess *adminapi.Session) ([]model.PromoCode, error)
	Save(ctx context.Context, sess *adminapi.Session, id string, input PromoCodeInput) ([]model.PromoCode, error)
	Delete(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.PromoCode, error)
}

type promoCodeService struct {
	repo  repository.PromoCodeRepository
	guard *SubmitGuard
}

func NewPromoCodeService(repo repository.PromoCodeRepository, guard *SubmitGuard) PromoCodeService {
	return &promoCodeService{repo: repo, guard: guard}
}

// BuildPromoCode upper-cases the code and validates the discount
func BuildPromoCode(input PromoCodeInput) (*model.PromoCode, error) {
	promo := &model.PromoCode{
		Code:         strings.ToUpper(strings.TrimSpace(input.Code)),
		DiscountType: model.DiscountType(strings.ToUpper(string(input.DiscountType))),
		ExpiresAt:    input.ExpiresAt,
		IsActive:     true,
	}
	if input.IsActive != nil {
		promo.IsActive = *input.IsActive
	}

	if promo.Code == "" {
		return nil, invalid("code", "Введите промокод")
	}
	if promo.DiscountType != model.DiscountPercent && promo.DiscountType != model.DiscountFixed {
		return nil, invalid("discountType", "Выберите тип скидки")
	}

	value, ok := parseMoney(input.DiscountValue)
	if !ok || !value.IsPositive() {
		return nil, invalid("discountValue", "Размер скидки должен быть больше нуля")
	}
	if promo.DiscountType == model.DiscountPercent && value.GreaterThan(model.NewMoneyFromInt(100)) {
		return nil, invalid("discountValue", "Скидка должна быть от 0 до 100")
	}
	promo.DiscountValue = value

	if input.MinOrderAmount.Trimmed() != "" {
		minAmount, ok := parseMoney(input.MinOrderAmount)
		if !ok {
			return nil, invalid("minOrderAmount", "Минимальная сумма должна быть неотрицательным числом")
		}
		promo.MinOrderAmount = &minAmount
	}
	if raw := input.MaxUses.Trimmed(); raw != "" {
		maxUses, err := strconv.Atoi(raw)
		if err != nil || maxUses < 1 {
			return nil, invalid("maxUses", "Лимит использований должен быть целым положительным числом")
		}
		promo.MaxUses = &maxUses
	}
	return promo, nil
}

func (s *promoCodeService) List(ctx context.Context, sess *adminapi.Session) ([]model.PromoCode, error) {
	return s.repo.List(ctx, sess)
}

func (s *promoCodeService) Save(ctx context.Context, sess *adminapi.Session, id string, input PromoCodeInput) ([]model.PromoCode, error) {
	promo, err := BuildPromoCode(input)
	if err != nil {
		return nil, err
	}

	release, err := s.guard.Acquire(submitKey(sess.ID(), "promo", id))
	if err != nil {
		return nil, err
	}
	defer release()

	if id == "" {
		_, err = s.repo.Create(ctx, sess, promo)
	} else {
		_, err = s.repo.Update(ctx, sess, id, promo)
	}
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, sess)
}

func (s *promoCodeService) Delete(ctx context.Context, sess *adminapi.Session, id string, confirmed bool) ([]model.PromoCode, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}
	if err := s.repo.Delete(ctx, sess, id); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, sess)
}
