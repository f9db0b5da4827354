package repository

import (
	"context"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/pkg/adminapi"
)

const promoCodesPath = "/admin/promo-codes"

type PromoCodeRepository interface {
	List(ctx context.Context, sess *adminapi.Session) ([]model.PromoCode, error)
	Create(ctx context.Context, sess *adminapi.Session, promo *model.PromoCode) (*model.PromoCode, error)
	Update(ctx context.Context, sess *adminapi.Session, id string, promo *model.PromoCode) (*model.PromoCode, error)
	Delete(ctx context.Context, sess *adminapi.Session, id string) error
}

type promoCodeRepository struct {
	client *adminapi.Client
}

func NewPromoCodeRepository(client *adminapi.Client) PromoCodeRepository {
	return &promoCodeRepository{client: client}
}

func (r *promoCodeRepository) List(ctx context.Context, sess *adminapi.Session) ([]model.PromoCode, error) {
	return adminapi.List[model.PromoCode](ctx, r.client, sess, promoCodesPath, nil)
}

func (r *promoCodeRepository) Create(ctx context.Context, sess *adminapi.Session, promo *model.PromoCode) (*model.PromoCode, error) {
	created := *promo
	if err := r.client.Post(ctx, sess, promoCodesPath, promo, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *promoCodeRepository) Update(ctx context.Context, sess *adminapi.Session, id string, promo *model.PromoCode) (*model.PromoCode, error) {
	updated := *promo
	if err := r.client.Put(ctx, sess, resourcePath(promoCodesPath, id), promo, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *promoCodeRepository) Delete(ctx context.Context, sess *adminapi.Session, id string) error {
	return r.client.Delete(ctx, sess, resourcePath(promoCodesPath, id))
}
