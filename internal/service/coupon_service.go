package service

import (
	"context"
	"fmt"
	"time"

	"bakery-kart/internal/coupon"
	"bakery-kart/internal/model"
	"bakery-kart/internal/pricing"

	"github.com/rs/zerolog"
)

// couponService implements CouponService.
type couponService struct {
	catalog coupon.Catalog
	saved   coupon.SavedStore
	now     func() time.Time
	logger  zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(catalog coupon.Catalog, saved coupon.SavedStore, logger zerolog.Logger) CouponService {
	return &couponService{
		catalog: catalog,
		saved:   saved,
		now:     time.Now,
		logger:  logger.With().Str("service", "coupon").Logger(),
	}
}

func (s *couponService) ListPromotions(_ context.Context) []coupon.Promotion {
	return coupon.ActivePromotions(s.catalog, s.now())
}

func (s *couponService) ListSaved(ctx context.Context, userID string) ([]coupon.SavedCoupon, error) {
	list, err := s.saved.List(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list saved coupons")
		return nil, fmt.Errorf("failed to list saved coupons: %w", err)
	}
	return list, nil
}

func (s *couponService) Save(ctx context.Context, userID, code string) (*coupon.SavedCoupon, bool, error) {
	code = pricing.NormalizeCode(code)
	if code == "" {
		return nil, false, model.NewMissingFieldError("code")
	}

	promo, ok := s.catalog.Lookup(code)
	if !ok || !promo.Active(s.now()) {
		s.logger.Debug().Str("code", code).Msg("promotion not in catalogue")
		return nil, false, model.ErrCouponNotFound
	}

	saved := coupon.SavedCoupon{
		Code:    promo.Code,
		Title:   promo.Title,
		SavedAt: s.now().UTC(),
	}

	added, err := s.saved.Save(ctx, userID, saved)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("code", code).Msg("failed to save coupon")
		return nil, false, fmt.Errorf("failed to save coupon: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("code", code).
		Bool("added", added).
		Msg("coupon save requested")

	return &saved, added, nil
}

func (s *couponService) Remove(ctx context.Context, userID, code string) error {
	code = pricing.NormalizeCode(code)
	if code == "" {
		return model.NewMissingFieldError("code")
	}

	saved, err := s.saved.IsSaved(ctx, userID, code)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("code", code).Msg("failed to check saved coupon")
		return fmt.Errorf("failed to remove saved coupon: %w", err)
	}
	if !saved {
		return model.ErrCouponNotFound
	}

	if err := s.saved.Remove(ctx, userID, code); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("code", code).Msg("failed to remove saved coupon")
		return fmt.Errorf("failed to remove saved coupon: %w", err)
	}
	return nil
}
