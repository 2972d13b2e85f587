package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bakery-kart/internal/model"
	"bakery-kart/internal/pricing"
	"bakery-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	profiles  ProfileService
	engine    *pricing.Engine
	now       func() time.Time
	logger    zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	profiles ProfileService,
	engine *pricing.Engine,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		profiles:  profiles,
		engine:    engine,
		now:       time.Now,
		logger:    logger.With().Str("service", "checkout").Logger(),
	}
}

func toLines(items []model.CartItem) []pricing.Line {
	lines := make([]pricing.Line, len(items))
	for i, item := range items {
		lines[i] = pricing.Line{
			ProductName: item.ProductName,
			UnitPrice:   item.Price,
			Quantity:    item.Quantity,
		}
	}
	return lines
}

// price loads the cart and prices it.
func (s *checkoutService) price(ctx context.Context, userID string, in pricing.QuoteInput) ([]model.CartItem, pricing.Quote, error) {
	items, err := s.cartRepo.List(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load cart")
		return nil, pricing.Quote{}, fmt.Errorf("failed to load cart: %w", err)
	}

	q, err := s.quote(ctx, userID, items, in)
	if err != nil {
		return nil, pricing.Quote{}, err
	}
	return items, q, nil
}

// quote adds the birthday status and runs the engine over items.
func (s *checkoutService) quote(ctx context.Context, userID string, items []model.CartItem, in pricing.QuoteInput) (pricing.Quote, error) {
	birthday, err := s.profiles.IsBirthdayMonth(ctx, userID)
	if err != nil {
		return pricing.Quote{}, err
	}

	in.Lines = toLines(items)
	in.IsBirthdayMonth = birthday

	return s.engine.Quote(in), nil
}

func (s *checkoutService) Quote(ctx context.Context, userID string, req *model.QuoteRequest) (*model.QuoteResponse, error) {
	items, q, err := s.price(ctx, userID, pricing.QuoteInput{
		CouponCode:  req.CouponCode,
		AppliedCode: req.AppliedCode,
		DistanceKm:  req.DistanceKm,
	})
	if err != nil {
		return nil, err
	}

	resp := &model.QuoteResponse{Quote: q, Items: items}
	switch {
	case q.Rejection != nil:
		resp.Message = q.Rejection.Message()
	case q.Revocation != nil:
		resp.Message = q.Revocation.Message()
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("applied_code", q.AppliedCode).
		Str("final_price", q.FinalPrice.StringFixed(2)).
		Msg("checkout quoted")

	return resp, nil
}

// PlaceOrder prices the locked cart inside the order transaction, so the
// order covers exactly the lines it removes from the cart.
func (s *checkoutService) PlaceOrder(ctx context.Context, userID string, req *model.PlaceOrderRequest) (*model.OrderResponse, error) {
	if err := validatePlaceOrder(req); err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	items, err := s.cartRepo.ListTx(ctx, tx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if len(items) == 0 {
		err = model.ErrCartEmpty
		return nil, err
	}

	q, err := s.quote(ctx, userID, items, pricing.QuoteInput{
		CouponCode: req.CouponCode,
		DistanceKm: req.DistanceKm,
	})
	if err != nil {
		return nil, err
	}

	if q.Rejection != nil {
		s.logger.Warn().
			Str("user_id", userID).
			Str("coupon_code", q.Rejection.Code).
			Str("reason", string(q.Rejection.Reason)).
			Msg("order blocked by rejected coupon")
		err = model.NewCouponRejectedError(q.Rejection.Message())
		return nil, err
	}

	now := s.now().UTC()
	order := &model.Order{
		ID:             uuid.New(),
		UserID:         userID,
		Status:         model.OrderStatusPending,
		Name:           strings.TrimSpace(req.Name),
		Phone:          strings.TrimSpace(req.Phone),
		Address:        strings.TrimSpace(req.Address),
		Note:           req.Note,
		SlipURL:        strings.TrimSpace(req.SlipURL),
		DistanceKm:     req.DistanceKm,
		Subtotal:       q.Subtotal,
		DiscountAmount: q.Discount,
		ShippingCost:   q.Shipping,
		TotalPrice:     q.FinalPrice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if q.AppliedCode != "" {
		code := q.AppliedCode
		order.PromotionCode = &code
	}

	orderItems := make([]model.OrderItem, len(items))
	ordered := make([]uuid.UUID, len(items))
	for i, item := range items {
		orderItems[i] = model.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		}
		ordered[i] = item.ID
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.cartRepo.DeleteTx(ctx, tx, userID, ordered); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID).
		Int("item_count", len(orderItems)).
		Str("total_price", order.TotalPrice.StringFixed(2)).
		Msg("order placed successfully")

	return &model.OrderResponse{Order: *order, Items: orderItems}, nil
}

func validatePlaceOrder(req *model.PlaceOrderRequest) error {
	required := []struct {
		field string
		value string
	}{
		{"name", req.Name},
		{"phone", req.Phone},
		{"address", req.Address},
		{"slipUrl", req.SlipURL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return model.NewMissingFieldError(r.field)
		}
	}

	if !req.DistanceKm.IsPositive() {
		return model.ErrInvalidDistance
	}

	return nil
}
