package service

import (
	"context"
	"fmt"

	"bakery-kart/internal/model"
	"bakery-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) Get(ctx context.Context, userID string) (*model.CartResponse, error) {
	items, err := s.cartRepo.List(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}

	return &model.CartResponse{Items: items, Total: total}, nil
}

func (s *cartService) AddItem(ctx context.Context, userID string, req *model.AddCartItemRequest) (*model.CartItem, error) {
	if req.ProductID == "" {
		return nil, model.NewMissingFieldError("productId")
	}
	if req.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to look up product")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	id, err := s.cartRepo.Add(ctx, userID, req.ProductID, model.ClampQuantity(req.Quantity))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to add cart item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	item, err := s.cartRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	if item == nil {
		return nil, model.ErrCartItemNotFound
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("product_id", req.ProductID).
		Int("quantity", item.Quantity).
		Msg("cart item added")

	return item, nil
}

func (s *cartService) UpdateItem(ctx context.Context, userID string, id uuid.UUID, req *model.UpdateCartItemRequest) (*model.CartItem, error) {
	qty := model.ClampQuantity(req.Quantity)

	if qty == 0 {
		if err := s.RemoveItem(ctx, userID, id); err != nil {
			return nil, err
		}
		return nil, nil
	}

	updated, err := s.cartRepo.UpdateQuantity(ctx, userID, id, qty)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_item_id", id.String()).Msg("failed to update cart item")
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	if !updated {
		return nil, model.ErrCartItemNotFound
	}

	item, err := s.cartRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	if item == nil {
		return nil, model.ErrCartItemNotFound
	}

	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID string, id uuid.UUID) error {
	deleted, err := s.cartRepo.Delete(ctx, userID, id)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_item_id", id.String()).Msg("failed to remove cart item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if !deleted {
		return model.ErrCartItemNotFound
	}
	return nil
}
