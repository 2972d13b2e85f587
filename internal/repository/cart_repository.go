package repository

import (
	"context"
	"errors"
	"fmt"

	"bakery-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const cartSelect = `
	SELECT c.id, c.user_id, c.product_id, p.name, p.price, c.quantity, c.created_at
	FROM cart_items c
	JOIN products p ON p.id = c.product_id
`

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

func scanCartItem(row pgx.Row, c *model.CartItem) error {
	return row.Scan(&c.ID, &c.UserID, &c.ProductID, &c.ProductName, &c.Price, &c.Quantity, &c.CreatedAt)
}

// List returns the user's cart lines, oldest first.
func (r *cartRepository) List(ctx context.Context, userID string) ([]model.CartItem, error) {
	rows, err := r.pool.Query(ctx, cartSelect+` WHERE c.user_id = $1 ORDER BY c.created_at, c.id`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return r.collect(rows)
}

// ListTx returns the user's cart lines locked FOR UPDATE until tx ends.
func (r *cartRepository) ListTx(ctx context.Context, tx pgx.Tx, userID string) ([]model.CartItem, error) {
	rows, err := tx.Query(ctx, cartSelect+` WHERE c.user_id = $1 ORDER BY c.created_at, c.id FOR UPDATE OF c`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to lock cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return r.collect(rows)
}

func (r *cartRepository) collect(rows pgx.Rows) ([]model.CartItem, error) {
	defer rows.Close()

	items := []model.CartItem{}
	for rows.Next() {
		var c model.CartItem
		if err := scanCartItem(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// Get returns one cart line.
func (r *cartRepository) Get(ctx context.Context, userID string, id uuid.UUID) (*model.CartItem, error) {
	var c model.CartItem
	err := scanCartItem(r.pool.QueryRow(ctx, cartSelect+` WHERE c.user_id = $1 AND c.id = $2`, userID, id), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cart_item_id", id.String()).Msg("failed to query cart item")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}
	return &c, nil
}

// Add inserts a line or merges quantity into the existing one.
func (r *cartRepository) Add(ctx context.Context, userID, productID string, quantity int) (uuid.UUID, error) {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, LEAST($4::int, $5::int))
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = LEAST(cart_items.quantity + EXCLUDED.quantity, $5::int)
		RETURNING id
	`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query, uuid.New(), userID, productID, quantity, model.MaxQuantity).Scan(&id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("failed to add cart item")
		return uuid.Nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return id, nil
}

// UpdateQuantity sets a line's quantity.
func (r *cartRepository) UpdateQuantity(ctx context.Context, userID string, id uuid.UUID, quantity int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE user_id = $1 AND id = $2`,
		userID, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", id.String()).Msg("failed to update cart item")
		return false, fmt.Errorf("failed to update cart item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a line.
func (r *cartRepository) Delete(ctx context.Context, userID string, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", id.String()).Msg("failed to delete cart item")
		return false, fmt.Errorf("failed to delete cart item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteTx removes the given lines within the provided transaction. Lines
// not listed are left in the cart.
func (r *cartRepository) DeleteTx(ctx context.Context, tx pgx.Tx, userID string, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2::uuid[])`, userID, ids)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Int("count", len(ids)).Msg("failed to clear cart lines")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
