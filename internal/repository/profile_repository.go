package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bakery-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// profileRepository implements the ProfileRepository interface using PostgreSQL.
type profileRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProfileRepository creates a new PostgreSQL-backed profile repository.
func NewProfileRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProfileRepository {
	return &profileRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "profile").Logger(),
	}
}

// Get returns the user's profile.
func (r *profileRepository) Get(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, birthday, updated_at FROM profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.Birthday, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query profile")
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	return &p, nil
}

// SetBirthday stores the birthday unless one is already set. The WHERE on
// the upsert keeps a concurrent second write from replacing the first.
func (r *profileRepository) SetBirthday(ctx context.Context, userID string, birthday time.Time) (bool, error) {
	query := `
		INSERT INTO profiles (user_id, birthday, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET birthday = EXCLUDED.birthday, updated_at = NOW()
		WHERE profiles.birthday IS NULL
	`

	tag, err := r.pool.Exec(ctx, query, userID, birthday)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to set birthday")
		return false, fmt.Errorf("failed to set birthday: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("user_id", userID).Msg("birthday already locked")
		return false, nil
	}

	return true, nil
}
