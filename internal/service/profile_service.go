package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bakery-kart/internal/model"
	"bakery-kart/internal/repository"

	"github.com/rs/zerolog"
)

const birthdayLayout = "2006-01-02"

// profileService implements ProfileService.
type profileService struct {
	profileRepo repository.ProfileRepository
	location    *time.Location
	now         func() time.Time
	logger      zerolog.Logger
}

// NewProfileService creates a new profile service. Birthday months are
// judged in loc.
func NewProfileService(profileRepo repository.ProfileRepository, loc *time.Location, logger zerolog.Logger) ProfileService {
	if loc == nil {
		loc = time.UTC
	}
	return &profileService{
		profileRepo: profileRepo,
		location:    loc,
		now:         time.Now,
		logger:      logger.With().Str("service", "profile").Logger(),
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get profile")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return &model.Profile{UserID: userID}, nil
	}
	return profile, nil
}

func (s *profileService) SetBirthday(ctx context.Context, userID string, req *model.SetBirthdayRequest) (*model.Profile, error) {
	raw := strings.TrimSpace(req.Birthday)
	if raw == "" {
		return nil, model.NewMissingFieldError("birthday")
	}

	birthday, err := time.Parse(birthdayLayout, raw)
	if err != nil {
		return nil, model.ErrInvalidBirthday
	}
	if birthday.After(s.now()) {
		return nil, model.ErrInvalidBirthday
	}

	set, err := s.profileRepo.SetBirthday(ctx, userID, birthday)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to set birthday")
		return nil, fmt.Errorf("failed to set birthday: %w", err)
	}
	if !set {
		s.logger.Warn().Str("user_id", userID).Msg("birthday change rejected, already set")
		return nil, model.ErrBirthdayLocked
	}

	s.logger.Info().Str("user_id", userID).Msg("birthday set")

	return s.Get(ctx, userID)
}

func (s *profileService) IsBirthdayMonth(ctx context.Context, userID string) (bool, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get profile")
		return false, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile.IsBirthdayMonth(s.now().In(s.location)), nil
}
