package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"book-journal/internal/domain/entity"
	"book-journal/internal/repository"
)

// Service provides profile use cases.
type Service struct {
	Users    repository.UserRepository
	Profiles repository.ProfileRepository
	Logger   *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Get returns the profile of userID.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	p, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Update merges patch into the profile of userID and returns the result.
// Fields the patch leaves nil keep their stored value.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, patch entity.ProfilePatch) (*entity.Profile, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if patch.Nickname != nil {
		nickname := strings.TrimSpace(*patch.Nickname)
		patch.Nickname = &nickname
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	p, err := s.Profiles.Update(ctx, userID, patch)
	if errors.Is(err, entity.ErrConflict) {
		return nil, ErrNicknameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	if !patch.IsEmpty() {
		s.logger().Info("[update] Profile updated", slog.String("user_id", userID.String()))
	}
	return p, nil
}

func (s *Service) requireUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}
