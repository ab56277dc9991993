package user

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"

	"ascend/internal/domain/user"

	"github.com/google/uuid"
)

const maxFieldLength = 2000

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, mapRepoErr(err)
	}
	return sanitizeUser(usr), nil
}

// UpdateProfile applies a partial update. An empty patch returns the current
// profile unchanged.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, patch user.ProfilePatch) (user.User, error) {
	if err := validatePatch(patch); err != nil {
		return user.User{}, err
	}

	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, mapRepoErr(err)
	}
	if patch.Empty() {
		return sanitizeUser(usr), nil
	}

	updated, err := s.users.UpdateProfile(ctx, userID, patch.Apply(usr.Profile))
	if err != nil {
		return user.User{}, mapRepoErr(err)
	}
	return sanitizeUser(updated), nil
}

func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return mapRepoErr(s.users.Delete(ctx, userID))
}

func validatePatch(p user.ProfilePatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrInvalidInput
	}
	for _, f := range []*string{p.Name, p.Title, p.Department, p.Location, p.Experience, p.CareerGoals, p.AvatarURL} {
		if f != nil && utf8.RuneCountInString(*f) > maxFieldLength {
			return ErrInvalidInput
		}
	}
	if p.AvatarURL != nil && *p.AvatarURL != "" {
		u, err := url.Parse(*p.AvatarURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, user.ErrNotFound):
		return ErrNotFound
	default:
		return ErrInternal
	}
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
