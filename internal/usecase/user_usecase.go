package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"ascend/internal/domain/event"
	"ascend/internal/domain/user"
	ucuser "ascend/internal/usecase/user"

	"github.com/google/uuid"
)

var avatarExtRe = regexp.MustCompile(`^(png|jpe?g|gif|webp)$`)

type AvatarUpload struct {
	Key       string
	UploadURL string
	PublicURL string
	ExpiresAt time.Time
}

// AvatarStorage presigns direct uploads into the avatars bucket.
type AvatarStorage interface {
	PresignAvatar(ctx context.Context, userID uuid.UUID, ext string) (AvatarUpload, error)
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch user.ProfilePatch) (user.User, error)
	PresignAvatar(ctx context.Context, userID uuid.UUID, ext string) (AvatarUpload, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type User struct {
	svc     *ucuser.Service
	storage AvatarStorage
	events  Publisher
}

func NewUserUsecase(users user.Repository, storage AvatarStorage, events Publisher) *User {
	return &User{svc: ucuser.NewService(users), storage: storage, events: publisherOrNoop(events)}
}

func (u *User) GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.svc.GetProfile(ctx, userID)
	return usr, mapUserErr(err)
}

func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, patch user.ProfilePatch) (user.User, error) {
	usr, err := u.svc.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return user.User{}, mapUserErr(err)
	}
	if !patch.Empty() {
		u.events.Publish(userID, event.TypeProfileUpdated)
	}
	return usr, nil
}

// PresignAvatar only hands out an upload URL; the client stores the returned
// public URL through UpdateProfile once the upload succeeded.
func (u *User) PresignAvatar(ctx context.Context, userID uuid.UUID, ext string) (AvatarUpload, error) {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if !avatarExtRe.MatchString(ext) {
		return AvatarUpload{}, ErrInvalidInput
	}
	if u.storage == nil {
		return AvatarUpload{}, ErrStorageUnavailable
	}
	up, err := u.storage.PresignAvatar(ctx, userID, ext)
	if err != nil {
		return AvatarUpload{}, ErrStorageUnavailable
	}
	return up, nil
}

func (u *User) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return mapUserErr(u.svc.DeleteAccount(ctx, userID))
}

func mapUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ucuser.ErrInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, ucuser.ErrNotFound):
		return ErrUserNotFound
	default:
		return ErrInternal
	}
}
