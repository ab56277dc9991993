package app

import (
	"context"
	"mime"

	"ascend/internal/infrastructure/storage"
	"ascend/internal/usecase"

	"github.com/google/uuid"
)

type avatarStorage struct {
	s3 *storage.S3
}

func newAvatarStorage(s3 *storage.S3) usecase.AvatarStorage {
	if s3 == nil {
		return nil
	}
	return avatarStorage{s3: s3}
}

func (a avatarStorage) PresignAvatar(ctx context.Context, userID uuid.UUID, ext string) (usecase.AvatarUpload, error) {
	up, err := a.s3.PresignAvatarUpload(ctx, userID.String(), ext, mime.TypeByExtension("."+ext))
	if err != nil {
		return usecase.AvatarUpload{}, err
	}
	return usecase.AvatarUpload{
		Key:       up.Key,
		UploadURL: up.UploadURL,
		PublicURL: up.PublicURL,
		ExpiresAt: up.ExpiresAt,
	}, nil
}
