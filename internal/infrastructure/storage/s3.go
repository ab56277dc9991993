// Package storage issues presigned upload URLs for user avatars on any
// S3-compatible object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ascend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrNotConfigured = errors.New("object storage not configured")

type PresignedUpload struct {
	Key       string
	UploadURL string
	PublicURL string
	ExpiresAt time.Time
}

type S3 struct {
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
	ttl           time.Duration
	now           func() time.Time
}

// NewS3 returns nil and ErrNotConfigured when no credentials are set, so the
// rest of the API can run without object storage.
func NewS3(ctx context.Context, cfg config.StorageConfig) (*S3, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" && cfg.Endpoint != "" {
		publicBase = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.AvatarBucket
	}

	return &S3{
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.AvatarBucket,
		publicBaseURL: publicBase,
		ttl:           ttl,
		now:           time.Now,
	}, nil
}

// AvatarKey is "<userID>/avatar_<unix millis>.<ext>".
func AvatarKey(userID string, ext string, at time.Time) string {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	return fmt.Sprintf("%s/avatar_%d.%s", userID, at.UnixMilli(), ext)
}

func (s *S3) PresignAvatarUpload(ctx context.Context, userID string, ext string, contentType string) (PresignedUpload, error) {
	if s == nil {
		return PresignedUpload{}, ErrNotConfigured
	}

	now := s.now()
	key := AvatarKey(userID, ext, now)
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	req, err := s.presign.PresignPutObject(ctx, in, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return PresignedUpload{}, fmt.Errorf("presign put: %w", err)
	}

	return PresignedUpload{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: s.publicBaseURL + "/" + key,
		ExpiresAt: now.Add(s.ttl),
	}, nil
}
