package dto

import (
	"time"

	"ascend/internal/pkg/jwt"
)

type TokensResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func NewTokensResponse(p jwt.Pair) TokensResponse {
	return TokensResponse{
		AccessToken:      p.AccessToken,
		RefreshToken:     p.RefreshToken,
		AccessExpiresAt:  p.AccessExpiresAt,
		RefreshExpiresAt: p.RefreshExpiresAt,
	}
}

type SessionResponse struct {
	User   UserProfileResponse `json:"user"`
	Tokens TokensResponse      `json:"tokens"`
}
