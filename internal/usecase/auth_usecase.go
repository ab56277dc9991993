package usecase

import (
	"context"
	"errors"

	"ascend/internal/domain/user"
	"ascend/internal/pkg/jwt"
	ucauth "ascend/internal/usecase/auth"
)

type Session struct {
	User   user.User
	Tokens jwt.Pair
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (Session, error)
	Login(ctx context.Context, in ucauth.LoginInput) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (Session, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.issue(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (Session, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.issue(usr)
}

// Refresh rotates both tokens. The user must still exist, so a deleted
// account cannot keep refreshing.
func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrRefreshTokenExpired
		}
		return Session{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrInvalidRefreshToken
		}
		return Session{}, ErrInternal
	}
	usr.PasswordHash = ""
	return u.issue(usr)
}

func (u *Auth) issue(usr user.User) (Session, error) {
	pair, err := u.jwt.IssuePair(usr.ID, usr.Email)
	if err != nil {
		return Session{}, ErrInternal
	}
	return Session{User: usr, Tokens: pair}, nil
}
