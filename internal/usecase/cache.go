package usecase

import (
	"context"
	"time"
)

// Cache is the JSON cache used for reference data. Implementations may be
// no-ops; callers always fall back to the repository on a miss or error.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const (
	cacheKeySkills = "ref:skills"
	cacheKeyRoles  = "ref:roles"
	cacheKeyPaths  = "ref:paths"
)

type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (noopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, ...string) error                   { return nil }

func cacheOrNoop(c Cache) Cache {
	if c == nil {
		return noopCache{}
	}
	return c
}
