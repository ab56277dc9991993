package config

import (
	"errors"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "ascend")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_MODEL", "")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "")
	t.Setenv("S3_AVATAR_BUCKET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.LLM.Model != "gpt-3.5-turbo" {
		t.Fatalf("unexpected model %q", cfg.LLM.Model)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("unexpected access ttl %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.Storage.AvatarBucket != "avatars" {
		t.Fatalf("unexpected bucket %q", cfg.Storage.AvatarBucket)
	}
}

func TestLoad_ParsesDurationsAndLists(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "900")
	t.Setenv("LLM_TIMEOUT", "30s")
	t.Setenv("CRAWLER_TAGS", "go, postgres ,,react")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.JWT.AccessExpiresIn != 900*time.Second {
		t.Fatalf("unexpected access ttl %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Fatalf("unexpected llm timeout %s", cfg.LLM.Timeout)
	}
	if len(cfg.Crawler.Tags) != 3 || cfg.Crawler.Tags[1] != "postgres" {
		t.Fatalf("unexpected tags %#v", cfg.Crawler.Tags)
	}
}
