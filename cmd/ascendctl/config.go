package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ascend/internal/delivery/http/dto"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "http://localhost:8080"

type fileConfig struct {
	BaseURL string         `yaml:"base_url"`
	Session *storedSession `yaml:"session,omitempty"`
}

type storedSession struct {
	UserID           uuid.UUID `yaml:"user_id"`
	Email            string    `yaml:"email"`
	Name             string    `yaml:"name"`
	AccessToken      string    `yaml:"access_token"`
	RefreshToken     string    `yaml:"refresh_token"`
	AccessExpiresAt  time.Time `yaml:"access_expires_at"`
	RefreshExpiresAt time.Time `yaml:"refresh_expires_at"`
}

func defaultConfigPath() string {
	if v := strings.TrimSpace(os.Getenv("ASCEND_CONFIG")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ascend", "config.yaml")
	}
	return filepath.Join(home, ".ascend", "config.yaml")
}

func loadConfig(path string) (fileConfig, error) {
	cfg := fileConfig{BaseURL: defaultBaseURL}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return cfg, nil
}

// saveConfig writes the file readable by the owner only.
func saveConfig(path string, cfg fileConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func toStored(s dto.SessionResponse) *storedSession {
	return &storedSession{
		UserID:           s.User.ID,
		Email:            s.User.Email,
		Name:             s.User.Name,
		AccessToken:      s.Tokens.AccessToken,
		RefreshToken:     s.Tokens.RefreshToken,
		AccessExpiresAt:  s.Tokens.AccessExpiresAt,
		RefreshExpiresAt: s.Tokens.RefreshExpiresAt,
	}
}

func (s *storedSession) response() dto.SessionResponse {
	return dto.SessionResponse{
		User: dto.UserProfileResponse{ID: s.UserID, Email: s.Email, Name: s.Name},
		Tokens: dto.TokensResponse{
			AccessToken:      s.AccessToken,
			RefreshToken:     s.RefreshToken,
			AccessExpiresAt:  s.AccessExpiresAt,
			RefreshExpiresAt: s.RefreshExpiresAt,
		},
	}
}
