// Package client is the Go client for the Ascend API: a typed HTTP client, the
// signed-in session state, the recommendation fetcher with its per-view
// request state, and the dashboard flow that ties them together.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ascend/internal/delivery/http/dto"

	"github.com/google/uuid"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4096
)

var ErrNotSignedIn = errors.New("not signed in")

// TokenSource yields the bearer token attached to authenticated calls. An
// empty token means no session.
type TokenSource interface {
	AccessToken() string
}

// APIError is a non-2xx answer from the /api/v1 surface.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type API struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

type Option func(*API)

func WithHTTPClient(hc *http.Client) Option {
	return func(a *API) {
		if hc != nil {
			a.httpClient = hc
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(a *API) { a.tokens = ts }
}

func NewAPI(baseURL string, opts ...Option) *API {
	a := &API{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *API) BaseURL() string { return a.baseURL }

func (a *API) token() string {
	if a.tokens == nil {
		return ""
	}
	return a.tokens.AccessToken()
}

// Auth

func (a *API) Register(ctx context.Context, name, email, password string) (dto.SessionResponse, error) {
	var out dto.SessionResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	err := a.do(ctx, http.MethodPost, "/api/v1/auth/register", false, body, &out)
	return out, err
}

func (a *API) Login(ctx context.Context, email, password string) (dto.SessionResponse, error) {
	var out dto.SessionResponse
	body := map[string]string{"email": email, "password": password}
	err := a.do(ctx, http.MethodPost, "/api/v1/auth/login", false, body, &out)
	return out, err
}

func (a *API) Refresh(ctx context.Context, refreshToken string) (dto.SessionResponse, error) {
	var out dto.SessionResponse
	body := map[string]string{"refresh_token": refreshToken}
	err := a.do(ctx, http.MethodPost, "/api/v1/auth/refresh", false, body, &out)
	return out, err
}

// Profile

func (a *API) Profile(ctx context.Context) (dto.UserProfileResponse, error) {
	var out dto.UserProfileResponse
	err := a.do(ctx, http.MethodGet, "/api/v1/users/me", true, nil, &out)
	return out, err
}

func (a *API) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (dto.UserProfileResponse, error) {
	var out dto.UserProfileResponse
	err := a.do(ctx, http.MethodPut, "/api/v1/users/me", true, req, &out)
	return out, err
}

func (a *API) DeleteAccount(ctx context.Context) error {
	return a.do(ctx, http.MethodDelete, "/api/v1/users/me", true, nil, nil)
}

func (a *API) PresignAvatar(ctx context.Context, fileExt string) (dto.AvatarUploadResponse, error) {
	var out dto.AvatarUploadResponse
	err := a.do(ctx, http.MethodPost, "/api/v1/users/me/avatar", true, dto.AvatarUploadRequest{FileExt: fileExt}, &out)
	return out, err
}

// Reference data

func (a *API) Skills(ctx context.Context) ([]dto.SkillResponse, error) {
	var out []dto.SkillResponse
	err := a.do(ctx, http.MethodGet, "/api/v1/skills", false, nil, &out)
	return out, err
}

func (a *API) CreateSkill(ctx context.Context, name, category string) (dto.SkillResponse, error) {
	var out dto.SkillResponse
	body := map[string]string{"name": name, "category": category}
	err := a.do(ctx, http.MethodPost, "/api/v1/skills", true, body, &out)
	return out, err
}

func (a *API) Roles(ctx context.Context) ([]dto.RoleResponse, error) {
	var out []dto.RoleResponse
	err := a.do(ctx, http.MethodGet, "/api/v1/roles", false, nil, &out)
	return out, err
}

func (a *API) RoleSkills(ctx context.Context, roleID uuid.UUID) ([]dto.SkillResponse, error) {
	var out []dto.SkillResponse
	err := a.do(ctx, http.MethodGet, "/api/v1/roles/"+roleID.String()+"/skills", false, nil, &out)
	return out, err
}

func (a *API) Paths(ctx context.Context) ([]dto.PathResponse, error) {
	var out []dto.PathResponse
	err := a.do(ctx, http.MethodGet, "/api/v1/paths", false, nil, &out)
	return out, err
}

// User skills

func (a *API) UserSkills(ctx context.Context) ([]dto.UserSkillResponse, error) {
	var out []dto.UserSkillResponse
	err := a.do(ctx, http.MethodGet, "/api/v1/users/me/skills", true, nil, &out)
	return out, err
}

func (a *API) AddUserSkill(ctx context.Context, skillID uuid.UUID) (dto.UserSkillResponse, error) {
	var out dto.UserSkillResponse
	body := map[string]uuid.UUID{"skill_id": skillID}
	err := a.do(ctx, http.MethodPost, "/api/v1/users/me/skills", true, body, &out)
	return out, err
}

func (a *API) RemoveUserSkill(ctx context.Context, id uuid.UUID) error {
	return a.do(ctx, http.MethodDelete, "/api/v1/users/me/skills/"+id.String(), true, nil, nil)
}

// Achievements

func (a *API) Achievements(ctx context.Context) ([]dto.AchievementResponse, error) {
	var out []dto.AchievementResponse
	err := a.do(ctx, http.MethodGet, "/api/v1/users/me/achievements", true, nil, &out)
	return out, err
}

func (a *API) AddAchievement(ctx context.Context, title, description string, date time.Time) (dto.AchievementResponse, error) {
	var out dto.AchievementResponse
	body := map[string]string{"title": title, "description": description, "date": date.Format(time.DateOnly)}
	err := a.do(ctx, http.MethodPost, "/api/v1/users/me/achievements", true, body, &out)
	return out, err
}

func (a *API) RemoveAchievement(ctx context.Context, id uuid.UUID) error {
	return a.do(ctx, http.MethodDelete, "/api/v1/users/me/achievements/"+id.String(), true, nil, nil)
}

// Dashboard

func (a *API) SkillGap(ctx context.Context, roleID uuid.UUID) (dto.SkillGapResponse, error) {
	var out dto.SkillGapResponse
	q := url.Values{"role_id": {roleID.String()}}
	err := a.do(ctx, http.MethodGet, "/api/v1/users/me/skill-gap?"+q.Encode(), true, nil, &out)
	return out, err
}

func (a *API) LearningResources(ctx context.Context, roleID uuid.UUID, limit int) ([]dto.LearningResourceResponse, error) {
	var out []dto.LearningResourceResponse
	q := url.Values{"role_id": {roleID.String()}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	err := a.do(ctx, http.MethodGet, "/api/v1/users/me/learning-resources?"+q.Encode(), true, nil, &out)
	return out, err
}

func (a *API) do(ctx context.Context, method, path string, auth bool, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		tok := a.token()
		if tok == "" {
			return ErrNotSignedIn
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	ae := &APIError{Status: resp.StatusCode}
	var env envelope
	if err := json.Unmarshal(b, &env); err == nil && env.Message != "" {
		ae.Message = env.Message
	} else {
		ae.Message = strings.TrimSpace(string(b))
	}
	if ae.Message == "" {
		ae.Message = http.StatusText(resp.StatusCode)
	}
	return ae
}
