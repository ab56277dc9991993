package dto

import (
	"time"

	"ascend/internal/domain/user"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Location    string    `json:"location"`
	Experience  string    `json:"experience"`
	CareerGoals string    `json:"career_goals"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewUserProfileResponse(u user.User) UserProfileResponse {
	return UserProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Title:       u.Title,
		Department:  u.Department,
		Location:    u.Location,
		Experience:  u.Experience,
		CareerGoals: u.CareerGoals,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UpdateProfileRequest is a partial update; omitted fields stay unchanged.
type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Department  *string `json:"department"`
	Location    *string `json:"location"`
	Experience  *string `json:"experience"`
	CareerGoals *string `json:"career_goals"`
	AvatarURL   *string `json:"avatar_url"`
}

func (r UpdateProfileRequest) Patch() user.ProfilePatch {
	return user.ProfilePatch{
		Name:        r.Name,
		Title:       r.Title,
		Department:  r.Department,
		Location:    r.Location,
		Experience:  r.Experience,
		CareerGoals: r.CareerGoals,
		AvatarURL:   r.AvatarURL,
	}
}

type AvatarUploadRequest struct {
	FileExt string `json:"file_ext"`
}

type AvatarUploadResponse struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}
