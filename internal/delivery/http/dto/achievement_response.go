package dto

import (
	"time"

	"ascend/internal/domain/achievement"

	"github.com/google/uuid"
)

type AchievementResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewAchievementResponse(a achievement.Achievement) AchievementResponse {
	return AchievementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date.Format(achievement.DateLayout),
		CreatedAt:   a.CreatedAt,
	}
}
