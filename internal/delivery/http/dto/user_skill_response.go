package dto

import (
	"time"

	"ascend/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type UserSkillResponse struct {
	ID        uuid.UUID `json:"id"`
	Skill     SkillRef  `json:"skill"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserSkillResponse(us skill.UserSkill) UserSkillResponse {
	return UserSkillResponse{
		ID:        us.ID,
		Skill:     SkillRef{ID: us.SkillID, Name: us.SkillName},
		CreatedAt: us.CreatedAt,
	}
}
