package skill

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}

// UserSkill is the association row linking a user to a skill they hold.
// Its ID, not the skill ID, is what removal addresses.
type UserSkill struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SkillID   uuid.UUID
	SkillName string
	CreatedAt time.Time
}

type RoleSkill struct {
	ID      uuid.UUID
	RoleID  uuid.UUID
	SkillID uuid.UUID
}
