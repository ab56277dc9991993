package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeProfileUpdated      = "profile_updated"
	TypeSkillsUpdated       = "skills_updated"
	TypeAchievementsUpdated = "achievements_updated"
)

// Event tells a signed-in client that part of its own data changed and
// should be refetched. It carries no payload beyond the kind of change.
type Event struct {
	Type      string    `json:"type"`
	UserID    uuid.UUID `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType string, userID uuid.UUID) Event {
	return Event{Type: eventType, UserID: userID, Timestamp: time.Now().UTC()}
}
