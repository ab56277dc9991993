package resource

import (
	"time"

	"github.com/google/uuid"
)

type LearningResource struct {
	ID          uuid.UUID
	Title       string
	Description string
	URL         string
	Type        string
	Source      string
	CreatedAt   time.Time
}

// Match is a stored resource together with the missing skills it covers.
type Match struct {
	LearningResource
	MatchingSkills []string
}
