package achievement

import (
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type Achievement struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Date        time.Time
	CreatedAt   time.Time
}
