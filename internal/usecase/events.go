package usecase

import "github.com/google/uuid"

// Publisher notifies a user's live sessions that their data changed.
type Publisher interface {
	Publish(userID uuid.UUID, eventType string)
}

type noopPublisher struct{}

func (noopPublisher) Publish(uuid.UUID, string) {}

func publisherOrNoop(p Publisher) Publisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
