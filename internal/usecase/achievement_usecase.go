package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"ascend/internal/domain/achievement"
	"ascend/internal/domain/event"
	"ascend/internal/repository"

	"github.com/google/uuid"
)

type AddAchievementInput struct {
	Title       string
	Description string
	// Date is YYYY-MM-DD.
	Date string
}

type AchievementUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]achievement.Achievement, error)
	Add(ctx context.Context, userID uuid.UUID, in AddAchievementInput) (achievement.Achievement, error)
	Remove(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type Achievement struct {
	repo   repository.AchievementRepository
	events Publisher
}

func NewAchievementUsecase(repo repository.AchievementRepository, events Publisher) *Achievement {
	return &Achievement{repo: repo, events: publisherOrNoop(events)}
}

func (u *Achievement) List(ctx context.Context, userID uuid.UUID) ([]achievement.Achievement, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Achievement) Add(ctx context.Context, userID uuid.UUID, in AddAchievementInput) (achievement.Achievement, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > 200 {
		return achievement.Achievement{}, ErrInvalidInput
	}
	date, err := time.Parse(achievement.DateLayout, strings.TrimSpace(in.Date))
	if err != nil {
		return achievement.Achievement{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, achievement.Achievement{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Date:        date,
	})
	if err != nil {
		return achievement.Achievement{}, ErrInternal
	}

	u.events.Publish(userID, event.TypeAchievementsUpdated)
	return created, nil
}

func (u *Achievement) Remove(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrAchievementNotFound):
			return ErrAchievementNotFound
		case errors.Is(err, repository.ErrForbidden):
			return ErrForbidden
		default:
			return ErrInternal
		}
	}

	u.events.Publish(userID, event.TypeAchievementsUpdated)
	return nil
}
