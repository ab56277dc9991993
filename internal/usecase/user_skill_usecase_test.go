package usecase

import (
	"context"
	"errors"
	"testing"

	"ascend/internal/domain/skill"

	"github.com/google/uuid"
)

func TestUserSkill_AddDuplicateAndRemove(t *testing.T) {
	goSkill := skill.Skill{ID: uuid.New(), Name: "Go"}
	repo := newFakeUserSkillRepo(goSkill)
	pub := &recordingPublisher{}
	uc := NewUserSkillUsecase(repo, pub)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	added, err := uc.AddUserSkill(ctx, alice, goSkill.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.SkillName != "Go" {
		t.Fatalf("unexpected association %+v", added)
	}

	if _, err := uc.AddUserSkill(ctx, alice, goSkill.ID); !errors.Is(err, ErrUserSkillExists) {
		t.Fatalf("expected ErrUserSkillExists, got %v", err)
	}

	if err := uc.RemoveUserSkill(ctx, bob, added.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.RemoveUserSkill(ctx, alice, added.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := uc.RemoveUserSkill(ctx, alice, added.ID); !errors.Is(err, ErrUserSkillNotFound) {
		t.Fatalf("expected ErrUserSkillNotFound, got %v", err)
	}

	if pub.count() != 2 {
		t.Fatalf("expected 2 events (add, remove), got %d", pub.count())
	}
}

func TestUserSkill_AddUnknownSkill(t *testing.T) {
	uc := NewUserSkillUsecase(newFakeUserSkillRepo(), nil)
	if _, err := uc.AddUserSkill(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
	if _, err := uc.AddUserSkill(context.Background(), uuid.New(), uuid.Nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
