package postgres

import (
	"context"
	"errors"
	"testing"

	"ascend/internal/database/dbtest"
	"ascend/internal/domain/user"

	"github.com/google/uuid"
)

func newTestRepo(t *testing.T) (*UserRepository, func(query string, args ...any)) {
	t.Helper()
	db := dbtest.Open(t)
	repo, err := NewUserRepository(context.Background(), db.SQLDB())
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	exec := func(query string, args ...any) {
		t.Helper()
		if _, err := db.Exec(context.Background(), query, args...); err != nil {
			t.Fatalf("exec %q: %v", query, err)
		}
	}
	return repo, exec
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	u := user.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: "hash", Profile: user.Profile{Name: "Ada"}}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, user.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: "x"}); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	got, err := repo.GetByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != u.ID || got.Name != "Ada" {
		t.Fatalf("unexpected user %+v", got)
	}
	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	updated, err := repo.UpdateProfile(ctx, u.ID, user.Profile{Name: "Ada L.", Title: "Engineer", CareerGoals: "Staff"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Engineer" || updated.CareerGoals != "Staff" || updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("unexpected update result %+v", updated)
	}
}

func TestUserRepository_DeleteRemovesOwnedRows(t *testing.T) {
	repo, exec := newTestRepo(t)
	ctx := context.Background()

	id := uuid.New()
	if err := repo.Create(ctx, user.User{ID: id, Email: "gone@example.com", PasswordHash: "hash"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	skillID := uuid.New()
	exec(`INSERT INTO skills (id, name) VALUES ($1, 'Go')`, skillID)
	exec(`INSERT INTO user_skills (user_id, skill_id) VALUES ($1, $2)`, id, skillID)
	exec(`INSERT INTO achievements (user_id, title, date) VALUES ($1, 'Shipped', CURRENT_DATE)`, id)

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, id); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}

	var left int
	if err := repo.db.QueryRowContext(ctx,
		`SELECT (SELECT count(*) FROM user_skills WHERE user_id = $1) + (SELECT count(*) FROM achievements WHERE user_id = $1)`, id,
	).Scan(&left); err != nil {
		t.Fatalf("count: %v", err)
	}
	if left != 0 {
		t.Fatalf("expected owned rows removed, %d left", left)
	}

	var skills int
	if err := repo.db.QueryRowContext(ctx, `SELECT count(*) FROM skills WHERE id = $1`, skillID).Scan(&skills); err != nil || skills != 1 {
		t.Fatalf("catalog skill must survive account deletion: %d %v", skills, err)
	}

	if err := repo.Delete(ctx, id); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}
