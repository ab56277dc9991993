package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"ascend/internal/database/dbtest"
	"ascend/internal/database/seeder"
	"ascend/internal/domain/achievement"
	"ascend/internal/domain/resource"

	"github.com/google/uuid"
)

func TestPostgresSkillRepository_CreateAndLookup(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := NewPostgresSkillRepository(db)

	goSkill, err := repo.Create(ctx, " Go ", "Backend")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if goSkill.Name != "Go" {
		t.Fatalf("expected trimmed name, got %q", goSkill.Name)
	}
	if _, err := repo.Create(ctx, "Go", "Backend"); !errors.Is(err, ErrSkillAlreadyExists) {
		t.Fatalf("expected ErrSkillAlreadyExists, got %v", err)
	}

	ids, err := repo.IDsByNames(ctx, []string{"go", "Rust"})
	if err != nil {
		t.Fatalf("ids by names: %v", err)
	}
	if len(ids) != 1 || ids["go"] != goSkill.ID {
		t.Fatalf("unexpected ids %v", ids)
	}

	missing := uuid.New()
	names, err := repo.NamesByIDs(ctx, []uuid.UUID{goSkill.ID, missing})
	if err != nil {
		t.Fatalf("names by ids: %v", err)
	}
	if names[goSkill.ID] != "Go" {
		t.Fatalf("unexpected names %v", names)
	}
	if _, ok := names[missing]; ok {
		t.Fatalf("unknown id must be absent")
	}
}

func TestPostgresUserSkillRepository_ConstraintMapping(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	skills := NewPostgresSkillRepository(db)
	repo := NewPostgresUserSkillRepository(db)

	owner := dbtest.CreateUser(t, db, "owner@example.com")
	other := dbtest.CreateUser(t, db, "other@example.com")
	sql, err := skills.Create(ctx, "SQL", "Data")
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}

	us, err := repo.Create(ctx, owner, sql.ID)
	if err != nil {
		t.Fatalf("create user skill: %v", err)
	}
	if us.SkillName != "SQL" || us.CreatedAt.IsZero() {
		t.Fatalf("insert did not return the joined row: %+v", us)
	}

	if _, err := repo.Create(ctx, owner, sql.ID); !errors.Is(err, ErrUserSkillExists) {
		t.Fatalf("expected ErrUserSkillExists, got %v", err)
	}
	if _, err := repo.Create(ctx, owner, uuid.New()); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}

	owned, err := repo.OwnedSkillIDs(ctx, owner)
	if err != nil {
		t.Fatalf("owned: %v", err)
	}
	if _, ok := owned[sql.ID]; !ok || len(owned) != 1 {
		t.Fatalf("unexpected owned set %v", owned)
	}

	if err := repo.Delete(ctx, us.ID, other); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := repo.Delete(ctx, us.ID, owner); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, us.ID, owner); !errors.Is(err, ErrUserSkillNotFound) {
		t.Fatalf("expected ErrUserSkillNotFound, got %v", err)
	}
}

func TestPostgresRoleRepository_CuratedSkillOrder(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Seeding twice keeps roles and links unique.
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	repo := NewPostgresRoleRepository(db)
	roles, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := seeder.DefaultPaths[0].Roles[0]
	var roleID uuid.UUID
	for _, r := range roles {
		if r.Name == want.Name {
			roleID = r.ID
		}
	}
	if roleID == uuid.Nil {
		t.Fatalf("seeded role %q not found", want.Name)
	}

	got, err := repo.SkillsForRole(ctx, roleID)
	if err != nil {
		t.Fatalf("skills for role: %v", err)
	}
	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}
	if !reflect.DeepEqual(names, want.Skills) {
		t.Fatalf("expected curated order %v, got %v", want.Skills, names)
	}

	grouped, err := repo.ListWithSkills(ctx)
	if err != nil {
		t.Fatalf("list with skills: %v", err)
	}
	total := 0
	for _, p := range seeder.DefaultPaths {
		total += len(p.Roles)
	}
	if len(grouped) != total {
		t.Fatalf("expected %d roles, got %d", total, len(grouped))
	}
	for _, rw := range grouped {
		if rw.ID != roleID {
			continue
		}
		if len(rw.Skills) != len(want.Skills) || rw.Skills[0].Name != want.Skills[0] {
			t.Fatalf("grouped skills out of order: %+v", rw.Skills)
		}
	}
}

func TestPostgresLearningResourceRepository_CoverageRanking(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	skills := NewPostgresSkillRepository(db)
	repo := NewPostgresLearningResourceRepository(db)

	mk := func(name string) uuid.UUID {
		s, err := skills.Create(ctx, name, "")
		if err != nil {
			t.Fatalf("create skill %s: %v", name, err)
		}
		return s.ID
	}
	docker, k8s, rust := mk("Docker"), mk("Kubernetes"), mk("Rust")

	upsert := func(title, url string, ids ...uuid.UUID) uuid.UUID {
		id, err := repo.Upsert(ctx, resource.LearningResource{Title: title, URL: url, Source: "test"}, ids)
		if err != nil {
			t.Fatalf("upsert %s: %v", title, err)
		}
		return id
	}
	single := upsert("Docker basics", "https://example.com/docker", docker)
	both := upsert("Containers to clusters", "https://example.com/k8s", docker, k8s)
	upsert("Rust book", "https://example.com/rust", rust)

	if again := upsert("Docker basics, 2nd ed.", "https://example.com/docker", docker); again != single {
		t.Fatalf("upsert by url must keep the id: %s vs %s", again, single)
	}

	got, err := repo.ForSkills(ctx, []uuid.UUID{docker, k8s}, 10)
	if err != nil {
		t.Fatalf("for skills: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(got))
	}
	if got[0].ID != both || !reflect.DeepEqual(got[0].MatchingSkills, []string{"Docker", "Kubernetes"}) {
		t.Fatalf("expected the two-skill resource first, got %+v", got[0])
	}
	if got[1].ID != single || got[1].Title != "Docker basics, 2nd ed." || got[1].Type != "Article" {
		t.Fatalf("unexpected second resource %+v", got[1])
	}
}

func TestPostgresAchievementRepository_NewestFirst(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := NewPostgresAchievementRepository(db)
	owner := dbtest.CreateUser(t, db, "ach@example.com")

	day := func(s string) time.Time {
		d, err := time.Parse(achievement.DateLayout, s)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		return d
	}
	older, err := repo.Create(ctx, achievement.Achievement{UserID: owner, Title: "Certified", Date: day("2023-01-10")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, achievement.Achievement{UserID: owner, Title: "Promoted", Date: day("2024-06-01")}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := repo.ListByUser(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Promoted" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if err := repo.Delete(ctx, older.ID, uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := repo.Delete(ctx, uuid.New(), owner); !errors.Is(err, ErrAchievementNotFound) {
		t.Fatalf("expected ErrAchievementNotFound, got %v", err)
	}
}
