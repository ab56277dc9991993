package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"ascend/internal/domain/achievement"
	"ascend/internal/domain/resource"
	"ascend/internal/domain/role"
	"ascend/internal/domain/skill"
	"ascend/internal/domain/user"
	"ascend/internal/repository"

	"github.com/google/uuid"
)

type fakeUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]user.User
	err  error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uuid.UUID]user.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailTaken
		}
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return user.User{}, f.err
	}
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id uuid.UUID, p user.Profile) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u.Profile = p
	f.byID[id] = u
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return user.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeSkillRepo struct {
	items     []skill.Skill
	listCalls int
	err       error
}

func (f *fakeSkillRepo) List(context.Context) ([]skill.Skill, error) {
	f.listCalls++
	return f.items, f.err
}

func (f *fakeSkillRepo) Create(_ context.Context, name, category string) (skill.Skill, error) {
	if f.err != nil {
		return skill.Skill{}, f.err
	}
	for _, s := range f.items {
		if strings.EqualFold(s.Name, name) {
			return skill.Skill{}, repository.ErrSkillAlreadyExists
		}
	}
	s := skill.Skill{ID: uuid.New(), Name: name, Category: category}
	f.items = append(f.items, s)
	return s, nil
}

func (f *fakeSkillRepo) NamesByIDs(context.Context, []uuid.UUID) (map[uuid.UUID]string, error) {
	return map[uuid.UUID]string{}, nil
}

func (f *fakeSkillRepo) IDsByNames(context.Context, []string) (map[string]uuid.UUID, error) {
	return map[string]uuid.UUID{}, nil
}

type fakeUserSkillRepo struct {
	skills map[uuid.UUID]string
	rows   map[uuid.UUID]skill.UserSkill
	err    error
}

func newFakeUserSkillRepo(skills ...skill.Skill) *fakeUserSkillRepo {
	f := &fakeUserSkillRepo{skills: map[uuid.UUID]string{}, rows: map[uuid.UUID]skill.UserSkill{}}
	for _, s := range skills {
		f.skills[s.ID] = s.Name
	}
	return f
}

func (f *fakeUserSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]skill.UserSkill, 0)
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeUserSkillRepo) OwnedSkillIDs(_ context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[uuid.UUID]struct{}{}
	for _, r := range f.rows {
		if r.UserID == userID {
			out[r.SkillID] = struct{}{}
		}
	}
	return out, nil
}

func (f *fakeUserSkillRepo) SkillExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.skills[id]
	return ok, f.err
}

func (f *fakeUserSkillRepo) Create(_ context.Context, userID, skillID uuid.UUID) (skill.UserSkill, error) {
	for _, r := range f.rows {
		if r.UserID == userID && r.SkillID == skillID {
			return skill.UserSkill{}, repository.ErrUserSkillExists
		}
	}
	r := skill.UserSkill{ID: uuid.New(), UserID: userID, SkillID: skillID, SkillName: f.skills[skillID], CreatedAt: time.Now()}
	f.rows[r.ID] = r
	return r, nil
}

func (f *fakeUserSkillRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	r, ok := f.rows[id]
	if !ok {
		return repository.ErrUserSkillNotFound
	}
	if r.UserID != userID {
		return repository.ErrForbidden
	}
	delete(f.rows, id)
	return nil
}

type fakeRoleRepo struct {
	roles  map[uuid.UUID]role.Role
	skills map[uuid.UUID][]skill.Skill
	err    error
}

func (f *fakeRoleRepo) List(context.Context) ([]role.Role, error) {
	out := make([]role.Role, 0, len(f.roles))
	for _, r := range f.roles {
		out = append(out, r)
	}
	return out, f.err
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id uuid.UUID) (role.Role, error) {
	if f.err != nil {
		return role.Role{}, f.err
	}
	r, ok := f.roles[id]
	if !ok {
		return role.Role{}, repository.ErrRoleNotFound
	}
	return r, nil
}

func (f *fakeRoleRepo) SkillsForRole(_ context.Context, id uuid.UUID) ([]skill.Skill, error) {
	return f.skills[id], f.err
}

func (f *fakeRoleRepo) ListWithSkills(context.Context) ([]role.RoleWithSkills, error) {
	out := make([]role.RoleWithSkills, 0, len(f.roles))
	for id, r := range f.roles {
		out = append(out, role.RoleWithSkills{Role: r, Skills: f.skills[id]})
	}
	return out, f.err
}

type fakeAchievementRepo struct {
	rows map[uuid.UUID]achievement.Achievement
}

func (f *fakeAchievementRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]achievement.Achievement, error) {
	out := make([]achievement.Achievement, 0)
	for _, a := range f.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAchievementRepo) Create(_ context.Context, a achievement.Achievement) (achievement.Achievement, error) {
	if f.rows == nil {
		f.rows = map[uuid.UUID]achievement.Achievement{}
	}
	f.rows[a.ID] = a
	return a, nil
}

func (f *fakeAchievementRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	a, ok := f.rows[id]
	if !ok {
		return repository.ErrAchievementNotFound
	}
	if a.UserID != userID {
		return repository.ErrForbidden
	}
	delete(f.rows, id)
	return nil
}

type fakeResourceRepo struct {
	gotIDs []uuid.UUID
	out    []resource.Match
}

func (f *fakeResourceRepo) Upsert(context.Context, resource.LearningResource, []uuid.UUID) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (f *fakeResourceRepo) ForSkills(_ context.Context, ids []uuid.UUID, _ int) ([]resource.Match, error) {
	f.gotIDs = ids
	return f.out, nil
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ uuid.UUID, eventType string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
