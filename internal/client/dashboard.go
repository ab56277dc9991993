package client

import (
	"context"
	"errors"

	"ascend/internal/delivery/http/dto"
	"ascend/internal/domain/recommendation"
	"ascend/internal/domain/skillgap"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type DashboardData struct {
	Profile      dto.UserProfileResponse
	Paths        []dto.PathResponse
	UserSkills   []dto.UserSkillResponse
	Achievements []dto.AchievementResponse
}

// RoleSelection is the outcome of choosing a target role. RecommendationErr
// is set when the gap was computed but recommendations could not be fetched.
type RoleSelection struct {
	RoleID            uuid.UUID
	Gap               skillgap.Result
	Recommendations   []recommendation.Recommendation
	RecommendationErr error
}

type Dashboard struct {
	api  *API
	view *RecommendationView
}

func NewDashboard(api *API, view *RecommendationView) *Dashboard {
	return &Dashboard{api: api, view: view}
}

func (d *Dashboard) View() *RecommendationView { return d.view }

// Load fetches everything the dashboard shows on entry in parallel. The first
// failure cancels the remaining calls.
func (d *Dashboard) Load(ctx context.Context) (DashboardData, error) {
	var out DashboardData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := d.api.Profile(gctx)
		out.Profile = p
		return err
	})
	g.Go(func() error {
		p, err := d.api.Paths(gctx)
		out.Paths = p
		return err
	})
	g.Go(func() error {
		s, err := d.api.UserSkills(gctx)
		out.UserSkills = s
		return err
	})
	g.Go(func() error {
		a, err := d.api.Achievements(gctx)
		out.Achievements = a
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardData{}, err
	}
	return out, nil
}

// SelectRole computes the gap between the role's required skills and the
// user's skills, then loads recommendations for the missing ones through the
// dashboard's view. The selection owns a view generation from the start, so a
// later selection supersedes it even while its gap is still being fetched;
// the superseded call returns ErrStale.
func (d *Dashboard) SelectRole(ctx context.Context, roleID uuid.UUID) (RoleSelection, error) {
	t := d.view.Begin(ctx)

	gap, err := d.Gap(t.Context(), roleID)
	if err != nil {
		if !d.view.Fail(t, err) {
			return RoleSelection{}, ErrStale
		}
		return RoleSelection{}, err
	}

	sel := RoleSelection{RoleID: roleID, Gap: gap}
	items, err := d.view.Fetch(t, gap.MissingNames())
	if errors.Is(err, ErrStale) {
		return RoleSelection{}, err
	}
	sel.Recommendations = items
	sel.RecommendationErr = err
	return sel, nil
}

// Gap fetches the role's required skills and the user's skills and runs the
// skill-gap engine over them.
func (d *Dashboard) Gap(ctx context.Context, roleID uuid.UUID) (skillgap.Result, error) {
	var (
		required []dto.SkillResponse
		owned    []dto.UserSkillResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		required, err = d.api.RoleSkills(gctx, roleID)
		return err
	})
	g.Go(func() error {
		var err error
		owned, err = d.api.UserSkills(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return skillgap.Result{}, err
	}
	return ComputeGap(required, owned), nil
}

// ComputeGap adapts API payloads to the skill-gap engine.
func ComputeGap(required []dto.SkillResponse, owned []dto.UserSkillResponse) skillgap.Result {
	ids := make([]uuid.UUID, 0, len(required))
	names := make(map[uuid.UUID]string, len(required)+len(owned))
	for _, s := range required {
		ids = append(ids, s.ID)
		if s.Name != "" {
			names[s.ID] = s.Name
		}
	}
	have := make(map[uuid.UUID]struct{}, len(owned))
	for _, us := range owned {
		have[us.Skill.ID] = struct{}{}
		if _, ok := names[us.Skill.ID]; !ok && us.Skill.Name != "" {
			names[us.Skill.ID] = us.Skill.Name
		}
	}
	return skillgap.Compute(ids, have, names)
}
