package dto

import (
	"ascend/internal/domain/resource"
	"ascend/internal/domain/skillgap"

	"github.com/google/uuid"
)

type SkillGapResponse struct {
	Role              RoleResponse `json:"role"`
	MatchingSkills    []SkillRef   `json:"matching_skills"`
	MissingSkills     []SkillRef   `json:"missing_skills"`
	CompletionPercent int          `json:"completion_percent"`
	UnresolvedSkills  []uuid.UUID  `json:"unresolved_skill_ids,omitempty"`
}

func NewSkillGapResponse(ro RoleResponse, res skillgap.Result) SkillGapResponse {
	return SkillGapResponse{
		Role:              ro,
		MatchingSkills:    skillRefs(res.Matching),
		MissingSkills:     skillRefs(res.Missing),
		CompletionPercent: res.Percent(),
		UnresolvedSkills:  res.Unresolved(),
	}
}

func skillRefs(in []skillgap.Skill) []SkillRef {
	out := make([]SkillRef, 0, len(in))
	for _, s := range in {
		out = append(out, SkillRef{ID: s.ID, Name: s.Name})
	}
	return out
}

type LearningResourceResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	URL            string    `json:"url"`
	Type           string    `json:"type"`
	Source         string    `json:"source"`
	MatchingSkills []string  `json:"matching_skills"`
}

func NewLearningResourceResponses(items []resource.Match) []LearningResourceResponse {
	out := make([]LearningResourceResponse, 0, len(items))
	for _, m := range items {
		skills := m.MatchingSkills
		if skills == nil {
			skills = []string{}
		}
		out = append(out, LearningResourceResponse{
			ID:             m.ID,
			Title:          m.Title,
			Description:    m.Description,
			URL:            m.URL,
			Type:           m.Type,
			Source:         m.Source,
			MatchingSkills: skills,
		})
	}
	return out
}
