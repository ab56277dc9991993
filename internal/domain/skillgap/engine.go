// Package skillgap classifies the skills a target role requires into those a
// user already holds and those still missing.
package skillgap

import (
	"math"

	"github.com/google/uuid"
)

// UnknownSkillName stands in for a required skill id with no catalog entry.
const UnknownSkillName = "Unknown skill"

type Skill struct {
	ID   uuid.UUID
	Name string
}

type Result struct {
	Matching []Skill
	Missing  []Skill

	unresolved []uuid.UUID
}

// Compute partitions required by membership in owned. Order of required is
// kept and repeated ids count once, at their first position.
func Compute(required []uuid.UUID, owned map[uuid.UUID]struct{}, names map[uuid.UUID]string) Result {
	res := Result{
		Matching: make([]Skill, 0, len(required)),
		Missing:  make([]Skill, 0),
	}

	seen := make(map[uuid.UUID]struct{}, len(required))
	for _, id := range required {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		name, ok := names[id]
		if !ok || name == "" {
			name = UnknownSkillName
			res.unresolved = append(res.unresolved, id)
		}

		s := Skill{ID: id, Name: name}
		if _, has := owned[id]; has {
			res.Matching = append(res.Matching, s)
		} else {
			res.Missing = append(res.Missing, s)
		}
	}

	return res
}

func (r Result) Total() int {
	return len(r.Matching) + len(r.Missing)
}

// Fraction is matching over total, 0 when the role requires nothing.
func (r Result) Fraction() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(len(r.Matching)) / float64(total)
}

// Percent is Fraction scaled to 0..100 and rounded half away from zero.
func (r Result) Percent() int {
	return int(math.Round(r.Fraction() * 100))
}

func (r Result) MissingNames() []string {
	return names(r.Missing)
}

func (r Result) MatchingNames() []string {
	return names(r.Matching)
}

// Unresolved lists required ids that had no name and were given UnknownSkillName.
func (r Result) Unresolved() []uuid.UUID {
	return r.unresolved
}

func names(in []Skill) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.Name)
	}
	return out
}
