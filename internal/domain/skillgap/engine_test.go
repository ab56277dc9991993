package skillgap

import (
	"testing"

	"github.com/google/uuid"
)

func owned(ids ...uuid.UUID) map[uuid.UUID]struct{} {
	m := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func TestCompute_ThreeOfFour(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	names := map[uuid.UUID]string{a: "Go", b: "SQL", c: "Docker", d: "Kubernetes"}

	res := Compute([]uuid.UUID{a, b, c, d}, owned(a, b, c, uuid.New()), names)

	if len(res.Matching) != 3 || len(res.Missing) != 1 {
		t.Fatalf("expected 3 matching / 1 missing, got %d / %d", len(res.Matching), len(res.Missing))
	}
	if res.Missing[0].ID != d || res.Missing[0].Name != "Kubernetes" {
		t.Fatalf("unexpected missing skill %+v", res.Missing[0])
	}
	if res.Fraction() != 0.75 {
		t.Fatalf("expected fraction 0.75, got %v", res.Fraction())
	}
	if res.Percent() != 75 {
		t.Fatalf("expected 75%%, got %d", res.Percent())
	}
}

func TestCompute_EmptyRequirements(t *testing.T) {
	res := Compute(nil, owned(uuid.New()), nil)
	if len(res.Matching) != 0 || len(res.Missing) != 0 {
		t.Fatalf("expected empty lists, got %+v", res)
	}
	if res.Fraction() != 0 || res.Percent() != 0 {
		t.Fatalf("expected zero progress, got %v / %d", res.Fraction(), res.Percent())
	}
	if res.MissingNames() == nil || len(res.MissingNames()) != 0 {
		t.Fatalf("expected empty non-nil missing names")
	}
}

func TestCompute_PartitionPreservesOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	names := map[uuid.UUID]string{}
	for i, id := range ids {
		names[id] = string(rune('A' + i))
	}

	res := Compute(ids, owned(ids[1], ids[3]), names)

	if got := res.MatchingNames(); len(got) != 2 || got[0] != "B" || got[1] != "D" {
		t.Fatalf("unexpected matching order %v", got)
	}
	if got := res.MissingNames(); len(got) != 3 || got[0] != "A" || got[1] != "C" || got[2] != "E" {
		t.Fatalf("unexpected missing order %v", got)
	}

	seen := map[uuid.UUID]int{}
	for _, s := range res.Matching {
		seen[s.ID]++
	}
	for _, s := range res.Missing {
		seen[s.ID]++
	}
	for _, id := range ids {
		if seen[id] != 1 {
			t.Fatalf("id %s classified %d times", id, seen[id])
		}
	}
}

func TestCompute_DuplicatesCollapsed(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	names := map[uuid.UUID]string{a: "Go", b: "SQL"}

	res := Compute([]uuid.UUID{a, b, a, b}, owned(a), names)
	if res.Total() != 2 {
		t.Fatalf("expected 2 distinct requirements, got %d", res.Total())
	}
	if res.Percent() != 50 {
		t.Fatalf("expected 50%%, got %d", res.Percent())
	}
}

func TestCompute_UnknownNamesUsePlaceholder(t *testing.T) {
	known, unknown := uuid.New(), uuid.New()
	res := Compute([]uuid.UUID{known, unknown}, nil, map[uuid.UUID]string{known: "Go"})

	if res.Missing[1].Name != UnknownSkillName {
		t.Fatalf("expected placeholder, got %q", res.Missing[1].Name)
	}
	if u := res.Unresolved(); len(u) != 1 || u[0] != unknown {
		t.Fatalf("unexpected unresolved ids %v", u)
	}
}

func TestPercent_Rounding(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	res := Compute(ids, owned(ids[0], ids[1]), nil)
	if res.Percent() != 67 {
		t.Fatalf("expected 67%%, got %d", res.Percent())
	}

	res = Compute(ids, owned(ids[0]), nil)
	if res.Percent() != 33 {
		t.Fatalf("expected 33%%, got %d", res.Percent())
	}
}

func TestCompute_AllOwned(t *testing.T) {
	a := uuid.New()
	res := Compute([]uuid.UUID{a}, owned(a), map[uuid.UUID]string{a: "Go"})
	if res.Percent() != 100 || len(res.Missing) != 0 {
		t.Fatalf("expected full completion, got %+v", res)
	}
}
