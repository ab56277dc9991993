package role

import "testing"

func TestGroupPaths_PreservesOrder(t *testing.T) {
	in := []RoleWithSkills{
		{Role: Role{Name: "Junior", PathName: "Backend", Position: 1}},
		{Role: Role{Name: "Analyst", PathName: "Data", Position: 1}},
		{Role: Role{Name: "Senior", PathName: "Backend", Position: 2}},
	}

	got := GroupPaths(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(got))
	}
	if got[0].Name != "Backend" || got[1].Name != "Data" {
		t.Fatalf("unexpected path order: %q, %q", got[0].Name, got[1].Name)
	}
	if len(got[0].Roles) != 2 || got[0].Roles[0].Name != "Junior" || got[0].Roles[1].Name != "Senior" {
		t.Fatalf("unexpected backend roles: %+v", got[0].Roles)
	}
}

func TestGroupPaths_Empty(t *testing.T) {
	if got := GroupPaths(nil); len(got) != 0 {
		t.Fatalf("expected no paths, got %d", len(got))
	}
}
