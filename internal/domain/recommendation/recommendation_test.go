package recommendation

import (
	"errors"
	"strings"
	"testing"
)

func TestParseList_Valid(t *testing.T) {
	raw := `  [{"title":"Master React Hooks","description":"Hooks are everywhere.","type":"Article"},
	{"title":"Build a CLI","description":"Practice Go.","type":"Project"}]  `

	got, err := ParseList([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Title != "Master React Hooks" || got[1].Type != "Project" {
		t.Fatalf("unexpected items %+v", got)
	}
}

func TestParseList_FencedBlock(t *testing.T) {
	raw := "```json\n[{\"title\":\"A\",\"description\":\"B\",\"type\":\"Video\"}]\n```"
	got, err := ParseList([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Type != "Video" {
		t.Fatalf("unexpected items %+v", got)
	}
}

func TestParseList_Rejects(t *testing.T) {
	cases := map[string]string{
		"prose wrapped": `Here you go: [{"title":"A","description":"B","type":"C"}]`,
		"object":        `{"title":"A","description":"B","type":"C"}`,
		"missing title": `[{"description":"B","type":"C"}]`,
		"blank title":   `[{"title":"  ","description":"B","type":"C"}]`,
		"missing type":  `[{"title":"A","description":"B"}]`,
		"wrong type":    `[{"title":"A","description":"B","type":3}]`,
		"trailing":      `[{"title":"A","description":"B","type":"C"}] thanks!`,
		"empty":         ``,
		"not json":      `[oops`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseList([]byte(raw))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestBuildPrompt_JoinsSkills(t *testing.T) {
	p := BuildPrompt([]string{"Docker", "Kubernetes"})
	if !strings.Contains(p, "target role: Docker, Kubernetes.") {
		t.Fatalf("prompt should list skills comma separated: %s", p)
	}
	if !strings.Contains(p, "Return ONLY a valid JSON array") {
		t.Fatalf("prompt should demand a json array")
	}
}
