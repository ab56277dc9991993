package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"ascend/internal/logger"
)

type stubCompleter struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.reply, s.err
}

func TestRecommendation_Generate(t *testing.T) {
	llm := &stubCompleter{reply: `[{"title":"Kubernetes the Hard Way","description":"Learn by building.","type":"Project"}]`}
	uc := NewRecommendationUsecase(llm, logger.Discard())

	items, err := uc.Generate(context.Background(), []string{" Kubernetes ", "", "Docker"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(items) != 1 || items[0].Type != "Project" {
		t.Fatalf("unexpected items %+v", items)
	}
	if !strings.Contains(llm.prompt, "Kubernetes, Docker") {
		t.Fatalf("prompt should carry cleaned skill names: %s", llm.prompt)
	}
}

func TestRecommendation_EmptyInputSkipsModel(t *testing.T) {
	llm := &stubCompleter{}
	uc := NewRecommendationUsecase(llm, logger.Discard())

	for _, in := range [][]string{nil, {}, {"  "}} {
		if _, err := uc.Generate(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	}
	if llm.calls != 0 {
		t.Fatalf("model must not be called, got %d calls", llm.calls)
	}
}

func TestRecommendation_TooManySkills(t *testing.T) {
	llm := &stubCompleter{}
	uc := NewRecommendationUsecase(llm, logger.Discard())

	names := make([]string, MaxMissingSkills+1)
	for i := range names {
		names[i] = fmt.Sprintf("skill-%d", i)
	}
	_, err := uc.Generate(context.Background(), names)
	if !errors.Is(err, ErrTooManySkills) || !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrTooManySkills, got %v", err)
	}
	if llm.calls != 0 {
		t.Fatalf("model must not be called, got %d calls", llm.calls)
	}
}

func TestRecommendation_Failures(t *testing.T) {
	upstream := NewRecommendationUsecase(&stubCompleter{err: errors.New("timeout")}, logger.Discard())
	if _, err := upstream.Generate(context.Background(), []string{"Go"}); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}

	malformed := NewRecommendationUsecase(&stubCompleter{reply: "Sure! Here are some ideas: learn Go."}, logger.Discard())
	if _, err := malformed.Generate(context.Background(), []string{"Go"}); !errors.Is(err, ErrMalformedModelOutput) {
		t.Fatalf("expected ErrMalformedModelOutput, got %v", err)
	}
}
