package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ascend/internal/domain/recommendation"
)

// MaxMissingSkills bounds one recommendation request.
const MaxMissingSkills = 50

var ErrTooManySkills = fmt.Errorf("%w: more than %d skills", ErrInvalidInput, MaxMissingSkills)

// ChatCompleter sends one prompt to a chat model and returns its raw reply.
type ChatCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type RecommendationUsecase interface {
	Generate(ctx context.Context, missingSkills []string) ([]recommendation.Recommendation, error)
}

type Recommendation struct {
	llm    ChatCompleter
	logger *slog.Logger
}

func NewRecommendationUsecase(llm ChatCompleter, logger *slog.Logger) *Recommendation {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recommendation{llm: llm, logger: logger}
}

// Generate asks the model for learning recommendations covering
// missingSkills. The reply is untrusted: anything that is not a JSON array of
// well-formed records fails with ErrMalformedModelOutput.
func (u *Recommendation) Generate(ctx context.Context, missingSkills []string) ([]recommendation.Recommendation, error) {
	names := make([]string, 0, len(missingSkills))
	for _, n := range missingSkills {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, ErrInvalidInput
	}
	if len(names) > MaxMissingSkills {
		return nil, ErrTooManySkills
	}
	if u.llm == nil {
		return nil, ErrUpstream
	}

	raw, err := u.llm.Complete(ctx, recommendation.BuildPrompt(names))
	if err != nil {
		u.logger.Error("recommendation model call failed", "skills", len(names), "err", err)
		return nil, ErrUpstream
	}

	items, err := recommendation.ParseList([]byte(raw))
	if err != nil {
		u.logger.Warn("recommendation model output rejected", "err", err, "bytes", len(raw))
		return nil, ErrMalformedModelOutput
	}
	return items, nil
}
