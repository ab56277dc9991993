package client

import (
	"context"
	"errors"
	"sync"

	"ascend/internal/domain/recommendation"
)

// ErrStale is returned to a Load whose result was superseded by a later Load
// or a Reset. The view state is left to the newer request.
var ErrStale = errors.New("recommendation response superseded")

type ViewStatus int

const (
	StatusIdle ViewStatus = iota
	StatusLoading
	StatusSuccess
	StatusFailed
)

func (s ViewStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

type ViewState struct {
	Status     ViewStatus
	Generation uint64
	Items      []recommendation.Recommendation
	Err        error
}

// Message is the user-facing error text in the Failed state, empty otherwise.
func (s ViewState) Message() string {
	if s.Status != StatusFailed {
		return ""
	}
	return UserMessage(s.Err)
}

type Fetcher interface {
	FetchRecommendations(ctx context.Context, missingSkills []string) ([]recommendation.Recommendation, error)
}

// RecommendationView owns the request state of one recommendation panel. Each
// trigger takes a Ticket carrying a new generation and cancels the work of the
// previous one; only the latest generation may write the state.
type RecommendationView struct {
	fetcher  Fetcher
	onChange func(ViewState)

	mu     sync.Mutex
	state  ViewState
	cancel context.CancelFunc
}

// onChange runs with the view locked and must not call back into it.
func NewRecommendationView(f Fetcher, onChange func(ViewState)) *RecommendationView {
	return &RecommendationView{fetcher: f, onChange: onChange}
}

// Ticket identifies one trigger. Work done on its behalf should use Context,
// which is cancelled as soon as a newer trigger begins.
type Ticket struct {
	gen uint64
	ctx context.Context
}

func (t Ticket) Generation() uint64       { return t.gen }
func (t Ticket) Context() context.Context { return t.ctx }

func (v *RecommendationView) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Begin starts a new trigger: it cancels the previous one and moves the view
// to Loading under a new generation.
func (v *RecommendationView) Begin(ctx context.Context) Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.state = ViewState{Status: StatusLoading, Generation: v.state.Generation + 1}
	v.emitLocked()
	return Ticket{gen: v.state.Generation, ctx: reqCtx}
}

// Current reports whether t is still the latest trigger.
func (v *RecommendationView) Current(t Ticket) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return t.gen == v.state.Generation
}

// Load begins a trigger and fetches recommendations for missingSkills. A
// superseded call returns ErrStale.
func (v *RecommendationView) Load(ctx context.Context, missingSkills []string) ([]recommendation.Recommendation, error) {
	return v.Fetch(v.Begin(ctx), missingSkills)
}

// Fetch runs the request for an already begun trigger and settles the view
// with its outcome, unless a newer trigger took over in the meantime.
func (v *RecommendationView) Fetch(t Ticket, missingSkills []string) ([]recommendation.Recommendation, error) {
	if !v.Current(t) {
		return nil, ErrStale
	}
	names := append([]string(nil), missingSkills...)
	items, err := v.fetcher.FetchRecommendations(t.ctx, names)
	if err != nil {
		if !v.settle(t, ViewState{Status: StatusFailed, Err: err}) {
			return nil, ErrStale
		}
		return nil, err
	}
	if !v.settle(t, ViewState{Status: StatusSuccess, Items: items}) {
		return nil, ErrStale
	}
	return items, nil
}

// Fail settles the trigger as Failed with err. It reports false when t was
// superseded.
func (v *RecommendationView) Fail(t Ticket, err error) bool {
	return v.settle(t, ViewState{Status: StatusFailed, Err: err})
}

// Reset cancels any in-flight request and returns the view to Idle.
func (v *RecommendationView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.state = ViewState{Status: StatusIdle, Generation: v.state.Generation + 1}
	v.emitLocked()
}

func (v *RecommendationView) settle(t Ticket, st ViewState) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if t.gen != v.state.Generation {
		return false
	}
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	st.Generation = t.gen
	v.state = st
	v.emitLocked()
	return true
}

func (v *RecommendationView) emitLocked() {
	if v.onChange != nil {
		v.onChange(v.state)
	}
}
