package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"ascend/internal/delivery/http/dto"
	"ascend/internal/domain/event"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/singleflight"
)

var ErrSessionChanged = errors.New("session changed while the request was in flight")

type ChangeReason string

const (
	ChangeSignedIn     ChangeReason = "signed_in"
	ChangeSignedOut    ChangeReason = "signed_out"
	ChangeProfile      ChangeReason = "profile"
	ChangeSkills       ChangeReason = "skills"
	ChangeAchievements ChangeReason = "achievements"
)

type SessionState struct {
	User   *dto.UserProfileResponse
	Tokens *dto.TokensResponse
}

func (s SessionState) SignedIn() bool {
	return s.Tokens != nil && s.Tokens.AccessToken != ""
}

type Change struct {
	Reason ChangeReason
	State  SessionState
}

type ProfileFetcher interface {
	Profile(ctx context.Context) (dto.UserProfileResponse, error)
}

// Session is the application-wide signed-in state. Every change is delivered
// through Subscribe; listeners are called outside the session lock in the
// order they subscribed.
type Session struct {
	mu     sync.RWMutex
	state  SessionState
	epoch  uint64
	subs   map[int]func(Change)
	order  []int
	nextID int

	refetch singleflight.Group
}

func NewSession() *Session {
	return &Session{subs: map[int]func(Change){}}
}

// Subscribe registers fn for every change and returns the function that
// removes it.
func (s *Session) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Tokens == nil {
		return ""
	}
	return s.state.Tokens.AccessToken
}

func (s *Session) SetSession(sess dto.SessionResponse) {
	user := sess.User
	tokens := sess.Tokens
	s.update(ChangeSignedIn, func(st *SessionState) bool {
		st.User = &user
		st.Tokens = &tokens
		s.epoch++
		return true
	})
}

func (s *Session) Clear() {
	s.update(ChangeSignedOut, func(st *SessionState) bool {
		*st = SessionState{}
		s.epoch++
		return true
	})
}

// RefetchProfile reloads the profile. Concurrent callers of the same session
// share one request. A result that arrives after the session was replaced or
// cleared is discarded with ErrSessionChanged.
func (s *Session) RefetchProfile(ctx context.Context, api ProfileFetcher) (dto.UserProfileResponse, error) {
	s.mu.RLock()
	signedIn := s.state.SignedIn()
	epoch := s.epoch
	s.mu.RUnlock()
	if !signedIn {
		return dto.UserProfileResponse{}, ErrNotSignedIn
	}

	v, err, _ := s.refetch.Do("profile:"+strconv.FormatUint(epoch, 10), func() (any, error) {
		return api.Profile(ctx)
	})
	if err != nil {
		return dto.UserProfileResponse{}, err
	}
	p := v.(dto.UserProfileResponse)
	applied := s.update(ChangeProfile, func(st *SessionState) bool {
		if s.epoch != epoch {
			return false
		}
		st.User = &p
		return true
	})
	if !applied {
		return dto.UserProfileResponse{}, ErrSessionChanged
	}
	return p, nil
}

// Watch follows the server event feed for the signed-in user until ctx ends
// or the connection drops. Profile events refetch the profile; skill and
// achievement events are forwarded to subscribers.
func (s *Session) Watch(ctx context.Context, api *API, dialer *websocket.Dialer) error {
	token := s.AccessToken()
	if token == "" {
		return ErrNotSignedIn
	}
	wsURL, err := eventsURL(api.BaseURL(), token)
	if err != nil {
		return err
	}
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return ErrNotSignedIn
		}
		return err
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		var ev event.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		switch ev.Type {
		case event.TypeProfileUpdated:
			_, err := s.RefetchProfile(ctx, api)
			if errors.Is(err, ErrSessionChanged) || errors.Is(err, ErrNotSignedIn) {
				return nil
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case event.TypeSkillsUpdated:
			s.notify(Change{Reason: ChangeSkills, State: s.State()})
		case event.TypeAchievementsUpdated:
			s.notify(Change{Reason: ChangeAchievements, State: s.State()})
		}
	}
}

// update applies fn under the lock and notifies subscribers when fn reports
// a change.
func (s *Session) update(reason ChangeReason, fn func(*SessionState) bool) bool {
	s.mu.Lock()
	changed := fn(&s.state)
	st := s.state
	s.mu.Unlock()
	if changed {
		s.notify(Change{Reason: reason, State: st})
	}
	return changed
}

func (s *Session) notify(c Change) {
	s.mu.RLock()
	fns := make([]func(Change), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(c)
	}
}

func eventsURL(base, token string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/") + "/ws")
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
