package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ascend/internal/domain/recommendation"
)

const (
	RecommendationFunctionPath = "/functions/v1/get-learning-recommendations"

	MessageRecommendationsFailed = "Could not fetch AI recommendations. Please try again later."
	MessageNotAuthenticated      = "Not authenticated. Please log in again."

	maxRecommendationBody = 1 << 20
)

type FetchErrorKind int

const (
	KindUpstream FetchErrorKind = iota
	KindUnauthenticated
	KindInvalidRequest
	KindMalformed
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidRequest:
		return "invalid_request"
	case KindMalformed:
		return "malformed"
	default:
		return "upstream"
	}
}

// FetchError is the single failure type of FetchRecommendations. Detail holds
// the function's {error} text when it sent one.
type FetchError struct {
	Kind   FetchErrorKind
	Status int
	Detail string
	Err    error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "recommendations: %s", e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " status=%d", e.Status)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " detail=%q", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FetchError) Unwrap() error { return e.Err }

// UserMessage is the text shown to the user for this failure.
func (e *FetchError) UserMessage() string {
	if e.Kind == KindUnauthenticated {
		return MessageNotAuthenticated
	}
	return MessageRecommendationsFailed
}

// UserMessage renders any error from the recommendation path for display.
func UserMessage(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.UserMessage()
	}
	return MessageRecommendationsFailed
}

type RecommendationFetcher struct {
	endpoint   string
	httpClient *http.Client
	tokens     TokenSource
}

func NewRecommendationFetcher(baseURL string, tokens TokenSource, hc *http.Client) *RecommendationFetcher {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &RecommendationFetcher{
		endpoint:   strings.TrimRight(strings.TrimSpace(baseURL), "/") + RecommendationFunctionPath,
		httpClient: hc,
		tokens:     tokens,
	}
}

// FetchRecommendations makes one call to the recommendation function for the
// given missing skill names. No names means nothing to recommend: it returns
// an empty list without touching the network.
func (f *RecommendationFetcher) FetchRecommendations(ctx context.Context, missingSkills []string) ([]recommendation.Recommendation, error) {
	if len(missingSkills) == 0 {
		return []recommendation.Recommendation{}, nil
	}

	token := ""
	if f.tokens != nil {
		token = f.tokens.AccessToken()
	}
	if token == "" {
		return nil, &FetchError{Kind: KindUnauthenticated, Err: ErrNotSignedIn}
	}

	payload, err := json.Marshal(struct {
		MissingSkills []string `json:"missingSkills"`
	}{MissingSkills: missingSkills})
	if err != nil {
		return nil, &FetchError{Kind: KindInvalidRequest, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &FetchError{Kind: KindInvalidRequest, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindUpstream, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRecommendationBody))
	if err != nil {
		return nil, &FetchError{Kind: KindUpstream, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		fe := &FetchError{Kind: KindUpstream, Status: resp.StatusCode, Detail: functionErrorText(body)}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			fe.Kind = KindUnauthenticated
		case http.StatusBadRequest:
			fe.Kind = KindInvalidRequest
		}
		return nil, fe
	}

	items, err := recommendation.ParseList(body)
	if err != nil {
		return nil, &FetchError{Kind: KindMalformed, Status: resp.StatusCode, Err: err}
	}
	return items, nil
}

func functionErrorText(body []byte) string {
	var fe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &fe); err == nil {
		return fe.Error
	}
	return ""
}
