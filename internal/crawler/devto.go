package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DevtoSource reads top articles per tag from the public dev.to API.
type DevtoSource struct {
	client  *http.Client
	apiBase string
	perTag  int
}

func NewDevtoSource(perTag int) *DevtoSource {
	return NewDevtoSourceWithBaseURL("https://dev.to", perTag)
}

func NewDevtoSourceWithBaseURL(apiBase string, perTag int) *DevtoSource {
	if perTag <= 0 {
		perTag = 10
	}
	return &DevtoSource{
		client:  &http.Client{Timeout: 25 * time.Second},
		apiBase: strings.TrimRight(apiBase, "/"),
		perTag:  perTag,
	}
}

func (s *DevtoSource) Name() string { return "dev.to" }

type devtoArticle struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	TagList     []string `json:"tag_list"`
}

func (s *DevtoSource) Fetch(ctx context.Context, skill string) ([]Item, error) {
	tag := tagFor(skill)
	if tag == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("tag", tag)
	q.Set("per_page", fmt.Sprint(s.perTag))
	q.Set("top", "365")
	endpoint := s.apiBase + "/api/articles?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dev.to tag %q: status %d", tag, resp.StatusCode)
	}
	body, err := readAllLimit(resp.Body, 5<<20)
	if err != nil {
		return nil, err
	}

	var articles []devtoArticle
	if err := json.Unmarshal(body, &articles); err != nil {
		return nil, fmt.Errorf("decode dev.to articles: %w", err)
	}

	out := make([]Item, 0, len(articles))
	for _, a := range articles {
		u := normalizeURL(a.URL)
		if u == "" || strings.TrimSpace(a.Title) == "" {
			continue
		}
		out = append(out, Item{
			Title:       strings.TrimSpace(a.Title),
			Description: truncate(a.Description, 500),
			URL:         u,
			Type:        "Article",
			Source:      s.Name(),
		})
	}
	return out, nil
}
