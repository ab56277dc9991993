package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// HeadlessTarget is a client-rendered search page. Links whose href contains
// LinkContains are taken as results.
type HeadlessTarget struct {
	Name         string
	SearchURL    string
	LinkContains string
	Type         string
	MaxItems     int
}

// HeadlessSource renders a HeadlessTarget in headless Chrome and collects
// result links.
type HeadlessSource struct {
	target  HeadlessTarget
	timeout time.Duration
}

func NewHeadlessSource(t HeadlessTarget) *HeadlessSource {
	if t.Type == "" {
		t.Type = "Tutorial"
	}
	if t.MaxItems <= 0 {
		t.MaxItems = 10
	}
	return &HeadlessSource{target: t, timeout: 30 * time.Second}
}

func (s *HeadlessSource) Name() string { return s.target.Name }

type anchor struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

func (s *HeadlessSource) Fetch(ctx context.Context, skill string) ([]Item, error) {
	if strings.TrimSpace(skill) == "" {
		return nil, nil
	}
	searchURL := fmt.Sprintf(s.target.SearchURL, url.QueryEscape(skill))

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, s.timeout)
	defer reqCancel()

	var anchors []anchor
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.Evaluate(`Array.from(document.querySelectorAll('a[href]'))
			.map(a => ({href: a.href, text: (a.innerText || '').trim()}))`, &anchors),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: render %s: %w", s.target.Name, searchURL, err)
	}

	return s.itemsFromAnchors(anchors), nil
}

func (s *HeadlessSource) itemsFromAnchors(anchors []anchor) []Item {
	seen := map[string]struct{}{}
	out := make([]Item, 0, s.target.MaxItems)
	for _, a := range anchors {
		if len(out) >= s.target.MaxItems {
			break
		}
		if s.target.LinkContains != "" && !strings.Contains(a.Href, s.target.LinkContains) {
			continue
		}
		u := normalizeURL(a.Href)
		title := truncate(a.Text, 200)
		if u == "" || title == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, Item{Title: title, URL: u, Type: s.target.Type, Source: s.target.Name})
	}
	return out
}
