package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// CatalogTarget describes a server-rendered search page. SearchURL contains a
// single %s that receives the query-escaped skill name, or its tag form when
// ByTag is set.
type CatalogTarget struct {
	Name                string
	SearchURL           string
	ByTag               bool
	ItemSelector        string
	LinkSelector        string
	TitleSelector       string
	DescriptionSelector string
	Type                string
	MaxItems            int
}

// CatalogSource scrapes a CatalogTarget with colly.
type CatalogSource struct {
	target CatalogTarget
	delay  time.Duration
}

func NewCatalogSource(t CatalogTarget) *CatalogSource {
	if t.LinkSelector == "" {
		t.LinkSelector = "a[href]"
	}
	if t.Type == "" {
		t.Type = "Course"
	}
	if t.MaxItems <= 0 {
		t.MaxItems = 10
	}
	return &CatalogSource{target: t, delay: 400 * time.Millisecond}
}

func (s *CatalogSource) Name() string { return s.target.Name }

func (s *CatalogSource) Fetch(ctx context.Context, skill string) ([]Item, error) {
	if strings.TrimSpace(skill) == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	term := url.QueryEscape(skill)
	if s.target.ByTag {
		if term = tagFor(skill); term == "" {
			return nil, nil
		}
	}
	searchURL := fmt.Sprintf(s.target.SearchURL, term)

	opts := []colly.CollectorOption{colly.UserAgent(userAgent)}
	if host := hostOf(searchURL); host != "" {
		opts = append(opts, colly.AllowedDomains(host))
	}
	c := colly.NewCollector(opts...)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: s.delay})

	items := make([]Item, 0, s.target.MaxItems)
	seen := map[string]struct{}{}

	c.OnHTML(s.target.ItemSelector, func(e *colly.HTMLElement) {
		if len(items) >= s.target.MaxItems {
			return
		}
		link := e.DOM.Find(s.target.LinkSelector).First()
		if e.DOM.Is(s.target.LinkSelector) {
			link = e.DOM
		}
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		u := normalizeURL(e.Request.AbsoluteURL(strings.TrimSpace(href)))
		if u == "" {
			return
		}
		if _, dup := seen[u]; dup {
			return
		}

		title := link.Text()
		if s.target.TitleSelector != "" {
			title = pickNonEmpty(e.DOM.Find(s.target.TitleSelector).First().Text(), title)
		}
		title = truncate(title, 200)
		if title == "" {
			return
		}

		desc := ""
		if s.target.DescriptionSelector != "" {
			desc = truncate(e.DOM.Find(s.target.DescriptionSelector).First().Text(), 500)
		}

		seen[u] = struct{}{}
		items = append(items, Item{Title: title, Description: desc, URL: u, Type: s.target.Type, Source: s.target.Name})
	})

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := c.Visit(searchURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
