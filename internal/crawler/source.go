// Package crawler collects learning resources (articles, courses, guides)
// for catalog skills from external sites and stores them linked to the
// skills they teach.
package crawler

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode"
)

const userAgent = "AscendCrawler/1.0 (+https://github.com/ascend)"

// Item is one resource found by a source for a skill.
type Item struct {
	Title       string
	Description string
	URL         string
	Type        string
	Source      string
}

// Source finds resources teaching a single skill.
type Source interface {
	Name() string
	Fetch(ctx context.Context, skill string) ([]Item, error)
}

// tagFor turns a skill name into a lowercase alphanumeric tag:
// "Node.js" -> "nodejs", "CI/CD" -> "cicd".
func tagFor(skill string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(skill) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}

func pickNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max-1])) + "…"
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max + 1}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("response too large")
	}
	return b, nil
}
