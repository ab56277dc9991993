package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ascend/internal/domain/resource"
	"ascend/internal/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagFor(t *testing.T) {
	assert.Equal(t, "nodejs", tagFor("Node.js"))
	assert.Equal(t, "cicd", tagFor("CI/CD"))
	assert.Equal(t, "machinelearning", tagFor("Machine Learning"))
	assert.Equal(t, "", tagFor(" ./ "))
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://dev.to/a/b", normalizeURL(" https://dev.to/a/b#comments "))
	assert.Empty(t, normalizeURL("javascript:alert(1)"))
	assert.Empty(t, normalizeURL("/relative"))
}

func TestDevtoSource_Fetch(t *testing.T) {
	var gotTag, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/articles", r.URL.Path)
		gotTag = r.URL.Query().Get("tag")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"title":"Understanding Go channels","description":"A tour.","url":"https://dev.to/x/go-channels"},
			{"title":"","description":"no title","url":"https://dev.to/x/empty"},
			{"title":"Bad link","description":"","url":"ftp://example.com"}
		]`)
	}))
	defer srv.Close()

	items, err := NewDevtoSourceWithBaseURL(srv.URL, 5).Fetch(context.Background(), "Go")
	require.NoError(t, err)
	assert.Equal(t, "go", gotTag)
	assert.Equal(t, userAgent, gotUA)
	require.Len(t, items, 1)
	assert.Equal(t, Item{
		Title:       "Understanding Go channels",
		Description: "A tour.",
		URL:         "https://dev.to/x/go-channels",
		Type:        "Article",
		Source:      "dev.to",
	}, items[0])
}

func TestDevtoSource_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewDevtoSourceWithBaseURL(srv.URL, 5).Fetch(context.Background(), "Go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCatalogSource_Fetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><ul>
			<li class="course"><a href="/courses/k8s-basics"><h3>Kubernetes Basics</h3></a><p class="blurb">Pods and services.</p></li>
			<li class="course"><a href="/courses/k8s-basics">duplicate</a></li>
			<li class="course"><a href="https://other.example.com/deep-dive"><h3>Deep Dive</h3></a></li>
			<li class="course"><span>no link</span></li>
		</ul></body></html>`)
	}))
	defer srv.Close()

	src := NewCatalogSource(CatalogTarget{
		Name:                "test-catalog",
		SearchURL:           srv.URL + "/search?q=%s",
		ItemSelector:        "li.course",
		TitleSelector:       "h3",
		DescriptionSelector: "p.blurb",
	})
	src.delay = 0

	items, err := src.Fetch(context.Background(), "Kubernetes Operators")
	require.NoError(t, err)
	assert.Equal(t, "Kubernetes Operators", gotQuery)
	require.Len(t, items, 2)
	assert.Equal(t, "Kubernetes Basics", items[0].Title)
	assert.Equal(t, srv.URL+"/courses/k8s-basics", items[0].URL)
	assert.Equal(t, "Pods and services.", items[0].Description)
	assert.Equal(t, "Course", items[0].Type)
	assert.Equal(t, "https://other.example.com/deep-dive", items[1].URL)
}

func TestHeadlessSource_ItemsFromAnchors(t *testing.T) {
	src := NewHeadlessSource(HeadlessTarget{Name: "docs", LinkContains: "/tutorial/", MaxItems: 2})
	items := src.itemsFromAnchors([]anchor{
		{Href: "https://docs.example.com/nav", Text: "Home"},
		{Href: "https://docs.example.com/tutorial/intro", Text: " Intro   tutorial "},
		{Href: "https://docs.example.com/tutorial/intro", Text: "Intro again"},
		{Href: "https://docs.example.com/tutorial/empty", Text: ""},
		{Href: "https://docs.example.com/tutorial/next", Text: "Next steps"},
		{Href: "https://docs.example.com/tutorial/more", Text: "Over the limit"},
	})
	require.Len(t, items, 2)
	assert.Equal(t, "Intro tutorial", items[0].Title)
	assert.Equal(t, "Tutorial", items[0].Type)
	assert.Equal(t, "https://docs.example.com/tutorial/next", items[1].URL)
}

type fakeSource struct {
	name  string
	items map[string][]Item
	err   error
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) Fetch(_ context.Context, skill string) ([]Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items[skill], nil
}

type fakeStore struct {
	mu     sync.Mutex
	skills map[string]uuid.UUID
	byURL  map[string][]uuid.UUID
}

func (s *fakeStore) IDsByNames(_ context.Context, names []string) (map[string]uuid.UUID, error) {
	out := map[string]uuid.UUID{}
	for _, n := range names {
		if id, ok := s.skills[strings.ToLower(n)]; ok {
			out[strings.ToLower(n)] = id
		}
	}
	return out, nil
}

func (s *fakeStore) Upsert(_ context.Context, res resource.LearningResource, skillIDs []uuid.UUID) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byURL[res.URL] = append(s.byURL[res.URL], skillIDs...)
	return uuid.New(), nil
}

type fakeLock struct {
	held    bool
	deleted bool
}

func (l *fakeLock) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *fakeLock) Delete(context.Context, ...string) error {
	l.deleted = true
	l.held = false
	return nil
}

func TestCrawler_Run(t *testing.T) {
	goID, sqlID := uuid.New(), uuid.New()
	store := &fakeStore{
		skills: map[string]uuid.UUID{"go": goID, "sql": sqlID},
		byURL:  map[string][]uuid.UUID{},
	}
	articles := fakeSource{name: "articles", items: map[string][]Item{
		"Go":  {{Title: "Go 101", URL: "https://a.example/go"}},
		"SQL": {{Title: "Joins", URL: "https://a.example/sql"}, {Title: "Indexes", URL: "https://a.example/idx"}},
	}}
	broken := fakeSource{name: "broken", err: errors.New("boom")}
	lock := &fakeLock{}

	c := New(store, lock, logger.Discard(), Options{Workers: 2}, articles, broken)
	st, err := c.Run(context.Background(), []string{"Go", "SQL", "Cobol"})
	require.NoError(t, err)

	assert.Equal(t, Stats{Tasks: 4, Stored: 3, Failed: 2}, st)
	assert.Equal(t, []uuid.UUID{goID}, store.byURL["https://a.example/go"])
	assert.Equal(t, []uuid.UUID{sqlID}, store.byURL["https://a.example/idx"])
	assert.True(t, lock.deleted, "lock must be released")
}

func TestCrawler_LockHeld(t *testing.T) {
	store := &fakeStore{skills: map[string]uuid.UUID{}, byURL: map[string][]uuid.UUID{}}
	c := New(store, &fakeLock{held: true}, logger.Discard(), Options{})

	_, err := c.Run(context.Background(), []string{"Go"})
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestPool_RateLimitSpacesTasks(t *testing.T) {
	p := newPool(3, 10, 50)
	results := p.run(context.Background())

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.True(t, p.submit(context.Background(), task{run: func(context.Context) (int, error) { return 1, nil }}))
	}
	p.close()

	n := 0
	for r := range results {
		require.NoError(t, r.err)
		n += r.stored
	}
	assert.Equal(t, 5, n)
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}
