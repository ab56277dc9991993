package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ascend/internal/domain/resource"

	"github.com/google/uuid"
)

const lockKey = "crawler:learning-resources"

// ErrAlreadyRunning is returned when another crawler holds the run lock.
var ErrAlreadyRunning = errors.New("crawler already running")

// Store persists resources. It is satisfied by the learning resource and
// skill repositories together.
type Store interface {
	Upsert(ctx context.Context, res resource.LearningResource, skillIDs []uuid.UUID) (uuid.UUID, error)
	IDsByNames(ctx context.Context, names []string) (map[string]uuid.UUID, error)
}

// Locker guards against overlapping runs across processes.
type Locker interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

type Options struct {
	Workers    int
	RatePerSec int
	LockTTL    time.Duration
}

type Crawler struct {
	sources []Source
	store   Store
	lock    Locker
	logger  *slog.Logger
	opts    Options
}

type Stats struct {
	Tasks  int
	Stored int
	Failed int
}

func New(store Store, lock Locker, logger *slog.Logger, opts Options, sources ...Source) *Crawler {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = time.Hour
	}
	return &Crawler{sources: sources, store: store, lock: lock, logger: logger, opts: opts}
}

// Run fetches every source for every skill name that exists in the catalog
// and upserts what it finds. Unknown skill names are skipped. A failing
// source/skill pair is counted and logged; it does not stop the run.
func (c *Crawler) Run(ctx context.Context, skills []string) (Stats, error) {
	if c.store == nil {
		return Stats{}, fmt.Errorf("nil store")
	}

	if c.lock != nil {
		ok, err := c.lock.SetIfNotExists(ctx, lockKey, uuid.NewString(), c.opts.LockTTL)
		if err != nil {
			return Stats{}, fmt.Errorf("acquire crawler lock: %w", err)
		}
		if !ok {
			return Stats{}, ErrAlreadyRunning
		}
		defer func() {
			_ = c.lock.Delete(context.Background(), lockKey)
		}()
	}

	ids, err := c.store.IDsByNames(ctx, skills)
	if err != nil {
		return Stats{}, fmt.Errorf("resolve skills: %w", err)
	}

	p := newPool(c.opts.Workers, c.opts.Workers*2, c.opts.RatePerSec)
	results := p.run(ctx)

	go func() {
		defer p.close()
		for _, name := range skills {
			skillID, ok := ids[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				c.logger.Warn("skipping unknown skill", "skill", name)
				continue
			}
			for _, src := range c.sources {
				if !p.submit(ctx, c.task(src, name, skillID)) {
					return
				}
			}
		}
	}()

	var st Stats
	for r := range results {
		st.Tasks++
		st.Stored += r.stored
		if r.err != nil {
			st.Failed++
			c.logger.Warn("crawl task failed", "source", r.source, "skill", r.skill, "err", r.err)
			continue
		}
		c.logger.Debug("crawl task done", "source", r.source, "skill", r.skill, "stored", r.stored)
	}

	c.logger.Info("crawl finished", "tasks", st.Tasks, "stored", st.Stored, "failed", st.Failed)
	return st, ctx.Err()
}

func (c *Crawler) task(src Source, skill string, skillID uuid.UUID) task {
	return task{
		source: src.Name(),
		skill:  skill,
		run: func(ctx context.Context) (int, error) {
			items, err := src.Fetch(ctx, skill)
			if err != nil {
				return 0, err
			}
			stored := 0
			for _, it := range items {
				_, err := c.store.Upsert(ctx, resource.LearningResource{
					Title:       it.Title,
					Description: it.Description,
					URL:         it.URL,
					Type:        it.Type,
					Source:      pickNonEmpty(it.Source, src.Name()),
				}, []uuid.UUID{skillID})
				if err != nil {
					return stored, fmt.Errorf("store %s: %w", it.URL, err)
				}
				stored++
			}
			return stored, nil
		},
	}
}
