package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ascend/internal/app"
	"ascend/internal/config"
	"ascend/internal/crawler"
	"ascend/internal/logger"
	"ascend/internal/repository"
)

type store struct {
	repository.LearningResourceRepository
	repository.SkillRepository
}

func main() {
	skillsFlag := flag.String("skills", "", "comma separated skill names (default: CRAWLER_TAGS, then the whole catalog)")
	headless := flag.Bool("headless", false, "also crawl browser-rendered catalogs (needs Chrome)")
	noCatalogs := flag.Bool("no-catalogs", false, "only use the dev.to API")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	lg := logger.New(cfg.App.LogLevel, cfg.App.LogFormat).With("app", cfg.App.AppName, "cmd", "crawler")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	if err := c.Migrate(ctx); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	skillRepo := repository.NewPostgresSkillRepository(c.DB)
	skills, err := skillNames(ctx, *skillsFlag, cfg.Crawler.Tags, skillRepo)
	if err != nil {
		log.Fatalf("load skills: %v", err)
	}
	if len(skills) == 0 {
		log.Fatalf("no skills to crawl; seed the catalog or pass -skills")
	}

	sources := []crawler.Source{crawler.NewDevtoSource(cfg.Crawler.ArticlesPage)}
	if !*noCatalogs {
		for _, t := range crawler.DefaultCatalogs() {
			sources = append(sources, crawler.NewCatalogSource(t))
		}
	}
	if *headless || cfg.Crawler.Headless {
		for _, t := range crawler.DefaultHeadlessTargets() {
			sources = append(sources, crawler.NewHeadlessSource(t))
		}
	}

	cr := crawler.New(
		store{LearningResourceRepository: repository.NewPostgresLearningResourceRepository(c.DB), SkillRepository: skillRepo},
		c.Cache,
		lg,
		crawler.Options{Workers: cfg.Crawler.Workers, RatePerSec: cfg.Crawler.RatePerSec},
		sources...,
	)

	st, err := cr.Run(ctx, skills)
	if err != nil {
		if errors.Is(err, crawler.ErrAlreadyRunning) {
			lg.Warn("another crawler run is in progress, exiting")
			return
		}
		log.Fatalf("crawl failed: %v", err)
	}
	lg.Info("crawl summary", "skills", len(skills), "sources", len(sources), "stored", st.Stored, "failed", st.Failed)
}

func skillNames(ctx context.Context, flagValue string, configured []string, repo repository.SkillRepository) ([]string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return splitNames(v), nil
	}
	if len(configured) > 0 {
		return configured, nil
	}
	items, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, s.Name)
	}
	return out, nil
}

func splitNames(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
