package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"ascend/internal/client"
	"ascend/internal/delivery/http/dto"

	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in; run `ascendctl login` first")

type cli struct {
	configPath string
	baseURL    string

	cfg     fileConfig
	session *client.Session
	api     *client.API
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "ascendctl",
		Short:         "Command line client for the Ascend career platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", defaultConfigPath(), "config file")
	root.PersistentFlags().StringVar(&c.baseURL, "api", "", "API base URL (overrides the config file)")

	root.AddCommand(
		c.signupCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.profileCmd(),
		c.pathsCmd(),
		c.skillsCmd(),
		c.achievementsCmd(),
		c.gapCmd(),
		c.recommendCmd(),
		c.watchCmd(),
		c.deleteAccountCmd(),
	)
	return root
}

func (c *cli) init(ctx context.Context) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(c.baseURL); v != "" {
		cfg.BaseURL = v
	}
	c.cfg = cfg
	c.session = client.NewSession()
	c.api = client.NewAPI(cfg.BaseURL, client.WithTokenSource(c.session))

	if cfg.Session == nil {
		return nil
	}
	c.session.SetSession(cfg.Session.response())
	return c.refreshIfExpired(ctx)
}

func (c *cli) refreshIfExpired(ctx context.Context) error {
	s := c.cfg.Session
	now := time.Now()
	if s.AccessExpiresAt.IsZero() || now.Before(s.AccessExpiresAt.Add(-30*time.Second)) {
		return nil
	}
	if s.RefreshToken == "" || (!s.RefreshExpiresAt.IsZero() && now.After(s.RefreshExpiresAt)) {
		return c.forgetSession()
	}
	sess, err := c.api.Refresh(ctx, s.RefreshToken)
	if err != nil {
		return c.forgetSession()
	}
	return c.storeSession(sess)
}

func (c *cli) storeSession(sess dto.SessionResponse) error {
	c.session.SetSession(sess)
	c.cfg.Session = toStored(sess)
	return saveConfig(c.configPath, c.cfg)
}

func (c *cli) forgetSession() error {
	c.session.Clear()
	c.cfg.Session = nil
	return saveConfig(c.configPath, c.cfg)
}

func (c *cli) requireSession() error {
	if !c.session.State().SignedIn() {
		return errNotLoggedIn
	}
	return nil
}

func (c *cli) fetcher() *client.RecommendationFetcher {
	return client.NewRecommendationFetcher(c.api.BaseURL(), c.session, nil)
}
