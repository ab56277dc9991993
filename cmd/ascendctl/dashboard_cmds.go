package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"ascend/internal/client"
	"ascend/internal/domain/skillgap"

	"github.com/spf13/cobra"
)

func (c *cli) gapCmd() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "gap",
		Short: "Show which skills you have and which you miss for a role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			roles, err := c.api.Roles(cmd.Context())
			if err != nil {
				return err
			}
			r, err := resolveRole(roles, role)
			if err != nil {
				return err
			}
			gap, err := client.NewDashboard(c.api, nil).Gap(cmd.Context(), r.ID)
			if err != nil {
				return err
			}
			printGap(cmd.OutOrStdout(), r.Name, gap)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "target role name or id")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func (c *cli) recommendCmd() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Get AI learning recommendations for the skills a role needs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			roles, err := c.api.Roles(cmd.Context())
			if err != nil {
				return err
			}
			r, err := resolveRole(roles, role)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			view := client.NewRecommendationView(c.fetcher(), func(s client.ViewState) {
				if s.Status == client.StatusLoading {
					fmt.Fprintln(cmd.ErrOrStderr(), "Generating recommendations...")
				}
			})
			sel, err := client.NewDashboard(c.api, view).SelectRole(cmd.Context(), r.ID)
			if err != nil {
				return err
			}
			printGap(out, r.Name, sel.Gap)
			fmt.Fprintln(out)
			return printRecommendations(out, sel)
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "target role name or id")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow live changes to your account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			c.session.Subscribe(func(ch client.Change) {
				switch ch.Reason {
				case client.ChangeProfile:
					name := ""
					if ch.State.User != nil {
						name = ch.State.User.Name
					}
					fmt.Fprintf(out, "profile updated (%s)\n", name)
				case client.ChangeSkills:
					fmt.Fprintln(out, "skills updated")
				case client.ChangeAchievements:
					fmt.Fprintln(out, "achievements updated")
				}
			})
			err := c.session.Watch(cmd.Context(), c.api, nil)
			if err != nil && cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}
}

func printGap(w io.Writer, roleName string, gap skillgap.Result) {
	fmt.Fprintf(w, "%s: %d%% complete (%d of %d skills)\n", roleName, gap.Percent(), len(gap.Matching), gap.Total())
	if gap.Total() == 0 {
		fmt.Fprintln(w, "This role has no required skills yet.")
		return
	}
	fmt.Fprintf(w, "  have:    %s\n", joinOrDash(gap.MatchingNames()))
	fmt.Fprintf(w, "  missing: %s\n", joinOrDash(gap.MissingNames()))
}

func printRecommendations(w io.Writer, sel client.RoleSelection) error {
	if sel.RecommendationErr != nil {
		return errors.New(client.UserMessage(sel.RecommendationErr))
	}
	if len(sel.Gap.Missing) == 0 {
		fmt.Fprintln(w, "You already have every skill this role needs.")
		return nil
	}
	if len(sel.Recommendations) == 0 {
		fmt.Fprintln(w, "No recommendations were returned.")
		return nil
	}
	for i, r := range sel.Recommendations {
		fmt.Fprintf(w, "%d. %s [%s]\n   %s\n", i+1, r.Title, r.Type, r.Description)
	}
	return nil
}

func joinOrDash(v []string) string {
	if len(v) == 0 {
		return "-"
	}
	return strings.Join(v, ", ")
}
