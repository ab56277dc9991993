package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"ascend/internal/delivery/http/dto"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func (c *cli) profileCmd() *cobra.Command {
	var (
		name, title, department, location, experience, goals string
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile, or update it with flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			var req dto.UpdateProfileRequest
			changed := false
			set := func(flag string, v string, dst **string) {
				if cmd.Flags().Changed(flag) {
					s := v
					*dst = &s
					changed = true
				}
			}
			set("name", name, &req.Name)
			set("title", title, &req.Title)
			set("department", department, &req.Department)
			set("location", location, &req.Location)
			set("experience", experience, &req.Experience)
			set("career-goals", goals, &req.CareerGoals)

			var (
				p   dto.UserProfileResponse
				err error
			)
			if changed {
				p, err = c.api.UpdateProfile(cmd.Context(), req)
			} else {
				p, err = c.session.RefetchProfile(cmd.Context(), c.api)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Name\t%s\n", p.Name)
			fmt.Fprintf(w, "Email\t%s\n", p.Email)
			fmt.Fprintf(w, "Title\t%s\n", p.Title)
			fmt.Fprintf(w, "Department\t%s\n", p.Department)
			fmt.Fprintf(w, "Location\t%s\n", p.Location)
			fmt.Fprintf(w, "Experience\t%s\n", p.Experience)
			fmt.Fprintf(w, "Career goals\t%s\n", p.CareerGoals)
			fmt.Fprintf(w, "Avatar\t%s\n", p.AvatarURL)
			return w.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "full name")
	f.StringVar(&title, "title", "", "job title")
	f.StringVar(&department, "department", "", "department")
	f.StringVar(&location, "location", "", "location")
	f.StringVar(&experience, "experience", "", "experience summary")
	f.StringVar(&goals, "career-goals", "", "career goals")
	return cmd
}

func (c *cli) pathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List career paths with their roles and required skills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := c.api.Paths(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range paths {
				fmt.Fprintf(out, "%s\n", p.Name)
				for _, r := range p.Roles {
					names := make([]string, 0, len(r.Skills))
					for _, s := range r.Skills {
						names = append(names, s.Name)
					}
					fmt.Fprintf(out, "  %d. %s  [%s]\n", r.Position, r.Name, strings.Join(names, ", "))
				}
			}
			return nil
		},
	}
}

func (c *cli) skillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Manage your skills",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your skills",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.requireSession(); err != nil {
					return err
				}
				items, err := c.api.UserSkills(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSKILL")
				for _, us := range items {
					fmt.Fprintf(w, "%s\t%s\n", us.ID, us.Skill.Name)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "add <skill name or id>",
			Short: "Add a skill from the catalog",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requireSession(); err != nil {
					return err
				}
				skills, err := c.api.Skills(cmd.Context())
				if err != nil {
					return err
				}
				id, err := resolveSkill(skills, args[0])
				if err != nil {
					return err
				}
				us, err := c.api.AddUserSkill(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s.\n", us.Skill.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <skill name or entry id>",
			Short: "Remove one of your skills",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requireSession(); err != nil {
					return err
				}
				items, err := c.api.UserSkills(cmd.Context())
				if err != nil {
					return err
				}
				id, err := resolveUserSkill(items, args[0])
				if err != nil {
					return err
				}
				if err := c.api.RemoveUserSkill(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
				return nil
			},
		},
	)
	return cmd
}

func (c *cli) achievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Manage your achievements",
	}

	var title, description, date string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record an achievement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			if strings.TrimSpace(title) == "" {
				return errors.New("--title is required")
			}
			d := time.Now()
			if date != "" {
				var err error
				if d, err = time.Parse(time.DateOnly, date); err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
			}
			a, err := c.api.AddAchievement(cmd.Context(), title, description, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%s).\n", a.Title, a.Date)
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "title")
	add.Flags().StringVar(&description, "description", "", "description")
	add.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your achievements, newest first",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.requireSession(); err != nil {
					return err
				}
				items, err := c.api.Achievements(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tDATE\tTITLE")
				for _, a := range items {
					fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, a.Date, a.Title)
				}
				return w.Flush()
			},
		},
		add,
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Delete an achievement",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requireSession(); err != nil {
					return err
				}
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid achievement id %q", args[0])
				}
				if err := c.api.RemoveAchievement(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
				return nil
			},
		},
	)
	return cmd
}

func resolveSkill(skills []dto.SkillResponse, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}
	for _, s := range skills {
		if strings.EqualFold(s.Name, strings.TrimSpace(arg)) {
			return s.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("no skill named %q in the catalog", arg)
}

func resolveUserSkill(items []dto.UserSkillResponse, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}
	for _, us := range items {
		if strings.EqualFold(us.Skill.Name, strings.TrimSpace(arg)) {
			return us.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("you do not have a skill named %q", arg)
}

func resolveRole(roles []dto.RoleResponse, arg string) (dto.RoleResponse, error) {
	id, idErr := uuid.Parse(arg)
	for _, r := range roles {
		if (idErr == nil && r.ID == id) || strings.EqualFold(r.Name, strings.TrimSpace(arg)) {
			return r, nil
		}
	}
	return dto.RoleResponse{}, fmt.Errorf("no role matching %q", arg)
}
