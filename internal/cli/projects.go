package cli

import (
	"strings"
	"time"

	"tracker-cli/internal/model"
	"tracker-cli/internal/mutate"
	"tracker-cli/internal/quarter"
	"tracker-cli/internal/store"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsAddCmd(app))
	cmd.AddCommand(newProjectsEditCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	cmd.AddCommand(newProjectsProgressCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var owner string
	var grouped bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, optionally filtered by owner and grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			projects, err := s.LoadProjects()
			if err != nil {
				return writeErr(cmd, err)
			}

			filtered := store.FilterByOwner(projects, owner)
			out := map[string]any{
				"data": filtered,
				"meta": map[string]any{
					"total":  len(projects),
					"owner":  ownerOrAll(owner),
					"owners": store.Owners(projects),
				},
			}
			if grouped {
				groups := store.GroupByCategory(filtered)
				ordered := make([]map[string]any, 0, len(model.Categories))
				for _, c := range model.Categories {
					bucket, ok := groups[c]
					if !ok {
						continue
					}
					ordered = append(ordered, map[string]any{
						"category": c,
						"projects": bucket,
					})
				}
				out["data"] = ordered
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().StringVar(&owner, "owner", store.OwnerAll, "Owner filter (\"All\" for everyone)")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "Group output by category")
	return cmd
}

func ownerOrAll(owner string) string {
	if strings.TrimSpace(owner) == "" {
		return store.OwnerAll
	}
	return owner
}

type projectFlags struct {
	title            string
	owner            string
	team             []string
	businessFunction string
	category         string
	status           string
	priority         string
	target           string
	confirmed        bool
	progress         int
	notes            string
	bottlenecks      string
	password         string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Project title")
	cmd.Flags().StringVar(&f.owner, "owner", "", "Project owner")
	cmd.Flags().StringSliceVar(&f.team, "team", nil, "Team members (comma separated)")
	cmd.Flags().StringVar(&f.businessFunction, "function", "", "Business function")
	cmd.Flags().StringVar(&f.category, "category", "", "Category")
	cmd.Flags().StringVar(&f.status, "status", string(model.StatusNotStarted), "Status")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Priority (Pipeline projects only)")
	cmd.Flags().StringVar(&f.target, "target", quarter.TBD, "Target period (see `tracker targets`)")
	cmd.Flags().BoolVar(&f.confirmed, "confirmed", false, "Target confirmed")
	cmd.Flags().IntVar(&f.progress, "progress", 0, "Overall progress (ignored when subtasks exist)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Notes (markdown)")
	cmd.Flags().StringVar(&f.bottlenecks, "bottlenecks", "", "Bottlenecks")
	cmd.Flags().StringVar(&f.password, "password", "", "Shared project password")
}

func (f *projectFlags) fields() mutate.ProjectFields {
	return mutate.ProjectFields{
		Title:            f.title,
		Owner:            f.owner,
		Team:             f.team,
		BusinessFunction: f.businessFunction,
		Category:         f.category,
		Status:           f.status,
		Priority:         f.priority,
		Target:           f.target,
		Confirmed:        f.confirmed,
		Progress:         f.progress,
		Notes:            f.notes,
		Bottlenecks:      f.bottlenecks,
		Password:         f.password,
	}
}

func newProjectsAddCmd(app *App) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Submit a new project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var res mutate.ProjectResult
			_, err = s.MutateProjects(func(projects []model.Project) ([]model.Project, error) {
				res, err = mutate.SubmitNewProject(projects, flags.fields())
				if err != nil {
					return nil, err
				}
				return res.Projects, nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), "project.add", res.Project.Title, res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Project})
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newProjectsEditCmd(app *App) *cobra.Command {
	var flags projectFlags
	var index int
	var auth string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Submit an edited project (password gated)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var res mutate.ProjectResult
			_, err = s.MutateProjects(func(projects []model.Project) ([]model.Project, error) {
				if err := mutate.AuthorizeEdit(projects, index, auth); err != nil {
					return nil, err
				}
				res, err = mutate.SubmitEditedProject(projects, index, flags.fields())
				if err != nil {
					return nil, err
				}
				return res.Projects, nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), "project.edit", res.Project.Title, res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Project})
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&index, "index", -1, "Project index in the store")
	cmd.Flags().StringVar(&auth, "auth", "", "Current project password")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("auth")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	var index int
	var auth string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project (password gated; comments are not cascaded)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var res mutate.ProjectResult
			_, err = s.MutateProjects(func(projects []model.Project) ([]model.Project, error) {
				res, err = mutate.DeleteProject(projects, index, auth)
				if err != nil {
					return nil, err
				}
				return res.Projects, nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			title, _ := res.EventPayload["title"].(string)
			if err := s.AppendEvent(cmd.Context(), "project.delete", title, res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": title}})
		},
	}

	cmd.Flags().IntVar(&index, "index", -1, "Project index in the store")
	cmd.Flags().StringVar(&auth, "auth", "", "Project password")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("auth")
	return cmd
}

func newProjectsProgressCmd(app *App) *cobra.Command {
	var index int
	var subtask int
	var value int

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Set progress for a project or one of its subtasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var res mutate.ProjectResult
			_, err = s.MutateProjects(func(projects []model.Project) ([]model.Project, error) {
				if subtask >= 0 {
					res, err = mutate.UpdateSubtaskProgress(projects, index, subtask, value)
				} else {
					res, err = mutate.SetProjectProgress(projects, index, value)
				}
				if err != nil {
					return nil, err
				}
				return res.Projects, nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), "project.progress", res.Project.Title, res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Project})
		},
	}

	cmd.Flags().IntVar(&index, "index", -1, "Project index in the store")
	cmd.Flags().IntVar(&subtask, "subtask", -1, "Subtask index (omit to set overall progress)")
	cmd.Flags().IntVar(&value, "value", 0, "New progress value (0-100)")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newTargetsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "Print the current target period options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{
				"data": quarter.Labels(time.Now()),
			})
		},
	}
}
