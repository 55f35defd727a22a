package cli

import (
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the store directory and empty documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Ensure(); err != nil {
				return writeErr(cmd, err)
			}
			// Touch both documents so a fresh dir round-trips as empty.
			projects, err := s.LoadProjects()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveProjects(projects); err != nil {
				return writeErr(cmd, err)
			}
			comments, err := s.LoadComments()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveComments(comments); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":      s.Dir,
					"projects": len(projects),
				},
			})
		},
	}
}
