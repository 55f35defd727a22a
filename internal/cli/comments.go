package cli

import (
	"time"

	"tracker-cli/internal/mutate"
	"tracker-cli/internal/store"

	"github.com/spf13/cobra"
)

func newCommentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Comment commands",
	}
	cmd.AddCommand(newCommentsListCmd(app))
	cmd.AddCommand(newCommentsAddCmd(app))
	cmd.AddCommand(newCommentsReplyCmd(app))
	cmd.AddCommand(newCommentsDeleteCmd(app))
	return cmd
}

func newCommentsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <project-title>",
		Short: "List the comment thread for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, err := s.LoadComments()
			if err != nil {
				return writeErr(cmd, err)
			}
			thread := doc[args[0]]
			return writeOut(cmd, app, map[string]any{
				"data": thread,
				"meta": map[string]any{"total": len(thread)},
			})
		},
	}
	return cmd
}

func newCommentsAddCmd(app *App) *cobra.Command {
	var user, body, password string

	cmd := &cobra.Command{
		Use:   "add <project-title>",
		Short: "Add a comment to a project's thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var res mutate.CommentResult
			_, err = s.MutateComments(func(doc store.CommentsDoc) (store.CommentsDoc, error) {
				res, err = mutate.AddComment(doc, args[0], user, body, password, time.Now())
				if err != nil {
					return nil, err
				}
				return res.Doc, nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), "comment.add", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Comment})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Your name")
	cmd.Flags().StringVar(&body, "body", "", "Comment body")
	cmd.Flags().StringVar(&password, "password", "", "Password gating deletion of this comment")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("body")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newCommentsReplyCmd(app *App) *cobra.Command {
	var user, body string
	var index int

	cmd := &cobra.Command{
		Use:   "reply <project-title>",
		Short: "Reply to a comment (one level, no password)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var res mutate.CommentResult
			_, err = s.MutateComments(func(doc store.CommentsDoc) (store.CommentsDoc, error) {
				res, err = mutate.AddReply(doc, args[0], index, user, body, time.Now())
				if err != nil {
					return nil, err
				}
				return res.Doc, nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), "comment.reply", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Reply})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Your name")
	cmd.Flags().StringVar(&body, "body", "", "Reply body")
	cmd.Flags().IntVar(&index, "comment", -1, "Comment index within the thread")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("body")
	_ = cmd.MarkFlagRequired("comment")
	return cmd
}

func newCommentsDeleteCmd(app *App) *cobra.Command {
	var index int
	var password string

	cmd := &cobra.Command{
		Use:   "delete <project-title>",
		Short: "Delete a comment and its replies (password gated)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var res mutate.CommentResult
			_, err = s.MutateComments(func(doc store.CommentsDoc) (store.CommentsDoc, error) {
				res, err = mutate.DeleteComment(doc, args[0], index, password)
				if err != nil {
					return nil, err
				}
				return res.Doc, nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), "comment.delete", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": index}})
		},
	}

	cmd.Flags().IntVar(&index, "comment", -1, "Comment index within the thread")
	cmd.Flags().StringVar(&password, "password", "", "This comment's password")
	_ = cmd.MarkFlagRequired("comment")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
