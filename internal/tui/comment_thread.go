package tui

import (
	"tracker-cli/internal/model"
)

// threadRow is one line of the comment pane. Depth 0 is a top-level comment,
// depth 1 a reply under it. ReplyIndex is -1 for top-level rows.
type threadRow struct {
	User       string
	Body       string
	Timestamp  string
	Depth      int
	CommentIdx int
	ReplyIndex int
}

// buildThreadRows flattens a comment thread oldest-first: each comment in
// stored (append) order, immediately followed by its replies in stored order.
func buildThreadRows(comments []model.Comment) []threadRow {
	if len(comments) == 0 {
		return nil
	}
	out := make([]threadRow, 0, len(comments))
	for ci, c := range comments {
		out = append(out, threadRow{
			User:       c.User,
			Body:       c.Comment,
			Timestamp:  c.Timestamp,
			Depth:      0,
			CommentIdx: ci,
			ReplyIndex: -1,
		})
		for ri, r := range c.Replies {
			out = append(out, threadRow{
				User:       r.User,
				Body:       r.Comment,
				Timestamp:  r.Timestamp,
				Depth:      1,
				CommentIdx: ci,
				ReplyIndex: ri,
			})
		}
	}
	return out
}
