package tui

import (
	"testing"

	"tracker-cli/internal/model"
)

func TestBuildThreadRows(t *testing.T) {
	comments := []model.Comment{
		{
			User: "Bo", Comment: "first", Timestamp: "2025-01-01 10:00:00", Password: "p1",
			Replies: []model.Reply{
				{User: "Ana", Comment: "re first", Timestamp: "2025-01-01 11:00:00"},
				{User: "Cy", Comment: "also", Timestamp: "2025-01-01 12:00:00"},
			},
		},
		{User: "Ana", Comment: "second", Timestamp: "2025-01-02 08:00:00", Password: "p2"},
	}

	rows := buildThreadRows(comments)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	wantDepths := []int{0, 1, 1, 0}
	wantUsers := []string{"Bo", "Ana", "Cy", "Ana"}
	for i, r := range rows {
		if r.Depth != wantDepths[i] || r.User != wantUsers[i] {
			t.Fatalf("row %d = {user:%s depth:%d}, want {user:%s depth:%d}",
				i, r.User, r.Depth, wantUsers[i], wantDepths[i])
		}
	}

	// Reply rows point back at their parent comment.
	if rows[2].CommentIdx != 0 || rows[2].ReplyIndex != 1 {
		t.Fatalf("reply row indexes = (%d, %d), want (0, 1)", rows[2].CommentIdx, rows[2].ReplyIndex)
	}
	if rows[3].CommentIdx != 1 || rows[3].ReplyIndex != -1 {
		t.Fatalf("comment row indexes = (%d, %d), want (1, -1)", rows[3].CommentIdx, rows[3].ReplyIndex)
	}

	if buildThreadRows(nil) != nil {
		t.Fatal("empty thread should build no rows")
	}
}
