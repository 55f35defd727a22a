package mutate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tracker-cli/internal/model"
	"tracker-cli/internal/perm"
	"tracker-cli/internal/store"
)

type CommentResult struct {
	Doc          store.CommentsDoc
	Comment      *model.Comment
	Reply        *model.Reply
	Changed      bool
	EventPayload map[string]any
}

// AddComment appends a comment under title, creating the thread if absent.
// user, text and password must all be non-empty. The timestamp is stamped
// from now and immutable afterwards.
func AddComment(doc store.CommentsDoc, title, user, text, password string, now time.Time) (CommentResult, error) {
	if strings.TrimSpace(title) == "" {
		return CommentResult{}, ValidationError{Field: "title"}
	}
	if strings.TrimSpace(user) == "" {
		return CommentResult{}, ValidationError{Field: "user"}
	}
	if strings.TrimSpace(text) == "" {
		return CommentResult{}, ValidationError{Field: "comment"}
	}
	if strings.TrimSpace(password) == "" {
		return CommentResult{}, ValidationError{Field: "password"}
	}

	c := model.Comment{
		User:      strings.TrimSpace(user),
		Comment:   text,
		Timestamp: now.Format(model.TimestampLayout),
		Password:  password,
	}
	doc[title] = append(doc[title], c)
	thread := doc[title]
	return CommentResult{
		Doc:     doc,
		Comment: &thread[len(thread)-1],
		Changed: true,
		EventPayload: map[string]any{
			"title": title,
			"user":  c.User,
		},
	}, nil
}

// AddReply appends a one-level reply to the comment at commentIndex.
// Replies need no password.
func AddReply(doc store.CommentsDoc, title string, commentIndex int, user, text string, now time.Time) (CommentResult, error) {
	if strings.TrimSpace(user) == "" {
		return CommentResult{}, ValidationError{Field: "user"}
	}
	if strings.TrimSpace(text) == "" {
		return CommentResult{}, ValidationError{Field: "comment"}
	}
	thread, ok := doc[title]
	if !ok {
		return CommentResult{}, NotFoundError{Kind: "comment thread", Ref: title}
	}
	if commentIndex < 0 || commentIndex >= len(thread) {
		return CommentResult{}, NotFoundError{Kind: "comment", Ref: commentRef(title, commentIndex)}
	}

	r := model.Reply{
		User:      strings.TrimSpace(user),
		Comment:   text,
		Timestamp: now.Format(model.TimestampLayout),
	}
	thread[commentIndex].Replies = append(thread[commentIndex].Replies, r)
	replies := thread[commentIndex].Replies
	return CommentResult{
		Doc:     doc,
		Comment: &thread[commentIndex],
		Reply:   &replies[len(replies)-1],
		Changed: true,
		EventPayload: map[string]any{
			"title":   title,
			"comment": commentIndex,
			"user":    r.User,
		},
	}, nil
}

// DeleteComment removes the comment at index (with its replies) when the
// supplied password matches this comment's own password. The index is
// re-validated against the freshly loaded thread, so a racing delete
// surfaces as NotFound rather than removing a neighbor.
func DeleteComment(doc store.CommentsDoc, title string, index int, password string) (CommentResult, error) {
	thread, ok := doc[title]
	if !ok {
		return CommentResult{}, NotFoundError{Kind: "comment thread", Ref: title}
	}
	if index < 0 || index >= len(thread) {
		return CommentResult{}, NotFoundError{Kind: "comment", Ref: commentRef(title, index)}
	}
	if !perm.Authorize(thread[index].Password, password) {
		return CommentResult{}, UnauthorizedError{Kind: "comment", Ref: commentRef(title, index)}
	}

	doc[title] = append(thread[:index], thread[index+1:]...)
	return CommentResult{
		Doc:     doc,
		Changed: true,
		EventPayload: map[string]any{
			"title":   title,
			"comment": index,
		},
	}, nil
}

func commentRef(title string, index int) string {
	return fmt.Sprintf("%s[%s]", title, strconv.Itoa(index))
}
