package store

import (
	"encoding/json"
	"errors"
	"os"

	"tracker-cli/internal/model"
)

// CommentsDoc maps a project's display title to its comment thread.
//
// Comments are keyed by the mutable title string; deleting or renaming a
// project does not cascade here, so orphaned entries can persist under a
// stale title. Known design wart, documented rather than hidden.
type CommentsDoc map[string][]model.Comment

// LoadComments reads the comments document wholesale. Missing file loads as
// an empty document; malformed is a ParseError.
func (s Store) LoadComments() (CommentsDoc, error) {
	b, err := os.ReadFile(s.commentsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CommentsDoc{}, nil
		}
		return nil, err
	}
	var doc CommentsDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, ParseError{Path: s.commentsPath(), Err: err}
	}
	if doc == nil {
		doc = CommentsDoc{}
	}
	return doc, nil
}

func (s Store) SaveComments(doc CommentsDoc) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	if doc == nil {
		doc = CommentsDoc{}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.commentsPath(), append(b, '\n'))
}

// MutateComments runs one read-modify-write cycle under the process-wide
// store lock, mirroring MutateProjects.
func (s Store) MutateComments(fn func(CommentsDoc) (CommentsDoc, error)) (CommentsDoc, error) {
	mu.Lock()
	defer mu.Unlock()

	doc, err := s.LoadComments()
	if err != nil {
		return nil, err
	}
	doc, err = fn(doc)
	if err != nil {
		return nil, err
	}
	if err := s.SaveComments(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
