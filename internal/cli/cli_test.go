package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"tracker-cli/internal/store"
)

func runCmd(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestProjectsAddListDelete(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCmd(t, dir, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}

	_, err := runCmd(t, dir, "projects", "add",
		"--title", "Alpha", "--owner", "Bo", "--password", "x",
		"--category", "Pipeline", "--priority", "High")
	if err != nil {
		t.Fatalf("projects add: %v", err)
	}

	out, err := runCmd(t, dir, "projects", "list")
	if err != nil {
		t.Fatalf("projects list: %v", err)
	}
	var listed struct {
		Data []struct {
			Title    string  `json:"title"`
			Priority *string `json:"priority"`
		} `json:"data"`
		Meta struct {
			Owners []string `json:"owners"`
		} `json:"meta"`
	}
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("list output not JSON: %v\n%s", err, out)
	}
	if len(listed.Data) != 1 || listed.Data[0].Title != "Alpha" {
		t.Fatalf("list = %s", out)
	}
	if listed.Data[0].Priority == nil || *listed.Data[0].Priority != "High" {
		t.Fatalf("priority not persisted: %s", out)
	}
	if len(listed.Meta.Owners) != 1 || listed.Meta.Owners[0] != "Bo" {
		t.Fatalf("owners = %v", listed.Meta.Owners)
	}

	// Wrong password: the record must survive.
	if _, err := runCmd(t, dir, "projects", "delete", "--index", "0", "--auth", "wrong"); err == nil {
		t.Fatal("expected unauthorized delete to fail")
	}
	s := store.Store{Dir: dir}
	projects, err := s.LoadProjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 1 {
		t.Fatal("project deleted despite wrong password")
	}

	if _, err := runCmd(t, dir, "projects", "delete", "--index", "0", "--auth", "x"); err != nil {
		t.Fatalf("authorized delete: %v", err)
	}
	projects, err = s.LoadProjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 0 {
		t.Fatal("project still present after authorized delete")
	}
}

func TestCommentsFlow(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCmd(t, dir, "comments", "add", "Alpha",
		"--user", "Bo", "--body", "kickoff", "--password", "p1"); err != nil {
		t.Fatalf("comments add: %v", err)
	}
	if _, err := runCmd(t, dir, "comments", "reply", "Alpha",
		"--comment", "0", "--user", "Ana", "--body", "ack"); err != nil {
		t.Fatalf("comments reply: %v", err)
	}

	out, err := runCmd(t, dir, "comments", "list", "Alpha")
	if err != nil {
		t.Fatalf("comments list: %v", err)
	}
	var listed struct {
		Data []struct {
			User    string `json:"user"`
			Replies []struct {
				User string `json:"user"`
			} `json:"replies"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("list output not JSON: %v\n%s", err, out)
	}
	if len(listed.Data) != 1 || len(listed.Data[0].Replies) != 1 {
		t.Fatalf("thread shape wrong: %s", out)
	}

	if _, err := runCmd(t, dir, "comments", "delete", "Alpha",
		"--comment", "0", "--password", "nope"); err == nil {
		t.Fatal("expected unauthorized comment delete to fail")
	}
	if _, err := runCmd(t, dir, "comments", "delete", "Alpha",
		"--comment", "0", "--password", "p1"); err != nil {
		t.Fatalf("authorized comment delete: %v", err)
	}

	s := store.Store{Dir: dir}
	doc, err := s.LoadComments()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc["Alpha"]) != 0 {
		t.Fatal("comment (and replies) should be gone")
	}
}

func TestEventsRecorded(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCmd(t, dir, "projects", "add",
		"--title", "A", "--owner", "Bo", "--password", "x"); err != nil {
		t.Fatalf("projects add: %v", err)
	}

	out, err := runCmd(t, dir, "events")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	var listed struct {
		Data []struct {
			Type string `json:"type"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("events output not JSON: %v\n%s", err, out)
	}
	if len(listed.Data) != 1 || listed.Data[0].Type != "project.add" {
		t.Fatalf("events = %s", out)
	}
}

func TestTargetsOutput(t *testing.T) {
	out, err := runCmd(t, t.TempDir(), "targets")
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	var listed struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("targets output not JSON: %v\n%s", err, out)
	}
	if len(listed.Data) != 4 || listed.Data[3] != "TBD" {
		t.Fatalf("targets = %v", listed.Data)
	}
}
