package session

import "testing"

func TestEditContext_UnlockCommitClear(t *testing.T) {
	c := New()
	if c.State() != Idle {
		t.Fatalf("new context state = %v, want Idle", c.State())
	}
	if _, _, ok := c.Target(); ok {
		t.Fatalf("Target should report no target while Idle")
	}

	c.Unlock("Alpha", 3)
	if c.State() != Unlocked {
		t.Fatalf("state = %v, want Unlocked", c.State())
	}
	title, index, ok := c.Target()
	if !ok || title != "Alpha" || index != 3 {
		t.Fatalf("Target() = (%q, %d, %v), want (Alpha, 3, true)", title, index, ok)
	}

	c.Commit()
	if c.State() != Saved {
		t.Fatalf("state after Commit = %v, want Saved", c.State())
	}
	if _, _, ok := c.Target(); ok {
		t.Fatalf("Target should report no target after Commit")
	}

	c.Clear()
	if c.State() != Idle {
		t.Fatalf("state after Clear = %v, want Idle", c.State())
	}
}

func TestEditContext_UnlockReplacesTarget(t *testing.T) {
	c := New()
	c.Unlock("Alpha", 0)
	c.Unlock("Beta", 2)

	title, index, ok := c.Target()
	if !ok || title != "Beta" || index != 2 {
		t.Fatalf("Target() = (%q, %d, %v), want the replacement (Beta, 2, true)", title, index, ok)
	}
}

func TestState_String(t *testing.T) {
	if Idle.String() != "idle" || Unlocked.String() != "unlocked" || Saved.String() != "saved" {
		t.Fatalf("unexpected state strings: %s %s %s", Idle, Unlocked, Saved)
	}
}
