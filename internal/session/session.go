// Package session tracks the ephemeral edit context: at most one project
// unlocked for editing at a time, chosen by password match.
//
// The context is an explicit object handed to each interaction cycle rather
// than ambient process state, so independent sessions (one per TUI instance
// or connection) cannot interfere. It is never persisted: losing it returns
// to Idle and any uncommitted edits are gone, which is acceptable because
// edits only reach the project store at explicit submit time.
package session

// State names the edit-context phase.
type State int

const (
	Idle State = iota
	Unlocked
	Saved
)

func (s State) String() string {
	switch s {
	case Unlocked:
		return "unlocked"
	case Saved:
		return "saved"
	default:
		return "idle"
	}
}

// EditContext tracks the single project currently unlocked for editing,
// identified by title plus its index in the stored collection.
type EditContext struct {
	state State
	title string
	index int
}

func New() *EditContext {
	return &EditContext{state: Idle, index: -1}
}

func (c *EditContext) State() State { return c.state }

// Target returns the unlocked project's title and view index.
// ok is false unless the context is Unlocked.
func (c *EditContext) Target() (title string, index int, ok bool) {
	if c.state != Unlocked {
		return "", -1, false
	}
	return c.title, c.index, true
}

// Unlock marks a project as the edit target. Unlocking while already
// unlocked replaces the previous target; there is no stacking.
func (c *EditContext) Unlock(title string, index int) {
	c.state = Unlocked
	c.title = title
	c.index = index
}

// Commit records a successful submit and returns the context to rest.
func (c *EditContext) Commit() {
	c.state = Saved
	c.title = ""
	c.index = -1
}

// Clear cancels any in-progress edit.
func (c *EditContext) Clear() {
	c.state = Idle
	c.title = ""
	c.index = -1
}
