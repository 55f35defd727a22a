package model

type Category string

const (
	CategoryPipeline   Category = "Pipeline"
	CategoryPlatform   Category = "Platform"
	CategoryAnalytics  Category = "Analytics"
	CategoryOperations Category = "Operations"
)

// Categories is the fixed bucket order used when grouping the dashboard.
var Categories = []Category{
	CategoryPipeline,
	CategoryPlatform,
	CategoryAnalytics,
	CategoryOperations,
}

type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusBlocked    Status = "Blocked"
	StatusDone       Status = "Done"
)

var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusBlocked, StatusDone}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

type BusinessFunction string

const (
	FunctionEngineering BusinessFunction = "Engineering"
	FunctionData        BusinessFunction = "Data"
	FunctionFinance     BusinessFunction = "Finance"
	FunctionMarketing   BusinessFunction = "Marketing"
	FunctionSupport     BusinessFunction = "Support"
)

var BusinessFunctions = []BusinessFunction{
	FunctionEngineering,
	FunctionData,
	FunctionFinance,
	FunctionMarketing,
	FunctionSupport,
}

type Subtask struct {
	Name     string `json:"name"`
	Target   string `json:"target"`
	Progress int    `json:"progress"`
}

type Project struct {
	Title            string           `json:"title"`
	Owner            string           `json:"owner"`
	Team             []string         `json:"team"`
	BusinessFunction BusinessFunction `json:"business_function,omitempty"`
	Category         Category         `json:"category"`
	Status           Status           `json:"status"`

	// Priority is only meaningful for Pipeline projects; nil elsewhere.
	Priority *Priority `json:"priority"`

	// Target is a rolling-quarter label ("4Q2025") or "TBD".
	Target    string `json:"target"`
	Confirmed bool   `json:"confirmed"`

	// Progress is 0..100. When Subtasks is non-empty it is derived as the
	// integer-rounded mean of the subtask progress values and recomputed on
	// every subtask change.
	Progress int `json:"progress"`

	Notes       string `json:"notes,omitempty"`
	Bottlenecks string `json:"bottlenecks,omitempty"`

	// Password is a shared plaintext secret gating edit/delete. Compared
	// for equality only; kept as-is for compatibility with existing
	// documents (no hashing, no rate limiting).
	Password string `json:"password"`

	Subtasks []Subtask `json:"subtasks,omitempty"`

	// Legacy fields (merged/normalized on load).
	LegacyDetails      string `json:"details,omitempty"`
	LegacyTargetPeriod string `json:"target_period,omitempty"`
}

// Reply is a single-level response under a Comment. Replies carry no
// password and cannot be nested further.
type Reply struct {
	User      string `json:"user"`
	Comment   string `json:"comment"`
	Timestamp string `json:"timestamp"`
}

// Comment belongs to exactly one project title entry in the comments document.
type Comment struct {
	User      string  `json:"user"`
	Comment   string  `json:"comment"`
	Timestamp string  `json:"timestamp"`
	Password  string  `json:"password"`
	Replies   []Reply `json:"replies,omitempty"`
}

// TimestampLayout is the wire format for comment/reply timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}
