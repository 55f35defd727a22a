package model

import "math"

// ClampProgress bounds a progress value to [0,100].
func ClampProgress(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// MeanProgress is the integer-rounded mean of the subtask progress values.
// An empty slice means 0.
func MeanProgress(subs []Subtask) int {
	if len(subs) == 0 {
		return 0
	}
	sum := 0
	for _, st := range subs {
		sum += ClampProgress(st.Progress)
	}
	return int(math.Round(float64(sum) / float64(len(subs))))
}

// RecomputeProgress re-derives overall progress from subtasks. When the
// project has no subtasks the directly-set value wins and is only clamped.
func (p *Project) RecomputeProgress() {
	if len(p.Subtasks) > 0 {
		p.Progress = MeanProgress(p.Subtasks)
		return
	}
	p.Progress = ClampProgress(p.Progress)
}

// HasSubtasks reports whether overall progress is subtask-derived.
func (p *Project) HasSubtasks() bool { return len(p.Subtasks) > 0 }
