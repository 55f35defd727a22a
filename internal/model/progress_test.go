package model

import "testing"

func TestMeanProgress(t *testing.T) {
	cases := []struct {
		name string
		subs []Subtask
		want int
	}{
		{"empty", nil, 0},
		{"single", []Subtask{{Progress: 37}}, 37},
		{"exact mean", []Subtask{{Progress: 20}, {Progress: 40}}, 30},
		{"rounds up", []Subtask{{Progress: 50}, {Progress: 51}}, 51},
		{"rounds half up", []Subtask{{Progress: 0}, {Progress: 1}}, 1},
		{"clamps inputs", []Subtask{{Progress: 150}, {Progress: -10}}, 50},
		{"all full", []Subtask{{Progress: 100}, {Progress: 100}, {Progress: 100}}, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MeanProgress(c.subs); got != c.want {
				t.Fatalf("MeanProgress = %d, want %d", got, c.want)
			}
		})
	}
}

func TestRecomputeProgress(t *testing.T) {
	p := Project{Progress: 80, Subtasks: []Subtask{{Progress: 10}, {Progress: 30}}}
	p.RecomputeProgress()
	if p.Progress != 20 {
		t.Fatalf("derived progress = %d, want 20", p.Progress)
	}

	// Without subtasks the stored value wins, clamped.
	p = Project{Progress: 120}
	p.RecomputeProgress()
	if p.Progress != 100 {
		t.Fatalf("clamped progress = %d, want 100", p.Progress)
	}
	p = Project{Progress: 55}
	p.RecomputeProgress()
	if p.Progress != 55 {
		t.Fatalf("direct progress = %d, want 55", p.Progress)
	}
}

func TestClampProgress(t *testing.T) {
	if ClampProgress(-1) != 0 || ClampProgress(101) != 100 || ClampProgress(50) != 50 {
		t.Fatal("ClampProgress bounds are wrong")
	}
}

func TestParseEnums(t *testing.T) {
	if c, ok := ParseCategory("Pipeline"); !ok || c != CategoryPipeline {
		t.Fatalf("ParseCategory(Pipeline) = (%v, %v)", c, ok)
	}
	if _, ok := ParseCategory("pipeline"); ok {
		t.Fatal("ParseCategory should be case sensitive")
	}
	if st, ok := ParseStatus("In Progress"); !ok || st != StatusInProgress {
		t.Fatalf("ParseStatus(In Progress) = (%v, %v)", st, ok)
	}
	if p, ok := ParsePriority("High"); !ok || p != PriorityHigh {
		t.Fatalf("ParsePriority(High) = (%v, %v)", p, ok)
	}
	if _, ok := ParsePriority("Urgent"); ok {
		t.Fatal("ParsePriority should reject unknown values")
	}
}
