package motion_test

import (
	"math"
	"testing"

	"winnow/internal/motion"
)

func intervalsEqual(a, b []motion.Interval) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i].Start-b[i].Start) > 1e-9 || math.Abs(a[i].End-b[i].End) > 1e-9 {
			return false
		}
	}
	return true
}

func TestMergeIdempotent(t *testing.T) {
	inputs := [][]motion.Interval{
		{{Start: 0, End: 1}, {Start: 2, End: 3}},
		{{Start: 0, End: 5}, {Start: 1, End: 2}, {Start: 4, End: 8}},
		{{Start: 3, End: 4}, {Start: 0, End: 1}, {Start: 1, End: 3}},
	}
	for _, in := range inputs {
		once := motion.Merge(in)
		twice := motion.Merge(once)
		if !intervalsEqual(once, twice) {
			t.Fatalf("merge not idempotent: %v vs %v", once, twice)
		}
	}
}

func TestMergePreservesCoverageAndDisjointness(t *testing.T) {
	input := []motion.Interval{
		{Start: 5, End: 6}, {Start: 0, End: 2}, {Start: 1.5, End: 3},
		{Start: 3, End: 4}, {Start: 8, End: 8},
	}
	merged := motion.Merge(input)

	// Every input point remains covered; sample interval endpoints and midpoints.
	covered := func(p float64) bool {
		for _, iv := range merged {
			if p >= iv.Start && p <= iv.End {
				return true
			}
		}
		return false
	}
	for _, iv := range input {
		for _, p := range []float64{iv.Start, (iv.Start + iv.End) / 2, iv.End} {
			if !covered(p) {
				t.Fatalf("point %v lost by merge %v", p, merged)
			}
		}
	}

	for i := 1; i < len(merged); i++ {
		if merged[i-1].End >= merged[i].Start {
			t.Fatalf("adjacent intervals should have merged: %v", merged)
		}
	}
}

func TestMergeTouchingIntervals(t *testing.T) {
	got := motion.Merge([]motion.Interval{{Start: 1, End: 3}, {Start: 2.5, End: 5}})
	want := []motion.Interval{{Start: 1, End: 5}}
	if !intervalsEqual(got, want) {
		t.Fatalf("merge = %v, want %v", got, want)
	}

	// Exactly touching counts as overlapping.
	got = motion.Merge([]motion.Interval{{Start: 0, End: 2}, {Start: 2, End: 4}})
	want = []motion.Interval{{Start: 0, End: 4}}
	if !intervalsEqual(got, want) {
		t.Fatalf("merge = %v, want %v", got, want)
	}
}

func TestBufferClampsToDuration(t *testing.T) {
	for _, tc := range []struct {
		in       motion.Interval
		buffer   float64
		duration float64
		want     motion.Interval
	}{
		{motion.Interval{Start: 10, End: 10}, 2, 10, motion.Interval{Start: 8, End: 10}},
		{motion.Interval{Start: 0.5, End: 1}, 2, 100, motion.Interval{Start: 0, End: 3}},
		{motion.Interval{Start: 0, End: 100}, 50, 100, motion.Interval{Start: 0, End: 100}},
	} {
		got := motion.BufferIntervals([]motion.Interval{tc.in}, tc.buffer, tc.duration)
		if !intervalsEqual(got, []motion.Interval{tc.want}) {
			t.Fatalf("buffer(%v, %v, %v) = %v, want %v", tc.in, tc.buffer, tc.duration, got, tc.want)
		}
	}
}

func TestDetectRunsGapBoundary(t *testing.T) {
	fps := 30.0
	tolerance := 5 / fps

	// Gap exactly at the tolerance stays one run.
	runs := motion.DetectRuns([]float64{1.0, 1.0 + tolerance}, fps)
	if len(runs) != 1 {
		t.Fatalf("gap == 5/fps should stay one run, got %v", runs)
	}

	// The smallest representable step beyond it splits.
	runs = motion.DetectRuns([]float64{1.0, 1.0 + tolerance + 1e-9}, fps)
	if len(runs) != 2 {
		t.Fatalf("gap > 5/fps should split, got %v", runs)
	}
}

func TestDetectRunsSingleSample(t *testing.T) {
	runs := motion.DetectRuns([]float64{4.2}, 30)
	if len(runs) != 1 || runs[0].Start != 4.2 || runs[0].End != 4.2 {
		t.Fatalf("single sample should yield zero-width run, got %v", runs)
	}
}

func TestAggregateEmptySamples(t *testing.T) {
	plan := motion.Aggregate(nil, 30, 60, 2)
	if !plan.Empty() {
		t.Fatalf("expected empty plan, got %v", plan.Intervals)
	}
	if plan.Selection() != "" {
		t.Fatalf("empty plan should render empty selection")
	}
}

func motionSamples(start, end, step float64) []motion.Sample {
	var samples []motion.Sample
	for ts := start; ts <= end+1e-9; ts += step {
		samples = append(samples, motion.Sample{Timestamp: ts, Motion: true})
	}
	return samples
}

func TestAggregateTwoEventsSplitDependsOnFPS(t *testing.T) {
	// Motion at 1.0-2.0s and 2.2-3.0s: the 0.2s gap exceeds 5/fps at 30fps
	// (0.167s) so two runs form, but at 30fps the 2s buffer joins them in
	// the merge step anyway. Verify the run split itself at both rates.
	event := append(motionSamples(1.0, 2.0, 1.0/30), motionSamples(2.2, 3.0, 1.0/30)...)
	timestamps := make([]float64, 0, len(event))
	for _, s := range event {
		timestamps = append(timestamps, s.Timestamp)
	}

	if runs := motion.DetectRuns(timestamps, 30); len(runs) != 2 {
		t.Fatalf("at 30fps the 0.2s gap should split runs, got %v", runs)
	}
	// At 20fps the tolerance is 0.25s > 0.2s, so the gap is absorbed.
	if runs := motion.DetectRuns(timestamps, 20); len(runs) != 1 {
		t.Fatalf("at 20fps the 0.2s gap should stay one run, got %v", runs)
	}
}

func TestAggregateEndToEnd(t *testing.T) {
	samples := append(motionSamples(1.0, 2.0, 1.0/30), motionSamples(2.2, 3.0, 1.0/30)...)
	plan := motion.Aggregate(samples, 30, 60, 2)

	// Two runs, but both buffered by 2s, so they merge into one interval.
	want := []motion.Interval{{Start: 0, End: 5.0}}
	if !intervalsEqual(plan.Intervals, want) {
		t.Fatalf("plan = %v, want %v", plan.Intervals, want)
	}
}

func TestAggregateClampsSingleSampleAtEnd(t *testing.T) {
	plan := motion.Aggregate([]motion.Sample{{Timestamp: 10, Motion: true}}, 30, 10, 2)
	want := []motion.Interval{{Start: 8, End: 10}}
	if !intervalsEqual(plan.Intervals, want) {
		t.Fatalf("plan = %v, want %v", plan.Intervals, want)
	}
}

func TestAggregateIgnoresNonMotionSamples(t *testing.T) {
	samples := []motion.Sample{
		{Timestamp: 0.5, Motion: false},
		{Timestamp: 1.0, Motion: true},
		{Timestamp: 1.5, Motion: false},
	}
	plan := motion.Aggregate(samples, 30, 60, 0)
	want := []motion.Interval{{Start: 1, End: 1}}
	if !intervalsEqual(plan.Intervals, want) {
		t.Fatalf("plan = %v, want %v", plan.Intervals, want)
	}
}

func TestSelectionExpression(t *testing.T) {
	plan := motion.Plan{
		Intervals: []motion.Interval{{Start: 0, End: 5}, {Start: 8.5, End: 10.25}},
		Duration:  60,
	}
	want := "between(t,0,5)+between(t,8.5,10.25)"
	if got := plan.Selection(); got != want {
		t.Fatalf("selection = %q, want %q", got, want)
	}
}

func TestPlanTotalSeconds(t *testing.T) {
	plan := motion.Plan{Intervals: []motion.Interval{{Start: 0, End: 2}, {Start: 5, End: 6.5}}}
	if got := plan.TotalSeconds(); math.Abs(got-3.5) > 1e-9 {
		t.Fatalf("total = %v, want 3.5", got)
	}
}
