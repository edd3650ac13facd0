package motion

import "sort"

// Sample is one per-frame motion observation.
type Sample struct {
	Timestamp float64
	Motion    bool
}

// Interval is a contiguous time span, in seconds, warranting extraction.
type Interval struct {
	Start float64
	End   float64
}

// gapFrames is the number of frame periods a motion run may skip without
// being split. Occasional missed detections inside a continuous event stay
// one run.
const gapFrames = 5

// Aggregate turns ordered motion samples into the merged, buffered segment
// plan. fps and duration come from the stream metadata; bufferSeconds is the
// symmetric padding added around each detected run before merging.
func Aggregate(samples []Sample, fps, duration, bufferSeconds float64) Plan {
	timestamps := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s.Motion {
			timestamps = append(timestamps, s.Timestamp)
		}
	}

	intervals := DetectRuns(timestamps, fps)
	intervals = BufferIntervals(intervals, bufferSeconds, duration)
	intervals = Merge(intervals)
	return Plan{Intervals: intervals, Duration: duration}
}

// DetectRuns groups increasing motion timestamps into maximal runs whose
// inter-sample gaps stay within gapFrames frame periods. A single timestamp
// yields a zero-width run.
func DetectRuns(timestamps []float64, fps float64) []Interval {
	if len(timestamps) == 0 || fps <= 0 {
		return nil
	}
	tolerance := gapFrames / fps

	runs := make([]Interval, 0, 4)
	current := Interval{Start: timestamps[0], End: timestamps[0]}
	for _, ts := range timestamps[1:] {
		if ts-current.End <= tolerance {
			current.End = ts
			continue
		}
		runs = append(runs, current)
		current = Interval{Start: ts, End: ts}
	}
	return append(runs, current)
}

// BufferIntervals expands each interval by bufferSeconds on both sides,
// clamped to [0, duration].
func BufferIntervals(intervals []Interval, bufferSeconds, duration float64) []Interval {
	buffered := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		start := iv.Start - bufferSeconds
		if start < 0 {
			start = 0
		}
		end := iv.End + bufferSeconds
		if end > duration {
			end = duration
		}
		buffered = append(buffered, Interval{Start: start, End: end})
	}
	return buffered
}

// Merge sorts intervals by start and folds overlapping or touching
// neighbours together. Closed-interval semantics: acc.End >= next.Start
// merges.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := make([]Interval, 0, len(sorted))
	acc := sorted[0]
	for _, iv := range sorted[1:] {
		if acc.End >= iv.Start {
			if iv.End > acc.End {
				acc.End = iv.End
			}
			continue
		}
		merged = append(merged, acc)
		acc = iv
	}
	return append(merged, acc)
}
