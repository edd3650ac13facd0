package motion

import (
	"strconv"
	"strings"
)

// Plan is the ordered, pairwise-disjoint set of intervals selected for
// extraction, together with the source duration.
type Plan struct {
	Intervals []Interval
	Duration  float64
}

// Empty reports whether the plan selects nothing, which a job reports as
// "no motion".
func (p Plan) Empty() bool {
	return len(p.Intervals) == 0
}

// TotalSeconds sums the selected interval lengths.
func (p Plan) TotalSeconds() float64 {
	total := 0.0
	for _, iv := range p.Intervals {
		total += iv.End - iv.Start
	}
	return total
}

// Selection renders the plan as an ffmpeg select expression: a sum of
// between(t,start,end) terms that is truthy inside any retained interval.
func (p Plan) Selection() string {
	if p.Empty() {
		return ""
	}
	terms := make([]string, 0, len(p.Intervals))
	for _, iv := range p.Intervals {
		var b strings.Builder
		b.WriteString("between(t,")
		b.WriteString(formatSeconds(iv.Start))
		b.WriteByte(',')
		b.WriteString(formatSeconds(iv.End))
		b.WriteByte(')')
		terms = append(terms, b.String())
	}
	return strings.Join(terms, "+")
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
