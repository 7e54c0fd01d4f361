package framebench

import (
	"fmt"
	"time"
)

// Sample is one completed frame.
type Sample struct {
	Timestamp   time.Duration `json:"timestamp"`    // Elapsed since run start
	Complexity  int           `json:"complexity"`   // Workload requested for this frame
	FrameLength time.Duration `json:"frame_length"` // Measured length of this frame
}

// Phase names the controller stage that produced a run of samples.
type Phase string

const (
	PhaseFixed  Phase = "fixed"
	PhaseSearch Phase = "search"
	PhaseSweep  Phase = "sweep"
	PhaseDone   Phase = "done"
)

// Mark records the start of a phase. Index is the first sample index that
// belongs to the phase.
type Mark struct {
	Name      string        `json:"name"`
	Phase     Phase         `json:"phase"`
	Ramp      int           `json:"ramp"`
	Index     int           `json:"index"`
	Timestamp time.Duration `json:"timestamp"`
}

// Timeline is the append-only frame record of one run.
// It is written by exactly one controller at a time and is not safe for
// concurrent mutation.
type Timeline struct {
	samples []Sample
	marks   []Mark
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{
		samples: make([]Sample, 0, 1024),
	}
}

// Append adds a sample. Timestamps must not go backwards.
func (t *Timeline) Append(timestamp time.Duration, complexity int, frameLength time.Duration) {
	if n := len(t.samples); n > 0 && timestamp < t.samples[n-1].Timestamp {
		panic(fmt.Sprintf("framebench: timestamp %v precedes previous sample %v", timestamp, t.samples[n-1].Timestamp))
	}
	t.samples = append(t.samples, Sample{
		Timestamp:   timestamp,
		Complexity:  complexity,
		FrameLength: frameLength,
	})
}

// Mark opens a new phase starting at the next appended sample.
func (t *Timeline) Mark(phase Phase, ramp int, timestamp time.Duration) {
	t.marks = append(t.marks, Mark{
		Name:      fmt.Sprintf("ramp-%d:%s", ramp, phase),
		Phase:     phase,
		Ramp:      ramp,
		Index:     len(t.samples),
		Timestamp: timestamp,
	})
}

// Len returns the number of samples.
func (t *Timeline) Len() int {
	return len(t.samples)
}

// Last returns the most recent sample.
func (t *Timeline) Last() (Sample, bool) {
	if len(t.samples) == 0 {
		return Sample{}, false
	}
	return t.samples[len(t.samples)-1], true
}

// Samples returns a copy of all samples in temporal order.
func (t *Timeline) Samples() []Sample {
	out := make([]Sample, len(t.samples))
	copy(out, t.samples)
	return out
}

// Marks returns a copy of the phase markers.
func (t *Timeline) Marks() []Mark {
	out := make([]Mark, len(t.marks))
	copy(out, t.marks)
	return out
}

// FrameLengths returns the frame length column.
func (t *Timeline) FrameLengths() []time.Duration {
	out := make([]time.Duration, len(t.samples))
	for i, s := range t.samples {
		out[i] = s.FrameLength
	}
	return out
}

// Segment is a contiguous run of samples produced by one phase.
type Segment struct {
	Mark    Mark
	Samples []Sample
}

// Segments splits the timeline at its marks. Samples recorded before the
// first mark are not part of any segment.
func (t *Timeline) Segments() []Segment {
	segments := make([]Segment, 0, len(t.marks))
	for i, m := range t.marks {
		end := len(t.samples)
		if i+1 < len(t.marks) {
			end = t.marks[i+1].Index
		}
		start := m.Index
		if start > end {
			start = end
		}
		samples := make([]Sample, end-start)
		copy(samples, t.samples[start:end])
		segments = append(segments, Segment{Mark: m, Samples: samples})
	}
	return segments
}

// PhaseSegments returns only the segments of the given phase.
func (t *Timeline) PhaseSegments(phase Phase) []Segment {
	var out []Segment
	for _, s := range t.Segments() {
		if s.Mark.Phase == phase {
			out = append(out, s)
		}
	}
	return out
}
