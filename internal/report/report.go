// Package report writes timelines and score summaries.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/alexshd/framebench"
)

// Output formats for WriteSummary.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// TimelineWriter writes samples as JSON Lines, one object per frame.
type TimelineWriter struct {
	mu      sync.Mutex
	closer  io.Closer
	encoder *json.Encoder
}

// timelineRecord is one line of the timeline file.
type timelineRecord struct {
	Run           string  `json:"run"`
	Phase         string  `json:"phase,omitempty"`
	Ramp          int     `json:"ramp"`
	TimestampMs   float64 `json:"timestamp_ms"`
	Complexity    int     `json:"complexity"`
	FrameLengthMs float64 `json:"frame_length_ms"`
}

// NewTimelineWriter creates (or truncates) path.
func NewTimelineWriter(path string) (*TimelineWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create timeline file: %w", err)
	}
	return &TimelineWriter{closer: f, encoder: json.NewEncoder(f)}, nil
}

// NewTimelineEncoder writes to w without owning it.
func NewTimelineEncoder(w io.Writer) *TimelineWriter {
	return &TimelineWriter{encoder: json.NewEncoder(w)}
}

// WriteRun writes every sample of run tagged with its phase.
func (tw *TimelineWriter) WriteRun(run *framebench.Run) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	id := run.ID.String()
	for _, seg := range run.Timeline.Segments() {
		for _, s := range seg.Samples {
			rec := timelineRecord{
				Run:           id,
				Phase:         string(seg.Mark.Phase),
				Ramp:          seg.Mark.Ramp,
				TimestampMs:   float64(s.Timestamp.Microseconds()) / 1000,
				Complexity:    s.Complexity,
				FrameLengthMs: float64(s.FrameLength.Microseconds()) / 1000,
			}
			if err := tw.encoder.Encode(rec); err != nil {
				return fmt.Errorf("failed to write timeline sample: %w", err)
			}
		}
	}
	return nil
}

// Close closes the underlying file, if any.
func (tw *TimelineWriter) Close() error {
	if tw.closer == nil {
		return nil
	}
	return tw.closer.Close()
}

// WriteSummary prints results in the requested format.
func WriteSummary(w io.Writer, results *framebench.Results, format string) error {
	summary := results.Summary()

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(summary)
	case "", FormatTable:
		return writeTable(w, results, summary)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTable(w io.Writer, results *framebench.Results, summary framebench.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tMODE\tFRAMES\tFPS\tSCORE\tLOW\tHIGH")
	for _, run := range results.Runs() {
		s := run.Statistics()
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%.2f\t%.2f\t%.2f\n",
			run.ID.String()[:8], run.Mode, run.Timeline.Len(), s.Frames.FPS,
			s.Score, s.ScoreLow, s.ScoreHigh)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nScore: %.2f (-%.2f%% / +%.2f%%) over %d run(s)\n",
		summary.Score, summary.LowPercent, summary.HighPercent, summary.Runs)
	return err
}
