// Package metrics exports frame and score metrics to Prometheus.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexshd/framebench"
)

// Recorder holds the framebench collectors registered on one registry.
type Recorder struct {
	Registry *prometheus.Registry

	Frames           prometheus.Counter
	Complexity       prometheus.Gauge
	FrameLength      prometheus.Histogram
	PhaseTransitions *prometheus.CounterVec
	RunScore         *prometheus.GaugeVec
	Score            *prometheus.GaugeVec
	RunsTotal        prometheus.Counter
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		Registry: reg,
		Frames: factory.NewCounter(prometheus.CounterOpts{
			Name: "framebench_frames_total",
			Help: "Frames recorded by the active controller",
		}),
		Complexity: factory.NewGauge(prometheus.GaugeOpts{
			Name: "framebench_complexity",
			Help: "Complexity requested for the most recent frame",
		}),
		FrameLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "framebench_frame_length_seconds",
			Help:    "Measured frame lengths",
			Buckets: []float64{0.008, 0.0167, 0.02, 0.0334, 0.05, 0.0667, 0.1, 0.25},
		}),
		PhaseTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "framebench_phase_total",
			Help: "Controller phases entered",
		}, []string{"phase"}),
		RunScore: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "framebench_run_score",
			Help: "Score of a completed run",
		}, []string{"run_id", "bound"}),
		Score: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "framebench_score",
			Help: "Aggregate score over all completed runs",
		}, []string{"bound"}),
		RunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "framebench_runs_total",
			Help: "Completed runs",
		}),
	}
}

// ObserveFrame records one sample. Zero-length frames are counted but not
// added to the frame length histogram.
func (r *Recorder) ObserveFrame(s framebench.Sample) {
	r.Frames.Inc()
	r.Complexity.Set(float64(s.Complexity))
	if s.FrameLength > 0 {
		r.FrameLength.Observe(s.FrameLength.Seconds())
	}
}

// ObserveRun records a completed run and the phases on its timeline.
func (r *Recorder) ObserveRun(run *framebench.Run) {
	stats := run.Statistics()
	id := run.ID.String()

	r.RunsTotal.Inc()
	r.RunScore.WithLabelValues(id, "score").Set(stats.Score)
	r.RunScore.WithLabelValues(id, "low").Set(stats.ScoreLow)
	r.RunScore.WithLabelValues(id, "high").Set(stats.ScoreHigh)

	for _, m := range run.Timeline.Marks() {
		r.PhaseTransitions.WithLabelValues(string(m.Phase)).Inc()
	}
}

// ObserveSummary records the aggregate score.
func (r *Recorder) ObserveSummary(s framebench.Summary) {
	r.Score.WithLabelValues("score").Set(s.Score)
	r.Score.WithLabelValues("low").Set(s.ScoreLow)
	r.Score.WithLabelValues("high").Set(s.ScoreHigh)
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
