// Package perf has the small counters and timers the picker and the history
// store use to trace themselves.
package perf

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Timer logs how long an operation took and warns when it was slow.
type Timer struct {
	name     string
	logger   *slog.Logger
	start    time.Time
	threshMs int64
}

// NewTimer starts a timer. A nil logger makes Stop a no-op apart from the
// returned duration.
func NewTimer(name string, logger *slog.Logger, threshMs int64) *Timer {
	return &Timer{
		name:     name,
		logger:   logger,
		start:    time.Now(),
		threshMs: threshMs,
	}
}

// Stop logs and returns the elapsed time.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.logger != nil {
		t.logger.Debug(t.name, "duration_ms", elapsed.Milliseconds())
		if elapsed.Milliseconds() > t.threshMs {
			t.logger.Warn(t.name+"_slow", "duration_ms", elapsed.Milliseconds(), "threshold_ms", t.threshMs)
		}
	}
	return elapsed
}

// Counter is a monotonically increasing count. The zero value is ready to use.
type Counter struct {
	value int64
}

func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}

// Stats summarizes the durations seen by a Recorder.
type Stats struct {
	Name          string
	Count         int64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	SlowOps       int64
}

func (s Stats) AvgDuration() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

const noMin = 1<<63 - 1

// Recorder aggregates durations of one kind of operation.
type Recorder struct {
	name      string
	logger    *slog.Logger
	count     int64
	totalDur  int64
	minDur    int64
	maxDur    int64
	slowOps   int64
	threshold time.Duration
}

func NewRecorder(name string, logger *slog.Logger, threshold time.Duration) *Recorder {
	return &Recorder{
		name:      name,
		logger:    logger,
		threshold: threshold,
		minDur:    noMin,
	}
}

// Time runs fn and records how long it took.
func (r *Recorder) Time(fn func() error) error {
	start := time.Now()
	err := fn()
	r.Record(time.Since(start))
	return err
}

func (r *Recorder) Record(elapsed time.Duration) {
	ns := elapsed.Nanoseconds()
	atomic.AddInt64(&r.count, 1)
	atomic.AddInt64(&r.totalDur, ns)

	for {
		cur := atomic.LoadInt64(&r.minDur)
		if ns >= cur {
			break
		}
		if atomic.CompareAndSwapInt64(&r.minDur, cur, ns) {
			break
		}
	}
	for {
		cur := atomic.LoadInt64(&r.maxDur)
		if ns <= cur {
			break
		}
		if atomic.CompareAndSwapInt64(&r.maxDur, cur, ns) {
			break
		}
	}

	if elapsed >= r.threshold {
		atomic.AddInt64(&r.slowOps, 1)
		if r.logger != nil {
			r.logger.Warn(r.name+"_slow", "duration_ms", elapsed.Milliseconds(), "threshold_ms", r.threshold.Milliseconds())
		}
	}
}

func (r *Recorder) Stats() Stats {
	minDur := atomic.LoadInt64(&r.minDur)
	if minDur == noMin {
		minDur = 0
	}
	return Stats{
		Name:          r.name,
		Count:         atomic.LoadInt64(&r.count),
		TotalDuration: time.Duration(atomic.LoadInt64(&r.totalDur)),
		MinDuration:   time.Duration(minDur),
		MaxDuration:   time.Duration(atomic.LoadInt64(&r.maxDur)),
		SlowOps:       atomic.LoadInt64(&r.slowOps),
	}
}

// LogStats writes the summary at level. Nothing is logged before the first
// recorded operation.
func (r *Recorder) LogStats(level slog.Level) {
	if r.logger == nil {
		return
	}
	stats := r.Stats()
	if stats.Count == 0 {
		return
	}
	r.logger.Log(context.Background(), level, r.name+"_stats",
		"count", stats.Count,
		"total_ms", stats.TotalDuration.Milliseconds(),
		"avg_ms", stats.AvgDuration().Milliseconds(),
		"min_ms", stats.MinDuration.Milliseconds(),
		"max_ms", stats.MaxDuration.Milliseconds(),
		"slow_ops", stats.SlowOps,
	)
}
