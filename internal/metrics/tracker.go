package metrics

import (
	"github.com/san-kum/cubedrop/internal/scene"
	"github.com/san-kum/cubedrop/internal/sim"
)

// Tracker samples a scene after every loop update, keeping the most recent
// samples in a ring buffer and feeding each registered metric.
type Tracker struct {
	scene   *scene.Scene
	metrics []Metric
	history []Sample
	next    int
	full    bool
}

func NewTracker(s *scene.Scene, capacity int, metrics ...Metric) *Tracker {
	if capacity <= 0 {
		capacity = 1
	}
	return &Tracker{
		scene:   s,
		metrics: metrics,
		history: make([]Sample, 0, capacity),
	}
}

func (t *Tracker) OnUpdate(st sim.Stats) {
	sample := Take(t.scene)
	sample.Frame = st.Frame
	for _, m := range t.metrics {
		m.Observe(sample)
	}

	if len(t.history) < cap(t.history) {
		t.history = append(t.history, sample)
		return
	}
	t.history[t.next] = sample
	t.next = (t.next + 1) % len(t.history)
	t.full = true
}

// History returns retained samples oldest first.
func (t *Tracker) History() []Sample {
	out := make([]Sample, 0, len(t.history))
	if t.full {
		out = append(out, t.history[t.next:]...)
		out = append(out, t.history[:t.next]...)
		return out
	}
	return append(out, t.history...)
}

func (t *Tracker) Latest() (Sample, bool) {
	h := t.History()
	if len(h) == 0 {
		return Sample{}, false
	}
	return h[len(h)-1], true
}

// Series projects the history through f, oldest first.
func (t *Tracker) Series(f func(Sample) float64) []float64 {
	h := t.History()
	out := make([]float64, len(h))
	for i, s := range h {
		out[i] = f(s)
	}
	return out
}

func (t *Tracker) Metrics() []Metric { return t.metrics }

// Values maps metric names to their current value.
func (t *Tracker) Values() map[string]float64 {
	out := make(map[string]float64, len(t.metrics))
	for _, m := range t.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (t *Tracker) Reset() {
	t.history = t.history[:0]
	t.next = 0
	t.full = false
	for _, m := range t.metrics {
		m.Reset()
	}
}
