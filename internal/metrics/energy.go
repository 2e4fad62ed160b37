package metrics

import "math"

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Energy is the mean kinetic energy over observed samples.
type Energy struct {
	total   float64
	samples int
}

func NewEnergy() *Energy { return &Energy{} }

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(s Sample) {
	e.total += s.KineticEnergy
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// PeakHeight is the tallest stack height seen.
type PeakHeight struct {
	peak float64
}

func NewPeakHeight() *PeakHeight { return &PeakHeight{} }

func (p *PeakHeight) Name() string { return "peak_height" }

func (p *PeakHeight) Observe(s Sample) { p.peak = math.Max(p.peak, s.StackHeight) }

func (p *PeakHeight) Value() float64 { return p.peak }

func (p *PeakHeight) Reset() { p.peak = 0 }
