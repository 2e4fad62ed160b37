package metrics

// Stability is the fraction of samples whose kinetic energy stayed at or
// below threshold, i.e. how often the pile was at rest.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string {
	return "stability"
}

func (s *Stability) Observe(sample Sample) {
	s.samples++
	if sample.KineticEnergy > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
