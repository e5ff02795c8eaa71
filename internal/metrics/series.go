package metrics

import "github.com/san-kum/backdrop/internal/link"

const HistoryCapacity = 600

// Series is a bounded history of samples; the oldest is dropped when full.
type Series struct {
	Name     string
	capacity int
	values   []float64
}

func NewSeries(name string, capacity int) *Series {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &Series{Name: name, capacity: capacity, values: make([]float64, 0, capacity)}
}

func (s *Series) Push(v float64) {
	s.values = append(s.values, v)
	if len(s.values) > s.capacity {
		s.values = s.values[1:]
	}
}

func (s *Series) Values() []float64 { return s.values }

func (s *Series) Len() int { return len(s.values) }

func (s *Series) Last() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}

func (s *Series) Max() float64 {
	m := 0.0
	for i, v := range s.values {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

func (s *Series) Reset() { s.values = s.values[:0] }

// Sampler records per-frame histories of energy, link count and trail
// length for charts.
type Sampler struct {
	Energy *Series
	Links  *Series
	Trail  *Series
	radius float64
}

func NewSampler(linkRadius float64, capacity int) *Sampler {
	return &Sampler{
		Energy: NewSeries("energy", capacity),
		Links:  NewSeries("links", capacity),
		Trail:  NewSeries("trail", capacity),
		radius: linkRadius,
	}
}

func (s *Sampler) Observe(f Frame) {
	if f.Field != nil {
		s.Energy.Push(KineticEnergy(f.Field.Particles))
		s.Links.Push(float64(link.Count(f.Field.Particles, s.radius)))
	}
	if f.Trail != nil {
		s.Trail.Push(float64(f.Trail.Len()))
	}
}

func (s *Sampler) Reset() {
	s.Energy.Reset()
	s.Links.Reset()
	s.Trail.Reset()
}
