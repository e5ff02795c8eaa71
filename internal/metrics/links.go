package metrics

import "github.com/san-kum/backdrop/internal/link"

// Links tracks the mean number of proximity links per frame.
type Links struct {
	radius  float64
	samples int
	total   int
}

func NewLinks(radius float64) *Links {
	return &Links{radius: radius}
}

func (l *Links) Name() string { return "links" }

func (l *Links) Observe(f Frame) {
	if f.Field == nil {
		return
	}
	l.total += link.Count(f.Field.Particles, l.radius)
	l.samples++
}

func (l *Links) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return float64(l.total) / float64(l.samples)
}

func (l *Links) Reset() { l.total, l.samples = 0, 0 }

// TrailLength tracks the mean number of live trail points.
type TrailLength struct {
	samples int
	total   int
}

func (t *TrailLength) Name() string { return "trail" }

func (t *TrailLength) Observe(f Frame) {
	if f.Trail == nil {
		return
	}
	t.total += f.Trail.Len()
	t.samples++
}

func (t *TrailLength) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return float64(t.total) / float64(t.samples)
}

func (t *TrailLength) Reset() { t.total, t.samples = 0, 0 }
