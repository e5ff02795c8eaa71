package metrics

// Containment is the fraction of particle observations inside the viewport.
// Reflection lets particles overshoot briefly, so this sits just below 1.
type Containment struct {
	name    string
	outside int
	samples int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f Frame) {
	if f.Field == nil {
		return
	}
	for _, p := range f.Field.Particles {
		c.samples++
		if !f.Field.Viewport.Contains(p.Pos) {
			c.outside++
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.outside)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.outside = 0
	c.samples = 0
}
