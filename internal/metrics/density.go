package metrics

import "github.com/san-kum/matrixdemo/internal/automaton"

// Density is the mean fraction of live cells.
type Density struct {
	name    string
	sum     float64
	samples int
}

func NewDensity() *Density {
	return &Density{name: "density"}
}

func (d *Density) Name() string {
	return d.name
}

func (d *Density) Observe(g *automaton.Grid, changed int) {
	d.sum += float64(g.Population()) / float64(len(g.Cells()))
	d.samples++
}

func (d *Density) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *Density) Reset() {
	d.sum = 0
	d.samples = 0
}
