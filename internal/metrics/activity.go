package metrics

import "github.com/san-kum/matrixdemo/internal/automaton"

// Activity is the mean fraction of cells that changed per generation.
type Activity struct {
	name    string
	sum     float64
	samples int
}

func NewActivity() *Activity {
	return &Activity{name: "activity"}
}

func (a *Activity) Name() string {
	return a.name
}

func (a *Activity) Observe(g *automaton.Grid, changed int) {
	a.sum += float64(changed) / float64(len(g.Cells()))
	a.samples++
}

func (a *Activity) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *Activity) Reset() {
	a.sum = 0
	a.samples = 0
}
