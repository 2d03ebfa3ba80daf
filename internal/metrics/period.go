package metrics

import (
	"hash/fnv"

	"github.com/san-kum/matrixdemo/internal/automaton"
)

// Period detects the first repeated grid state. Its value is the cycle
// length, 1 for a still life, or 0 while no repeat has been seen.
type Period struct {
	name    string
	seen    map[uint64]int
	samples int
	period  int
	onset   int
}

func NewPeriod() *Period {
	return &Period{name: "period", seen: make(map[uint64]int)}
}

func (p *Period) Name() string {
	return p.name
}

func (p *Period) Observe(g *automaton.Grid, changed int) {
	p.samples++
	if p.period > 0 {
		return
	}
	h := fnv.New64a()
	h.Write(g.Cells())
	sum := h.Sum64()
	if first, ok := p.seen[sum]; ok {
		p.period = p.samples - first
		p.onset = first
		return
	}
	p.seen[sum] = p.samples
}

func (p *Period) Value() float64 {
	return float64(p.period)
}

// Onset is the observation at which the cycle was first entered.
func (p *Period) Onset() int {
	return p.onset
}

func (p *Period) Reset() {
	p.seen = make(map[uint64]int)
	p.samples = 0
	p.period = 0
	p.onset = 0
}
