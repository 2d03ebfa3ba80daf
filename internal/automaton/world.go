package automaton

// World is a tick/tock double buffer: Step computes next entirely from
// current and then swaps the two grids. Neither grid is ever reallocated.
type World struct {
	rule       Rule
	cur, next  *Grid
	generation int
}

func NewWorld(w, h int, rule Rule) *World {
	return &World{
		rule: rule,
		cur:  NewGrid(w, h),
		next: NewGrid(w, h),
	}
}

func (w *World) Rule() Rule       { return w.rule }
func (w *World) Current() *Grid   { return w.cur }
func (w *World) Generation() int  { return w.generation }
func (w *World) Size() (int, int) { return w.cur.w, w.cur.h }

// Load replaces the current generation with a copy of g.
func (w *World) Load(g *Grid) error {
	if err := w.cur.CopyFrom(g); err != nil {
		return err
	}
	w.generation = 0
	return nil
}

// Compute fills the next buffer from the current one without swapping and
// returns the number of cells whose value changed.
func (w *World) Compute() int {
	changed := 0
	for y := 0; y < w.cur.h; y++ {
		for x := 0; x < w.cur.w; x++ {
			self := w.cur.cells[y*w.cur.w+x]
			v := w.rule.Next(w.cur.Neighborhood(x, y), self)
			w.next.cells[y*w.cur.w+x] = v
			if v != self {
				changed++
			}
		}
	}
	return changed
}

// Next exposes the buffer written by the last Compute.
func (w *World) Next() *Grid { return w.next }

// Swap exchanges the current and next roles.
func (w *World) Swap() {
	w.cur, w.next = w.next, w.cur
	w.generation++
}

// Step advances one generation and returns the number of changed cells.
func (w *World) Step() int {
	changed := w.Compute()
	w.Swap()
	return changed
}
