package page

import "fmt"

// Registry maps page names to pages in creation order and tracks the active
// page. Only pages added with cycle set are reachable through Cycle.
type Registry struct {
	pages  map[string]Page
	order  []string
	cycle  []string
	active string
}

func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]Page)}
}

func (r *Registry) Register(p Page, cycle bool) error {
	name := p.Name()
	if _, ok := r.pages[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.pages[name] = p
	r.order = append(r.order, name)
	if cycle {
		r.cycle = append(r.cycle, name)
	}
	return nil
}

func (r *Registry) Get(name string) (Page, error) {
	p, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return p, nil
}

func (r *Registry) SetActive(name string) error {
	if _, ok := r.pages[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	r.active = name
	return nil
}

// Active returns the active page, or nil before the first SetActive.
func (r *Registry) Active() Page {
	if r.active == "" {
		return nil
	}
	return r.pages[r.active]
}

func (r *Registry) ActiveName() string { return r.active }

// Cycle moves the active page one step through the cycle list in the sign
// of dir, wrapping at both ends. When the active page is not in the list,
// a forward step selects the first entry and a backward step the last.
func (r *Registry) Cycle(dir int) Page {
	n := len(r.cycle)
	if n == 0 || dir == 0 {
		return r.Active()
	}
	step := 1
	if dir < 0 {
		step = -1
	}

	idx := -1
	for i, name := range r.cycle {
		if name == r.active {
			idx = i
			break
		}
	}

	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+step)%n + n) % n
	}
	r.active = r.cycle[idx]
	return r.pages[r.active]
}

// Names lists every page in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// CycleNames lists the pages reachable with Cycle, in cycle order.
func (r *Registry) CycleNames() []string {
	return append([]string(nil), r.cycle...)
}

func (r *Registry) Len() int { return len(r.order) }
