// Package catalog builds pages from their configuration.
package catalog

import (
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/san-kum/matrixdemo/internal/automaton"
	"github.com/san-kum/matrixdemo/internal/boot"
	"github.com/san-kum/matrixdemo/internal/config"
	"github.com/san-kum/matrixdemo/internal/fonts"
	"github.com/san-kum/matrixdemo/internal/page"
)

// Factory builds one page of a kind at the given display size.
type Factory func(pc config.PageConfig, w, h int, rng *rand.Rand) (page.Page, error)

type Registry struct {
	kinds  map[string]Factory
	logger *log.Logger
}

// NewRegistry returns the built-in kinds. Runtime page failures, such as a
// failed reseed, go to logger; nil discards them.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Registry{kinds: make(map[string]Factory), logger: logger}

	r.kinds[config.KindText] = newText
	r.kinds[config.KindLife] = r.newAnimation
	r.kinds[config.KindChaser] = r.newAnimation

	return r
}

func (r *Registry) Build(pc config.PageConfig, w, h int, rng *rand.Rand) (page.Page, error) {
	fn, ok := r.kinds[pc.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown page kind: %s", pc.Kind)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	p, err := fn(pc, w, h, rng)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", pc.Name, err)
	}
	return p, nil
}

func (r *Registry) Kinds() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Screens returns a builder for the boot controller that creates pages in
// order, with one random source seeded from seed.
func (r *Registry) Screens(configs []config.PageConfig, seed int64) boot.ScreenBuilder {
	return func(w, h int) ([]page.Page, error) {
		rng := rand.New(rand.NewSource(seed))
		pages := make([]page.Page, 0, len(configs))
		for _, pc := range configs {
			p, err := r.Build(pc, w, h, rng)
			if err != nil {
				return nil, err
			}
			pages = append(pages, p)
		}
		return pages, nil
	}
}

func newText(pc config.PageConfig, w, h int, _ *rand.Rand) (page.Page, error) {
	face, err := fonts.Load(pc.Font)
	if err != nil {
		return nil, err
	}
	var opts []page.TextOption
	if pc.Center {
		opts = append(opts, page.Centered())
	}
	if pc.Color != "" {
		c, err := config.ParseColor(pc.Color)
		if err != nil {
			return nil, err
		}
		opts = append(opts, page.WithColor(c))
	}
	p := page.NewText(pc.Name, face, w, h, opts...)
	p.Clear()
	return p, nil
}

func (r *Registry) newAnimation(pc config.PageConfig, w, h int, rng *rand.Rand) (page.Page, error) {
	rule, err := automaton.RuleByName(pc.Kind)
	if err != nil {
		return nil, err
	}
	base, err := config.ParseColor(pc.Color)
	if err != nil {
		return nil, err
	}
	if pc.Color == "" {
		base = page.DefaultTextColor
	}
	density := pc.Density
	if density == 0 {
		density = config.DefaultDensity
	}
	seed := func(g *automaton.Grid) error {
		return automaton.Seed(g, rule, pc.Seed, density, rng)
	}

	world := automaton.NewWorld(w, h, rule)
	if err := seed(world.Current()); err != nil {
		return nil, err
	}
	var opts []page.AnimationOption
	if pc.ReseedEvery > 0 {
		opts = append(opts,
			page.ReseedEvery(pc.ReseedEvery, seed),
			page.OnReseedError(func(err error) { r.logger.Warn("page", "err", err) }),
		)
	}
	return page.NewAnimation(pc.Name, world, rule.Palette(base), opts...), nil
}
