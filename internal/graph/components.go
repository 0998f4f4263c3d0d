package graph

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Component is one maximal 4-connected group of foreground pixels.
type Component struct {
	ID       int     // 1-based, in discovery order
	Area     int     // number of pixels
	Boundary []Coord // members with at least one absent link, row-major
	Bounds   Bounds
	Shape    Shape // empty when shape classification is disabled
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStrategy selects the worklist discipline used to grow components.
func WithStrategy(s Strategy) Option {
	return func(a *Analyzer) {
		a.strategy = s
	}
}

// WithShapes enables or disables shape classification.
func WithShapes(enabled bool) Option {
	return func(a *Analyzer) {
		a.shapes = enabled
	}
}

// Analyzer partitions a graph into connected components.
// An Analyzer owns its visited set, so each Run starts from scratch.
type Analyzer struct {
	g        *Graph
	strategy Strategy
	shapes   bool
}

// NewAnalyzer creates an analyzer for g. Shape classification is on by default.
func NewAnalyzer(g *Graph, opts ...Option) *Analyzer {
	a := &Analyzer{
		g:        g,
		strategy: StrategyStack,
		shapes:   true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run walks the enumeration chain and returns every component in discovery order.
func (a *Analyzer) Run() []Component {
	if a.g == nil || a.g.Empty() {
		return nil
	}

	visited := bitset.New(uint(a.g.Len()))
	work := newWorklist(a.strategy)
	var members []NodeID
	var comps []Component

	for id := a.g.Head(); id != NoNode; id = a.g.Node(id).Next {
		if visited.Test(uint(id)) {
			continue
		}
		members = a.closure(id, visited, work, members[:0])
		comps = append(comps, a.summarize(len(comps)+1, members))
	}

	return comps
}

// closure collects every node reachable from start, marking each visited.
// A node is marked when it is first discovered, so it enters the worklist once.
func (a *Analyzer) closure(start NodeID, visited *bitset.BitSet, work worklist, members []NodeID) []NodeID {
	visited.Set(uint(start))
	work.Push(start)

	for {
		id, ok := work.Pop()
		if !ok {
			break
		}
		members = append(members, id)

		n := a.g.Node(id)
		for _, d := range directions {
			nb := n.Links[d]
			if nb == NoNode {
				continue
			}
			if back := a.g.Node(nb).Links[d.Opposite()]; back != id {
				panic(fmt.Sprintf("graph: %v", &LinkError{From: n.Pos, To: a.g.Node(nb).Pos, Dir: d}))
			}
			if visited.Test(uint(nb)) {
				continue
			}
			visited.Set(uint(nb))
			work.Push(nb)
		}
	}

	return members
}

// summarize builds the report for one closure. Members are sorted so the
// boundary comes out row-major whatever order the worklist produced.
func (a *Analyzer) summarize(compID int, members []NodeID) Component {
	slices.Sort(members)

	first := a.g.Node(members[0])
	c := Component{
		ID:     compID,
		Area:   len(members),
		Bounds: newBounds(first.Pos),
	}
	for _, id := range members {
		n := a.g.Node(id)
		c.Bounds.extend(n.Pos)
		if n.IsBoundary() {
			c.Boundary = append(c.Boundary, n.Pos)
		}
	}
	if a.shapes {
		c.Shape = Classify(c.Area, c.Bounds)
	}
	return c
}

// FindComponents partitions g into connected components using the default strategy.
func FindComponents(g *Graph) []Component {
	return NewAnalyzer(g).Run()
}
