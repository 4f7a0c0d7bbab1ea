// Package pruner reduces a set of instruments to the subset that can
// ever participate in an arbitrage cycle: an instrument whose currency
// pair sits on a degree-one (or isolated) branch of the undirected
// currency graph, or that isn't part of any cycle at all, can never close
// a loop and is dead weight for the search algorithms in pkg/graph.
package pruner

import (
	"fmt"

	"github.com/jonasrmichel/ratearb/pkg/rate"
)

// Prune reduces instruments to those whose currency pair lies on a cycle
// of the undirected projection of the instrument graph (treating A_B and
// B_A as the same edge). It runs in two passes:
//
//  1. Leaf pruning: a single sweep in reverse index order removing every
//     vertex of degree < 2. Because degree is checked live against a
//     graph already shrinking from the high-index end, a vertex exposed
//     as a leaf only by the removal of some lower-index vertex survives
//     this pass; this one-shot-reverse-sweep behavior is intentional,
//     not a missed fixpoint (see DESIGN.md's Open Questions).
//  2. Cycle pruning: find every bridge of the remaining graph (an edge
//     whose removal disconnects its two endpoints) via a low-link DFS,
//     and mark a vertex cyclic if any incident edge is not a bridge.
//     Everything left unmarked is pruned, again in reverse index order.
//
// Instruments are expected in rate.Split's BASE_QUOTE form; a malformed
// entry fails with rate.ErrInvalidInstrument.
func Prune(instruments []string) ([]string, error) {
	g, err := load(instruments)
	if err != nil {
		return nil, err
	}

	pruneLeaves(g)
	cyclic := markCyclic(g)
	pruneAcyclic(g, cyclic)

	return g.edgeInstruments(), nil
}

// pgraph is an undirected, compacting-index graph: adjacency is
// symmetric and RemoveVertex shifts every higher index down by one, the
// same representation pkg/graph uses for the directed rate graph.
type pgraph struct {
	labels   []string
	byLabel  map[string]int
	adj      []map[int]bool
	selfLoop []bool

	// edgeOrder records each distinct edge once, in the (source, target)
	// orientation and first-mention order it was given in the input,
	// mirroring pruner.cc's edges(g) emission (which walks the graph's
	// own edge list, built in add_edge's insertion order, and reads
	// source()/target() straight off each edge descriptor rather than
	// re-deriving an orientation from vertex index order).
	edgeOrder []edgeOrientation
	seenEdge  map[unorderedPair]bool
}

type edgeOrientation struct {
	src, dst int
}

type unorderedPair struct {
	lo, hi int
}

func normalizePair(u, v int) unorderedPair {
	if u <= v {
		return unorderedPair{u, v}
	}
	return unorderedPair{v, u}
}

func load(instruments []string) (*pgraph, error) {
	g := &pgraph{byLabel: make(map[string]int)}
	for _, instr := range instruments {
		base, quote, err := rate.Split(instr)
		if err != nil {
			return nil, err
		}
		u := g.ensureVertex(base)
		v := g.ensureVertex(quote)
		g.addEdge(u, v)
	}
	return g, nil
}

func (g *pgraph) ensureVertex(label string) int {
	if idx, ok := g.byLabel[label]; ok {
		return idx
	}
	idx := len(g.labels)
	g.labels = append(g.labels, label)
	g.byLabel[label] = idx
	g.adj = append(g.adj, make(map[int]bool))
	g.selfLoop = append(g.selfLoop, false)
	return idx
}

// addEdge adds edge (u, v) to both endpoints' adjacency sets, treating
// the undirected graph as a set: parallel edges between the same pair
// collapse, matching P4's "duplicates cannot change cyclicity". A
// self-loop (u == v) is recorded separately since it has no second
// endpoint to key an adjacency-set entry against. The first mention of
// (u, v) also fixes that edge's emission orientation and position in
// edgeOrder; later duplicates don't move or reorient it.
func (g *pgraph) addEdge(u, v int) {
	if u == v {
		g.selfLoop[u] = true
	} else {
		g.adj[u][v] = true
		g.adj[v][u] = true
	}

	key := normalizePair(u, v)
	if g.seenEdge == nil {
		g.seenEdge = make(map[unorderedPair]bool)
	}
	if g.seenEdge[key] {
		return
	}
	g.seenEdge[key] = true
	g.edgeOrder = append(g.edgeOrder, edgeOrientation{src: u, dst: v})
}

// degree counts a self-loop twice, so that a vertex with only a
// self-loop clears the leaf-prune threshold on its own.
func (g *pgraph) degree(v int) int {
	d := len(g.adj[v])
	if g.selfLoop[v] {
		d += 2
	}
	return d
}

// removeVertex deletes vertex v, clears its incident edges, and compacts
// the index space, matching graph.Graph.RemoveVertex's shift discipline.
func (g *pgraph) removeVertex(v int) {
	for n := range g.adj[v] {
		delete(g.adj[n], v)
	}

	delete(g.byLabel, g.labels[v])
	g.labels = append(g.labels[:v], g.labels[v+1:]...)
	g.adj = append(g.adj[:v], g.adj[v+1:]...)
	g.selfLoop = append(g.selfLoop[:v], g.selfLoop[v+1:]...)

	for u := range g.adj {
		shifted := make(map[int]bool, len(g.adj[u]))
		for n := range g.adj[u] {
			if n > v {
				shifted[n-1] = true
			} else {
				shifted[n] = true
			}
		}
		g.adj[u] = shifted
	}
	for label, idx := range g.byLabel {
		if idx > v {
			g.byLabel[label] = idx - 1
		}
	}

	kept := g.edgeOrder[:0]
	for _, e := range g.edgeOrder {
		if e.src == v || e.dst == v {
			continue
		}
		if e.src > v {
			e.src--
		}
		if e.dst > v {
			e.dst--
		}
		kept = append(kept, e)
	}
	g.edgeOrder = kept
}

func pruneLeaves(g *pgraph) {
	for v := len(g.labels) - 1; v >= 0; v-- {
		if g.degree(v) < 2 {
			g.removeVertex(v)
		}
	}
}

// markCyclic runs a low-link DFS (Tarjan's bridge-finding) over g and
// marks every vertex that sits on some cycle: a vertex is cyclic iff at
// least one of its incident edges is not a bridge, where an edge is a
// bridge iff removing it disconnects its two endpoints. Marking only the
// ancestor endpoint of each back edge (the textbook "target of a back
// edge" shortcut) undercounts on a bare triangle, where the middle
// vertex of the DFS tree is never itself a back-edge endpoint even
// though it plainly sits on the cycle; comparing low-link against
// discovery time catches it.
func markCyclic(g *pgraph) []bool {
	n := len(g.labels)
	visited := make([]bool, n)
	disc := make([]int, n)
	low := make([]int, n)
	cyclic := make([]bool, n)
	timer := 0

	var visit func(u, parent int)
	visit = func(u, parent int) {
		visited[u] = true
		disc[u] = timer
		low[u] = timer
		timer++

		for v := range g.adj[u] {
			if v == parent {
				continue
			}
			if !visited[v] {
				visit(v, u)
				if low[v] < low[u] {
					low[u] = low[v]
				}
				if low[v] <= disc[u] {
					cyclic[u] = true
					cyclic[v] = true
				}
			} else {
				if disc[v] < low[u] {
					low[u] = disc[v]
				}
				cyclic[u] = true
				cyclic[v] = true
			}
		}
	}

	for v := 0; v < n; v++ {
		if !visited[v] {
			visit(v, -1)
		}
	}
	for v := 0; v < n; v++ {
		if g.selfLoop[v] {
			cyclic[v] = true
		}
	}
	return cyclic
}

func pruneAcyclic(g *pgraph, cyclic []bool) {
	for v := len(cyclic) - 1; v >= 0; v-- {
		if !cyclic[v] {
			g.removeVertex(v)
		}
	}
}

// edgeInstruments renders the surviving edges back out as BASE_QUOTE
// strings, in each edge's original (source, target) orientation and in
// the order the input first mentioned it. Ascending index order would
// both reorder and relabel edges arbitrarily relative to what was
// handed in.
func (g *pgraph) edgeInstruments() []string {
	var out []string
	for _, e := range g.edgeOrder {
		out = append(out, fmt.Sprintf("%s_%s", g.labels[e.src], g.labels[e.dst]))
	}
	return out
}
