package graph

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonasrmichel/ratearb/pkg/rate"
)

// EdgePair is a directed (from, to) vertex-index pair, as they appear in
// a ReloadReport.
type EdgePair [2]int

// ReloadReport describes the diff a Reload applied to a graph: which
// vertices and edges were added or removed. Indices in AddedVertices and
// AddedEdges are valid in the post-reload graph; indices in
// RemovedVertices and RemovedEdges are the pre-deletion indices they held
// at the moment of removal.
type ReloadReport struct {
	RemovedVertices []int
	RemovedEdges    []EdgePair
	AddedVertices   []int
	AddedEdges      []EdgePair
}

// Reload replaces the content of g with the graph implied by
// rates: every rate contributes its directed edge pair with the weights
// defined by the log-rate convention (ask on the forward edge, bid on the
// reverse), every currency named in rates ends up as a vertex, every
// prior vertex not named in rates is gone, and indices are compacted.
//
// Reload snapshots the old vertex/edge sets before any mutation (later
// steps may implicitly create vertices while upserting edges), then
// diffs the post-pass "visited" sets against that snapshot. Added
// vertices/edges are reported in the order rates first mentioned them;
// removed ones are reported in ascending pre-deletion index order.
//
// Reload stops at the first hard failure (ErrInvalidInstrument,
// ErrInvalidRate, ErrAsymmetricEdge); whatever mutation already happened
// is left in place, per the engine's no-silent-recovery error policy.
func Reload(g *Graph, rates []rate.Rate) (*ReloadReport, error) {
	oldVertexCount := g.VertexCount()
	oldEdges := snapshotEdges(g)

	visitedVertices := make(map[int]bool)
	visitedEdges := make(map[EdgePair]bool)

	var addedVertices []int
	var addedEdges []EdgePair
	seenAddedEdge := make(map[EdgePair]bool)

	for _, r := range rates {
		base, quote, err := r.Split()
		if err != nil {
			return nil, err
		}
		if err := r.Validate(); err != nil {
			return nil, err
		}

		uNew := !g.hasLabel(base)
		vNew := !g.hasLabel(quote)
		u, err := g.ensureVertex(base)
		if err != nil {
			return nil, err
		}
		v, err := g.ensureVertex(quote)
		if err != nil {
			return nil, err
		}
		if uNew {
			addedVertices = append(addedVertices, u)
		}
		if vNew {
			addedVertices = append(addedVertices, v)
		}

		uvExists := g.HasEdge(u, v)
		vuExists := g.HasEdge(v, u)
		if uvExists != vuExists {
			return nil, fmt.Errorf("graph: edge between %d and %d exists only in one direction: %w", u, v, ErrAsymmetricEdge)
		}

		_ = g.AddEdge(u, v, -math.Log(r.Ask))
		_ = g.AddEdge(v, u, math.Log(r.Bid))

		visitedVertices[u] = true
		visitedVertices[v] = true
		fwd, rev := EdgePair{u, v}, EdgePair{v, u}
		visitedEdges[fwd] = true
		visitedEdges[rev] = true
		if !oldEdges[fwd] && !seenAddedEdge[fwd] {
			addedEdges = append(addedEdges, fwd)
			seenAddedEdge[fwd] = true
		}
		if !oldEdges[rev] && !seenAddedEdge[rev] {
			addedEdges = append(addedEdges, rev)
			seenAddedEdge[rev] = true
		}
	}

	var removedVertices []int
	for v := 0; v < oldVertexCount; v++ {
		if !visitedVertices[v] {
			removedVertices = append(removedVertices, v)
		}
	}

	var removedEdges []EdgePair
	for _, pairs := range sortedEdgePairs(oldEdges) {
		if !visitedEdges[pairs] {
			removedEdges = append(removedEdges, pairs)
		}
	}

	for _, e := range removedEdges {
		_ = g.RemoveEdge(e[0], e[1])
	}

	sort.Sort(sort.Reverse(sort.IntSlice(removedVertices)))
	for _, delV := range removedVertices {
		_ = g.RemoveVertex(delV)
		for i, av := range addedVertices {
			if av > delV {
				addedVertices[i] = av - 1
			}
		}
		for i, ae := range addedEdges {
			if ae[0] > delV {
				ae[0]--
			}
			if ae[1] > delV {
				ae[1]--
			}
			addedEdges[i] = ae
		}
	}

	sort.Ints(removedVertices)

	return &ReloadReport{
		RemovedVertices: removedVertices,
		RemovedEdges:    removedEdges,
		AddedVertices:   addedVertices,
		AddedEdges:      addedEdges,
	}, nil
}

func (g *Graph) hasLabel(label string) bool {
	_, ok := g.byLabel[label]
	return ok
}

func snapshotEdges(g *Graph) map[EdgePair]bool {
	out := make(map[EdgePair]bool)
	for _, e := range g.Edges() {
		out[EdgePair{e.From, e.To}] = true
	}
	return out
}

func sortedEdgePairs(set map[EdgePair]bool) []EdgePair {
	out := make([]EdgePair, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
