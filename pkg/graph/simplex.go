package graph

// FindInitialSimplex finds the minimum-weight directed triangle in g: a
// closed 3-cycle u->v->w->u (or u->w->v->u) with negative total weight,
// the smallest nontrivial arbitrage candidate. It returns the empty
// RatedPath{lrate: 0} if no negative triangle exists.
//
// Vertices are painted with per-call scratch color state (white, gray,
// black). Colors are never reset between outer iterations: once a vertex
// has been visited it stays non-white for the rest of the call, and only
// non-white (gray or black) common out-neighbors of u and v are taken as
// the third corner w. This makes the result order-dependent on vertex
// enumeration order (see DESIGN.md's notes on the cycle search).
func FindInitialSimplex(g *Graph) RatedPath {
	n := g.VertexCount()
	colors := newColorMap(n)

	best := 0.0
	var bestPath []int

	for u := 0; u < n; u++ {
		colors.set(u, black)

		for _, v := range unvisitedNeighbors(g, u, colors, black, true) {
			colors.set(v, gray)

			for _, w := range intersectingNeighbors(g, u, v, colors, white, true) {
				if w == u || w == v {
					continue
				}

				if r, ok := evaluateTriangle(g, u, v, w); ok && r < best {
					best = r
					bestPath = []int{u, v, w}
				}
				if r, ok := evaluateTriangle(g, u, w, v); ok && r < best {
					best = r
					bestPath = []int{u, w, v}
				}
			}
		}
	}

	return RatedPath{Path: bestPath, LRate: best}
}

// evaluateTriangle sums the weights of the closed triangle a->b->c->a,
// skipping (ok=false) if any of its three edges does not exist.
func evaluateTriangle(g *Graph, a, b, c int) (float64, bool) {
	wab, ok := g.EdgeWeight(a, b)
	if !ok {
		return 0, false
	}
	wbc, ok := g.EdgeWeight(b, c)
	if !ok {
		return 0, false
	}
	wca, ok := g.EdgeWeight(c, a)
	if !ok {
		return 0, false
	}
	return wab + wbc + wca, true
}
