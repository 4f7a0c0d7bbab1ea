package graph

// Expand runs one iteration of cycle expansion: for each consecutive pair
// (u, v) of the current cycle it tries to splice in one fresh vertex that
// lowers the pair's contribution to the total weight, accepting the
// splice only when it strictly improves on the direct edge.
//
// Per vertex pair, candidates are vertices adjacent (by out-edge) to both
// u and v that are not already on the cycle; c_rate is initialized to 0
// (not +Inf) so only a strictly negative r_uw+r_wv ever qualifies as a
// candidate, matching the "only accept improvements over direct
// traversal" intent described in the design notes.
func Expand(g *Graph, p RatedPath) RatedPath {
	m := len(p.Path)
	if m == 0 {
		return p
	}

	colors := newColorMap(g.VertexCount())
	for _, v := range p.Path {
		colors.set(v, black)
	}

	out := make([]int, 0, m+1)
	var newRate float64

	for i := 0; i < m; i++ {
		u := p.Path[i]
		v := p.Path[(i+1)%m]
		rUV, ok := g.EdgeWeight(u, v)
		if !ok {
			rUV = 0
		}

		out = append(out, u)

		candidates := intersectingNeighbors(g, u, v, colors, black, true)

		cRate := 0.0
		candidate := -1
		for _, w := range candidates {
			ruw, ok1 := g.EdgeWeight(u, w)
			rwv, ok2 := g.EdgeWeight(w, v)
			if !ok1 || !ok2 {
				continue
			}
			xrate := ruw + rwv
			if xrate < cRate {
				cRate = xrate
				candidate = w
			}
		}

		if candidate >= 0 && cRate < rUV && g.HasEdge(u, candidate) && g.HasEdge(candidate, v) {
			newRate += cRate
			out = append(out, candidate)
			colors.set(candidate, black)
		} else {
			newRate += rUV
		}
	}

	return RatedPath{Path: out, LRate: newRate}
}

// ProgressFunc is invoked by BestPath after the initial simplex and after
// every subsequent iteration of expansion, carrying the iteration number
// (0 for the initial simplex) and the path found so far. It lets callers
// (the REPL's "gsearch" command, metrics) mirror the reference CLI's
// per-iteration progress log without BestPath depending on a logger.
type ProgressFunc func(iteration int, p RatedPath)

// BestPath runs FindInitialSimplex followed by repeated Expand, until
// either the path stops growing (fixpoint) or maxIterations is reached
// (maxIterations < 0 means unbounded). The returned path is in closed
// form (the starting vertex repeated at the tail).
func BestPath(g *Graph, maxIterations int, progress ProgressFunc) RatedPath {
	rp := FindInitialSimplex(g)
	if progress != nil {
		progress(0, rp)
	}

	iter := 0
	for maxIterations < 0 || iter < maxIterations {
		lastSize := len(rp.Path)
		rp = Expand(g, rp)
		iter++
		if progress != nil {
			progress(iter, rp)
		}
		if len(rp.Path) == lastSize {
			break
		}
	}

	rp.Path = ClosePath(rp.Path)
	return rp
}
