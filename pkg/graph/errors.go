package graph

import "errors"

var (
	// ErrInvalidVertex is returned when an operation references a vertex
	// index outside [0, VertexCount()).
	ErrInvalidVertex = errors.New("invalid vertex")

	// ErrAsymmetricEdge is returned by Reload when the graph held a
	// one-sided edge for a pair the reload is about to touch: the R2
	// invariant (every directed edge has a reverse) was already violated
	// before the reload started.
	ErrAsymmetricEdge = errors.New("asymmetric edge")

	// ErrInvalidPath is returned by EvaluatePath when a path
	// has fewer than two vertices or references a non-existent edge.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidPrincipal is returned when a non-positive principal is
	// passed to Evaluate.
	ErrInvalidPrincipal = errors.New("invalid principal")

	// ErrIndexOverflow is returned when a container would need to grow
	// past the representable range of the signed index type.
	ErrIndexOverflow = errors.New("index overflow")

	// ErrDuplicateLabel is returned by AddVertex when the label is
	// already present; labels must be distinct (invariant R1).
	ErrDuplicateLabel = errors.New("duplicate label")
)
