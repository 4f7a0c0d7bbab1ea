package graph

import (
	"fmt"
	"math"
)

// EvalResult is the revenue/profit of running principal through a cycle
// whose total log-rate is lrate.
type EvalResult struct {
	Principal float64
	LRate     float64
	Revenue   float64
	Profit    float64
}

// Evaluate computes the revenue and profit of trading principal around a
// cycle with total log-rate lrate: revenue = exp(log(principal) - lrate),
// profit = revenue - principal. It fails with ErrInvalidPrincipal if
// principal is non-positive.
func Evaluate(principal, lrate float64) (EvalResult, error) {
	if principal <= 0 {
		return EvalResult{}, fmt.Errorf("graph: principal %v: %w", principal, ErrInvalidPrincipal)
	}
	revenue := math.Exp(math.Log(principal) - lrate)
	return EvalResult{
		Principal: principal,
		LRate:     lrate,
		Revenue:   revenue,
		Profit:    revenue - principal,
	}, nil
}

// EvaluateAll evaluates a cycle's log-rate against every principal in
// principals, in order, stopping at the first ErrInvalidPrincipal.
func EvaluateAll(principals []float64, lrate float64) ([]EvalResult, error) {
	out := make([]EvalResult, 0, len(principals))
	for _, x := range principals {
		r, err := Evaluate(x, lrate)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
