package repl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonasrmichel/ratearb/pkg/graph"
	"github.com/jonasrmichel/ratearb/pkg/metrics"
	"github.com/jonasrmichel/ratearb/pkg/pruner"
)

// Dispatch runs a single command line and returns its printable result.
func (r *REPL) Dispatch(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "setd":
		return r.cmdSetd(args)
	case "instr":
		return r.cmdInstr(ctx)
	case "prune":
		return r.cmdPrune()
	case "rates":
		return r.cmdRates(ctx)
	case "gload":
		return r.cmdGload()
	case "gsearch":
		return r.cmdGsearch(args)
	case "eval":
		return r.cmdEval(args)
	case "getvar":
		return r.cmdGetvar(args)
	default:
		return "", fmt.Errorf("repl: %q: %w", cmd, ErrUnknownCommand)
	}
}

func (r *REPL) cmdSetd(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("repl: setd requires exactly one spec argument")
	}
	if err := r.ctl.SetSpec(args[0]); err != nil {
		return "", err
	}
	return "debug levels updated", nil
}

func (r *REPL) cmdInstr(ctx context.Context) (string, error) {
	instr, err := r.fetcher.FetchInstruments(ctx)
	if err != nil {
		return "", err
	}
	r.instr = instr
	return fmt.Sprintf("fetched %d instruments", len(r.instr)), nil
}

func (r *REPL) cmdPrune() (string, error) {
	metrics.PruneInputTotal.Add(float64(len(r.instr)))
	pruned, err := pruner.Prune(r.instr)
	if err != nil {
		return "", err
	}
	r.pruned = pruned
	metrics.PruneOutputTotal.Add(float64(len(r.pruned)))
	return fmt.Sprintf("pruned %d -> %d instruments", len(r.instr), len(r.pruned)), nil
}

func (r *REPL) cmdRates(ctx context.Context) (string, error) {
	ratelist, err := r.fetcher.FetchRates(ctx, r.pruned)
	if err != nil {
		return "", err
	}
	r.ratelist = ratelist
	return fmt.Sprintf("fetched %d rates", len(r.ratelist)), nil
}

func (r *REPL) cmdGload() (string, error) {
	if r.g == nil {
		r.g = graph.NewGraph()
	}
	report, err := graph.Reload(r.g, r.ratelist)
	if err != nil {
		return "", err
	}
	metrics.ReloadsTotal.Inc()
	metrics.Vertices.Set(float64(r.g.VertexCount()))
	metrics.Edges.Set(float64(r.g.EdgeCount()))
	return fmt.Sprintf("reloaded graph: +%dv -%dv +%de -%de",
		len(report.AddedVertices), len(report.RemovedVertices),
		len(report.AddedEdges), len(report.RemovedEdges)), nil
}

func (r *REPL) cmdGsearch(args []string) (string, error) {
	if r.g == nil {
		return "", ErrNoGraph
	}
	maxIterations := -1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("repl: gsearch: %q: %w", args[0], err)
		}
		maxIterations = n
	}

	log := r.ctl.Scoped("repl.gsearch")
	progress := func(iteration int, p graph.RatedPath) {
		if iteration > 0 {
			metrics.SearchIterationsTotal.Inc()
		}
		log.Trace().Int("iteration", iteration).Int("len", len(p.Path)).Float64("lrate", p.LRate).Msg("search progress")
	}

	r.path = graph.BestPath(r.g, maxIterations, progress)
	r.lrate = r.path.LRate
	metrics.CycleLRate.Set(r.lrate)
	if r.lrate < 0 {
		metrics.OpportunitiesFoundTotal.Inc()
	}
	return fmt.Sprintf("cycle of %d vertices, lrate=%.6f", len(r.path.Path), r.lrate), nil
}

func (r *REPL) cmdEval(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("repl: eval requires at least one principal")
	}
	principals := make([]float64, len(args))
	for i, a := range args {
		x, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return "", fmt.Errorf("repl: eval: %q: %w", a, err)
		}
		principals[i] = x
	}

	results, err := graph.EvaluateAll(principals, r.lrate)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, res := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "principal=%.6f revenue=%.6f profit=%.6f", res.Principal, res.Revenue, res.Profit)
	}
	return sb.String(), nil
}

func (r *REPL) cmdGetvar(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("repl: getvar requires exactly one variable name")
	}
	switch args[0] {
	case "instr":
		return fmt.Sprintf("%v", r.instr), nil
	case "pruned":
		return fmt.Sprintf("%v", r.pruned), nil
	case "ratelist":
		return fmt.Sprintf("%v", r.ratelist), nil
	case "graph":
		if r.g == nil {
			return "", ErrNoGraph
		}
		return r.g.String(), nil
	case "path":
		return fmt.Sprintf("%v", r.path.Path), nil
	case "lrate":
		return fmt.Sprintf("%v", r.lrate), nil
	case "I_isset":
		return fmt.Sprintf("%v", r.instr != nil), nil
	default:
		return "", fmt.Errorf("repl: %q: %w", args[0], ErrUnknownVariable)
	}
}
