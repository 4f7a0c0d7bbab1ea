// Package repl implements the engine's command dispatcher: the thin
// interactive shell described as an external interface, holding the
// intermediates the core's getvar introspection surfaces and serializing
// every command so the single-threaded-cooperative contract holds.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jonasrmichel/ratearb/pkg/config"
	"github.com/jonasrmichel/ratearb/pkg/fetch"
	"github.com/jonasrmichel/ratearb/pkg/graph"
	"github.com/jonasrmichel/ratearb/pkg/logctl"
	"github.com/jonasrmichel/ratearb/pkg/rate"
)

// REPL holds the engine's live intermediates and dispatches commands
// against them one at a time.
type REPL struct {
	cfg     *config.Config
	ctl     *logctl.Controller
	fetcher *fetch.Client

	instr    []string
	pruned   []string
	ratelist []rate.Rate
	g        *graph.Graph
	path     graph.RatedPath
	lrate    float64
}

// New returns a REPL against cfg, logging through ctl and fetching
// through fetcher.
func New(cfg *config.Config, ctl *logctl.Controller, fetcher *fetch.Client) *REPL {
	return &REPL{
		cfg:     cfg,
		ctl:     ctl,
		fetcher: fetcher,
	}
}

// Run reads newline-delimited commands from in and writes their output
// (and the configured prompt) to out, until in is exhausted or ctx is
// canceled. Each command runs to completion before the next line is
// read, which is what serializes reader/mutator access to the graph.
func (r *REPL) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, r.cfg.Prompt)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			result, err := r.Dispatch(ctx, line)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			} else if result != "" {
				fmt.Fprintln(out, result)
			}
		}
		fmt.Fprint(out, r.cfg.Prompt)
	}
	return scanner.Err()
}
