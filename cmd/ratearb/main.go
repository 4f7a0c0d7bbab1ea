// Command ratearb is the graph-engine's interactive harness: it reads
// REPL commands from stdin and drives the reload/prune/search pipeline
// against a venue's rate API.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonasrmichel/ratearb/internal/repl"
	"github.com/jonasrmichel/ratearb/pkg/config"
	"github.com/jonasrmichel/ratearb/pkg/fetch"
	"github.com/jonasrmichel/ratearb/pkg/logctl"
	"github.com/jonasrmichel/ratearb/pkg/metrics"
)

var (
	debugSpec   = flag.String("d", "", "debug level spec: scope1:scope2=LVL,... (LVL in x,e,w,i,t)")
	apiURL      = flag.String("api", "", "rate venue API base URL (overrides config)")
	metricsAddr = flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
	configPath  = flag.String("config", "", "path to a YAML config file")
)

func main() {
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ratearb: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *apiURL != "" {
		cfg.Fetch.APIBaseURL = *apiURL
	}
	if *debugSpec != "" {
		cfg.Debug = *debugSpec
	}

	ctl := logctl.New(os.Stderr)
	if err := ctl.SetSpec(cfg.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "ratearb: %v\n", err)
		os.Exit(1)
	}
	log := ctl.Scoped("main")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("shutting down")
		cancel()
	}()

	if *metricsAddr != "" {
		reg := metrics.Register()
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		go func() {
			log.Info().Str("addr", *metricsAddr).Msg("serving metrics")
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Err(err).Msg("metrics server exited")
			}
		}()
	}

	fetcher := fetch.NewClient(cfg.Fetch.APIBaseURL)
	r := repl.New(cfg, ctl, fetcher)

	if err := r.Run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Err(err).Msg("repl exited")
		os.Exit(1)
	}
}
