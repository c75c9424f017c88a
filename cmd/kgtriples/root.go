// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/kgtriples/config"
	"github.com/katalvlaran/kgtriples/metrics"
	"github.com/katalvlaran/kgtriples/triples"
)

// app is the state shared by all subcommands.
type app struct {
	out, errOut io.Writer

	configPath  string
	logLevel    string
	showMetrics bool

	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Collectors
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:   "kgtriples",
		Short: "Knowledge-graph triples toolkit",
		Long: `kgtriples loads label-based triple files and works on their ID form.

Subcommands:
  inspect   - counts and most frequent relations
  split     - split into training and evaluation parts (binary dirs)
  condense  - renumber a binary dir to contiguous IDs
  lcwa      - summarise LCWA instances
  slcwa     - summarise sLCWA batches of one epoch
  anchors   - select anchor entities

Examples:
  kgtriples inspect train.tsv --top 10
  kgtriples split train.tsv --ratios 0.8,0.1,0.1 --out splits/
  kgtriples slcwa train.tsv --kind subgraph --batch-size 512 --workers 4`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.showMetrics {
				return a.dumpMetrics()
			}
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file (defaults apply when omitted)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides the config)")
	pf.BoolVar(&a.showMetrics, "metrics", false, "print collected counters after the command")

	root.AddCommand(
		newInspectCmd(a),
		newSplitCmd(a),
		newCondenseCmd(a),
		newLCWACmd(a),
		newSLCWACmd(a),
		newAnchorsCmd(a),
	)

	return root
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(metrics.DefaultNamespace)

	return a.metrics.Register(a.registry)
}

// load reads a label-based triples file with the dataset config.
func (a *app) load(path string) (*triples.TriplesFactory, error) {
	opts := append(a.cfg.FactoryOptions(a.logger), triples.WithMetrics(a.metrics))

	return triples.FromPath(path, a.cfg.LoadOptions(), opts...)
}

func (a *app) dumpMetrics() error {
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, l := range m.GetLabel() {
				name += fmt.Sprintf("{%s=%q}", l.GetName(), l.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(a.errOut, l)
	}

	return nil
}
