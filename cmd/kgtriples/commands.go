// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kgtriples/instances"
	"github.com/katalvlaran/kgtriples/splitting"
	"github.com/katalvlaran/kgtriples/triples"
)

func newInspectCmd(a *app) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "inspect <triples>",
		Short: "Show counts and the most frequent relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, f.String())
			fmt.Fprintf(a.out, "triples\t%d\nentities\t%d\nrelations\t%d\n",
				f.NumTriples(), f.NumEntities(), f.RealNumRelations())
			counts := f.RelationCounts()
			for _, r := range f.MostFrequentRelations(top) {
				label, _ := f.RelationLabeling().LabelOf(r)
				fmt.Fprintf(a.out, "%s\t%d\n", label, counts[r])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 5, "number of relations to list")

	return cmd
}

// partNames names the parts of a split.
func partNames(n int) []string {
	switch n {
	case 2:
		return []string{"training", "testing"}
	case 3:
		return []string{"training", "validation", "testing"}
	}
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("part-%d", i)
	}

	return names
}

func parseRatios(s string) ([]float64, error) {
	var out []float64
	for _, p := range strings.Split(s, ",") {
		var r float64
		if _, err := fmt.Sscan(strings.TrimSpace(p), &r); err != nil {
			return nil, fmt.Errorf("ratio %q: %w", p, splitting.ErrInvalidRatios)
		}
		out = append(out, r)
	}

	return out, nil
}

func newSplitCmd(a *app) *cobra.Command {
	var (
		ratios string
		seed   uint64
		method string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "split <triples>",
		Short: "Split triples and write one binary dir per part",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("ratios") {
				r, err := parseRatios(ratios)
				if err != nil {
					return err
				}
				a.cfg.Split.Ratios = r
			}
			if cmd.Flags().Changed("seed") {
				a.cfg.Split.Seed = seed
			}
			if cmd.Flags().Changed("method") {
				a.cfg.Split.Method = method
			}
			opts, err := a.cfg.SplitOptions(a.logger)
			if err != nil {
				return err
			}
			opts = append(opts, splitting.WithMetrics(a.metrics))

			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			parts, err := f.Split(a.cfg.Split.Ratios, opts...)
			if err != nil {
				return err
			}
			for i, name := range partNames(len(parts)) {
				dir, err := parts[i].ToPathBinary(filepath.Join(out, name))
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s\t%d\t%s\n", name, parts[i].NumTriples(), dir)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&ratios, "ratios", "", "comma-separated split ratios (e.g. 0.8,0.1,0.1)")
	fl.Uint64Var(&seed, "seed", 0, "random seed")
	fl.StringVar(&method, "method", "", "coverage or cleanup")
	fl.StringVar(&out, "out", ".", "output directory")

	return cmd
}

func newCondenseCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "condense <binary dir>",
		Short: "Renumber entities and relations to contiguous IDs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := triples.FromPathBinary(args[0], triples.WithLogger(a.logger))
			if err != nil {
				return err
			}
			c, err := f.Condense(true, true)
			if err != nil {
				return err
			}
			if _, err := c.ToPathBinary(out); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "entities\t%d -> %d\nrelations\t%d -> %d\n",
				f.NumEntities(), c.NumEntities(), f.RealNumRelations(), c.RealNumRelations())
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "condensed", "output directory")

	return cmd
}

func newLCWACmd(a *app) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "lcwa <triples>",
		Short: "Summarise LCWA instances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("target") {
				a.cfg.Instances.Target = target
			}
			opts, err := a.cfg.InstanceOptions(a.logger)
			if err != nil {
				return err
			}
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			inst, err := instances.LCWAFromFactory(f, opts...)
			if err != nil {
				return err
			}
			m := inst.Compressed()
			fmt.Fprintf(a.out, "target\t%s\npairs\t%d\ntarget_size\t%d\nnnz\t%d\n",
				inst.Target(), inst.Len(), m.Cols(), m.NNZ())
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "head, relation or tail")

	return cmd
}

func newSLCWACmd(a *app) *cobra.Command {
	var (
		kind      string
		batchSize int
		workers   int
	)
	cmd := &cobra.Command{
		Use:   "slcwa <triples>",
		Short: "Produce one epoch of sLCWA batches and summarise it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fl := cmd.Flags()
			if fl.Changed("kind") {
				a.cfg.Instances.Kind = kind
			}
			if fl.Changed("batch-size") {
				a.cfg.Instances.BatchSize = batchSize
			}
			if fl.Changed("workers") {
				a.cfg.Instances.Workers = workers
			}
			opts, err := a.cfg.InstanceOptions(a.logger)
			if err != nil {
				return err
			}
			opts = append(opts, instances.WithMetrics(a.metrics))
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			src, err := instances.SLCWAFromFactory(instances.Kind(a.cfg.Instances.Kind), f, opts...)
			if err != nil {
				return err
			}
			l := &instances.Loader{Source: src, Workers: a.cfg.Instances.Workers, Seed: a.cfg.Instances.Seed}
			batches, err := l.Collect(cmd.Context(), 0)
			if err != nil {
				return err
			}
			positives, negatives := 0, 0
			for _, wb := range batches {
				positives += len(wb.Batch.Positives)
				for _, row := range wb.Batch.Negatives {
					negatives += len(row)
				}
			}
			fmt.Fprintf(a.out, "kind\t%s\nbatches\t%d (expected %d)\npositives\t%d\nnegatives\t%d\n",
				a.cfg.Instances.Kind, len(batches), src.Len(), positives, negatives)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&kind, "kind", "", "batched or subgraph")
	fl.IntVar(&batchSize, "batch-size", 0, "batch size")
	fl.IntVar(&workers, "workers", 0, "parallel workers")

	return cmd
}

func newAnchorsCmd(a *app) *cobra.Command {
	var (
		selection string
		num       int
	)
	cmd := &cobra.Command{
		Use:   "anchors <triples>",
		Short: "Select anchor entities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("selection") {
				a.cfg.Anchors.Selection = selection
			}
			if cmd.Flags().Changed("num") {
				a.cfg.Anchors.NumAnchors = num
			}
			sel, err := a.cfg.Selection()
			if err != nil {
				return err
			}
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			for _, id := range sel.Select(f.EdgeIndex(), nil) {
				label, _ := f.EntityLabeling().LabelOf(id)
				fmt.Fprintf(a.out, "%d\t%s\n", id, label)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&selection, "selection", "", "degree, pagerank, random or mixture")
	cmd.Flags().IntVar(&num, "num", 0, "number of anchors")

	return cmd
}
