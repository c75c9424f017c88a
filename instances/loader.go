// SPDX-License-Identifier: MIT

package instances

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/kgtriples/rng"
	"github.com/katalvlaran/kgtriples/splitting"
)

// WorkerBatch is a batch tagged with its producing worker and its position
// in that worker's sequence.
type WorkerBatch struct {
	Worker int
	Seq    int
	Batch  SLCWABatch
}

// Loader runs an sLCWA source on Workers goroutines. Worker w of epoch e
// draws from rng.Derive(Seed, e<<32|w), so the per-worker sequences are
// reproducible while their interleaving on the channel is not.
type Loader struct {
	Source  SLCWAInstances
	Workers int
	Seed    uint64
	// Buffer is the channel capacity; ≤ 0 means DefaultLoaderBuffer.
	Buffer int
}

// Start launches one epoch. The channel is closed once every worker has
// finished; wait then reports the first worker error (or the context's).
// The caller must drain the channel or cancel ctx.
func (l *Loader) Start(ctx context.Context, epoch int) (<-chan WorkerBatch, func() error) {
	workers := max(l.Workers, 1)
	buffer := l.Buffer
	if buffer <= 0 {
		buffer = DefaultLoaderBuffer
	}
	out := make(chan WorkerBatch, buffer)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			info := splitting.WorkerInfo{ID: w, Count: workers}
			r := rng.Derive(l.Seed, uint64(epoch)<<32|uint64(w))
			seq := 0
			for b, err := range l.Source.Epoch(info, r) {
				if err != nil {
					return fmt.Errorf("loader worker %d: %w", w, err)
				}
				select {
				case out <- WorkerBatch{Worker: w, Seq: seq, Batch: b}:
				case <-gctx.Done():
					return gctx.Err()
				}
				seq++
			}

			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(out)
	}()

	return out, sync.OnceValue(func() error { return <-done })
}

// Collect runs one epoch and gathers every batch.
func (l *Loader) Collect(ctx context.Context, epoch int) ([]WorkerBatch, error) {
	ch, wait := l.Start(ctx, epoch)
	var all []WorkerBatch
	for b := range ch {
		all = append(all, b)
	}

	return all, wait()
}
