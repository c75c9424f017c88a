package instances_test

import (
	"context"
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kgtriples/instances"
	"github.com/katalvlaran/kgtriples/metrics"
	"github.com/katalvlaran/kgtriples/rng"
	"github.com/katalvlaran/kgtriples/sampling"
	"github.com/katalvlaran/kgtriples/splitting"
	"github.com/katalvlaran/kgtriples/triples"
)

// chain returns the path 0-1-…-n with n edges over 2 relations.
func chain(n int) triples.MappedTriples {
	m := make(triples.MappedTriples, n)
	for i := range m {
		m[i] = triples.Triple{int64(i), int64(i % 2), int64(i + 1)}
	}

	return m
}

func collect(t *testing.T, s instances.SLCWAInstances, w splitting.WorkerInfo, seed uint64) []instances.SLCWABatch {
	t.Helper()
	var out []instances.SLCWABatch
	for b, err := range s.Epoch(w, rng.New(seed)) {
		require.NoError(t, err)
		out = append(out, b)
	}

	return out
}

func TestBatched_DropLast(t *testing.T) {
	s, err := instances.NewBatchedSLCWA(chain(10), instances.WithBatchSize(3))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	batches := collect(t, s, splitting.WorkerInfo{}, 1)
	require.Len(t, batches, 3)
	for _, b := range batches {
		require.Len(t, b.Indices, 3)
		assert.Len(t, slices.Compact(slices.Sorted(slices.Values(b.Indices))), 3)
		require.Len(t, b.Negatives, 3)
		for i, row := range b.Negatives {
			require.Len(t, row, sampling.DefaultNumNegsPerPos)
			assert.NotEqual(t, b.Positives[i], row[0])
		}
	}
}

func TestBatched_KeepLastCoversAll(t *testing.T) {
	s, err := instances.NewBatchedSLCWA(chain(10), instances.WithBatchSize(3), instances.WithDropLast(false))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())

	var seen []int
	for _, w := range []splitting.WorkerInfo{{ID: 0, Count: 2}, {ID: 1, Count: 2}} {
		for _, b := range collect(t, s, w, 9) {
			seen = append(seen, b.Indices...)
		}
	}
	slices.Sort(seen)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, seen)
}

func TestBatched_Restartable(t *testing.T) {
	s, err := instances.NewBatchedSLCWA(chain(8), instances.WithBatchSize(2))
	require.NoError(t, err)
	a := collect(t, s, splitting.WorkerInfo{}, 5)
	b := collect(t, s, splitting.WorkerInfo{}, 5)
	assert.Equal(t, a, b)

	// early stop
	n := 0
	for range s.Epoch(splitting.WorkerInfo{}, rng.New(5)) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestBatched_Weights(t *testing.T) {
	w := instances.NewRelationWeighter([]float32{1, 3})
	s, err := instances.NewBatchedSLCWA(chain(4),
		instances.WithBatchSize(4),
		instances.WithNumNegsPerPos(2),
		instances.WithFilteredNegatives(true),
		instances.WithPositiveWeighter(w),
		instances.WithNegativeWeighter(w),
	)
	require.NoError(t, err)
	batches := collect(t, s, splitting.WorkerInfo{}, 3)
	require.Len(t, batches, 1)
	b := batches[0]
	require.Len(t, b.PosWeights, 4)
	for i, p := range b.Positives {
		assert.Equal(t, []float32{1, 3}[p[1]], b.PosWeights[i])
	}
	require.Len(t, b.NegWeights, 4)
	assert.Len(t, b.NegWeights[0], 2)
	require.Len(t, b.Masks, 4)
	assert.Len(t, b.Masks[0], 2)
}

func TestSubGraph_Connected(t *testing.T) {
	s, err := instances.NewSubGraphSLCWA(chain(9), instances.WithBatchSize(4))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	r := rng.New(11)
	for range 20 {
		ids := s.Sample(r)
		require.Len(t, ids, 4)
		nodes := map[int64]bool{}
		for k, e := range ids {
			h, tl := int64(e), int64(e+1)
			if k > 0 {
				assert.True(t, nodes[h] || nodes[tl], "edge %d not attached", e)
			}
			nodes[h], nodes[tl] = true, true
		}
		assert.Len(t, slices.Compact(slices.Sorted(slices.Values(ids))), 4)
	}
}

func TestSubGraph_DegreeOneExhaustion(t *testing.T) {
	mc := metrics.New("test")
	s, err := instances.NewSubGraphSLCWA(triples.MappedTriples{{0, 0, 1}},
		instances.WithBatchSize(2),
		instances.WithDropLast(false),
		instances.WithNumEntities(3),
		instances.WithMetrics(mc),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, []int{0}, s.Sample(rng.New(1)))
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.SubgraphExhausted))

	batches := collect(t, s, splitting.WorkerInfo{}, 1)
	require.Len(t, batches, 1)
	assert.Equal(t, triples.MappedTriples{{0, 0, 1}}, batches[0].Positives)
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.BatchesProduced.WithLabelValues(string(instances.KindSubGraph))))
}

func TestSubGraph_RejectsUndeclaredEntity(t *testing.T) {
	_, err := instances.NewSubGraphSLCWA(chain(3), instances.WithNumEntities(2))
	assert.ErrorIs(t, err, triples.ErrIDOutOfRange)
}

func TestSLCWAFromFactory(t *testing.T) {
	f, err := triples.NewCoreTriplesFactory(chain(6), 7, 2, triples.WithInverseTriples(true))
	require.NoError(t, err)

	s, err := instances.SLCWAFromFactory(instances.KindSubGraph, f, instances.WithBatchSize(3))
	require.NoError(t, err)
	require.IsType(t, &instances.SubGraphSLCWAInstances{}, s)
	assert.Equal(t, 4, s.Len()) // 12 triples with inverses

	s, err = instances.SLCWAFromFactory("", f, instances.WithSamplerName(sampling.NameBernoulli))
	require.NoError(t, err)
	b := s.(*instances.BatchedSLCWAInstances)
	assert.IsType(t, &sampling.BernoulliSampler{}, b.Sampler())

	_, err = instances.SLCWAFromFactory("walk", f)
	assert.ErrorIs(t, err, instances.ErrUnknownKind)

	_, err = instances.SLCWAFromFactory(instances.KindBatched, f, instances.WithSamplerName("nope"))
	assert.ErrorIs(t, err, sampling.ErrUnknownSampler)
}

func TestLoader_Deterministic(t *testing.T) {
	s, err := instances.NewBatchedSLCWA(chain(30), instances.WithBatchSize(4), instances.WithDropLast(false))
	require.NoError(t, err)
	l := &instances.Loader{Source: s, Workers: 3, Seed: 42}

	byWorker := func(epoch int) map[int][][]int {
		all, err := l.Collect(context.Background(), epoch)
		require.NoError(t, err)
		out := map[int][][]int{}
		for _, wb := range all {
			out[wb.Worker] = append(out[wb.Worker], wb.Batch.Indices)
		}
		for _, seqs := range out {
			require.Len(t, seqs, 3) // 10 triples per worker ⇒ 4, 4, 2
		}

		return out
	}
	first := byWorker(0)
	assert.Equal(t, first, byWorker(0))
	assert.NotEqual(t, first, byWorker(1))

	var seen []int
	for _, seqs := range first {
		for _, ids := range seqs {
			seen = append(seen, ids...)
		}
	}
	slices.Sort(seen)
	assert.Len(t, seen, 30)
	assert.Equal(t, 0, seen[0])
	assert.Equal(t, 29, seen[29])
}

func TestLoader_Cancel(t *testing.T) {
	s, err := instances.NewBatchedSLCWA(chain(20))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := &instances.Loader{Source: s, Workers: 1, Buffer: 1}
	ch, wait := l.Start(ctx, 0)
	assert.ErrorIs(t, wait(), context.Canceled)
	for range ch {
	}
}

func BenchmarkSubGraphSample(b *testing.B) {
	r := rng.New(1)
	m := make(triples.MappedTriples, 20000)
	for i := range m {
		m[i] = triples.Triple{r.Int64N(2000), r.Int64N(10), r.Int64N(2000)}
	}
	s, err := instances.NewSubGraphSLCWA(m, instances.WithBatchSize(256), instances.WithNumEntities(2000))
	if err != nil {
		b.Fatalf("setup failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Sample(r)
	}
}
