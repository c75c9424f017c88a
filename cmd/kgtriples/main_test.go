package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ringFile writes 40 triples over 20 entities and 4 relations.
func ringFile(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "e%d\tr%d\te%d\n", i, i%3, (i+1)%20)
		fmt.Fprintf(&b, "e%d\tr3\te%d\n", i, (i+2)%20)
	}
	p := filepath.Join(t.TempDir(), "ring.tsv")
	require.NoError(t, os.WriteFile(p, []byte(b.String()), 0o644))
	return p
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestInspect(t *testing.T) {
	out, _, err := run(t, "inspect", ringFile(t), "--top", "1", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "triples\t40")
	assert.Contains(t, out, "entities\t20")
	assert.Contains(t, out, "relations\t4")
	assert.Contains(t, out, "r3\t20")
}

func TestSplitThenCondense(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, "split", ringFile(t), "--ratios", "0.8,0.2", "--method", "cleanup", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "training\t")
	assert.Contains(t, out, "testing\t")
	require.DirExists(t, filepath.Join(dir, "training"))

	out, _, err = run(t, "condense", filepath.Join(dir, "testing"), "--out", filepath.Join(dir, "condensed"))
	require.NoError(t, err)
	assert.Contains(t, out, "entities\t20 -> ")
	assert.FileExists(t, filepath.Join(dir, "condensed", "base.pth"))
}

func TestLCWA(t *testing.T) {
	out, _, err := run(t, "lcwa", ringFile(t), "--target", "head")
	require.NoError(t, err)
	assert.Contains(t, out, "target\thead")
	assert.Contains(t, out, "nnz\t40")
}

func TestSLCWA_Metrics(t *testing.T) {
	out, errOut, err := run(t, "slcwa", ringFile(t), "--batch-size", "10", "--workers", "2", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "batches\t4 (expected 4)")
	assert.Contains(t, out, "positives\t40")
	assert.Contains(t, errOut, `kgtriples_instances_batches_total{kind="batched"} 4`)

	out, _, err = run(t, "slcwa", ringFile(t), "--kind", "subgraph", "--batch-size", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "kind\tsubgraph")
}

func TestAnchors(t *testing.T) {
	out, _, err := run(t, "anchors", ringFile(t), "--num", "3")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
}

func TestConfigErrors(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("sampler:\n  name: typed\n"), 0o644))
	_, _, err := run(t, "inspect", ringFile(t), "--config", cfg)
	assert.ErrorContains(t, err, "typed")

	_, _, err = run(t, "slcwa", ringFile(t), "--kind", "walk")
	assert.Error(t, err)

	_, _, err = run(t, "inspect")
	assert.Error(t, err)
}
