// SPDX-License-Identifier: MIT

package triples

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// maxLineSize bounds a single line of a triples file.
const maxLineSize = 1 << 20

// openMaybeGzip opens path, transparently decompressing a .gz suffix.
func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &gzipFile{Reader: zr, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	if err := g.f.Close(); err != nil {
		return err
	}

	return zerr
}

// createGzip creates path and returns a gzip writer over it.
func createGzip(path string) (*gzip.Writer, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	zw := gzip.NewWriter(f)
	closeFn := func() error {
		if err := zw.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	return zw, closeFn, nil
}

// scanLines calls fn for every line of r (without the line terminator).
func scanLines(r io.Reader, fn func(lineNo int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	n := 0
	for sc.Scan() {
		n++
		if err := fn(n, strings.TrimRight(sc.Text(), "\r")); err != nil {
			return err
		}
	}

	return sc.Err()
}

// LoadOptions configure LoadTriples.
type LoadOptions struct {
	// Delimiter separates columns; "" means tab.
	Delimiter string
	// ColumnRemapping gives the source column of head, relation and tail.
	// The zero value means {0, 1, 2}.
	ColumnRemapping [3]int
	// Comment marks lines to skip when they start with it; "" disables.
	Comment string
}

// LoadTriples reads label-based triples from a delimited text file; a .gz
// suffix is decompressed. Blank lines are skipped. Fields are not unquoted.
func LoadTriples(path string, lo LoadOptions) ([]LabeledTriple, error) {
	rc, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ReadTriples(rc, lo)
}

// ReadTriples is LoadTriples over an open reader.
func ReadTriples(r io.Reader, lo LoadOptions) ([]LabeledTriple, error) {
	delim := lo.Delimiter
	if delim == "" {
		delim = "\t"
	}
	remap := lo.ColumnRemapping
	if remap == ([3]int{}) {
		remap = [3]int{0, 1, 2}
	}
	width := max(remap[0], remap[1], remap[2]) + 1

	var out []LabeledTriple
	err := scanLines(r, func(n int, line string) error {
		if line == "" || (lo.Comment != "" && strings.HasPrefix(line, lo.Comment)) {
			return nil
		}
		fields := strings.Split(line, delim)
		if len(fields) < width {
			return fmt.Errorf("line %d: %d columns, need %d: %w", n, len(fields), width, ErrBadShape)
		}
		out = append(out, LabeledTriple{fields[remap[0]], fields[remap[1]], fields[remap[2]]})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// FromPath loads a labeled factory from a delimited triples file. The path
// is recorded under MetaPath unless WithMetadata overrides it.
func FromPath(path string, lo LoadOptions, opts ...Option) (*TriplesFactory, error) {
	rows, err := LoadTriples(path, lo)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithMetadata(map[string]any{MetaPath: path})}, opts...)

	return FromLabeledTriples(rows, opts...)
}
