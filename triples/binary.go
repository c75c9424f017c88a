// SPDX-License-Identifier: MIT

package triples

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Binary layout file names.
const (
	TriplesFileName      = "numeric_triples.tsv.gz"
	BaseFileName         = "base.pth"
	EntityToIDFileName   = "entity_to_id.tsv.gz"
	RelationToIDFileName = "relation_to_id.tsv.gz"
)

// binaryState is the base.pth document. num_relations is the real count; it
// doubles again on load when create_inverse_triples is set.
type binaryState struct {
	NumEntities          int      `yaml:"num_entities"`
	NumRelations         int      `yaml:"num_relations"`
	CreateInverseTriples bool     `yaml:"create_inverse_triples"`
	Metadata             Metadata `yaml:"metadata"`
}

// ToPathBinary writes f into dir (created if missing) and returns dir.
func (f *CoreTriplesFactory) ToPathBinary(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := writeNumericTriples(filepath.Join(dir, TriplesFileName), f.mapped); err != nil {
		return "", err
	}
	doc, err := yaml.Marshal(binaryState{
		NumEntities:          f.info.NumEntities,
		NumRelations:         f.info.RealNumRelations,
		CreateInverseTriples: f.info.CreateInverseTriples,
		Metadata:             f.metadata,
	})
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", BaseFileName, err)
	}
	if err := os.WriteFile(filepath.Join(dir, BaseFileName), doc, 0o644); err != nil {
		return "", err
	}
	f.logger.Info("stored triples factory", "factory", f.String(), "dir", dir)

	return dir, nil
}

func writeNumericTriples(path string, m MappedTriples) error {
	zw, closeFn, err := createGzip(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString(strings.Join(ColumnLabels[:], "\t"))
	buf.WriteByte('\n')
	for _, t := range m {
		buf.WriteString(strconv.FormatInt(t[0], 10))
		buf.WriteByte('\t')
		buf.WriteString(strconv.FormatInt(t[1], 10))
		buf.WriteByte('\t')
		buf.WriteString(strconv.FormatInt(t[2], 10))
		buf.WriteByte('\n')
	}
	if _, err := zw.Write(buf.Bytes()); err != nil {
		closeFn()
		return err
	}

	return closeFn()
}

func readNumericTriples(path string) (MappedTriples, error) {
	rc, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	out := MappedTriples{}
	err = scanLines(rc, func(n int, line string) error {
		if n == 1 || line == "" {
			return nil
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return fmt.Errorf("%s line %d: %w", path, n, ErrBadShape)
		}
		var t Triple
		for i, s := range fields {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("%s line %d: %q: %w", path, n, s, ErrBadDType)
			}
			t[i] = v
		}
		out = append(out, t)
		return nil
	})

	return out, err
}

func readBinaryState(dir string) (binaryState, MappedTriples, error) {
	var st binaryState
	doc, err := os.ReadFile(filepath.Join(dir, BaseFileName))
	if err != nil {
		return st, nil, err
	}
	if err := yaml.Unmarshal(doc, &st); err != nil {
		return st, nil, fmt.Errorf("decode %s: %w", BaseFileName, err)
	}
	mapped, err := readNumericTriples(filepath.Join(dir, TriplesFileName))
	if err != nil {
		return st, nil, err
	}

	return st, mapped, nil
}

// CoreFromPathBinary loads a factory written by ToPathBinary. opts may set
// the logger, metrics or inverter; counts and metadata come from disk.
func CoreFromPathBinary(dir string, opts ...Option) (*CoreTriplesFactory, error) {
	st, mapped, err := readBinaryState(dir)
	if err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	o.createInverse, o.metadata = st.CreateInverseTriples, st.Metadata
	o.logger.Info("loading triples factory", "dir", dir)

	return newCore(mapped, st.NumEntities, st.NumRelations, o)
}

// ToPathBinary additionally writes the two label files. Labels containing a
// tab or a line break are rejected with ErrInvalidLabel before anything is
// written.
func (f *TriplesFactory) ToPathBinary(dir string) (string, error) {
	if err := checkLabels(EntityToIDFileName, f.entities.IDToLabel()); err != nil {
		return "", err
	}
	if err := checkLabels(RelationToIDFileName, f.relations.IDToLabel()); err != nil {
		return "", err
	}
	if _, err := f.CoreTriplesFactory.ToPathBinary(dir); err != nil {
		return "", err
	}
	if err := writeLabels(filepath.Join(dir, EntityToIDFileName), f.entities.IDToLabel()); err != nil {
		return "", err
	}
	if err := writeLabels(filepath.Join(dir, RelationToIDFileName), f.relations.IDToLabel()); err != nil {
		return "", err
	}

	return dir, nil
}

func checkLabels(file string, idToLabel map[int64]string) error {
	for id, label := range idToLabel {
		if strings.ContainsAny(label, "\t\n\r") {
			return fmt.Errorf("%s: id %d label %q: %w", file, id, label, ErrInvalidLabel)
		}
	}

	return nil
}

func writeLabels(path string, idToLabel map[int64]string) error {
	zw, closeFn, err := createGzip(path)
	if err != nil {
		return err
	}
	ids := make([]int64, 0, len(idToLabel))
	for id := range idToLabel {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	var buf bytes.Buffer
	buf.WriteString("id\tlabel\n")
	for _, id := range ids {
		buf.WriteString(strconv.FormatInt(id, 10))
		buf.WriteByte('\t')
		buf.WriteString(idToLabel[id])
		buf.WriteByte('\n')
	}
	if _, err := zw.Write(buf.Bytes()); err != nil {
		closeFn()
		return err
	}

	return closeFn()
}

func readLabels(path string) (map[string]int64, error) {
	rc, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	out := make(map[string]int64)
	err = scanLines(rc, func(n int, line string) error {
		if n == 1 || line == "" {
			return nil
		}
		idStr, label, ok := strings.Cut(line, "\t")
		if !ok {
			return fmt.Errorf("%s line %d: %w", path, n, ErrBadShape)
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return fmt.Errorf("%s line %d: %q: %w", path, n, idStr, ErrBadDType)
		}
		out[label] = id
		return nil
	})

	return out, err
}

// FromPathBinary loads a labeled factory written by
// (*TriplesFactory).ToPathBinary.
func FromPathBinary(dir string, opts ...Option) (*TriplesFactory, error) {
	st, mapped, err := readBinaryState(dir)
	if err != nil {
		return nil, err
	}
	entityToID, err := readLabels(filepath.Join(dir, EntityToIDFileName))
	if err != nil {
		return nil, err
	}
	relationToID, err := readLabels(filepath.Join(dir, RelationToIDFileName))
	if err != nil {
		return nil, err
	}
	tf, err := NewTriplesFactory(mapped, entityToID, relationToID,
		append(opts, WithInverseTriples(st.CreateInverseTriples), WithMetadata(st.Metadata.Map()))...)
	if err != nil {
		return nil, err
	}
	if tf.NumEntities() != st.NumEntities || tf.RealNumRelations() != st.NumRelations {
		return nil, fmt.Errorf("labels give %d/%d, %s gives %d/%d: %w",
			tf.NumEntities(), tf.RealNumRelations(), BaseFileName, st.NumEntities, st.NumRelations, ErrConfigMismatch)
	}

	return tf, nil
}
