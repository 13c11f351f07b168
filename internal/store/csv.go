package store

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/antika/internal/workflow"
)

// Column names of the CSV header.
const (
	ColumnMode   = "mode"
	ColumnKind   = "kind"
	ColumnTarget = "target"
)

// Header is the header row written by CSVCodec.Encode.
var Header = []string{ColumnMode, ColumnKind, ColumnTarget}

// columnAliases accepts the older "type" and "path" header names.
var columnAliases = map[string]string{
	ColumnMode:   ColumnMode,
	ColumnKind:   ColumnKind,
	"type":       ColumnKind,
	ColumnTarget: ColumnTarget,
	"path":       ColumnTarget,
	"url":        ColumnTarget,
}

// ErrMissingColumn indicates the CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing column in header")

// CSVCodec reads and writes the tabular reference format.
//
// The first record is the header; column names are case-insensitive and
// may appear in any order. Blank lines are ignored. There is no comment
// syntax, so a mode may start with '#'. Rows with fewer columns than the
// header yield empty fields.
type CSVCodec struct{}

// Name implements Codec.
func (CSVCodec) Name() string { return "csv" }

// Decode implements Codec.
func (CSVCodec) Decode(data []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading row")
		}
		line, _ := r.FieldPos(0)
		records = append(records, Record{
			Mode:   field(row, index[ColumnMode]),
			Kind:   field(row, index[ColumnKind]),
			Target: field(row, index[ColumnTarget]),
			Line:   line,
		})
	}
	return records, nil
}

// Encode implements Codec.
func (CSVCodec) Encode(tools []workflow.Tool) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, errors.Wrap(err, "writing header")
	}
	for _, t := range tools {
		if err := w.Write(t.Values()); err != nil {
			return nil, errors.Wrap(err, "writing row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "flushing csv")
	}
	return buf.Bytes(), nil
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(Header))
	for i, name := range header {
		canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if _, dup := index[canonical]; !dup {
			index[canonical] = i
		}
	}

	var missing []string
	for _, col := range Header {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Wrapf(ErrMissingColumn, "%s (header must be %s)",
			strings.Join(missing, ", "), strings.Join(Header, ","))
	}
	return index, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
