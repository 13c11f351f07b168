package store

import (
	"github.com/thoreinstein/antika/internal/workflow"
)

// Record is one undecoded tool entry as it appears in the file.
// Fields are raw strings; validation happens in FileStore.LoadTools.
type Record struct {
	Mode   string
	Kind   string
	Target string

	// Line is the 1-based source line for CSV rows, or the 1-based entry
	// index for document formats. Zero when unknown.
	Line int
}

// Codec converts between file bytes and records.
type Codec interface {
	// Name identifies the format, e.g. "csv".
	Name() string

	// Decode parses data into records in file order.
	Decode(data []byte) ([]Record, error)

	// Encode renders tools, including any header or schema the format needs.
	Encode(tools []workflow.Tool) ([]byte, error)
}
