package store

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/antika/internal/workflow"
)

// document is the nested shape shared by the YAML, JSON and TOML formats.
type document struct {
	Workflows []documentEntry `json:"workflows" yaml:"workflows" toml:"workflows"`
}

type documentEntry struct {
	Mode     string   `json:"mode" yaml:"mode" toml:"mode"`
	Apps     []string `json:"apps,omitempty" yaml:"apps,omitempty" toml:"apps,omitempty"`
	Websites []string `json:"websites,omitempty" yaml:"websites,omitempty" toml:"websites,omitempty"`
}

// records flattens the document: each entry's apps, then its websites.
func (d document) records() []Record {
	var out []Record
	for i, e := range d.Workflows {
		for _, a := range e.Apps {
			out = append(out, Record{Mode: e.Mode, Kind: workflow.KindApplication.String(), Target: a, Line: i + 1})
		}
		for _, w := range e.Websites {
			out = append(out, Record{Mode: e.Mode, Kind: workflow.KindWebsite.String(), Target: w, Line: i + 1})
		}
	}
	return out
}

func newDocument(tools []workflow.Tool) document {
	groups := workflow.Group(tools)
	doc := document{Workflows: make([]documentEntry, 0, len(groups))}
	for _, g := range groups {
		doc.Workflows = append(doc.Workflows, documentEntry{
			Mode:     g.Name,
			Apps:     g.Applications(),
			Websites: g.Websites(),
		})
	}
	return doc
}

// YAMLCodec reads and writes the YAML document format.
type YAMLCodec struct{}

// Name implements Codec.
func (YAMLCodec) Name() string { return "yaml" }

// Decode implements Codec.
func (YAMLCodec) Decode(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshaling yaml")
	}
	return doc.records(), nil
}

// Encode implements Codec.
func (YAMLCodec) Encode(tools []workflow.Tool) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(tools)); err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "closing yaml encoder")
	}
	return buf.Bytes(), nil
}

// JSONCodec reads and writes the JSON document format.
type JSONCodec struct{}

// Name implements Codec.
func (JSONCodec) Name() string { return "json" }

// Decode implements Codec.
func (JSONCodec) Decode(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshaling json")
	}
	return doc.records(), nil
}

// Encode implements Codec.
func (JSONCodec) Encode(tools []workflow.Tool) ([]byte, error) {
	data, err := json.MarshalIndent(newDocument(tools), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling json")
	}
	return append(data, '\n'), nil
}

// TOMLCodec reads and writes the TOML document format.
type TOMLCodec struct{}

// Name implements Codec.
func (TOMLCodec) Name() string { return "toml" }

// Decode implements Codec.
func (TOMLCodec) Decode(data []byte) ([]Record, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshaling toml")
	}
	return doc.records(), nil
}

// Encode implements Codec.
func (TOMLCodec) Encode(tools []workflow.Tool) ([]byte, error) {
	data, err := toml.Marshal(newDocument(tools))
	if err != nil {
		return nil, errors.Wrap(err, "marshaling toml")
	}
	return data, nil
}
