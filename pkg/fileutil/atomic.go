package fileutil

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/antika/internal/errors"
)

// WriteAtomic replaces path with data through a temp file in the same
// directory, so readers see either the old or the new content. The parent
// directory must exist.
func WriteAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".antika-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	steps := []struct {
		what string
		do   func() error
	}{
		{"writing", func() error { _, err := tmp.Write(data); return err }},
		{"chmod", func() error { return tmp.Chmod(perm) }},
		{"syncing", tmp.Sync},
		{"closing", tmp.Close},
		{"renaming", func() error { return os.Rename(tmp.Name(), path) }},
	}
	for _, s := range steps {
		if err := s.do(); err != nil {
			return errors.Wrapf(err, "%s temp file", s.what)
		}
	}
	return nil
}

// WriteYAMLAtomic marshals v as YAML and writes it with WriteAtomic.
func WriteYAMLAtomic(path string, v any, perm os.FileMode) (err error) {
	// yaml.Marshal panics on unmarshalable types
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	return WriteAtomic(path, data, perm)
}
