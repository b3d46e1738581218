package input

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// SourceConfig is handed to a source on every load.
type SourceConfig struct {
	Range Range       // full-scale range raw samples were recorded with
	Log   *log.Logger // diagnostics, nil for the standard logger
}

// Source turns a file into readings.
type Source interface {
	Load(path string, cfg SourceConfig) (Table, error)
}

type NamedSource struct {
	Name string
	Source
}

// Sources holds every registered source. The name doubles as the file
// extension the source handles.
var Sources []NamedSource

// RegisterSource registers a source globally. This function is not
// thread-safe, and most packages should call it on init().
func RegisterSource(name string, s Source) {
	Sources = append(Sources, NamedSource{
		Name:   name,
		Source: s,
	})
}

// Get all installed source names.
func GetAllSourceNames() []string {
	out := make([]string, len(Sources))
	for i, source := range Sources {
		out[i] = source.Name
	}
	return out
}

// FindSource is a helper function that finds a source. It returns nil if the
// source is not found.
func FindSource(name string) Source {
	for _, source := range Sources {
		if source.Name == name {
			return source
		}
	}
	return nil
}

func HasSource(name string) bool {
	return FindSource(name) != nil
}

// SourceFor picks the source matching the extension of path.
func SourceFor(path string) (Source, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	source := FindSource(ext)
	if source == nil {
		return nil, fmt.Errorf("no source for %q files; have %v",
			ext, GetAllSourceNames())
	}

	return source, nil
}

// LoadFile loads path with the source registered for its extension.
func LoadFile(path string, cfg SourceConfig) (Table, error) {
	source, err := SourceFor(path)
	if err != nil {
		return nil, err
	}

	t, err := source.Load(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}

	return t, nil
}
