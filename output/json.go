package output

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// ErrDuplicate is returned when two source files map onto the same record
// name within one writer.
var ErrDuplicate = errors.New("record name already written")

// JSONWriter stores each record as its own file under Dir. It remembers
// which source file each name was written for and refuses a second source.
type JSONWriter struct {
	Dir string

	mu      sync.Mutex
	written map[string]string
}

// NewJSONWriter returns a writer into dir.
func NewJSONWriter(dir string) *JSONWriter {
	return &JSONWriter{Dir: dir}
}

// Write stores rec and returns the written path. An existing file of the
// same name is replaced unless this writer wrote it for another source.
func (w *JSONWriter) Write(rec Record) (string, error) {
	if err := w.claim(rec); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create %s", w.Dir)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode record")
	}

	path := filepath.Join(w.Dir, rec.FileName())
	if err := ioutil.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}

	return path, nil
}

func (w *JSONWriter) claim(rec Record) error {
	name := rec.FileName()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.written == nil {
		w.written = map[string]string{}
	}

	if prev, ok := w.written[name]; ok && prev != rec.Metadata.Source {
		return errors.Wrapf(ErrDuplicate, "%s also written for %s", name, prev)
	}

	w.written[name] = rec.Metadata.Source
	return nil
}

// ReadFile loads a record written by JSONWriter.
func ReadFile(path string) (Record, error) {
	var rec Record

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return rec, errors.Wrapf(err, "failed to read %s", path)
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, errors.Wrapf(err, "failed to decode %s", path)
	}

	return rec, nil
}
