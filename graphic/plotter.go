package graphic

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/skilab/skifft/output"
)

// SpectrumPlotter renders records as PNG files under Dir/<axis>/.
type SpectrumPlotter struct {
	Dir string
}

// NewSpectrumPlotter returns a plotter writing into dir.
func NewSpectrumPlotter(dir string) *SpectrumPlotter {
	return &SpectrumPlotter{Dir: dir}
}

// PathFor returns where rec is drawn.
func (sp *SpectrumPlotter) PathFor(rec output.Record) string {
	name := strings.TrimSuffix(rec.FileName(), ".json") + ".png"
	return filepath.Join(sp.Dir, rec.Metadata.Axis, name)
}

// Write draws rec. A record without bins has nothing to draw and is
// skipped with an empty path.
func (sp *SpectrumPlotter) Write(rec output.Record) (string, error) {
	if rec.Spectrum.Len() == 0 {
		return "", nil
	}

	path := sp.PathFor(rec)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}

	label := rec.Metadata.Axis + "-axis"
	if err := PlotSpectrum(rec.Spectrum, label, rec.Metadata.DBScaled, path); err != nil {
		return "", err
	}

	return path, nil
}
