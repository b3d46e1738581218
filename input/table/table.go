// Package table reads and writes the decoded tabular interchange format: a
// comma separated file with one row per sample and the header
//
//	X (g),Y (g),Z (g),X (m/s²),Y (m/s²),Z (m/s²)
package table

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/skilab/skifft/input"
)

func init() {
	input.RegisterSource("csv", Source{})
}

// Header is the canonical header row.
var Header = []string{"X (g)", "Y (g)", "Z (g)", "X (m/s²)", "Y (m/s²)", "Z (m/s²)"}

// ErrEmpty is returned for a table without header or rows.
var ErrEmpty = errors.New("table is empty")

// Write writes t with the canonical header.
func Write(w io.Writer, t input.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	row := make([]string, len(Header))
	for _, r := range t {
		si := r.SI()
		row[0] = formatFloat(r.X)
		row[1] = formatFloat(r.Y)
		row[2] = formatFloat(r.Z)
		row[3] = formatFloat(si[0])
		row[4] = formatFloat(si[1])
		row[5] = formatFloat(si[2])

		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "failed to write row")
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteColumns writes arbitrary equal length columns under header.
func WriteColumns(w io.Writer, header []string, cols [][]float64) error {
	if len(header) != len(cols) {
		return errors.Errorf("%d header fields for %d columns", len(header), len(cols))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0])
	}

	row := make([]string, len(cols))
	for i := 0; i < rows; i++ {
		for c := range cols {
			row[c] = formatFloat(cols[c][i])
		}

		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "failed to write row")
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes t to path, replacing any existing file.
func WriteFile(path string, t input.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create table")
	}

	if err := Write(f, t); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Read parses a table. Only the g columns are required; the m/s² columns
// are derived and ignored.
func Read(r io.Reader) (input.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	cols, err := axisColumns(header)
	if err != nil {
		return nil, err
	}

	var t input.Table

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read line %d", line)
		}

		var vals [input.AxisCount]float64
		for axis, col := range cols {
			vals[axis], err = strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d column %q", line, header[col])
			}
		}

		t = append(t, input.Reading{X: vals[0], Y: vals[1], Z: vals[2]})
	}

	if len(t) == 0 {
		return nil, ErrEmpty
	}

	return t, nil
}

func axisColumns(header []string) ([input.AxisCount]int, error) {
	var cols [input.AxisCount]int
	for axis := range cols {
		cols[axis] = -1
	}

	for idx, name := range header {
		for axis := range cols {
			if strings.TrimSpace(name) == Header[axis] {
				cols[axis] = idx
			}
		}
	}

	for axis, col := range cols {
		if col < 0 {
			return cols, errors.Errorf("missing column %q, found %q", Header[axis], header)
		}
	}

	return cols, nil
}

// ReadFile reads the table at path.
func ReadFile(path string) (input.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open table")
	}
	defer f.Close()

	return Read(f)
}

// PathFor returns path with its extension swapped for .csv.
func PathFor(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Source loads .csv tables.
type Source struct{}

func (Source) Load(path string, _ input.SourceConfig) (input.Table, error) {
	return ReadFile(path)
}
