// Package output writes spectrum records as JSON documents.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/skilab/skifft/dsp"
)

// Metadata describes where a spectrum came from.
type Metadata struct {
	Source     string                 `json:"source"`
	Strategy   string                 `json:"strategy"`
	RecordID   string                 `json:"record_id"`
	AccelID    string                 `json:"accel_id"`
	Axis       string                 `json:"axis"`
	Segment    int                    `json:"segment"`
	Start      int                    `json:"start"`
	End        int                    `json:"end"`
	Domain     string                 `json:"domain"`
	SampleRate float64                `json:"sample_rate"`
	DBScaled   bool                   `json:"db_scaled"`
	DBRef      float64                `json:"db_reference,omitempty"`
	Params     map[string]interface{} `json:"params"`
}

// Record is the spectrum of one segment of one axis.
type Record struct {
	Metadata Metadata
	Spectrum dsp.Spectrum
}

type recordDoc struct {
	Metadata Metadata     `json:"metadata"`
	Data     [][2]float64 `json:"data"`
}

// MarshalJSON encodes the spectrum as [frequency, magnitude] pairs.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.Spectrum.Freqs) != len(r.Spectrum.Mags) {
		return nil, errors.Errorf("spectrum has %d frequencies for %d magnitudes",
			len(r.Spectrum.Freqs), len(r.Spectrum.Mags))
	}

	doc := recordDoc{
		Metadata: r.Metadata,
		Data:     make([][2]float64, len(r.Spectrum.Mags)),
	}

	if doc.Metadata.DBRef == 0 {
		doc.Metadata.DBRef = r.Spectrum.Ref
	}

	for i := range doc.Data {
		doc.Data[i] = [2]float64{r.Spectrum.Freqs[i], r.Spectrum.Mags[i]}
	}

	return json.Marshal(doc)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var doc recordDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	r.Metadata = doc.Metadata
	r.Spectrum = dsp.Spectrum{
		Freqs: make([]float64, len(doc.Data)),
		Mags:  make([]float64, len(doc.Data)),
		Ref:   doc.Metadata.DBRef,
	}

	for i, pair := range doc.Data {
		r.Spectrum.Freqs[i] = pair[0]
		r.Spectrum.Mags[i] = pair[1]
	}

	return nil
}

// FileName returns the artifact name of the record,
// <strategy>_<record>_<accel>_<axis>_<segment>.json.
func (r Record) FileName() string {
	m := r.Metadata
	return fmt.Sprintf("%s_%s_%s_%s_%03d.json",
		clean(m.Strategy), clean(m.RecordID), clean(m.AccelID), clean(m.Axis), m.Segment)
}

// clean keeps name parts from escaping the output directory.
func clean(part string) string {
	if part == "" {
		return "none"
	}

	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ', '\t', '\n':
			return '-'
		}
		return r
	}, part)
}
