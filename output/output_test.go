package output

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/skilab/skifft/dsp"
)

func testRecord(segment int) Record {
	return Record{
		Metadata: Metadata{
			Strategy:   "envelope",
			RecordID:   "9",
			AccelID:    "ac2",
			Axis:       "x",
			Segment:    segment,
			Start:      100,
			End:        900,
			Domain:     dsp.DomainSeries,
			SampleRate: 800,
			Params:     map[string]interface{}{"n_out": 100},
		},
		Spectrum: dsp.Spectrum{
			Freqs: []float64{0, 1, 2},
			Mags:  []float64{0.5, 3, 1},
		},
	}
}

func TestFileName(t *testing.T) {
	if got := testRecord(3).FileName(); got != "envelope_9_ac2_x_003.json" {
		t.Errorf("got %q", got)
	}

	rec := testRecord(12)
	rec.Metadata.RecordID = "../run 1"
	rec.Metadata.AccelID = ""

	name := rec.FileName()
	if strings.ContainsAny(name, "/ ") {
		t.Errorf("name %q escapes its directory", name)
	}
	if name != "envelope_..-run-1_none_x_012.json" {
		t.Errorf("got %q", name)
	}
}

func TestRecordDocument(t *testing.T) {
	data, err := json.Marshal(testRecord(0))
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	if _, ok := doc["metadata"]; !ok {
		t.Error("no metadata")
	}
	if got := string(doc["data"]); got != "[[0,0.5],[1,3],[2,1]]" {
		t.Errorf("data = %s", got)
	}

	bad := testRecord(0)
	bad.Spectrum.Mags = bad.Spectrum.Mags[:1]
	if _, err := json.Marshal(bad); err == nil {
		t.Error("expected error for misaligned spectrum")
	}
}

func TestWriteRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	w := NewJSONWriter(dir)

	path, err := w.Write(testRecord(1))
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Base(path) != "envelope_9_ac2_x_001.json" {
		t.Errorf("wrote %s", path)
	}

	rec, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if rec.Metadata.Start != 100 || rec.Metadata.End != 900 || rec.Metadata.Axis != "x" {
		t.Errorf("metadata %+v", rec.Metadata)
	}
	if rec.Spectrum.Len() != 3 || rec.Spectrum.Mags[1] != 3 {
		t.Errorf("spectrum %+v", rec.Spectrum)
	}
}

func TestWriteOverwrites(t *testing.T) {
	w := NewJSONWriter(t.TempDir())

	first := testRecord(0)
	if _, err := w.Write(first); err != nil {
		t.Fatal(err)
	}

	second := testRecord(0)
	second.Spectrum = dsp.Spectrum{Freqs: []float64{0}, Mags: []float64{7}}

	path, err := w.Write(second)
	if err != nil {
		t.Fatal(err)
	}

	rec, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Spectrum.Len() != 1 || rec.Spectrum.Mags[0] != 7 {
		t.Errorf("file not replaced: %+v", rec.Spectrum)
	}

	files, _ := ioutil.ReadDir(w.Dir)
	if len(files) != 1 {
		t.Errorf("%d files in output dir", len(files))
	}
}

func TestWriteDuplicateSource(t *testing.T) {
	w := NewJSONWriter(t.TempDir())

	first := testRecord(0)
	first.Metadata.Source = "data/ac2_9.dat"
	if _, err := w.Write(first); err != nil {
		t.Fatal(err)
	}

	// rewriting for the same source is fine
	if _, err := w.Write(first); err != nil {
		t.Fatal(err)
	}

	second := testRecord(0)
	second.Metadata.Source = "data/other/ac2_9.dat"
	second.Spectrum = dsp.Spectrum{Freqs: []float64{0}, Mags: []float64{7}}

	_, err := w.Write(second)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("got %v, want ErrDuplicate", err)
	}

	rec, err := ReadFile(filepath.Join(w.Dir, first.FileName()))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Metadata.Source != first.Metadata.Source || rec.Spectrum.Len() != 3 {
		t.Errorf("first record replaced: %+v", rec.Metadata)
	}
}

func TestRecordKeepsReference(t *testing.T) {
	rec := testRecord(0)
	rec.Spectrum.Ref = 12

	path, err := NewJSONWriter(t.TempDir()).Write(rec)
	if err != nil {
		t.Fatal(err)
	}

	back, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Spectrum.Ref != 12 || back.Metadata.DBRef != 12 {
		t.Errorf("reference %f, metadata %f", back.Spectrum.Ref, back.Metadata.DBRef)
	}
}
