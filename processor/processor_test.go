package processor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/skilab/skifft/dsp"
	"github.com/skilab/skifft/input"
	"github.com/skilab/skifft/output"
)

const (
	SampleRate = 800.0
	SampleSize = 1024
)

type testOutput struct {
	mu      sync.Mutex
	records []output.Record
	fail    bool
}

func (tO *testOutput) Write(rec output.Record) (string, error) {
	if tO.fail {
		return "", errors.New("disk full")
	}

	tO.mu.Lock()
	defer tO.mu.Unlock()

	tO.records = append(tO.records, rec)
	return rec.FileName(), nil
}

func testTable(n int) input.Table {
	t, _ := input.FromAxes([][]float64{
		dsp.Sine(50, SampleRate, 1, n),
		dsp.Sine(120, SampleRate, 0.5, n),
		dsp.Ramp(1, 0, n),
	})
	return t
}

func testProcessor(t testing.TB, out Output) *processor {
	t.Helper()

	split, err := dsp.NewEqualSplit(2)
	if err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		SampleRate: SampleRate,
		Segmenter:  split,
	}
	if out != nil {
		cfg.Outputs = []Output{out}
	}

	proc, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	return proc
}

func TestProcess(t *testing.T) {
	out := &testOutput{}
	proc := testProcessor(t, out)

	res := proc.Process(Job{
		Path:     "ac2_9.dat",
		RecordID: "9",
		AccelID:  "ac2",
		Table:    testTable(SampleSize),
	})
	if res.Err != nil {
		t.Fatal(res.Err)
	}

	if len(res.Records) != 6 || len(res.Written) != 6 || len(out.records) != 6 {
		t.Fatalf("got %d records, %d written, %d delivered",
			len(res.Records), len(res.Written), len(out.records))
	}

	first := res.Records[0]
	if first.Metadata.Axis != "x" || first.Metadata.Segment != 0 {
		t.Errorf("first record is %s/%d", first.Metadata.Axis, first.Metadata.Segment)
	}
	if res.Written[0] != "equal_9_ac2_x_000.json" {
		t.Errorf("first written %s", res.Written[0])
	}

	last := res.Records[5].Metadata
	if last.Axis != "z" || last.Segment != 1 || last.Start != 512 || last.End != 1024 {
		t.Errorf("last record %+v", last)
	}
	if last.Params["n_splits"] != 2 {
		t.Errorf("params %v", last.Params)
	}

	// 50 Hz on x lands on the peak bin of every x segment
	for _, rec := range res.Records[:2] {
		idx, _ := rec.Spectrum.Peak()
		if f := rec.Spectrum.Freqs[idx]; f < 48 || f > 52 {
			t.Errorf("x segment %d peaks at %f Hz", rec.Metadata.Segment, f)
		}
	}
}

func TestProcessFilterParams(t *testing.T) {
	split, _ := dsp.NewEqualSplit(1)

	proc, err := New(Config{
		SampleRate: SampleRate,
		Filter:     dsp.Chain{dsp.NewDetrendTaper()},
		Segmenter:  split,
		Analyzer:   dsp.NewAnalyzer(dsp.AnalyzerConfig{SampleRate: SampleRate, FreqLimit: 100}),
		Axes:       []int{1},
	})
	if err != nil {
		t.Fatal(err)
	}

	res := proc.Process(Job{Path: "a.csv", Table: testTable(SampleSize)})
	if res.Err != nil {
		t.Fatal(res.Err)
	}

	if len(res.Records) != 1 {
		t.Fatalf("got %d records", len(res.Records))
	}

	rec := res.Records[0]
	if rec.Metadata.Params["filter"] != "detrend" || rec.Metadata.Params["freq_lim"] != 100.0 {
		t.Errorf("params %v", rec.Metadata.Params)
	}
	if rec.Spectrum.Len() != 128 {
		t.Errorf("got %d bins under 100 Hz", rec.Spectrum.Len())
	}
}

func TestProcessErrors(t *testing.T) {
	proc := testProcessor(t, &testOutput{fail: true})

	res := proc.Process(Job{Path: "ac1_1.dat", Table: testTable(64)})
	if res.Err == nil || !strings.Contains(res.Err.Error(), "disk full") {
		t.Errorf("unexpected error %v", res.Err)
	}

	res = proc.Process(Job{Path: "empty.dat"})
	if res.Err == nil {
		t.Error("expected error for an empty table")
	}

	if _, err := New(Config{SampleRate: SampleRate}); err == nil {
		t.Error("expected error without a segmenter")
	}
}

func testLoader(path string) (Job, error) {
	if strings.HasPrefix(path, "bad") {
		return Job{}, errors.Errorf("failed to load %s", path)
	}
	return Job{Path: path, RecordID: path, Table: testTable(256)}, nil
}

func testPaths() []string {
	var paths []string
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("ok%d", i)
		if i%3 == 1 {
			name = fmt.Sprintf("bad%d", i)
		}
		paths = append(paths, name)
	}
	return paths
}

func checkResults(t *testing.T, paths []string, results []Result) {
	t.Helper()

	if len(results) != len(paths) {
		t.Fatalf("got %d results for %d paths", len(results), len(paths))
	}

	for i, res := range results {
		if res.Path != paths[i] {
			t.Errorf("result %d is for %s, want %s", i, res.Path, paths[i])
		}

		bad := strings.HasPrefix(paths[i], "bad")
		if bad != (res.Err != nil) {
			t.Errorf("%s: err = %v", paths[i], res.Err)
		}
		if !bad && len(res.Records) != 6 {
			t.Errorf("%s: %d records", paths[i], len(res.Records))
		}
	}
}

func TestRunners(t *testing.T) {
	paths := testPaths()

	for _, workers := range []int{0, 1, 3, 16} {
		out := &testOutput{}
		proc := testProcessor(t, out)

		checkResults(t, paths, NewThreaded(proc, testLoader, workers).Run(context.Background(), paths))

		if len(out.records) != 6*7 {
			t.Errorf("workers=%d: %d records delivered", workers, len(out.records))
		}
	}

	proc := testProcessor(t, &testOutput{})
	checkResults(t, paths, NewSequential(proc, testLoader).Run(context.Background(), paths))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths := testPaths()
	proc := testProcessor(t, &testOutput{})

	runners := []Runner{
		NewSequential(proc, testLoader),
		NewThreaded(proc, testLoader, 4),
	}

	for _, runner := range runners {
		for i, res := range runner.Run(ctx, paths) {
			if res.Path != paths[i] || !errors.Is(res.Err, context.Canceled) {
				t.Errorf("result %d: %s %v", i, res.Path, res.Err)
			}
		}
	}
}

func BenchmarkProcess(b *testing.B) {
	proc := testProcessor(b, nil)
	job := Job{Path: "bench.dat", Table: testTable(SampleSize * 48)}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		proc.Process(job)
	}
}
