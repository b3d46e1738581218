// Package processor runs the per-file pipeline: filter, segment, analyze
// and hand every spectrum record to the outputs.
package processor

import (
	"io/ioutil"
	"log"

	"github.com/pkg/errors"
	"github.com/skilab/skifft/dsp"
	"github.com/skilab/skifft/input"
	"github.com/skilab/skifft/output"
)

// Output receives finished records and reports where each one went. An
// empty path with no error means the output skipped the record.
type Output interface {
	Write(output.Record) (string, error)
}

// Processor turns a loaded file into records.
type Processor interface {
	Process(Job) Result
}

type Config struct {
	SampleRate float64       // rate at which samples were recorded
	Filter     dsp.Filter    // optional conditioning of the axes
	Segmenter  dsp.Segmenter // segmentation strategy
	Analyzer   *dsp.Analyzer // spectral analyzer
	Scaling    bool          // records are meant to be shown in dB
	Axes       []int         // axes to analyze, nil for all
	Outputs    []Output      // record sinks
	Log        *log.Logger   // progress, nil discards
}

// Job is one decoded file.
type Job struct {
	Path     string
	RecordID string
	AccelID  string
	Table    input.Table
}

// Result reports what happened to one file.
type Result struct {
	Path    string
	Records []output.Record
	Written []string
	Err     error
}

type processor struct {
	sampleRate float64
	filter     dsp.Filter
	segmenter  dsp.Segmenter
	anlz       *dsp.Analyzer
	scaling    bool
	axes       []int
	outs       []Output
	log        *log.Logger
}

func New(cfg Config) (*processor, error) {
	if cfg.Segmenter == nil {
		return nil, errors.New("processor: no segmenter")
	}
	if cfg.SampleRate <= 0 {
		return nil, errors.Errorf("processor: sample rate must be > 0, got %g", cfg.SampleRate)
	}

	proc := &processor{
		sampleRate: cfg.SampleRate,
		filter:     cfg.Filter,
		segmenter:  cfg.Segmenter,
		anlz:       cfg.Analyzer,
		scaling:    cfg.Scaling,
		axes:       cfg.Axes,
		outs:       cfg.Outputs,
		log:        cfg.Log,
	}

	if proc.anlz == nil {
		proc.anlz = dsp.NewAnalyzer(dsp.AnalyzerConfig{SampleRate: cfg.SampleRate})
	}

	if proc.axes == nil {
		for idx := range input.AxisLabels {
			proc.axes = append(proc.axes, idx)
		}
	}

	for _, idx := range proc.axes {
		if idx < 0 || idx >= input.AxisCount {
			return nil, errors.Errorf("processor: no axis %d", idx)
		}
	}

	if proc.log == nil {
		proc.log = log.New(ioutil.Discard, "", 0)
	}

	return proc, nil
}

// params collects everything that shaped the records of a run.
func (proc *processor) params() map[string]interface{} {
	out := map[string]interface{}{}
	for k, v := range proc.segmenter.Params() {
		out[k] = v
	}

	if proc.filter != nil {
		out["filter"] = proc.filter.Name()
		out["filter_params"] = proc.filter.Params()
	}

	if limit := proc.anlz.Config().FreqLimit; limit > 0 {
		out["freq_lim"] = limit
	}

	return out
}

// Process runs the pipeline over job. Records reach the outputs as they
// are made; the first failure ends the file.
func (proc *processor) Process(job Job) Result {
	res := Result{Path: job.Path}

	if job.Table.Len() == 0 {
		res.Err = errors.Errorf("%s: no readings", job.Path)
		return res
	}

	axes := job.Table.Axes()

	if proc.filter != nil {
		filtered, err := proc.filter.Apply(axes)
		if err != nil {
			res.Err = errors.Wrapf(err, "%s", job.Path)
			return res
		}
		axes = filtered
	}

	params := proc.params()

	for _, axis := range proc.axes {
		segs, err := proc.segmenter.Segment(axes[axis])
		if err != nil {
			res.Err = errors.Wrapf(err, "%s: axis %s", job.Path, input.AxisLabels[axis])
			return res
		}

		for _, seg := range segs {
			rec := output.Record{
				Metadata: output.Metadata{
					Source:     job.Path,
					Strategy:   proc.segmenter.Name(),
					RecordID:   job.RecordID,
					AccelID:    job.AccelID,
					Axis:       input.AxisLabels[axis],
					Segment:    seg.Index,
					Start:      seg.Start,
					End:        seg.End,
					Domain:     seg.Domain,
					SampleRate: proc.sampleRate,
					DBScaled:   proc.scaling,
					Params:     params,
				},
				Spectrum: proc.anlz.Analyze(seg),
			}

			res.Records = append(res.Records, rec)

			for _, out := range proc.outs {
				path, err := out.Write(rec)
				if err != nil {
					res.Err = errors.Wrapf(err, "%s", job.Path)
					return res
				}

				if path == "" {
					proc.log.Printf("%s: nothing written for %s", job.Path, rec.FileName())
					continue
				}

				proc.log.Printf("wrote %s", path)
				res.Written = append(res.Written, path)
			}
		}
	}

	return res
}
