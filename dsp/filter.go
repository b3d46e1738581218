package dsp

import (
	"strings"

	"github.com/pkg/errors"
)

// Filter conditions the axes of a record before segmentation. Apply must
// return new buffers of the same shape and leave axes untouched.
type Filter interface {
	Name() string
	Params() map[string]interface{}
	Apply(axes [][]float64) ([][]float64, error)
}

// Chain runs filters in order.
type Chain []Filter

func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, f := range c {
		names[i] = f.Name()
	}
	return strings.Join(names, "+")
}

// Params merges the parameters of every filter. Later filters win on
// shared keys.
func (c Chain) Params() map[string]interface{} {
	out := map[string]interface{}{}
	for _, f := range c {
		for k, v := range f.Params() {
			out[k] = v
		}
	}
	return out
}

func (c Chain) Apply(axes [][]float64) ([][]float64, error) {
	out := copyAxes(axes)

	for _, f := range c {
		var err error
		if out, err = f.Apply(out); err != nil {
			return nil, errors.Wrapf(err, "filter %s", f.Name())
		}
	}

	return out, nil
}

func copyAxes(axes [][]float64) [][]float64 {
	out := make([][]float64, len(axes))
	for i := range axes {
		out[i] = make([]float64, len(axes[i]))
		copy(out[i], axes[i])
	}
	return out
}
