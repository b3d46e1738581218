package processor

import (
	"context"
)

// Loader decodes the file at path into a job.
type Loader func(path string) (Job, error)

// Runner processes a batch of files. Results come back in input order, and
// a failing file never stops the batch.
type Runner interface {
	Run(ctx context.Context, paths []string) []Result
}

func runOne(ctx context.Context, proc Processor, load Loader, path string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Path: path, Err: err}
	}

	job, err := load(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}

	res := proc.Process(job)
	res.Path = path

	return res
}

type sequential struct {
	proc Processor
	load Loader
}

// NewSequential returns a runner handling one file at a time.
func NewSequential(proc Processor, load Loader) Runner {
	return &sequential{proc: proc, load: load}
}

func (sr *sequential) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	for idx, path := range paths {
		results[idx] = runOne(ctx, sr.proc, sr.load, path)
	}
	return results
}
