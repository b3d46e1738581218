package processor

import (
	"context"
	"sync"
)

type threaded struct {
	proc    Processor
	load    Loader
	workers int
}

// NewThreaded returns a runner handling up to workers files at once.
func NewThreaded(proc Processor, load Loader, workers int) Runner {
	if workers < 1 {
		workers = 1
	}
	return &threaded{proc: proc, load: load, workers: workers}
}

func (tr *threaded) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	idxs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(tr.workers)

	for w := 0; w < tr.workers; w++ {
		go func() {
			defer wg.Done()

			// each index is owned by exactly one worker
			for idx := range idxs {
				results[idx] = runOne(ctx, tr.proc, tr.load, paths[idx])
			}
		}()
	}

	next := 0

feed:
	for ; next < len(paths); next++ {
		select {
		case <-ctx.Done():
			break feed
		case idxs <- next:
		}
	}

	close(idxs)
	wg.Wait()

	for ; next < len(paths); next++ {
		results[next] = Result{Path: paths[next], Err: ctx.Err()}
	}

	return results
}
