package walker

import (
	"context"
	"os"
	"sync"
)

type fileJob struct {
	index        int
	absPath      string
	relativePath string
}

type fileResult struct {
	index        int
	relativePath string
	content      []byte
	ok           bool
}

// readFile loads a selected file. A read failure is tracked and reported as
// ok == false so the caller treats the file as absent.
func (w *walker) readFile(absPath, relativePath string) ([]byte, bool) {
	w.reportProgress(ProgressStats{CurrentFilePath: relativePath})

	content, err := os.ReadFile(absPath)
	if err != nil {
		w.options.Logger.Warn("walker: cannot read %q: %v", relativePath, err)
		w.tracker.Track(relativePath, ReasonSkippedReadError, false)
		w.stats.skippedFiles.Add(1)
		return nil, false
	}

	w.options.Logger.Debug("walker: read %q (%d bytes)", relativePath, len(content))
	return content, true
}

// fileReaderWorker reads queued files until the job channel closes. Once ctx
// is done the remaining jobs are answered without touching the disk.
func (w *walker) fileReaderWorker(ctx context.Context, id int, jobs <-chan fileJob, results chan<- fileResult, wg *sync.WaitGroup) {
	defer wg.Done()
	w.options.Logger.Debug("walker: worker %d started", id)

	for job := range jobs {
		res := fileResult{index: job.index, relativePath: job.relativePath}
		if ctx.Err() == nil {
			res.content, res.ok = w.readFile(job.absPath, job.relativePath)
		}
		results <- res
	}

	w.options.Logger.Debug("walker: worker %d finished", id)
}

// runConcurrent traverses on one goroutine, reads on a worker pool and
// hands results to walkFn on the calling goroutine in traversal order.
func (w *walker) runConcurrent(walkFn WalkFunc) error {
	ctx, cancel := context.WithCancel(w.options.Context)
	defer cancel()

	jobs := make(chan fileJob, w.options.MaxWorkers*2)
	results := make(chan fileResult, w.options.MaxWorkers*2)

	var traverseErr error
	go func() {
		defer close(jobs)
		next := 0
		traverseErr = w.traverse(ctx, func(absPath, relativePath string) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- fileJob{index: next, absPath: absPath, relativePath: relativePath}:
				next++
				return nil
			}
		})
	}()

	var wg sync.WaitGroup
	for i := 0; i < w.options.MaxWorkers; i++ {
		wg.Add(1)
		go w.fileReaderWorker(ctx, i+1, jobs, results, &wg)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Results arrive out of order; hold them until their turn comes.
	pending := make(map[int]fileResult)
	next := 0
	var callbackErr error
	for res := range results {
		if callbackErr != nil {
			continue
		}
		pending[res.index] = res
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if !r.ok {
				continue
			}
			w.stats.emittedFiles.Add(1)
			if err := walkFn(r.relativePath, r.content); err != nil {
				callbackErr = err
				cancel()
				break
			}
		}
	}

	if callbackErr != nil {
		return callbackErr
	}
	if traverseErr != nil {
		return traverseErr
	}
	// The caller's context may have ended after traversal finished but
	// before every result was read.
	return w.options.Context.Err()
}
