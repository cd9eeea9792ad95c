package search

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// job is one worker's share of a pass: ordinals index, index+stride, ... below SpaceSize(width).
type job struct {
	width  int
	index  uint64
	stride uint64
}

type scanFn func(ctx context.Context, h hasher, j job) error

// pool is a fixed set of goroutines that lives for a whole search and is fed one pass at a time.
// Every goroutine owns its hasher.
type pool struct {
	g    *errgroup.Group
	jobs chan job
	done chan error
}

func newPool(ctx context.Context, size int, newHasher func() hasher, fn scanFn) *pool {
	g, gctx := errgroup.WithContext(ctx)
	p := &pool{
		g:    g,
		jobs: make(chan job, size),
		done: make(chan error, size),
	}
	for i := 0; i < size; i++ {
		g.Go(func() error {
			h := newHasher()
			for j := range p.jobs {
				p.done <- fn(gctx, h, j)
			}
			return nil
		})
	}
	return p
}

// Run queues the jobs of one pass and blocks until all of them completed.
func (p *pool) Run(jobs []job) error {
	if len(jobs) > cap(p.jobs) {
		return errors.New("more jobs than workers in one pass")
	}
	for _, j := range jobs {
		p.jobs <- j
	}
	var result error
	for range jobs {
		if err := <-p.done; err != nil && result == nil {
			result = err
		}
	}
	return result
}

// Close stops the workers and waits for them to exit.
func (p *pool) Close() error {
	close(p.jobs)
	return p.g.Wait()
}
