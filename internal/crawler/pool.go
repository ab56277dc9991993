package crawler

import (
	"context"
	"sync"
	"time"
)

type task struct {
	source string
	skill  string
	run    func(ctx context.Context) (int, error)
}

type taskResult struct {
	source string
	skill  string
	stored int
	err    error
}

// pool runs tasks on a fixed number of workers. With a positive rate, task
// starts across all workers are spaced at 1/rate seconds.
type pool struct {
	workers int
	tasks   chan task
	wg      sync.WaitGroup
	ticker  *time.Ticker
}

func newPool(workers, buffer, ratePerSec int) *pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	p := &pool{workers: workers, tasks: make(chan task, buffer)}
	if ratePerSec > 0 {
		p.ticker = time.NewTicker(time.Second / time.Duration(ratePerSec))
	}
	return p
}

func (p *pool) submit(ctx context.Context, t task) bool {
	select {
	case <-ctx.Done():
		return false
	case p.tasks <- t:
		return true
	}
}

// close stops accepting tasks; run's channel closes once the queue drains.
func (p *pool) close() {
	close(p.tasks)
}

func (p *pool) run(ctx context.Context) <-chan taskResult {
	out := make(chan taskResult, p.workers)

	var rate <-chan time.Time
	if p.ticker != nil {
		rate = p.ticker.C
	}

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for t := range p.tasks {
				if rate != nil {
					select {
					case <-ctx.Done():
						out <- taskResult{source: t.source, skill: t.skill, err: ctx.Err()}
						continue
					case <-rate:
					}
				}
				if err := ctx.Err(); err != nil {
					out <- taskResult{source: t.source, skill: t.skill, err: err}
					continue
				}
				n, err := t.run(ctx)
				out <- taskResult{source: t.source, skill: t.skill, stored: n, err: err}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		if p.ticker != nil {
			p.ticker.Stop()
		}
		close(out)
	}()

	return out
}
