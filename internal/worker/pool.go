package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/justinkworkman/FastChart/internal/chart"
	"github.com/justinkworkman/FastChart/internal/render"
)

// DefaultWorkers is the render pool size when configuration does not set one.
const DefaultWorkers = 2

// Pool renders report charts on a fixed set of long-lived goroutines. A
// report's charts fan out across the pool and are reassembled in layout order.
type Pool struct {
	engine chart.Engine
	logger *zap.Logger

	jobs     chan job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

type job struct {
	ctx     context.Context
	data    []map[string]any
	def     chart.Definition
	palette []string

	index    int
	sections []string
	errs     []error
	done     *sync.WaitGroup
}

// NewPool creates a stopped pool. Call Start before submitting work.
func NewPool(engine chart.Engine, logger *zap.Logger) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		engine: engine,
		logger: logger,
		jobs:   make(chan job, 64),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the given number of render workers.
func (p *Pool) Start(workers int) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Info("render pool started", zap.Int("workers", workers))
}

// Stop drains the pool and waits for in-flight renders to finish.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		close(p.jobs)
		p.wg.Wait()
		p.logger.Info("render pool stopped")
	})
}

// RenderAll aggregates and renders every chart in the layout, returning the
// HTML sections in layout order. The first chart error aborts the report.
func (p *Pool) RenderAll(ctx context.Context, data []map[string]any, layout chart.Layout, palette []string) ([]string, error) {
	if err := chart.ValidateLayout(layout); err != nil {
		return nil, err
	}

	var (
		done     sync.WaitGroup
		sections = make([]string, len(layout.Charts))
		errs     = make([]error, len(layout.Charts))
	)

	enqueueErr := func() error {
		for i, def := range layout.Charts {
			j := job{
				ctx:      ctx,
				data:     data,
				def:      def,
				palette:  palette,
				index:    i,
				sections: sections,
				errs:     errs,
				done:     &done,
			}
			done.Add(1)
			select {
			case p.jobs <- j:
			case <-ctx.Done():
				done.Done()
				return ctx.Err()
			case <-p.ctx.Done():
				done.Done()
				return context.Canceled
			}
		}
		return nil
	}()

	// Wait for whatever was enqueued before touching the shared slices.
	done.Wait()

	if enqueueErr != nil {
		return nil, enqueueErr
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sections, nil
}

// worker drains queued jobs until the queue closes; a stopping pool fails
// queued jobs fast instead of abandoning them so callers never block.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for j := range p.jobs {
		p.process(j)
	}
	p.logger.Debug("render worker stopping", zap.Int("worker", id))
}

func (p *Pool) process(j job) {
	defer j.done.Done()

	if err := j.ctx.Err(); err != nil {
		j.errs[j.index] = err
		return
	}
	if p.ctx.Err() != nil {
		j.errs[j.index] = context.Canceled
		return
	}

	series, err := p.engine.Aggregate(j.data, j.def)
	if err != nil {
		j.errs[j.index] = err
		return
	}
	j.sections[j.index] = render.Chart(j.def, series, j.palette)
}
