package backtest

import (
	"context"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/haln-dev/quantlab/internal/strategy"
)

// GridPool evaluates grid-search candidates in parallel. Results carry the
// candidate's grid index so callers can preserve the first-seen tie-break
// order regardless of completion order.
type GridPool struct {
	workerCount int
	costRate    float64
	jobQueue    chan gridJob
	resultQueue chan gridScore
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// gridJob is a single candidate evaluation over a train slice.
type gridJob struct {
	Index  int
	Params strategy.Params
	Closes []float64
}

// gridScore is the in-sample score of one candidate.
type gridScore struct {
	Index int
	Score float64
	Err   error
}

// NewGridPool creates a pool for parallel candidate evaluation. A
// non-positive workerCount uses one worker per CPU.
func NewGridPool(workerCount, jobBufferSize int, costRate float64) *GridPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &GridPool{
		workerCount: workerCount,
		costRate:    costRate,
		jobQueue:    make(chan gridJob, jobBufferSize),
		resultQueue: make(chan gridScore, jobBufferSize),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the workers.
func (p *GridPool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Stop drains the pool gracefully.
func (p *GridPool) Stop() {
	close(p.jobQueue)
	p.wg.Wait()
	close(p.resultQueue)
	p.cancel()
}

// Submit queues a candidate evaluation.
func (p *GridPool) Submit(job gridJob) error {
	select {
	case p.jobQueue <- job:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// Results returns the channel of completed evaluations.
func (p *GridPool) Results() <-chan gridScore {
	return p.resultQueue
}

func (p *GridPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}

			select {
			case p.resultQueue <- p.evaluate(job):
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// evaluate scores a candidate by the sum of its in-sample strategy returns.
// The sum, not the Sharpe, is the selection score.
func (p *GridPool) evaluate(job gridJob) gridScore {
	sim, err := strategy.Simulate(job.Closes, job.Params, p.costRate)
	if err != nil {
		return gridScore{Index: job.Index, Err: err}
	}
	return gridScore{Index: job.Index, Score: floats.Sum(sim.Returns)}
}
