package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// MinWorkers is the lower bound on the number of pool goroutines.
const MinWorkers = 4

// DefaultWorkers returns max(GOMAXPROCS, MinWorkers).
func DefaultWorkers() int {
	return max(runtime.GOMAXPROCS(0), MinWorkers)
}

// WorkerPool is a persistent pool of goroutines that executes per-frame jobs.
//
// Each worker owns a queue and steals from the other queues when its own is
// empty, so a slow stripe does not leave the remaining goroutines idle.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// workQueues holds per-worker work queues.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers and starts
// them. If workers is 0 or negative, DefaultWorkers is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	// Buffer size: 2-4x workers hides queueing latency.
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			if work != nil {
				work()
			}

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			// Nothing anywhere; block on our own queue.
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				if work != nil {
					work()
				}
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work round-robin across workers and blocks until
// every item has completed. If the pool is closed, the items run on the
// calling goroutine instead.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var completionWG sync.WaitGroup
	completionWG.Add(len(work))

	for i, fn := range work {
		wrapped := func() {
			defer completionWG.Done()
			fn()
		}

		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-p.done:
			// Closed while submitting: run it here.
			wrapped()
		}
	}

	completionWG.Wait()
}

// ExecuteStriped runs fn(i) for every i in [0, count) using one job per
// worker. Job s handles the stripe s, s+N, s+2N, ... where N is Workers(),
// so every index is handled by exactly one job. It blocks until all jobs
// finish.
func (p *WorkerPool) ExecuteStriped(count int, fn func(index int)) {
	if count <= 0 || fn == nil {
		return
	}

	stripes := min(p.workers, count)
	work := make([]func(), stripes)
	for s := range stripes {
		work[s] = func() {
			for i := s; i < count; i += stripes {
				fn(i)
			}
		}
	}
	p.ExecuteAll(work)
}

// Close stops accepting new work, finishes queued work, and stops all
// workers. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
