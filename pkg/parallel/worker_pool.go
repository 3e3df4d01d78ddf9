// Package parallel runs independent what-if evaluations on a fixed set of
// worker goroutines.
package parallel

import (
	"fmt"
	"math"
	"sync"

	"github.com/dd0wney/cluso-gridsim/pkg/logging"
)

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu
	logger    logging.Logger
}

// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
var ErrTooManyWorkers = fmt.Errorf("worker count exceeds maximum")

// ErrTaskPanicked is returned by ForEach when at least one call panicked.
// Results written by other calls are complete; the panicking index is not.
var ErrTaskPanicked = fmt.Errorf("worker task panicked")

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt / 2

// NewWorkerPool creates a pool with the given number of workers. Counts
// below one become one. Panics inside tasks are logged to logger.
func NewWorkerPool(workers int, logger logging.Logger) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}

	// Prevent overflow in buffer size calculation
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
		logger:    logger.With(logging.Component("worker_pool")),
	}

	pool.start()
	return pool, nil
}

// Workers returns the number of goroutines serving the pool
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.run(task)
	}
}

// run executes one task; a panicking task must not take the worker down
func (wp *WorkerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.logger.Error("worker task panicked", logging.String("panic", fmt.Sprint(r)))
		}
	}()
	task()
}

// Submit adds a task to the pool.
// Returns false if the pool is closed, true if the task was queued.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}

	wp.taskQueue <- task
	return true
}

// Close stops accepting tasks and waits for queued ones to finish
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// ForEach calls fn for every index in [0, n) using up to workers goroutines
// and returns once all calls are done. fn must only write state owned by its
// index. With one worker, or a single item, fn runs on the calling goroutine
// in index order and a panic propagates to the caller. On the pool a panic
// is recovered and reported as ErrTaskPanicked.
func ForEach(workers, n int, logger logging.Logger, fn func(i int)) error {
	if n <= 0 {
		return nil
	}
	if workers <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return nil
	}

	pool, err := NewWorkerPool(min(workers, n), logger)
	if err != nil {
		return err
	}
	var (
		mu       sync.Mutex
		panicked []int
	)
	for i := 0; i < n; i++ {
		i := i // per-iteration copy; go.mod targets go 1.21 loop semantics
		pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					panicked = append(panicked, i)
					mu.Unlock()
					pool.logger.Error("worker task panicked",
						logging.Int("index", i),
						logging.String("panic", fmt.Sprint(r)),
					)
				}
			}()
			fn(i)
		})
	}
	pool.Close()

	if len(panicked) > 0 {
		return fmt.Errorf("%w: %d of %d tasks", ErrTaskPanicked, len(panicked), n)
	}
	return nil
}
