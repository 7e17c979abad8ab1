// Package parallel provides the worker pool the export commands dispatch
// their writes through.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc schedules a task on the pool.
	WorkerFunc func(func())
	// WaitFunc blocks until all scheduled tasks finished. Passing done
	// shuts the pool down first; no task may be scheduled afterwards.
	WaitFunc func(done bool)
	// CancelFunc shuts the pool down.
	CancelFunc func()
)

type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

// Start spins up numWorkers goroutines consuming scheduled tasks. With fewer
// than one requested it uses GOMAXPROCS; with exactly one, tasks run inline
// on the caller and Wait and Cancel are no-ops.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Do: func(task func()) {
			task()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	tasks := make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for task := range tasks {
				task()
			}
		})
	}

	pool.Do = func(task func()) {
		tasks <- task
	}
	pool.Cancel = sync.OnceFunc(func() { close(tasks) })
	pool.Wait = func(done bool) {
		if done {
			pool.Cancel()
		}
		pool.wg.Wait()
	}

	return pool
}
