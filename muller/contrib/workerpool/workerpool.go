// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool that splits the output
// rows of a matrix product across goroutines. A Pool is created once by a
// parallel strategy and reused by every Multiply call, so repeated benchmark
// repetitions do not pay goroutine spawn cost.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelForStrips(m, 64, func(start, end int) {
//	    computeRows(start, end)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of goroutines executing row ranges.
type Pool struct {
	numWorkers int
	workC      chan job
	closeOnce  sync.Once
	closed     atomic.Bool
}

type job struct {
	fn   func()
	done *sync.WaitGroup
}

// New starts a pool of numWorkers goroutines. If numWorkers <= 0, uses
// GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan job, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for j := range p.workC {
		j.fn()
		j.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers after pending work completes. Calling Close more
// than once is safe; a closed pool runs work on the calling goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor splits [0, n) into one contiguous range per worker and blocks
// until fn has run on all of them.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.workC <- job{fn: func() { fn(start, end) }, done: &wg}
	}
	wg.Wait()
}

// ParallelForStrips hands out [0, n) in strips of at most strip rows; idle
// workers grab the next strip, which balances uneven rows. Blocks until all
// strips are done.
func (p *Pool) ParallelForStrips(n, strip int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if strip <= 0 {
		strip = 1
	}
	numStrips := (n + strip - 1) / strip
	workers := min(p.numWorkers, numStrips)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	var next atomic.Int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- job{
			fn: func() {
				for {
					s := int(next.Add(1)) - 1
					start := s * strip
					if start >= n {
						return
					}
					fn(start, min(start+strip, n))
				}
			},
			done: &wg,
		}
	}
	wg.Wait()
}
