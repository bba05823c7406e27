package worker

import "runtime"

// stepPool bounds how many Dijkstra steps run concurrently, so a burst
// of rounds across many queries cannot starve the goroutines handling
// other workers' gRPC streams. Sized max(1, NumCPU-1) per spec.md §5,
// mirroring the Rust source's dedicated blocking-thread pool
// (tokio's spawn_blocking with max_blocking_threads = num_cpus - 1).
type stepPool struct {
	sem chan struct{}
}

func newStepPool(size int) *stepPool {
	if size < 1 {
		size = 1
	}
	return &stepPool{sem: make(chan struct{}, size)}
}

func defaultStepPool() *stepPool {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return newStepPool(n)
}

// Run executes fn, blocking the caller until a pool slot is free and fn
// has completed. The caller's own goroutine (the gRPC handler's stream
// goroutine) is not the shared reactor, so blocking it here is safe;
// the semaphore only prevents more than `size` steps from running their
// CPU-bound work at once.
func (p *stepPool) Run(fn func()) {
	p.sem <- struct{}{}
	defer func() { <-p.sem }()
	fn()
}
