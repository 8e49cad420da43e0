package worker

import (
	"log"
	"sync"
)

// Task represents one background job, such as a session's user fetch.
type Task func()

// Pool runs submitted tasks on a fixed set of goroutines.
type Pool interface {
	// Submit queues t; it reports false once the pool has been stopped.
	Submit(Task) bool
	// Stop rejects new tasks and waits for queued ones to finish.
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, n*4)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
}

func (p *pool) loop() {
	defer p.wg.Done()
	for job := range p.jobs {
		run(job)
	}
}

func run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker: task panicked: %v", r)
		}
	}()
	job()
}

func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	p.jobs <- t
	return true
}

func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
