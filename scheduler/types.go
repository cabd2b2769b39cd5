package scheduler

import (
	"sync"
	"sync/atomic"
)

// Scheduler executes submitted requests one at a time on a single goroutine,
// so every request observes and mutates shared state atomically.
type Scheduler interface {
	Run()
	Stop()
	Exec(func() error) error
}

type message struct {
	f   func() error
	rch chan error
}

type scheduler struct {
	once    sync.Once
	running atomic.Bool
	ch      chan struct{}
	done    chan struct{}
	mch     chan *message
}
