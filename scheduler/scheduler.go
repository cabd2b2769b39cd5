package scheduler

import (
	"github.com/aviral07-code/Stateful-Network-file-server/errmsg"
)

func New() *scheduler {
	return &scheduler{
		ch:   make(chan struct{}),
		done: make(chan struct{}),
		mch:  make(chan *message),
	}
}

func (s *scheduler) Run() {
	s.running.Store(true)
	defer close(s.done)
	for {
		select {
		case <-s.ch:
			return
		case m := <-s.mch:
			m.rch <- m.f()
		}
	}
}

// Stop ends Run and waits for it to return. A scheduler that was never run
// stops immediately.
func (s *scheduler) Stop() {
	s.once.Do(func() { close(s.ch) })
	if s.running.Load() {
		<-s.done
	}
}

// Exec runs f on the scheduler goroutine and returns its result. Once the
// scheduler has stopped, f is not run and errmsg.Closed is returned.
func (s *scheduler) Exec(f func() error) error {
	select {
	case <-s.ch:
		return errmsg.Closed
	default:
	}
	m := &message{f: f, rch: make(chan error, 1)}
	select {
	case s.mch <- m:
		return <-m.rch
	case <-s.ch:
		return errmsg.Closed
	case <-s.done:
		return errmsg.Closed
	}
}
