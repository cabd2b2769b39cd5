package server

import (
	"errors"
	"net"
	"net/rpc"

	"github.com/aviral07-code/Stateful-Network-file-server/proto"
	"github.com/aviral07-code/Stateful-Network-file-server/service"
	"github.com/nnsgmsone/damrey/logger"
)

func DefaultConfig() Config {
	return Config{
		Addr: ":5570",
	}
}

func New(cfg Config, svc service.Service, log logger.Log) (*server, error) {
	s := &server{
		cfg:   cfg,
		log:   log,
		rpc:   rpc.NewServer(),
		conns: make(map[net.Conn]struct{}),
	}
	if err := s.rpc.RegisterName(proto.ServiceName, &handler{svc}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Close is called. Each connection is
// served on its own goroutine; requests still execute one at a time.
func (s *server) Serve(ln net.Listener) error {
	s.Lock()
	if s.closed {
		s.Unlock()
		ln.Close()
		return nil
	}
	s.ln = ln
	s.Unlock()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Errorf("server - accept failed: %v\n", err)
			return err
		}
		if !s.track(conn) {
			conn.Close()
			return nil
		}
		go func() {
			s.rpc.ServeConn(conn)
			s.untrack(conn)
		}()
	}
}

func (s *server) Close() error {
	var err error

	s.Lock()
	defer s.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.ln != nil {
		err = s.ln.Close()
	}
	for conn := range s.conns {
		conn.Close()
	}
	return err
}

func (s *server) isClosed() bool {
	s.Lock()
	defer s.Unlock()
	return s.closed
}

func (s *server) track(conn net.Conn) bool {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *server) untrack(conn net.Conn) {
	s.Lock()
	defer s.Unlock()
	delete(s.conns, conn)
}
