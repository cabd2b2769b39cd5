package server

import (
	"net"
	"net/rpc"
	"sync"

	"github.com/aviral07-code/Stateful-Network-file-server/service"
	"github.com/nnsgmsone/damrey/logger"
)

type Config struct {
	Addr string
}

// handler is the RPC receiver; every method reports failures in the reply
// and never returns a transport error.
type handler struct {
	svc service.Service
}

type server struct {
	sync.Mutex
	closed bool
	cfg    Config
	log    logger.Log
	rpc    *rpc.Server
	ln     net.Listener
	conns  map[net.Conn]struct{}
}
