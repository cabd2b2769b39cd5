package service

import (
	"io"

	"github.com/aviral07-code/Stateful-Network-file-server/disk"
	"github.com/aviral07-code/Stateful-Network-file-server/meta"
	"github.com/aviral07-code/Stateful-Network-file-server/scheduler"
	"github.com/aviral07-code/Stateful-Network-file-server/session"
	"github.com/nnsgmsone/damrey/logger"
)

/*
Service implements the file operations over one block image. Service is
thread-safe: every call is executed to completion by a single scheduler
goroutine before the next one starts.
*/
type Service interface {
	Init() error
	Close() error

	Create(user, name string) error
	Open(user, name string) (int, error)
	Read(h, n int) ([]byte, error)
	Write(h int, data []byte) (int, error)
	Seek(h, pos int) error
	CloseFile(h int) error
	Delete(user, name string) error
	List(user string) ([]string, error)
}

type Config struct {
	ImagePath  string
	LogWriter  io.Writer
	SyncWrites bool // fsync the image after every data write
}

type service struct {
	cfg  Config
	d    disk.Disk
	m    meta.Store
	t    session.Table
	log  logger.Log
	schd scheduler.Scheduler
}
