package service

import (
	"os"
	"strings"

	"github.com/aviral07-code/Stateful-Network-file-server/constant"
	"github.com/aviral07-code/Stateful-Network-file-server/disk"
	"github.com/aviral07-code/Stateful-Network-file-server/errmsg"
	"github.com/aviral07-code/Stateful-Network-file-server/meta"
	"github.com/aviral07-code/Stateful-Network-file-server/scheduler"
	"github.com/aviral07-code/Stateful-Network-file-server/session"
	"github.com/nnsgmsone/damrey/logger"
)

func DefaultConfig() Config {
	return Config{
		ImagePath: constant.ImageName,
		LogWriter: os.Stderr,
	}
}

// New starts the scheduler. The image is opened lazily by the first request,
// or eagerly by Init.
func New(cfg Config) *service {
	if cfg.LogWriter == nil {
		cfg.LogWriter = os.Stderr
	}
	s := &service{
		cfg:  cfg,
		t:    session.New(),
		log:  logger.New(cfg.LogWriter, "ssnfs"),
		schd: scheduler.New(),
	}
	go s.schd.Run()
	return s
}

func (s *service) Init() error {
	return s.schd.Exec(s.ensure)
}

func (s *service) Close() error {
	var err error

	s.schd.Exec(func() error {
		if s.d != nil {
			err = s.d.Close()
			s.d, s.m = nil, nil
		}
		return nil
	})
	s.schd.Stop()
	return err
}

func (s *service) Create(user, name string) error {
	return s.schd.Exec(func() error {
		if err := s.ensure(); err != nil {
			return err
		}
		if err := checkNames(user, name); err != nil {
			return err
		}
		_, err := s.m.Create(user, name)
		return err
	})
}

func (s *service) Open(user, name string) (int, error) {
	h := -1
	err := s.schd.Exec(func() error {
		if err := s.ensure(); err != nil {
			return err
		}
		start, _, err := s.m.Extent(user, name)
		if err != nil {
			return err
		}
		ss, err := s.t.Open(user, name, start)
		if err != nil {
			return err
		}
		h = ss.Handle
		return nil
	})
	return h, err
}

// Read returns up to n bytes from the session cursor, never past the end of
// the file, and advances the cursor by the bytes returned.
func (s *service) Read(h, n int) ([]byte, error) {
	var buf []byte

	err := s.schd.Exec(func() error {
		if err := s.ensure(); err != nil {
			return err
		}
		ss, err := s.t.Get(h)
		if err != nil {
			return err
		}
		if n <= 0 {
			return errmsg.NothingToRead
		}
		if ss.Cursor >= constant.FileMaxSize {
			return errmsg.EndOfFile
		}
		cnt := int64(n)
		if rest := constant.FileMaxSize - ss.Cursor; cnt > rest {
			cnt = rest
		}
		buf = make([]byte, cnt)
		m, err := s.d.ReadAt(buf, ss.Start*constant.BlockSize+ss.Cursor)
		if err != nil {
			s.log.Errorf("read - handle %v at %v failed: %v\n", h, ss.Cursor, err)
			buf = nil
			return err
		}
		buf = buf[:m]
		ss.Cursor += int64(m)
		return nil
	})
	return buf, err
}

// Write stores data at the session cursor. Data past the end of the file is
// dropped; the returned count is what was stored.
func (s *service) Write(h int, data []byte) (int, error) {
	var n int

	err := s.schd.Exec(func() error {
		if err := s.ensure(); err != nil {
			return err
		}
		ss, err := s.t.Get(h)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return errmsg.NothingToWrite
		}
		cnt := int64(len(data))
		if rest := constant.FileMaxSize - ss.Cursor; cnt > rest {
			cnt = rest
		}
		if cnt <= 0 {
			return errmsg.FileFull
		}
		n, err = s.d.WriteAt(data[:cnt], ss.Start*constant.BlockSize+ss.Cursor)
		ss.Cursor += int64(n)
		if err != nil {
			s.log.Errorf("write - handle %v at %v failed: %v\n", h, ss.Cursor, err)
			return err
		}
		if s.cfg.SyncWrites {
			if err := s.d.Flush(); err != nil {
				s.log.Errorf("write - handle %v sync failed: %v\n", h, err)
				return err
			}
		}
		return nil
	})
	return n, err
}

func (s *service) Seek(h, pos int) error {
	return s.schd.Exec(func() error {
		if err := s.ensure(); err != nil {
			return err
		}
		ss, err := s.t.Get(h)
		if err != nil {
			return err
		}
		if pos < 0 || pos > constant.FileMaxSize {
			return errmsg.InvalidPosition
		}
		ss.Cursor = int64(pos)
		return nil
	})
}

func (s *service) CloseFile(h int) error {
	return s.schd.Exec(func() error {
		if err := s.ensure(); err != nil {
			return err
		}
		return s.t.Close(h)
	})
}

// Delete frees the file's extent. Files with open sessions are left untouched.
func (s *service) Delete(user, name string) error {
	return s.schd.Exec(func() error {
		if err := s.ensure(); err != nil {
			return err
		}
		if _, err := s.m.FindFile(user, name); err != nil {
			return err
		}
		if s.t.InUse(user, name) {
			return errmsg.FileInUse
		}
		_, err := s.m.Delete(user, name)
		return err
	})
}

func (s *service) List(user string) ([]string, error) {
	var names []string

	err := s.schd.Exec(func() error {
		if err := s.ensure(); err != nil {
			return err
		}
		names = s.m.List(user)
		return nil
	})
	return names, err
}

// ensure opens the image and loads its metadata on first use.
func (s *service) ensure() error {
	if s.d != nil {
		return nil
	}
	d, err := disk.New(s.cfg.ImagePath)
	if err != nil {
		s.log.Errorf("disk - open '%s' failed: %v\n", s.cfg.ImagePath, err)
		return err
	}
	m := meta.New(d, s.log)
	if err := m.Load(); err != nil {
		s.log.Errorf("disk - load metadata from '%s' failed: %v\n", s.cfg.ImagePath, err)
		d.Close()
		return err
	}
	s.d, s.m = d, m
	return nil
}

func checkNames(names ...string) error {
	for _, name := range names {
		switch {
		case len(name) == 0:
			return errmsg.NameIsEmpty
		case len(name) > constant.NameSize:
			return errmsg.NameTooLong
		case strings.ContainsAny(name, "\x00\n"):
			return errmsg.InvalidName
		}
	}
	return nil
}
