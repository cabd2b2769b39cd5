package meta

import (
	"bytes"

	"github.com/aviral07-code/Stateful-Network-file-server/bitmap"
	"github.com/aviral07-code/Stateful-Network-file-server/constant"
	"github.com/aviral07-code/Stateful-Network-file-server/directory"
	"github.com/aviral07-code/Stateful-Network-file-server/disk"
	"github.com/aviral07-code/Stateful-Network-file-server/errmsg"
	"github.com/nnsgmsone/damrey/logger"
)

func New(d disk.Disk, log logger.Log) *store {
	return &store{d: d, log: log, bm: bitmap.New(), dir: directory.New()}
}

// Load reads both metadata regions. The directory is authoritative: the bitmap
// is rebuilt from its extents and rewritten when the stored one disagrees, as
// after a save interrupted between the two regions. A fresh image, or one whose
// directory does not decode, starts empty and is written back.
func (s *store) Load() error {
	bb, err := s.d.Read(constant.BitmapBlock, make([]byte, constant.BlockSize))
	if err != nil {
		return err
	}
	db, err := s.d.Read(constant.DirectoryBlock, make([]byte, constant.BlockSize))
	if err != nil {
		return err
	}
	bm, bok, berr := bitmap.Unmarshal(bb.Buffer())
	dir, dok, derr := directory.Unmarshal(db.Buffer())
	switch {
	case derr == nil && dok:
		s.bm, s.dir = rebuild(dir), dir
		if berr == nil && bok && bytes.Equal(bm.Marshal(), s.bm.Marshal()) {
			return nil
		}
		s.log.Errorf("metadata - bitmap does not match directory (%v), rebuilt\n", berr)
		return s.Save()
	case derr == nil && berr == nil && !bok:
	case derr == nil:
		s.log.Errorf("metadata - directory never written (bitmap: %v), reinitializing\n", berr)
	default:
		s.log.Errorf("metadata - unreadable directory: %v, reinitializing\n", derr)
	}
	s.bm, s.dir = bitmap.New(), directory.New()
	return s.Save()
}

func (s *store) Save() error {
	if err := s.d.Write(disk.NewBlock(constant.BitmapBlock, s.bm.Marshal())); err != nil {
		return err
	}
	if err := s.d.Write(disk.NewBlock(constant.DirectoryBlock, s.dir.Marshal())); err != nil {
		return err
	}
	return s.d.Flush()
}

func (s *store) Used(bn int64) bool {
	return s.bm.Used(bn)
}

func (s *store) FindUser(name string) *directory.User {
	return s.dir.FindUser(name)
}

// Extent returns the block range [start, end) holding the contents of name.
func (s *store) Extent(user, name string) (int64, int64, error) {
	f, err := s.FindFile(user, name)
	if err != nil {
		return 0, 0, err
	}
	return f.Start, f.Start + constant.BlocksPerFile, nil
}

func (s *store) FindFile(user, name string) (directory.File, error) {
	u := s.dir.FindUser(user)
	if u == nil {
		return directory.File{}, errmsg.UserNotFound
	}
	f := u.FindFile(name)
	if f == nil || f.Start == constant.Unallocated {
		return directory.File{}, errmsg.FileNotFound
	}
	return *f, nil
}

// Create adds name to user's directory, creating the user on first use, and
// assigns it a fresh extent.
func (s *store) Create(user, name string) (directory.File, error) {
	var f *directory.File

	err := s.mutate(func() error {
		u, err := s.dir.FindOrCreateUser(user)
		if err != nil {
			return err
		}
		if f = u.FindFile(name); f == nil || f.Start != constant.Unallocated {
			if f, err = u.CreateFile(name); err != nil {
				return err
			}
		}
		start, err := s.bm.Alloc()
		if err != nil {
			return err
		}
		f.Start = start
		return nil
	})
	if err != nil {
		return directory.File{}, err
	}
	return *f, nil
}

// Delete releases the extent of name and removes its entry.
func (s *store) Delete(user, name string) (directory.File, error) {
	f, err := s.FindFile(user, name)
	if err != nil {
		return directory.File{}, err
	}
	err = s.mutate(func() error {
		s.bm.Free(f.Start)
		s.dir.FindUser(user).RemoveFile(name)
		return nil
	})
	if err != nil {
		return directory.File{}, err
	}
	return f, nil
}

func (s *store) List(user string) []string {
	var names []string

	u := s.dir.FindUser(user)
	if u == nil {
		return nil
	}
	for _, f := range u.Files() {
		if f.Start != constant.Unallocated {
			names = append(names, f.Name)
		}
	}
	return names
}

func (s *store) mutate(f func() error) error {
	bm, dir := s.bm.Clone(), s.dir.Clone()
	if err := f(); err != nil {
		s.bm, s.dir = bm, dir
		return err
	}
	if err := s.Save(); err != nil {
		s.log.Errorf("metadata - save failed, rolling back: %v\n", err)
		s.bm, s.dir = bm, dir
		if rerr := s.Save(); rerr != nil {
			s.log.Errorf("metadata - restore failed: %v\n", rerr)
		}
		return err
	}
	return nil
}

// rebuild derives block occupancy from the directory alone.
func rebuild(dir directory.Directory) bitmap.Bitmap {
	bm := bitmap.New()
	for _, u := range dir.Users() {
		for _, f := range u.Files() {
			if f.Start != constant.Unallocated {
				bm.Reserve(f.Start)
			}
		}
	}
	return bm
}
