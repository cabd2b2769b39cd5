package meta

import (
	"fmt"
	"io"
	"testing"

	"github.com/aviral07-code/Stateful-Network-file-server/constant"
	"github.com/aviral07-code/Stateful-Network-file-server/directory"
	"github.com/aviral07-code/Stateful-Network-file-server/disk"
	"github.com/aviral07-code/Stateful-Network-file-server/errmsg"
	"github.com/nnsgmsone/damrey/logger"
	"github.com/stretchr/testify/require"
)

// memDisk is an in-memory image whose writes can be made to fail.
type memDisk struct {
	buf  []byte
	fail bool
}

func newMemDisk() *memDisk {
	return &memDisk{buf: make([]byte, constant.DiskSize)}
}

func (m *memDisk) Close() error  { return nil }
func (m *memDisk) Size() int64   { return int64(len(m.buf)) }
func (m *memDisk) Blocks() int64 { return m.Size() / constant.BlockSize }

func (m *memDisk) Flush() error {
	if m.fail {
		return fmt.Errorf("%w: flush", errmsg.IOError)
	}
	return nil
}

func (m *memDisk) Read(bn int64, buf []byte) (disk.Block, error) {
	if _, err := m.ReadAt(buf, bn*constant.BlockSize); err != nil {
		return nil, err
	}
	return disk.NewBlock(bn, buf), nil
}

func (m *memDisk) Write(b disk.Block) error {
	_, err := m.WriteAt(b.Buffer(), b.BlockNumber()*constant.BlockSize)
	return err
}

func (m *memDisk) ReadAt(buf []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(buf)) > m.Size() {
		return 0, errmsg.OutOfRange
	}
	return copy(buf, m.buf[off:]), nil
}

func (m *memDisk) WriteAt(data []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(data)) > m.Size() {
		return 0, errmsg.OutOfRange
	}
	if m.fail {
		return 0, fmt.Errorf("%w: write", errmsg.IOError)
	}
	return copy(m.buf[off:], data), nil
}

func newStore(t *testing.T, d disk.Disk) *store {
	s := New(d, logger.New(io.Discard, "test"))
	require.NoError(t, s.Load())
	return s
}

func TestLoadFreshImage(t *testing.T) {
	r := require.New(t)
	d := newMemDisk()
	s := newStore(t, d)

	r.Nil(s.List("alice"))
	r.True(s.Used(constant.BitmapBlock))
	r.True(s.Used(constant.DirectoryBlock))
	r.False(s.Used(constant.FirstDataBlock))

	// the initial state is written back
	r.NotEqual(make([]byte, 8), d.buf[:8])
}

func TestCreateAndReload(t *testing.T) {
	r := require.New(t)
	d := newMemDisk()
	s := newStore(t, d)

	f, err := s.Create("alice", "F")
	r.NoError(err)
	r.Equal(constant.FirstDataBlock, f.Start)
	g, err := s.Create("alice", "G")
	r.NoError(err)
	_, err = s.Create("bob", "F")
	r.NoError(err)
	_, err = s.Delete("alice", "F")
	r.NoError(err)

	reloaded := newStore(t, d)
	r.Equal([]string{"G"}, reloaded.List("alice"))
	r.Equal([]string{"F"}, reloaded.List("bob"))
	got, err := reloaded.FindFile("alice", "G")
	r.NoError(err)
	r.Equal(g, got)
	for bn := int64(0); bn < constant.TotalBlocks; bn++ {
		r.Equal(s.Used(bn), reloaded.Used(bn), "block %d", bn)
	}
}

func TestCreateErrors(t *testing.T) {
	r := require.New(t)
	s := newStore(t, newMemDisk())

	_, err := s.Create("alice", "F")
	r.NoError(err)
	_, err = s.Create("alice", "F")
	r.ErrorIs(err, errmsg.AlreadyExists)

	for i := 1; i < constant.MaxFilesPerUser; i++ {
		_, err := s.Create("alice", fmt.Sprintf("F%d", i))
		r.NoError(err)
	}
	_, err = s.Create("alice", "extra")
	r.ErrorIs(err, errmsg.TooManyFiles)

	for i := 1; i < constant.MaxUsers; i++ {
		_, err := s.Create(fmt.Sprintf("user%d", i), "F")
		r.NoError(err)
	}
	_, err = s.Create("latecomer", "F")
	r.ErrorIs(err, errmsg.TooManyUsers)
	r.Nil(s.FindUser("latecomer"))
}

func TestNoSpaceRollsBack(t *testing.T) {
	r := require.New(t)
	s := newStore(t, newMemDisk())

	for {
		if _, err := s.bm.Alloc(); err != nil {
			break
		}
	}
	_, err := s.Create("alice", "F")
	r.ErrorIs(err, errmsg.NoSpace)
	r.Nil(s.FindUser("alice"))
}

func TestSaveFailureRollsBack(t *testing.T) {
	r := require.New(t)
	d := newMemDisk()
	s := newStore(t, d)

	f, err := s.Create("alice", "F")
	r.NoError(err)

	d.fail = true
	_, err = s.Create("alice", "G")
	r.ErrorIs(err, errmsg.IOError)
	_, err = s.FindFile("alice", "G")
	r.ErrorIs(err, errmsg.FileNotFound)
	r.False(s.Used(f.Start + constant.BlocksPerFile))

	_, err = s.Delete("alice", "F")
	r.ErrorIs(err, errmsg.IOError)
	_, err = s.FindFile("alice", "F")
	r.NoError(err)
	r.True(s.Used(f.Start))

	d.fail = false
	reloaded := newStore(t, d)
	r.Equal([]string{"F"}, reloaded.List("alice"))
}

func TestDeleteThenReuse(t *testing.T) {
	r := require.New(t)
	s := newStore(t, newMemDisk())

	f, err := s.Create("alice", "F")
	r.NoError(err)
	_, err = s.Create("alice", "G")
	r.NoError(err)
	_, err = s.Delete("alice", "F")
	r.NoError(err)
	_, err = s.Delete("alice", "F")
	r.ErrorIs(err, errmsg.FileNotFound)
	_, err = s.Delete("nobody", "F")
	r.ErrorIs(err, errmsg.UserNotFound)

	h, err := s.Create("alice", "H")
	r.NoError(err)
	r.Equal(f.Start, h.Start)
}

func TestCorruptImageIsReinitialized(t *testing.T) {
	r := require.New(t)
	d := newMemDisk()
	s := newStore(t, d)
	_, err := s.Create("alice", "F")
	r.NoError(err)

	d.buf[constant.BlockSize+10] ^= 0xFF
	reloaded := newStore(t, d)
	r.Nil(reloaded.List("alice"))
	r.False(reloaded.Used(constant.FirstDataBlock))
}

func block(d *memDisk, bn int64) []byte {
	return append([]byte(nil), d.buf[bn*constant.BlockSize:(bn+1)*constant.BlockSize]...)
}

func TestInterruptedDeleteKeepsFiles(t *testing.T) {
	r := require.New(t)
	d := newMemDisk()
	s := newStore(t, d)

	f, err := s.Create("alice", "F")
	r.NoError(err)
	g, err := s.Create("bob", "G")
	r.NoError(err)
	old := block(d, constant.DirectoryBlock)
	_, err = s.Delete("alice", "F")
	r.NoError(err)

	// the bitmap reached the image, the directory did not
	copy(d.buf[constant.DirectoryBlock*constant.BlockSize:], old)
	reloaded := newStore(t, d)
	r.Equal([]string{"G"}, reloaded.List("bob"))
	r.Equal([]string{"F"}, reloaded.List("alice"))
	for _, start := range []int64{f.Start, g.Start} {
		for bn := start; bn < start+constant.BlocksPerFile; bn++ {
			r.True(reloaded.Used(bn), "block %d", bn)
		}
	}

	// the repaired bitmap was written back
	again := newStore(t, d)
	r.Equal(block(d, constant.BitmapBlock), again.bm.Marshal())
}

func TestInterruptedCreateReleasesBlocks(t *testing.T) {
	r := require.New(t)
	d := newMemDisk()
	s := newStore(t, d)

	f, err := s.Create("alice", "F")
	r.NoError(err)
	old := block(d, constant.DirectoryBlock)
	g, err := s.Create("alice", "G")
	r.NoError(err)

	copy(d.buf[constant.DirectoryBlock*constant.BlockSize:], old)
	reloaded := newStore(t, d)
	r.Equal([]string{"F"}, reloaded.List("alice"))
	r.True(reloaded.Used(f.Start))
	r.False(reloaded.Used(g.Start))
	r.Equal(int64(constant.FirstDataBlock+constant.BlocksPerFile), reloaded.bm.Count())

	h, err := reloaded.Create("alice", "H")
	r.NoError(err)
	r.Equal(g.Start, h.Start)
}

func TestCorruptBitmapIsRebuilt(t *testing.T) {
	r := require.New(t)
	d := newMemDisk()
	s := newStore(t, d)
	f, err := s.Create("alice", "F")
	r.NoError(err)

	d.buf[10] ^= 0xFF
	reloaded := newStore(t, d)
	r.Equal([]string{"F"}, reloaded.List("alice"))
	r.True(reloaded.Used(f.Start))
	r.False(reloaded.Used(f.Start + constant.BlocksPerFile))
}

func TestFirstSaveInterrupted(t *testing.T) {
	r := require.New(t)
	d := newMemDisk()
	copy(d.buf, New(d, logger.New(io.Discard, "test")).bm.Marshal())

	s := newStore(t, d)
	r.Equal(0, s.dir.Len())
	_, ok, err := directoryRegion(d)
	r.NoError(err)
	r.True(ok)
}

func directoryRegion(d *memDisk) (directory.Directory, bool, error) {
	return directory.Unmarshal(block(d, constant.DirectoryBlock))
}

func TestExtent(t *testing.T) {
	r := require.New(t)
	s := newStore(t, newMemDisk())

	f, err := s.Create("alice", "F")
	r.NoError(err)
	start, end, err := s.Extent("alice", "F")
	r.NoError(err)
	r.Equal(f.Start, start)
	r.Equal(f.Start+constant.BlocksPerFile, end)

	_, _, err = s.Extent("alice", "G")
	r.ErrorIs(err, errmsg.FileNotFound)
	_, _, err = s.Extent("bob", "F")
	r.ErrorIs(err, errmsg.UserNotFound)
}
