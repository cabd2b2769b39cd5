package disk

import (
	"fmt"
	"os"

	"github.com/aviral07-code/Stateful-Network-file-server/constant"
	"github.com/aviral07-code/Stateful-Network-file-server/errmsg"
	"golang.org/x/sys/unix"
)

// New opens the image at path, creating it with constant.DiskSize bytes if it
// does not exist. An existing image is reopened, never truncated.
func New(path string) (*disk, error) {
	fp, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0664)
	if err != nil {
		return nil, ioError(err)
	}
	if err := unix.Flock(int(fp.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		fp.Close()
		if err == unix.EWOULDBLOCK {
			return nil, errmsg.ImageLocked
		}
		return nil, ioError(err)
	}
	st, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, ioError(err)
	}
	if st.Size() < constant.DiskSize {
		if err := fp.Truncate(constant.DiskSize); err != nil {
			fp.Close()
			return nil, ioError(err)
		}
	}
	return &disk{fp: fp, size: constant.DiskSize}, nil
}

func (d *disk) Close() error {
	unix.Flock(int(d.fp.Fd()), unix.LOCK_UN)
	return d.fp.Close()
}

func (d *disk) Flush() error {
	if err := unix.Fsync(int(d.fp.Fd())); err != nil {
		return ioError(err)
	}
	return nil
}

func (d *disk) Size() int64 {
	return d.size
}

func (d *disk) Blocks() int64 {
	return d.size / constant.BlockSize
}

func (d *disk) Read(bn int64, buf []byte) (Block, error) {
	if bn < 0 || bn >= d.Blocks() || len(buf) != constant.BlockSize {
		return nil, errmsg.OutOfRange
	}
	if _, err := d.ReadAt(buf, bn*constant.BlockSize); err != nil {
		return nil, err
	}
	return &block{bn, buf}, nil
}

func (d *disk) Write(b Block) error {
	if bn := b.BlockNumber(); bn < 0 || bn >= d.Blocks() || len(b.Buffer()) != constant.BlockSize {
		return errmsg.OutOfRange
	}
	_, err := d.WriteAt(b.Buffer(), b.BlockNumber()*constant.BlockSize)
	return err
}

func (d *disk) ReadAt(buf []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(buf)) > d.size {
		return 0, errmsg.OutOfRange
	}
	n, err := d.fp.ReadAt(buf, off)
	switch {
	case err != nil:
		return n, ioError(err)
	case n != len(buf):
		return n, ioError(errmsg.ReadFailed)
	}
	return n, nil
}

func (d *disk) WriteAt(data []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(data)) > d.size {
		return 0, errmsg.OutOfRange
	}
	n, err := d.fp.WriteAt(data, off)
	switch {
	case err != nil:
		return n, ioError(err)
	case n != len(data):
		return n, ioError(errmsg.WriteFailed)
	}
	return n, nil
}

func ioError(err error) error {
	return fmt.Errorf("%w: %w", errmsg.IOError, err)
}
