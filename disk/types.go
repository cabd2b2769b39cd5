package disk

import (
	"os"
)

type Block interface {
	Buffer() []byte
	BlockNumber() int64
}

// Disk is a fixed-length block image. Byte-range accesses outside
// [0, Size()) fail with errmsg.OutOfRange, storage failures wrap errmsg.IOError.
type Disk interface {
	Close() error
	Flush() error
	Size() int64
	Blocks() int64
	Write(Block) error
	Read(int64, []byte) (Block, error)
	ReadAt([]byte, int64) (int, error)
	WriteAt([]byte, int64) (int, error)
}

type block struct {
	bn     int64 // block number
	buffer []byte
}

type disk struct {
	size int64
	fp   *os.File
}

func NewBlock(bn int64, buf []byte) Block {
	return &block{bn, buf}
}

func (a *block) Buffer() []byte {
	return a.buffer
}

func (a *block) BlockNumber() int64 {
	return a.bn
}
