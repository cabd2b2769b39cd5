package bitmap

import (
	"encoding/binary"

	"github.com/aviral07-code/Stateful-Network-file-server/constant"
	"github.com/aviral07-code/Stateful-Network-file-server/errmsg"
	"github.com/aviral07-code/Stateful-Network-file-server/sum"
)

// New returns a bitmap with only the metadata blocks marked used.
func New() *bitmap {
	m := &bitmap{}
	for bn := int64(0); bn < constant.FirstDataBlock; bn++ {
		m.set(bn)
	}
	return m
}

// Unmarshal decodes a bitmap region. ok is false when the region was never
// written (all zero); a checksum mismatch returns errmsg.Corrupted.
func Unmarshal(buf []byte) (*bitmap, bool, error) {
	if len(buf) < SumSize+MapSize {
		return nil, false, errmsg.Corrupted
	}
	if isZero(buf[:SumSize+MapSize]) {
		return nil, false, nil
	}
	if !sum.Verify(buf[SumSize:SumSize+MapSize], binary.LittleEndian.Uint32(buf)) {
		return nil, false, errmsg.Corrupted
	}
	m := &bitmap{}
	copy(m.bs[:], buf[SumSize:])
	for bn := int64(0); bn < constant.FirstDataBlock; bn++ {
		if !m.Used(bn) {
			return nil, false, errmsg.Corrupted
		}
	}
	return m, true, nil
}

func (m *bitmap) Marshal() []byte {
	buf := make([]byte, constant.BlockSize)
	copy(buf[SumSize:], m.bs[:])
	binary.LittleEndian.PutUint32(buf, sum.Sum(m.bs[:]))
	return buf
}

func (m *bitmap) Clone() Bitmap {
	c := *m
	return &c
}

func (m *bitmap) Used(bn int64) bool {
	if bn < 0 || bn >= constant.TotalBlocks {
		return false
	}
	return m.bs[bn/8]&(1<<uint(bn%8)) != 0
}

func (m *bitmap) Count() int64 {
	var n int64
	for bn := int64(0); bn < constant.TotalBlocks; bn++ {
		if m.Used(bn) {
			n++
		}
	}
	return n
}

// Alloc reserves the first run of constant.BlocksPerFile free blocks at or
// after constant.FirstDataBlock and returns its start block.
func (m *bitmap) Alloc() (int64, error) {
	run, start := 0, int64(-1)
	for bn := constant.FirstDataBlock; bn < constant.TotalBlocks; bn++ {
		if m.Used(bn) {
			run, start = 0, -1
			continue
		}
		if run == 0 {
			start = bn
		}
		if run++; run == constant.BlocksPerFile {
			for i := start; i <= bn; i++ {
				m.set(i)
			}
			return start, nil
		}
	}
	return -1, errmsg.NoSpace
}

// Free releases the extent starting at start, clamped to the image bounds.
// Metadata blocks are never released.
func (m *bitmap) Free(start int64) {
	if start < constant.FirstDataBlock {
		return
	}
	for bn := start; bn < start+constant.BlocksPerFile && bn < constant.TotalBlocks; bn++ {
		m.bs[bn/8] &^= 1 << uint(bn%8)
	}
}

// Reserve marks the extent starting at start used, clamped like Free.
func (m *bitmap) Reserve(start int64) {
	if start < constant.FirstDataBlock {
		return
	}
	for bn := start; bn < start+constant.BlocksPerFile && bn < constant.TotalBlocks; bn++ {
		m.set(bn)
	}
}

func (m *bitmap) set(bn int64) {
	m.bs[bn/8] |= 1 << uint(bn%8)
}

func isZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
