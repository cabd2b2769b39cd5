package bitmap

import "github.com/aviral07-code/Stateful-Network-file-server/constant"

const (
	SumSize = 4
	MapSize = constant.TotalBlocks / 8
)

// Bitmap tracks block occupancy, one bit per block of the image.
type Bitmap interface {
	Used(int64) bool
	Count() int64
	Alloc() (int64, error)
	Free(int64)
	Reserve(int64)
	Clone() Bitmap
	Marshal() []byte
}

type bitmap struct {
	bs [MapSize]byte
}
