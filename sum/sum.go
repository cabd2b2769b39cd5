package sum

import (
	"hash/crc32"
)

var table = crc32.MakeTable(crc32.Castagnoli)

func Sum(data []byte) uint32 {
	return crc32.Checksum(data, table)
}

func Verify(data []byte, s uint32) bool {
	return Sum(data) == s
}
