package constant

const (
	BlockSize   = 4096             // 4k
	DiskSize    = 16 * 1024 * 1024 // 16MB
	TotalBlocks = DiskSize / BlockSize
)

const (
	BitmapBlock    = int64(0)
	DirectoryBlock = int64(1)
	FirstDataBlock = int64(2)
)

const (
	BlocksPerFile = 8
	FileMaxSize   = BlocksPerFile * BlockSize
)

const (
	MaxUsers        = 10
	MaxFilesPerUser = 10
	MaxOpenSessions = 20
)

const (
	NameSize    = 32 // bytes reserved for a user or file name on disk
	Unallocated = int64(-1)
	FirstHandle = 3
)

const (
	ImageName = "virtual_disk.bin"
)
