package meta

import (
	"github.com/aviral07-code/Stateful-Network-file-server/bitmap"
	"github.com/aviral07-code/Stateful-Network-file-server/directory"
	"github.com/aviral07-code/Stateful-Network-file-server/disk"
	"github.com/nnsgmsone/damrey/logger"
)

// Store owns the block bitmap and the directory. A mutation is visible only
// once it has been persisted; on any failure the previous state is restored.
type Store interface {
	Load() error
	Save() error
	Used(int64) bool
	FindUser(string) *directory.User
	FindFile(string, string) (directory.File, error)
	Extent(string, string) (int64, int64, error)
	Create(string, string) (directory.File, error)
	Delete(string, string) (directory.File, error)
	List(string) []string
}

type store struct {
	d   disk.Disk
	log logger.Log
	bm  bitmap.Bitmap
	dir directory.Directory
}
