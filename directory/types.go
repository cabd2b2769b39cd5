package directory

import "github.com/aviral07-code/Stateful-Network-file-server/constant"

const (
	SumSize      = 4
	FileSlotSize = constant.NameSize + 4 // name + start block (int32)
	UserSlotSize = 1 + constant.NameSize + constant.MaxFilesPerUser*FileSlotSize
	RegionSize   = SumSize + constant.MaxUsers*UserSlotSize
)

// the directory region must fit in its reserved block
var _ [constant.BlockSize - RegionSize]struct{}

type Directory interface {
	Len() int
	Users() []*User
	FindUser(string) *User
	FindOrCreateUser(string) (*User, error)
	Clone() Directory
	Marshal() []byte
}

// File is a named extent; Start is constant.Unallocated until blocks are assigned.
type File struct {
	Name  string
	Start int64
}

type User struct {
	Name  string
	files map[string]*File
}

type directory struct {
	users map[string]*User
}
