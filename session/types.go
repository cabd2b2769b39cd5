package session

// Session is one open-file context. Sessions live only in memory.
type Session struct {
	Handle int
	User   string
	File   string
	Start  int64 // first block of the file's extent
	Cursor int64
}

type Table interface {
	Len() int
	Get(int) (*Session, error)
	Open(string, string, int64) (*Session, error)
	Close(int) error
	InUse(string, string) bool
}

type table struct {
	next int
	mp   map[int]*Session
}
