package proto

// Every request carries the caller-supplied user name.

type CreateArgs struct {
	User string
	File string
}

type CreateReply struct {
	Status  byte
	Success bool
	Message string
}

type OpenArgs struct {
	User string
	File string
}

type OpenReply struct {
	Status  byte
	Handle  int // -1 on failure
	Message string
}

type ReadArgs struct {
	User     string
	Handle   int
	MaxBytes int
}

type ReadReply struct {
	Status  byte
	Success bool
	Data    []byte
	Message string
}

type WriteArgs struct {
	User   string
	Handle int
	Data   []byte
}

type WriteReply struct {
	Status       byte
	Success      bool
	BytesWritten int // stored before any failure; the cursor advanced by this much
	Message      string
}

type SeekArgs struct {
	User     string
	Handle   int
	Position int
}

type SeekReply struct {
	Status  byte
	Success bool
	Message string
}

type CloseArgs struct {
	User   string
	Handle int
}

type CloseReply struct {
	Status  byte
	Message string
}

type DeleteArgs struct {
	User string
	File string
}

type DeleteReply struct {
	Status  byte
	Message string
}

type ListArgs struct {
	User string
}

type ListReply struct {
	Status  byte
	Message string // one file name per line
}
