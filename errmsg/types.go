package errmsg

import (
	"errors"
	"fmt"
)

var (
	NotFound          = errors.New("not found")
	AlreadyExists     = errors.New("already exists")
	TooManyUsers      = errors.New("too many users")
	TooManyFiles      = errors.New("too many files")
	TableFull         = errors.New("open file table full")
	NoSpace           = errors.New("no space on disk")
	InvalidDescriptor = errors.New("invalid file descriptor")
	InvalidPosition   = errors.New("invalid position")
	OutOfRange        = errors.New("offset out of range")
	NothingToRead     = errors.New("nothing to read")
	NothingToWrite    = errors.New("nothing to write")
	EndOfFile         = errors.New("end of file")
	FileFull          = errors.New("no space left in file")
	FileInUse         = errors.New("file in use")
	IOError           = errors.New("i/o error")
	ReadFailed        = errors.New("read failed")
	WriteFailed       = errors.New("write failed")
	NameIsEmpty       = errors.New("name is empty")
	NameTooLong       = errors.New("name too long")
	InvalidName       = errors.New("invalid name")
	ImageLocked       = errors.New("image locked by another process")
	Corrupted         = errors.New("metadata corrupted")
	Closed            = errors.New("server closed")
)

var (
	UserNotFound = fmt.Errorf("user directory %w", NotFound)
	FileNotFound = fmt.Errorf("file %w", NotFound)
)
