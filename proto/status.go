package proto

// Reply status codes
const (
	StatusOK                byte = 0
	StatusNotFound          byte = 1
	StatusAlreadyExists     byte = 2
	StatusTooManyUsers      byte = 3
	StatusTooManyFiles      byte = 4
	StatusTableFull         byte = 5
	StatusNoSpace           byte = 6
	StatusInvalidDescriptor byte = 7
	StatusInvalidPosition   byte = 8
	StatusOutOfRange        byte = 9
	StatusNothingToRead     byte = 10
	StatusNothingToWrite    byte = 11
	StatusEndOfFile         byte = 12
	StatusFileFull          byte = 13
	StatusFileInUse         byte = 14
	StatusInvalidName       byte = 15
	StatusIOError           byte = 16
	StatusInternal          byte = 17
)

// ServiceName is the name the receiver is registered under.
const ServiceName = "SSNFS"
