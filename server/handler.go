package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aviral07-code/Stateful-Network-file-server/errmsg"
	"github.com/aviral07-code/Stateful-Network-file-server/proto"
)

func (h *handler) Create(args *proto.CreateArgs, reply *proto.CreateReply) error {
	err := h.svc.Create(args.User, args.File)
	reply.Status, reply.Message = describe(err, "File created", "Storage error")
	reply.Success = err == nil
	return nil
}

func (h *handler) Open(args *proto.OpenArgs, reply *proto.OpenReply) error {
	fd, err := h.svc.Open(args.User, args.File)
	reply.Status, reply.Message = describe(err, "File opened", "Storage error")
	reply.Handle = -1
	if err == nil {
		reply.Handle = fd
	}
	return nil
}

func (h *handler) Read(args *proto.ReadArgs, reply *proto.ReadReply) error {
	data, err := h.svc.Read(args.Handle, args.MaxBytes)
	reply.Status, reply.Message = describe(err, "Read ok", "Read error")
	if errors.Is(err, errmsg.OutOfRange) {
		reply.Message = "Read offset out of range"
	}
	reply.Success = err == nil
	reply.Data = data
	return nil
}

func (h *handler) Write(args *proto.WriteArgs, reply *proto.WriteReply) error {
	n, err := h.svc.Write(args.Handle, args.Data)
	reply.Status, reply.Message = describe(err, fmt.Sprintf("Write ok (%d bytes)", n), "Write error")
	if errors.Is(err, errmsg.OutOfRange) {
		reply.Message = "Write offset out of range"
	}
	reply.Success = err == nil
	reply.BytesWritten = n
	return nil
}

func (h *handler) Seek(args *proto.SeekArgs, reply *proto.SeekReply) error {
	err := h.svc.Seek(args.Handle, args.Position)
	reply.Status, reply.Message = describe(err, "Seek ok", "Storage error")
	reply.Success = err == nil
	return nil
}

func (h *handler) Close(args *proto.CloseArgs, reply *proto.CloseReply) error {
	err := h.svc.CloseFile(args.Handle)
	reply.Status, reply.Message = describe(err, "File closed", "Storage error")
	return nil
}

func (h *handler) Delete(args *proto.DeleteArgs, reply *proto.DeleteReply) error {
	err := h.svc.Delete(args.User, args.File)
	reply.Status, reply.Message = describe(err, "File deleted", "Storage error")
	return nil
}

func (h *handler) List(args *proto.ListArgs, reply *proto.ListReply) error {
	names, err := h.svc.List(args.User)
	if err != nil {
		reply.Status, reply.Message = describe(err, "", "Storage error")
		return nil
	}
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	reply.Status, reply.Message = proto.StatusOK, b.String()
	return nil
}

// describe maps an operation result to a status code and the message sent
// back to the client.
func describe(err error, ok, ioMsg string) (byte, string) {
	switch {
	case err == nil:
		return proto.StatusOK, ok
	case errors.Is(err, errmsg.UserNotFound):
		return proto.StatusNotFound, "User directory not found"
	case errors.Is(err, errmsg.FileNotFound):
		return proto.StatusNotFound, "File not found"
	case errors.Is(err, errmsg.AlreadyExists):
		return proto.StatusAlreadyExists, "File already exists"
	case errors.Is(err, errmsg.TooManyUsers):
		return proto.StatusTooManyUsers, "Too many users"
	case errors.Is(err, errmsg.TooManyFiles):
		return proto.StatusTooManyFiles, "Max files per user reached"
	case errors.Is(err, errmsg.TableFull):
		return proto.StatusTableFull, "Open file table full"
	case errors.Is(err, errmsg.NoSpace):
		return proto.StatusNoSpace, "No space on disk"
	case errors.Is(err, errmsg.InvalidDescriptor):
		return proto.StatusInvalidDescriptor, "Invalid file descriptor"
	case errors.Is(err, errmsg.InvalidPosition):
		return proto.StatusInvalidPosition, "Invalid position"
	case errors.Is(err, errmsg.OutOfRange):
		return proto.StatusOutOfRange, "Offset out of range"
	case errors.Is(err, errmsg.NothingToRead):
		return proto.StatusNothingToRead, "Nothing to read"
	case errors.Is(err, errmsg.NothingToWrite):
		return proto.StatusNothingToWrite, "Nothing to write"
	case errors.Is(err, errmsg.EndOfFile):
		return proto.StatusEndOfFile, "End of file"
	case errors.Is(err, errmsg.FileFull):
		return proto.StatusFileFull, "No space left in file"
	case errors.Is(err, errmsg.FileInUse):
		return proto.StatusFileInUse, "Cannot delete open file"
	case errors.Is(err, errmsg.NameIsEmpty):
		return proto.StatusInvalidName, "Name is empty"
	case errors.Is(err, errmsg.NameTooLong):
		return proto.StatusInvalidName, "Name too long"
	case errors.Is(err, errmsg.InvalidName):
		return proto.StatusInvalidName, "Invalid name"
	case errors.Is(err, errmsg.IOError), errors.Is(err, errmsg.ImageLocked):
		return proto.StatusIOError, ioMsg
	case errors.Is(err, errmsg.Closed):
		return proto.StatusInternal, "Server closed"
	}
	return proto.StatusInternal, "Internal error"
}
