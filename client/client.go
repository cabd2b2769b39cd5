package client

import (
	"net/rpc"

	"github.com/aviral07-code/Stateful-Network-file-server/proto"
)

// Client issues requests on behalf of one user. A non-nil error means the
// call did not complete; operation failures are reported in the reply.
type Client struct {
	user string
	c    *rpc.Client
}

func Dial(addr, user string) (*Client, error) {
	c, err := rpc.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{user: user, c: c}, nil
}

func (c *Client) User() string {
	return c.user
}

func (c *Client) Close() error {
	return c.c.Close()
}

func (c *Client) Create(name string) (*proto.CreateReply, error) {
	reply := &proto.CreateReply{}
	return reply, c.call("Create", &proto.CreateArgs{User: c.user, File: name}, reply)
}

func (c *Client) Open(name string) (*proto.OpenReply, error) {
	reply := &proto.OpenReply{Handle: -1}
	return reply, c.call("Open", &proto.OpenArgs{User: c.user, File: name}, reply)
}

func (c *Client) Read(h, n int) (*proto.ReadReply, error) {
	reply := &proto.ReadReply{}
	return reply, c.call("Read", &proto.ReadArgs{User: c.user, Handle: h, MaxBytes: n}, reply)
}

func (c *Client) Write(h int, data []byte) (*proto.WriteReply, error) {
	reply := &proto.WriteReply{}
	return reply, c.call("Write", &proto.WriteArgs{User: c.user, Handle: h, Data: data}, reply)
}

func (c *Client) Seek(h, pos int) (*proto.SeekReply, error) {
	reply := &proto.SeekReply{}
	return reply, c.call("Seek", &proto.SeekArgs{User: c.user, Handle: h, Position: pos}, reply)
}

func (c *Client) CloseFile(h int) (*proto.CloseReply, error) {
	reply := &proto.CloseReply{}
	return reply, c.call("Close", &proto.CloseArgs{User: c.user, Handle: h}, reply)
}

func (c *Client) Delete(name string) (*proto.DeleteReply, error) {
	reply := &proto.DeleteReply{}
	return reply, c.call("Delete", &proto.DeleteArgs{User: c.user, File: name}, reply)
}

func (c *Client) List() (*proto.ListReply, error) {
	reply := &proto.ListReply{}
	return reply, c.call("List", &proto.ListArgs{User: c.user}, reply)
}

func (c *Client) call(method string, args, reply interface{}) error {
	return c.c.Call(proto.ServiceName+"."+method, args, reply)
}
