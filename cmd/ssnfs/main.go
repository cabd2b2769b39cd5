package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/user"

	"github.com/aviral07-code/Stateful-Network-file-server/client"
	"github.com/aviral07-code/Stateful-Network-file-server/proto"
)

func main() {
	name := "unknown"
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	flag.StringVar(&name, "user", name, "user name sent with every request")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-user name] server_host:port\n", os.Args[0])
		os.Exit(1)
	}
	c, err := client.Dial(flag.Arg(0), name)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()
	fmt.Printf("Connected to %s as %s\n", flag.Arg(0), c.User())
	if err := demo(&shell{c}); err != nil {
		log.Fatal(err)
	}
}

// shell prints every reply the way the interactive client does.
type shell struct {
	c *client.Client
}

func (s *shell) create(name string) (bool, error) {
	r, err := s.c.Create(name)
	if err != nil {
		return false, err
	}
	fmt.Printf("Create: %s\n", r.Message)
	return r.Success, nil
}

func (s *shell) open(name string) (int, error) {
	r, err := s.c.Open(name)
	if err != nil {
		return -1, err
	}
	fmt.Printf("Open: %s\n", r.Message)
	return r.Handle, nil
}

func (s *shell) write(h int, data string) (int, error) {
	r, err := s.c.Write(h, []byte(data))
	if err != nil {
		return -1, err
	}
	fmt.Printf("Write: %s\n", r.Message)
	if !r.Success {
		return -1, nil
	}
	return r.BytesWritten, nil
}

func (s *shell) read(h, n int) (string, bool, error) {
	r, err := s.c.Read(h, n)
	if err != nil {
		return "", false, err
	}
	if !r.Success {
		fmt.Printf("Read error: %s\n", r.Message)
		return "", false, nil
	}
	return string(r.Data), true, nil
}

func (s *shell) seek(h, pos int) (bool, error) {
	r, err := s.c.Seek(h, pos)
	if err != nil {
		return false, err
	}
	if !r.Success {
		fmt.Printf("Seek error: %s\n", r.Message)
	}
	return r.Success, nil
}

func (s *shell) close(h int) error {
	r, err := s.c.CloseFile(h)
	if err != nil {
		return err
	}
	fmt.Printf("Close: %s\n", r.Message)
	return nil
}

func (s *shell) list() error {
	r, err := s.c.List()
	if err != nil {
		return err
	}
	fmt.Printf("List:\n%s\n", r.Message)
	return nil
}

func (s *shell) delete(name string) error {
	r, err := s.c.Delete(name)
	if err != nil {
		return err
	}
	fmt.Printf("Delete: %s\n", r.Message)
	if r.Status == proto.StatusFileInUse {
		fmt.Printf("%s is still open\n", name)
	}
	return nil
}

func demo(s *shell) error {
	for _, name := range []string{"File1", "File2", "File3"} {
		ok, err := s.create(name)
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("%s created\n", name)
		} else {
			fmt.Printf("%s not created\n", name)
		}
	}

	var fds [3]int
	for i, name := range []string{"File1", "File2", "File3"} {
		fd, err := s.open(name)
		if err != nil {
			return err
		}
		if fd < 0 {
			return fmt.Errorf("failed to open %s", name)
		}
		fds[i] = fd
	}
	fd1, fd2, fd3 := fds[0], fds[1], fds[2]

	for i := 0; i < 20; i++ {
		if n, err := s.write(fd1, "This is a test program for cs570 assignment 4"); err != nil {
			return err
		} else if n < 0 {
			fmt.Printf("Write to File1 failed at iteration %d\n", i)
			break
		}
	}
	if err := s.close(fd1); err != nil {
		return err
	}
	if _, ok, err := s.read(fd1, 20); err != nil {
		return err
	} else if !ok {
		fmt.Println("As expected: Read on closed fd1 failed")
	}

	fd4, err := s.open("File1")
	if err != nil {
		return err
	}
	if fd4 < 0 {
		return fmt.Errorf("failed to reopen File1")
	}
	if err := s.dump(fd4, 20, 20); err != nil {
		return err
	}

	for i := 0; i < 50; i++ {
		if n, err := s.write(fd2, "Welcome to University of Kentucky"); err != nil {
			return err
		} else if n < 0 {
			fmt.Printf("Write to File2 failed at iteration %d\n", i)
			break
		}
	}
	if _, err := s.seek(fd2, 0); err != nil {
		return err
	}
	if err := s.dump(fd2, 20, 20); err != nil {
		return err
	}
	if ok, err := s.seek(fd2, 40); err != nil {
		return err
	} else if ok {
		if err := s.dump(fd2, 20, 1); err != nil {
			return err
		}
	}

	if err := s.close(fd2); err != nil {
		return err
	}
	if err := s.list(); err != nil {
		return err
	}
	if err := s.delete("File1"); err != nil {
		return err
	}
	if err := s.list(); err != nil {
		return err
	}
	if err := s.close(fd3); err != nil {
		return err
	}
	return s.close(fd4)
}

// dump prints up to count chunks of n bytes read from h.
func (s *shell) dump(h, n, count int) error {
	for i := 0; i < count; i++ {
		data, ok, err := s.read(h, n)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		fmt.Println(data)
	}
	return nil
}
