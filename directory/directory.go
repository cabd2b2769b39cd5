package directory

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/aviral07-code/Stateful-Network-file-server/constant"
	"github.com/aviral07-code/Stateful-Network-file-server/errmsg"
	"github.com/aviral07-code/Stateful-Network-file-server/sum"
)

func New() *directory {
	return &directory{users: make(map[string]*User)}
}

func (d *directory) Len() int {
	return len(d.users)
}

func (d *directory) Users() []*User {
	us := make([]*User, 0, len(d.users))
	for _, u := range d.users {
		us = append(us, u)
	}
	sort.Slice(us, func(i, j int) bool { return us[i].Name < us[j].Name })
	return us
}

func (d *directory) FindUser(name string) *User {
	return d.users[name]
}

func (d *directory) FindOrCreateUser(name string) (*User, error) {
	if u, ok := d.users[name]; ok {
		return u, nil
	}
	if len(d.users) >= constant.MaxUsers {
		return nil, errmsg.TooManyUsers
	}
	u := newUser(name)
	d.users[name] = u
	return u, nil
}

func (d *directory) Clone() Directory {
	c := New()
	for name, u := range d.users {
		cu := newUser(u.Name)
		for fn, f := range u.files {
			cf := *f
			cu.files[fn] = &cf
		}
		c.users[name] = cu
	}
	return c
}

func (u *User) Len() int {
	return len(u.files)
}

func (u *User) FindFile(name string) *File {
	return u.files[name]
}

// CreateFile adds an unallocated entry for name.
func (u *User) CreateFile(name string) (*File, error) {
	if _, ok := u.files[name]; ok {
		return nil, errmsg.AlreadyExists
	}
	if len(u.files) >= constant.MaxFilesPerUser {
		return nil, errmsg.TooManyFiles
	}
	f := &File{Name: name, Start: constant.Unallocated}
	u.files[name] = f
	return f, nil
}

func (u *User) RemoveFile(name string) {
	delete(u.files, name)
}

func (u *User) Files() []*File {
	fs := make([]*File, 0, len(u.files))
	for _, f := range u.files {
		fs = append(fs, f)
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].Name < fs[j].Name })
	return fs
}

// Marshal encodes every user into a fixed slot, unused slots left zero.
func (d *directory) Marshal() []byte {
	buf := make([]byte, constant.BlockSize)
	o := SumSize
	for _, u := range d.Users() {
		buf[o] = 1
		copy(buf[o+1:o+1+constant.NameSize], u.Name)
		fo := o + 1 + constant.NameSize
		for _, f := range u.Files() {
			copy(buf[fo:fo+constant.NameSize], f.Name)
			binary.LittleEndian.PutUint32(buf[fo+constant.NameSize:], uint32(int32(f.Start)))
			fo += FileSlotSize
		}
		o += UserSlotSize
	}
	binary.LittleEndian.PutUint32(buf, sum.Sum(buf[SumSize:RegionSize]))
	return buf
}

// Unmarshal decodes a directory region. ok is false when the region was never
// written (all zero); a checksum or layout violation, including two extents
// sharing a block, returns errmsg.Corrupted.
func Unmarshal(buf []byte) (*directory, bool, error) {
	if len(buf) < RegionSize {
		return nil, false, errmsg.Corrupted
	}
	if isZero(buf[:RegionSize]) {
		return nil, false, nil
	}
	if !sum.Verify(buf[SumSize:RegionSize], binary.LittleEndian.Uint32(buf)) {
		return nil, false, errmsg.Corrupted
	}
	var owned [constant.TotalBlocks]bool
	d := New()
	for i := 0; i < constant.MaxUsers; i++ {
		o := SumSize + i*UserSlotSize
		if buf[o] == 0 {
			continue
		}
		name := cstring(buf[o+1 : o+1+constant.NameSize])
		if name == "" {
			return nil, false, errmsg.Corrupted
		}
		if _, ok := d.users[name]; ok {
			return nil, false, errmsg.Corrupted
		}
		u := newUser(name)
		for j := 0; j < constant.MaxFilesPerUser; j++ {
			fo := o + 1 + constant.NameSize + j*FileSlotSize
			fn := cstring(buf[fo : fo+constant.NameSize])
			if fn == "" {
				continue
			}
			start := int64(int32(binary.LittleEndian.Uint32(buf[fo+constant.NameSize:])))
			if start != constant.Unallocated &&
				(start < constant.FirstDataBlock || start+constant.BlocksPerFile > constant.TotalBlocks) {
				return nil, false, errmsg.Corrupted
			}
			if _, ok := u.files[fn]; ok {
				return nil, false, errmsg.Corrupted
			}
			if start != constant.Unallocated {
				for bn := start; bn < start+constant.BlocksPerFile; bn++ {
					if owned[bn] {
						return nil, false, errmsg.Corrupted
					}
					owned[bn] = true
				}
			}
			u.files[fn] = &File{Name: fn, Start: start}
		}
		d.users[name] = u
	}
	return d, true, nil
}

func newUser(name string) *User {
	return &User{Name: name, files: make(map[string]*File)}
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func isZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
