package session

import (
	"github.com/aviral07-code/Stateful-Network-file-server/constant"
	"github.com/aviral07-code/Stateful-Network-file-server/errmsg"
)

func New() *table {
	return &table{
		next: constant.FirstHandle,
		mp:   make(map[int]*Session),
	}
}

func (t *table) Len() int {
	return len(t.mp)
}

func (t *table) Get(h int) (*Session, error) {
	if ss, ok := t.mp[h]; ok {
		return ss, nil
	}
	return nil, errmsg.InvalidDescriptor
}

// Open registers a session at cursor 0 under a handle never handed out before.
func (t *table) Open(user, file string, start int64) (*Session, error) {
	if len(t.mp) >= constant.MaxOpenSessions {
		return nil, errmsg.TableFull
	}
	ss := &Session{
		Handle: t.next,
		User:   user,
		File:   file,
		Start:  start,
	}
	t.mp[ss.Handle] = ss
	t.next++
	return ss, nil
}

func (t *table) Close(h int) error {
	if _, ok := t.mp[h]; !ok {
		return errmsg.InvalidDescriptor
	}
	delete(t.mp, h)
	return nil
}

func (t *table) InUse(user, file string) bool {
	for _, ss := range t.mp {
		if ss.User == user && ss.File == file {
			return true
		}
	}
	return false
}
