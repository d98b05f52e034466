package evaluator

import (
	"database/sql"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Runtime handles are opaque tokens owned by the runtime. The values
// are shared by reference; the underlying state is the only mutable
// state in the system besides thunk caches and cancellation flags, and
// it is always mutex-guarded.

// channelState is the shared queue behind a (send, recv) handle pair.
type channelState struct {
	mu     sync.Mutex
	items  []Object
	closed bool
}

// SendHandle is the sending endpoint of a channel.
type SendHandle struct {
	ID uuid.UUID
	ch *channelState
}

func (s *SendHandle) Type() ObjectType { return SEND_OBJ }
func (s *SendHandle) Inspect() string  { return "<send " + s.ID.String()[:8] + ">" }
func (s *SendHandle) Hash() uint32     { return hashString(s.ID.String()) }

// RecvHandle is the receiving endpoint of a channel.
type RecvHandle struct {
	ID uuid.UUID
	ch *channelState
}

func (r *RecvHandle) Type() ObjectType { return RECV_OBJ }
func (r *RecvHandle) Inspect() string  { return "<recv " + r.ID.String()[:8] + ">" }
func (r *RecvHandle) Hash() uint32     { return hashString(r.ID.String()) }

// FileHandle is an open file owned by the runtime.
type FileHandle struct {
	ID   uuid.UUID
	Path string
	mu   sync.Mutex
	file *os.File
}

func (f *FileHandle) Type() ObjectType { return FILE_OBJ }
func (f *FileHandle) Inspect() string  { return "<file " + f.Path + ">" }
func (f *FileHandle) Hash() uint32     { return hashString(f.ID.String()) }

// DBHandle is an open database connection owned by the runtime.
type DBHandle struct {
	ID   uuid.UUID
	Path string
	db   *sql.DB
}

func (d *DBHandle) Type() ObjectType { return DB_OBJ }
func (d *DBHandle) Inspect() string  { return "<db " + d.Path + ">" }
func (d *DBHandle) Hash() uint32     { return hashString(d.ID.String()) }
