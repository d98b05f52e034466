package evaluator

import "hash/fnv"

type ObjectType string

const (
	UNIT_OBJ        = "UNIT"
	BOOLEAN_OBJ     = "BOOLEAN"
	INTEGER_OBJ     = "INTEGER"
	FLOAT_OBJ       = "FLOAT"
	TEXT_OBJ        = "TEXT"
	BYTES_OBJ       = "BYTES"
	DATETIME_OBJ    = "DATETIME"
	BIG_INT_OBJ     = "BIG_INT"
	RATIONAL_OBJ    = "RATIONAL"
	DECIMAL_OBJ     = "DECIMAL"
	SIGIL_OBJ       = "SIGIL"
	LIST_OBJ        = "LIST"
	TUPLE_OBJ       = "TUPLE"
	RECORD_OBJ      = "RECORD"
	MAP_OBJ         = "MAP"
	SET_OBJ         = "SET"
	QUEUE_OBJ       = "QUEUE"
	DEQUE_OBJ       = "DEQUE"
	HEAP_OBJ        = "HEAP"
	CONSTRUCTOR_OBJ = "CONSTRUCTOR"
	CLOSURE_OBJ     = "CLOSURE"
	BUILTIN_OBJ     = "BUILTIN"
	MULTICLAUSE_OBJ = "MULTICLAUSE"
	THUNK_OBJ       = "THUNK"
	EFFECT_OBJ      = "EFFECT"
	RESOURCE_OBJ    = "RESOURCE"
	SEND_OBJ        = "SEND_HANDLE"
	RECV_OBJ        = "RECV_HANDLE"
	FILE_OBJ        = "FILE_HANDLE"
	DB_OBJ          = "DB_HANDLE"
	ERROR_OBJ       = "ERROR"
)

// Object is the runtime representation of every value the language can
// produce. Objects are immutable once constructed: "mutation" of any
// container allocates a new persistent structure, so values can be
// shared freely across closures and threads without locking.
type Object interface {
	Type() ObjectType
	Inspect() string
	Hash() uint32
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
