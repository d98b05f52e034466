package evaluator

import (
	"sort"
	"strings"
)

// List is an immutable ordered collection over a persistent vector.
type List struct {
	vector *PersistentVector
}

func NewList(elements []Object) *List {
	return &List{vector: VectorFrom(elements)}
}

func newListFromVector(v *PersistentVector) *List {
	return &List{vector: v}
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Len() int         { return l.vector.Len() }
func (l *List) Get(i int) Object { return l.vector.Get(i) }

func (l *List) Append(o Object) *List {
	return &List{vector: l.vector.Append(o)}
}

// Drop returns the suffix starting at index from. Used by list rest
// patterns.
func (l *List) Drop(from int) *List {
	return &List{vector: l.vector.Slice(from)}
}

func (l *List) ToSlice() []Object { return l.vector.ToSlice() }

func (l *List) Inspect() string {
	parts := make([]string, 0, l.Len())
	for _, el := range l.ToSlice() {
		parts = append(parts, el.Inspect())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) Hash() uint32 {
	h := uint32(1)
	for _, el := range l.ToSlice() {
		h = 31*h + el.Hash()
	}
	return h
}

// Tuple is a heterogeneous immutable collection.
type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = el.Inspect()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) Hash() uint32 {
	h := uint32(7)
	for _, el := range t.Elements {
		h = 31*h + el.Hash()
	}
	return h
}

// RecordEntry is one field of a record.
type RecordEntry struct {
	Key   string
	Value Object
}

// Record is a name-to-value mapping with fields kept sorted by key.
type Record struct {
	Fields []RecordEntry
}

// NewRecord builds a record from unordered fields.
func NewRecord(fields []RecordEntry) *Record {
	sorted := make([]RecordEntry, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	return &Record{Fields: sorted}
}

// Get returns the field value, or nil when absent.
func (r *Record) Get(key string) Object {
	i := sort.Search(len(r.Fields), func(i int) bool { return r.Fields[i].Key >= key })
	if i < len(r.Fields) && r.Fields[i].Key == key {
		return r.Fields[i].Value
	}
	return nil
}

func (r *Record) Type() ObjectType { return RECORD_OBJ }
func (r *Record) Inspect() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.Key + ": " + f.Value.Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (r *Record) Hash() uint32 {
	h := uint32(11)
	for _, f := range r.Fields {
		h = 31*h + hashString(f.Key)
		h = 31*h + f.Value.Hash()
	}
	return h
}

// MapObject is a persistent hash map value.
type MapObject struct {
	Map *PersistentMap
}

func (m *MapObject) Type() ObjectType { return MAP_OBJ }
func (m *MapObject) Inspect() string  { return "%{" + m.Map.inspectEntries(" => ") + "}" }
func (m *MapObject) Hash() uint32 {
	// Order-independent: combine entry hashes with addition
	h := uint32(13)
	for _, it := range m.Map.Items() {
		h += it.Key.Hash() * 31
		h += it.Value.Hash()
	}
	return h
}

// SetObject is a persistent hash set value (a HAMT with unit values).
type SetObject struct {
	Map *PersistentMap
}

func (s *SetObject) Type() ObjectType { return SET_OBJ }
func (s *SetObject) Inspect() string  { return "#{" + s.Map.inspectEntries("") + "}" }
func (s *SetObject) Hash() uint32 {
	h := uint32(17)
	for _, it := range s.Map.Items() {
		h += it.Key.Hash()
	}
	return h
}

// QueueObject is a persistent FIFO queue value.
type QueueObject struct {
	Queue *PersistentQueue
}

func (q *QueueObject) Type() ObjectType { return QUEUE_OBJ }
func (q *QueueObject) Inspect() string {
	parts := make([]string, 0, q.Queue.Len())
	for _, el := range q.Queue.ToSlice() {
		parts = append(parts, el.Inspect())
	}
	return "queue[" + strings.Join(parts, ", ") + "]"
}
func (q *QueueObject) Hash() uint32 {
	h := uint32(19)
	for _, el := range q.Queue.ToSlice() {
		h = 31*h + el.Hash()
	}
	return h
}

// DequeObject is a persistent double-ended queue value.
type DequeObject struct {
	Deque *PersistentDeque
}

func (d *DequeObject) Type() ObjectType { return DEQUE_OBJ }
func (d *DequeObject) Inspect() string {
	parts := make([]string, 0, d.Deque.Len())
	for _, el := range d.Deque.ToSlice() {
		parts = append(parts, el.Inspect())
	}
	return "deque[" + strings.Join(parts, ", ") + "]"
}
func (d *DequeObject) Hash() uint32 {
	h := uint32(23)
	for _, el := range d.Deque.ToSlice() {
		h = 31*h + el.Hash()
	}
	return h
}

// HeapObject is a persistent min-heap value.
type HeapObject struct {
	Heap *PersistentHeap
}

func (h *HeapObject) Type() ObjectType { return HEAP_OBJ }
func (h *HeapObject) Inspect() string {
	parts := make([]string, 0, h.Heap.Len())
	for _, el := range h.Heap.ToSortedSlice() {
		parts = append(parts, el.Inspect())
	}
	return "heap[" + strings.Join(parts, ", ") + "]"
}
func (h *HeapObject) Hash() uint32 {
	v := uint32(29)
	for _, el := range h.Heap.ToSortedSlice() {
		v = 31*v + el.Hash()
	}
	return v
}
