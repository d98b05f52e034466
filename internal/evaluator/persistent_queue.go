package evaluator

// Persistent FIFO/deque structures built over immutable cons lists.
// Front holds elements in pop order, back holds them reversed; when the
// end being popped runs dry, the opposite list is reversed into place.
// Reversal allocates a fresh list so existing references stay valid.

type consCell struct {
	head Object
	tail *consCell
}

func consLen(c *consCell) int {
	n := 0
	for ; c != nil; c = c.tail {
		n++
	}
	return n
}

func consReverse(c *consCell) *consCell {
	var out *consCell
	for ; c != nil; c = c.tail {
		out = &consCell{head: c.head, tail: out}
	}
	return out
}

func consToSlice(c *consCell) []Object {
	var out []Object
	for ; c != nil; c = c.tail {
		out = append(out, c.head)
	}
	return out
}

// PersistentQueue is an immutable FIFO queue.
type PersistentQueue struct {
	front *consCell
	back  *consCell
	count int
}

func EmptyQueue() *PersistentQueue { return &PersistentQueue{} }

func (q *PersistentQueue) Len() int { return q.count }

// Push returns a new queue with o at the back.
func (q *PersistentQueue) Push(o Object) *PersistentQueue {
	return &PersistentQueue{front: q.front, back: &consCell{head: o, tail: q.back}, count: q.count + 1}
}

// Pop returns the front element and the remaining queue; ok is false
// when the queue is empty.
func (q *PersistentQueue) Pop() (Object, *PersistentQueue, bool) {
	if q.count == 0 {
		return nil, q, false
	}
	front := q.front
	back := q.back
	if front == nil {
		front = consReverse(back)
		back = nil
	}
	return front.head, &PersistentQueue{front: front.tail, back: back, count: q.count - 1}, true
}

// Peek returns the front element without removing it.
func (q *PersistentQueue) Peek() (Object, bool) {
	if q.count == 0 {
		return nil, false
	}
	if q.front != nil {
		return q.front.head, true
	}
	return consReverse(q.back).head, true
}

// ToSlice returns the elements front to back.
func (q *PersistentQueue) ToSlice() []Object {
	out := consToSlice(q.front)
	return append(out, consToSlice(consReverse(q.back))...)
}

// PersistentDeque is an immutable double-ended queue.
type PersistentDeque struct {
	front *consCell // front to middle
	back  *consCell // back to middle
	count int
}

func EmptyDeque() *PersistentDeque { return &PersistentDeque{} }

func (d *PersistentDeque) Len() int { return d.count }

// PushFront returns a new deque with o at the front.
func (d *PersistentDeque) PushFront(o Object) *PersistentDeque {
	return &PersistentDeque{front: &consCell{head: o, tail: d.front}, back: d.back, count: d.count + 1}
}

// PushBack returns a new deque with o at the back.
func (d *PersistentDeque) PushBack(o Object) *PersistentDeque {
	return &PersistentDeque{front: d.front, back: &consCell{head: o, tail: d.back}, count: d.count + 1}
}

// PopFront returns the front element and the remaining deque.
func (d *PersistentDeque) PopFront() (Object, *PersistentDeque, bool) {
	if d.count == 0 {
		return nil, d, false
	}
	front := d.front
	back := d.back
	if front == nil {
		front = consReverse(back)
		back = nil
	}
	return front.head, &PersistentDeque{front: front.tail, back: back, count: d.count - 1}, true
}

// PopBack returns the back element and the remaining deque.
func (d *PersistentDeque) PopBack() (Object, *PersistentDeque, bool) {
	if d.count == 0 {
		return nil, d, false
	}
	front := d.front
	back := d.back
	if back == nil {
		back = consReverse(front)
		front = nil
	}
	return back.head, &PersistentDeque{front: front, back: back.tail, count: d.count - 1}, true
}

// ToSlice returns the elements front to back.
func (d *PersistentDeque) ToSlice() []Object {
	out := consToSlice(d.front)
	return append(out, consToSlice(consReverse(d.back))...)
}
