package evaluator

// Persistent min-heap (leftist heap). Push and Pop return new heaps
// sharing structure with the old one. Elements must be mutually
// ordered by CompareObjects; the builtin surface rejects mixed
// incomparable elements before they reach the heap.

type heapNode struct {
	rank  int
	value Object
	left  *heapNode
	right *heapNode
}

func heapRank(n *heapNode) int {
	if n == nil {
		return 0
	}
	return n.rank
}

func heapMerge(a, b *heapNode) (*heapNode, bool) {
	if a == nil {
		return b, true
	}
	if b == nil {
		return a, true
	}
	cmp, ok := CompareObjects(a.value, b.value)
	if !ok {
		return nil, false
	}
	if cmp > 0 {
		a, b = b, a
	}
	merged, ok := heapMerge(a.right, b)
	if !ok {
		return nil, false
	}
	left, right := a.left, merged
	if heapRank(left) < heapRank(right) {
		left, right = right, left
	}
	return &heapNode{rank: heapRank(right) + 1, value: a.value, left: left, right: right}, true
}

// PersistentHeap is an immutable min-heap.
type PersistentHeap struct {
	root  *heapNode
	count int
}

func EmptyHeap() *PersistentHeap { return &PersistentHeap{} }

func (h *PersistentHeap) Len() int { return h.count }

// Push returns a new heap containing o; ok is false when o is not
// comparable with the existing elements.
func (h *PersistentHeap) Push(o Object) (*PersistentHeap, bool) {
	root, ok := heapMerge(h.root, &heapNode{rank: 1, value: o})
	if !ok {
		return h, false
	}
	return &PersistentHeap{root: root, count: h.count + 1}, true
}

// Peek returns the minimum element.
func (h *PersistentHeap) Peek() (Object, bool) {
	if h.root == nil {
		return nil, false
	}
	return h.root.value, true
}

// Pop returns the minimum element and the remaining heap.
func (h *PersistentHeap) Pop() (Object, *PersistentHeap, bool) {
	if h.root == nil {
		return nil, h, false
	}
	root, ok := heapMerge(h.root.left, h.root.right)
	if !ok {
		return nil, h, false
	}
	return h.root.value, &PersistentHeap{root: root, count: h.count - 1}, true
}

// ToSortedSlice drains the heap in order. Used by equality and Inspect.
func (h *PersistentHeap) ToSortedSlice() []Object {
	out := make([]Object, 0, h.count)
	cur := h
	for {
		v, rest, ok := cur.Pop()
		if !ok {
			return out
		}
		out = append(out, v)
		cur = rest
	}
}
