package evaluator

// Persistent bit-partitioned vector trie.
// Backs List values: append, index and slice never invalidate an
// existing reference, so lists can be shared across threads freely.

const (
	vecBits  = 5
	vecWidth = 1 << vecBits // 32
	vecMask  = vecWidth - 1
)

// vecNode children hold either *vecNode (interior) or Object (leaf level).
type vecNode struct {
	array [vecWidth]interface{}
}

type PersistentVector struct {
	count int
	shift uint
	root  *vecNode
	tail  []Object
}

var emptyVecNode = &vecNode{}

// EmptyVector returns the empty persistent vector.
func EmptyVector() *PersistentVector {
	return &PersistentVector{count: 0, shift: vecBits, root: emptyVecNode}
}

// VectorFrom builds a persistent vector from a slice.
func VectorFrom(elements []Object) *PersistentVector {
	v := EmptyVector()
	for _, el := range elements {
		v = v.Append(el)
	}
	return v
}

// Len returns the number of elements.
func (v *PersistentVector) Len() int { return v.count }

func (v *PersistentVector) tailoff() int {
	if v.count < vecWidth {
		return 0
	}
	return ((v.count - 1) >> vecBits) << vecBits
}

// Get returns the element at index i, or nil when out of range.
func (v *PersistentVector) Get(i int) Object {
	if i < 0 || i >= v.count {
		return nil
	}
	if i >= v.tailoff() {
		return v.tail[i-v.tailoff()]
	}
	node := v.root
	for level := v.shift; level > 0; level -= vecBits {
		node = node.array[(i>>level)&vecMask].(*vecNode)
	}
	return node.array[i&vecMask].(Object)
}

// Append returns a new vector with o added at the end.
func (v *PersistentVector) Append(o Object) *PersistentVector {
	// Room in the tail block
	if v.count-v.tailoff() < vecWidth {
		newTail := make([]Object, len(v.tail)+1)
		copy(newTail, v.tail)
		newTail[len(v.tail)] = o
		return &PersistentVector{count: v.count + 1, shift: v.shift, root: v.root, tail: newTail}
	}

	// Tail is full: push it down into the trie
	tailNode := &vecNode{}
	for i, el := range v.tail {
		tailNode.array[i] = el
	}

	newShift := v.shift
	var newRoot *vecNode
	if (v.count >> vecBits) > (1 << v.shift) {
		// Root overflow: grow a level
		newRoot = &vecNode{}
		newRoot.array[0] = v.root
		newRoot.array[1] = newPath(v.shift, tailNode)
		newShift = v.shift + vecBits
	} else {
		newRoot = v.pushTail(v.shift, v.root, tailNode)
	}
	return &PersistentVector{count: v.count + 1, shift: newShift, root: newRoot, tail: []Object{o}}
}

func newPath(level uint, node *vecNode) *vecNode {
	if level == 0 {
		return node
	}
	ret := &vecNode{}
	ret.array[0] = newPath(level-vecBits, node)
	return ret
}

func (v *PersistentVector) pushTail(level uint, parent *vecNode, tailNode *vecNode) *vecNode {
	subidx := ((v.count - 1) >> level) & vecMask
	ret := &vecNode{array: parent.array} // fixed array copies by value
	var nodeToInsert *vecNode
	if level == vecBits {
		nodeToInsert = tailNode
	} else if child, ok := parent.array[subidx].(*vecNode); ok && child != nil {
		nodeToInsert = v.pushTail(level-vecBits, child, tailNode)
	} else {
		nodeToInsert = newPath(level-vecBits, tailNode)
	}
	ret.array[subidx] = nodeToInsert
	return ret
}

// ToSlice copies the elements out in order.
func (v *PersistentVector) ToSlice() []Object {
	out := make([]Object, 0, v.count)
	for i := 0; i < v.count; i++ {
		out = append(out, v.Get(i))
	}
	return out
}

// Slice returns a new vector holding elements [from, v.Len()).
func (v *PersistentVector) Slice(from int) *PersistentVector {
	if from <= 0 {
		return v
	}
	out := EmptyVector()
	for i := from; i < v.count; i++ {
		out = out.Append(v.Get(i))
	}
	return out
}
