package evaluator

import (
	"math/bits"
	"sort"
	"strings"
)

// Persistent Hash Array Mapped Trie (HAMT).
// Backs Map and Set values: Put/Remove return a new map sharing
// structure with the old one, so concurrent readers never race.

const (
	hamtBits = 5
	hamtSize = 1 << hamtBits // 32
	hamtMask = hamtSize - 1
)

// PersistentMap is an immutable hash map keyed by object value equality.
type PersistentMap struct {
	root  *hamtNode
	count int
}

// hamtNode is a node in the HAMT.
type hamtNode struct {
	bitmap uint32        // which indices are populated
	nodes  []interface{} // hamtEntry or *hamtNode
}

// hamtEntry holds a key-value pair.
type hamtEntry struct {
	hash  uint32
	key   Object
	value Object
}

// EmptyMap returns an empty persistent map.
func EmptyMap() *PersistentMap {
	return &PersistentMap{}
}

func popcount(x uint32) int { return bits.OnesCount32(x) }

// Len returns the number of entries.
func (m *PersistentMap) Len() int { return m.count }

// Get returns the value for a key, or nil if not found.
func (m *PersistentMap) Get(key Object) Object {
	if m.root == nil {
		return nil
	}
	return m.root.get(key.Hash(), key, 0)
}

// Contains checks if a key exists.
func (m *PersistentMap) Contains(key Object) bool {
	return m.Get(key) != nil
}

// Put returns a new map with the key-value pair added or updated.
func (m *PersistentMap) Put(key, value Object) *PersistentMap {
	hash := key.Hash()

	var newRoot *hamtNode
	var added bool
	if m.root == nil {
		newRoot, added = (&hamtNode{}).put(hash, key, value, 0)
	} else {
		newRoot, added = m.root.put(hash, key, value, 0)
	}

	newCount := m.count
	if added {
		newCount++
	}
	return &PersistentMap{root: newRoot, count: newCount}
}

// Remove returns a new map with the key removed.
func (m *PersistentMap) Remove(key Object) *PersistentMap {
	if m.root == nil {
		return m
	}
	newRoot, removed := m.root.remove(key.Hash(), key, 0)
	if !removed {
		return m
	}
	return &PersistentMap{root: newRoot, count: m.count - 1}
}

// Items returns all key-value pairs.
func (m *PersistentMap) Items() []struct{ Key, Value Object } {
	items := make([]struct{ Key, Value Object }, 0, m.count)
	if m.root != nil {
		m.root.collectItems(&items)
	}
	return items
}

// Keys returns all keys.
func (m *PersistentMap) Keys() []Object {
	items := m.Items()
	keys := make([]Object, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return keys
}

// inspectEntries renders entries sorted by key text so Inspect is
// deterministic regardless of trie layout.
func (m *PersistentMap) inspectEntries(sep string) string {
	items := m.Items()
	parts := make([]string, len(items))
	for i, it := range items {
		if sep == "" {
			parts[i] = it.Key.Inspect()
		} else {
			parts[i] = it.Key.Inspect() + sep + it.Value.Inspect()
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// --- hamtNode methods ---

func (n *hamtNode) get(hash uint32, key Object, shift uint) Object {
	if shift >= 32 {
		// Collision bucket search
		for _, node := range n.nodes {
			if entry, ok := node.(hamtEntry); ok && ObjectsEqual(entry.key, key) {
				return entry.value
			}
		}
		return nil
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx
	if n.bitmap&bit == 0 {
		return nil
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := n.nodes[pos].(type) {
	case hamtEntry:
		if v.hash == hash && ObjectsEqual(v.key, key) {
			return v.value
		}
		return nil
	case *hamtNode:
		return v.get(hash, key, shift+hamtBits)
	}
	return nil
}

func (n *hamtNode) put(hash uint32, key, value Object, shift uint) (*hamtNode, bool) {
	// Past the hash bits: collision bucket of entries with equal hashes.
	if shift >= 32 {
		newNode := &hamtNode{bitmap: n.bitmap, nodes: make([]interface{}, len(n.nodes))}
		copy(newNode.nodes, n.nodes)
		for i, node := range newNode.nodes {
			if entry, ok := node.(hamtEntry); ok && ObjectsEqual(entry.key, key) {
				newNode.nodes[i] = hamtEntry{hash: hash, key: key, value: value}
				return newNode, false
			}
		}
		newNode.nodes = append(newNode.nodes, hamtEntry{hash: hash, key: key, value: value})
		return newNode, true
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx

	newNode := &hamtNode{bitmap: n.bitmap, nodes: make([]interface{}, len(n.nodes))}
	copy(newNode.nodes, n.nodes)

	if n.bitmap&bit == 0 {
		newNode.bitmap |= bit
		pos := popcount(newNode.bitmap & (bit - 1))
		newNode.nodes = append(newNode.nodes, nil)
		copy(newNode.nodes[pos+1:], newNode.nodes[pos:])
		newNode.nodes[pos] = hamtEntry{hash: hash, key: key, value: value}
		return newNode, true
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := newNode.nodes[pos].(type) {
	case hamtEntry:
		if v.hash == hash && ObjectsEqual(v.key, key) {
			newNode.nodes[pos] = hamtEntry{hash: hash, key: key, value: value}
			return newNode, false
		}
		// Partial collision: push both entries one level down
		child := &hamtNode{}
		child, _ = child.put(v.hash, v.key, v.value, shift+hamtBits)
		child, _ = child.put(hash, key, value, shift+hamtBits)
		newNode.nodes[pos] = child
		return newNode, true
	case *hamtNode:
		newChild, added := v.put(hash, key, value, shift+hamtBits)
		newNode.nodes[pos] = newChild
		return newNode, added
	}
	return newNode, false
}

func (n *hamtNode) remove(hash uint32, key Object, shift uint) (*hamtNode, bool) {
	if shift >= 32 {
		for i, node := range n.nodes {
			if entry, ok := node.(hamtEntry); ok && ObjectsEqual(entry.key, key) {
				newNode := &hamtNode{bitmap: n.bitmap, nodes: make([]interface{}, len(n.nodes)-1)}
				copy(newNode.nodes[:i], n.nodes[:i])
				copy(newNode.nodes[i:], n.nodes[i+1:])
				return newNode, true
			}
		}
		return n, false
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx
	if n.bitmap&bit == 0 {
		return n, false
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := n.nodes[pos].(type) {
	case hamtEntry:
		if v.hash == hash && ObjectsEqual(v.key, key) {
			newNode := &hamtNode{bitmap: n.bitmap &^ bit, nodes: make([]interface{}, len(n.nodes)-1)}
			copy(newNode.nodes[:pos], n.nodes[:pos])
			copy(newNode.nodes[pos:], n.nodes[pos+1:])
			return newNode, true
		}
		return n, false
	case *hamtNode:
		newChild, removed := v.remove(hash, key, shift+hamtBits)
		if !removed {
			return n, false
		}
		if len(newChild.nodes) == 0 {
			newNode := &hamtNode{bitmap: n.bitmap &^ bit, nodes: make([]interface{}, len(n.nodes)-1)}
			copy(newNode.nodes[:pos], n.nodes[:pos])
			copy(newNode.nodes[pos:], n.nodes[pos+1:])
			return newNode, true
		}
		// Single-entry child collapses back into this level
		if len(newChild.nodes) == 1 {
			if entry, ok := newChild.nodes[0].(hamtEntry); ok {
				newNode := &hamtNode{bitmap: n.bitmap, nodes: make([]interface{}, len(n.nodes))}
				copy(newNode.nodes, n.nodes)
				newNode.nodes[pos] = entry
				return newNode, true
			}
		}
		newNode := &hamtNode{bitmap: n.bitmap, nodes: make([]interface{}, len(n.nodes))}
		copy(newNode.nodes, n.nodes)
		newNode.nodes[pos] = newChild
		return newNode, true
	}
	return n, false
}

func (n *hamtNode) collectItems(items *[]struct{ Key, Value Object }) {
	for _, node := range n.nodes {
		switch v := node.(type) {
		case hamtEntry:
			*items = append(*items, struct{ Key, Value Object }{v.key, v.value})
		case *hamtNode:
			v.collectItems(items)
		}
	}
}
