package evaluator

// Collection namespaces over the persistent containers. Every
// operation returns a new value; the argument is never invalidated.

func init() {
	registerNamespace("list", map[string]Object{
		"len":    nsBuiltin("list", "len", 1, listLen),
		"get":    nsBuiltin("list", "get", 2, listGet),
		"append": nsBuiltin("list", "append", 2, listAppend),
		"head":   nsBuiltin("list", "head", 1, listHead),
		"tail":   nsBuiltin("list", "tail", 1, listTail),
		"drop":   nsBuiltin("list", "drop", 2, listDrop),
	})

	registerNamespace("map", map[string]Object{
		"empty":    &MapObject{Map: EmptyMap()},
		"put":      nsBuiltin("map", "put", 3, mapPut),
		"get":      nsBuiltin("map", "get", 2, mapGet),
		"remove":   nsBuiltin("map", "remove", 2, mapRemove),
		"contains": nsBuiltin("map", "contains", 2, mapContains),
		"size":     nsBuiltin("map", "size", 1, mapSize),
		"keys":     nsBuiltin("map", "keys", 1, mapKeys),
	})

	registerNamespace("set", map[string]Object{
		"empty":    &SetObject{Map: EmptyMap()},
		"insert":   nsBuiltin("set", "insert", 2, setInsert),
		"remove":   nsBuiltin("set", "remove", 2, setRemove),
		"contains": nsBuiltin("set", "contains", 2, setContains),
		"size":     nsBuiltin("set", "size", 1, setSize),
		"toList":   nsBuiltin("set", "toList", 1, setToList),
	})

	registerNamespace("queue", map[string]Object{
		"empty": &QueueObject{Queue: EmptyQueue()},
		"push":  nsBuiltin("queue", "push", 2, queuePush),
		"pop":   nsBuiltin("queue", "pop", 1, queuePop),
		"peek":  nsBuiltin("queue", "peek", 1, queuePeek),
		"size":  nsBuiltin("queue", "size", 1, queueSize),
	})

	registerNamespace("deque", map[string]Object{
		"empty":     &DequeObject{Deque: EmptyDeque()},
		"pushFront": nsBuiltin("deque", "pushFront", 2, dequePushFront),
		"pushBack":  nsBuiltin("deque", "pushBack", 2, dequePushBack),
		"popFront":  nsBuiltin("deque", "popFront", 1, dequePopFront),
		"popBack":   nsBuiltin("deque", "popBack", 1, dequePopBack),
		"size":      nsBuiltin("deque", "size", 1, dequeSize),
	})

	registerNamespace("heap", map[string]Object{
		"empty": &HeapObject{Heap: EmptyHeap()},
		"push":  nsBuiltin("heap", "push", 2, heapPush),
		"peek":  nsBuiltin("heap", "peek", 1, heapPeek),
		"pop":   nsBuiltin("heap", "pop", 1, heapPop),
		"size":  nsBuiltin("heap", "size", 1, heapSize),
	})
}

func listArg(name string, arg Object) (*List, *RuntimeError) {
	l, okL := arg.(*List)
	if !okL {
		return nil, newError("%s expects a list, got %s", name, arg.Type())
	}
	return l, nil
}

func intArg(name string, arg Object) (int64, *RuntimeError) {
	i, okI := arg.(*Integer)
	if !okI {
		return 0, newError("%s expects an integer, got %s", name, arg.Type())
	}
	return i.Value, nil
}

func listLen(e *Evaluator, args ...Object) Object {
	l, err := listArg("list.len", args[0])
	if err != nil {
		return err
	}
	return &Integer{Value: int64(l.Len())}
}

func listGet(e *Evaluator, args ...Object) Object {
	l, err := listArg("list.get", args[0])
	if err != nil {
		return err
	}
	i, err := intArg("list.get", args[1])
	if err != nil {
		return err
	}
	if i < 0 || i >= int64(l.Len()) {
		return noneValue
	}
	return some(l.Get(int(i)))
}

func listAppend(e *Evaluator, args ...Object) Object {
	l, err := listArg("list.append", args[0])
	if err != nil {
		return err
	}
	return l.Append(args[1])
}

func listHead(e *Evaluator, args ...Object) Object {
	l, err := listArg("list.head", args[0])
	if err != nil {
		return err
	}
	if l.Len() == 0 {
		return noneValue
	}
	return some(l.Get(0))
}

func listTail(e *Evaluator, args ...Object) Object {
	l, err := listArg("list.tail", args[0])
	if err != nil {
		return err
	}
	if l.Len() == 0 {
		return l
	}
	return l.Drop(1)
}

func listDrop(e *Evaluator, args ...Object) Object {
	l, err := listArg("list.drop", args[0])
	if err != nil {
		return err
	}
	n, err := intArg("list.drop", args[1])
	if err != nil {
		return err
	}
	if n <= 0 {
		return l
	}
	if n >= int64(l.Len()) {
		return NewList(nil)
	}
	return l.Drop(int(n))
}

func mapArg(name string, arg Object) (*MapObject, *RuntimeError) {
	m, okM := arg.(*MapObject)
	if !okM {
		return nil, newError("%s expects a map, got %s", name, arg.Type())
	}
	return m, nil
}

func mapPut(e *Evaluator, args ...Object) Object {
	m, err := mapArg("map.put", args[0])
	if err != nil {
		return err
	}
	return &MapObject{Map: m.Map.Put(args[1], args[2])}
}

func mapGet(e *Evaluator, args ...Object) Object {
	m, err := mapArg("map.get", args[0])
	if err != nil {
		return err
	}
	if v := m.Map.Get(args[1]); v != nil {
		return some(v)
	}
	return noneValue
}

func mapRemove(e *Evaluator, args ...Object) Object {
	m, err := mapArg("map.remove", args[0])
	if err != nil {
		return err
	}
	return &MapObject{Map: m.Map.Remove(args[1])}
}

func mapContains(e *Evaluator, args ...Object) Object {
	m, err := mapArg("map.contains", args[0])
	if err != nil {
		return err
	}
	return nativeBool(m.Map.Contains(args[1]))
}

func mapSize(e *Evaluator, args ...Object) Object {
	m, err := mapArg("map.size", args[0])
	if err != nil {
		return err
	}
	return &Integer{Value: int64(m.Map.Len())}
}

func mapKeys(e *Evaluator, args ...Object) Object {
	m, err := mapArg("map.keys", args[0])
	if err != nil {
		return err
	}
	return NewList(m.Map.Keys())
}

func setArg(name string, arg Object) (*SetObject, *RuntimeError) {
	s, okS := arg.(*SetObject)
	if !okS {
		return nil, newError("%s expects a set, got %s", name, arg.Type())
	}
	return s, nil
}

func setInsert(e *Evaluator, args ...Object) Object {
	s, err := setArg("set.insert", args[0])
	if err != nil {
		return err
	}
	return &SetObject{Map: s.Map.Put(args[1], UnitValue)}
}

func setRemove(e *Evaluator, args ...Object) Object {
	s, err := setArg("set.remove", args[0])
	if err != nil {
		return err
	}
	return &SetObject{Map: s.Map.Remove(args[1])}
}

func setContains(e *Evaluator, args ...Object) Object {
	s, err := setArg("set.contains", args[0])
	if err != nil {
		return err
	}
	return nativeBool(s.Map.Contains(args[1]))
}

func setSize(e *Evaluator, args ...Object) Object {
	s, err := setArg("set.size", args[0])
	if err != nil {
		return err
	}
	return &Integer{Value: int64(s.Map.Len())}
}

func setToList(e *Evaluator, args ...Object) Object {
	s, err := setArg("set.toList", args[0])
	if err != nil {
		return err
	}
	return NewList(s.Map.Keys())
}

func queueArg(name string, arg Object) (*QueueObject, *RuntimeError) {
	q, okQ := arg.(*QueueObject)
	if !okQ {
		return nil, newError("%s expects a queue, got %s", name, arg.Type())
	}
	return q, nil
}

func queuePush(e *Evaluator, args ...Object) Object {
	q, err := queueArg("queue.push", args[0])
	if err != nil {
		return err
	}
	return &QueueObject{Queue: q.Queue.Push(args[1])}
}

func queuePop(e *Evaluator, args ...Object) Object {
	q, err := queueArg("queue.pop", args[0])
	if err != nil {
		return err
	}
	v, rest, okP := q.Queue.Pop()
	if !okP {
		return noneValue
	}
	return some(&Tuple{Elements: []Object{v, &QueueObject{Queue: rest}}})
}

func queuePeek(e *Evaluator, args ...Object) Object {
	q, err := queueArg("queue.peek", args[0])
	if err != nil {
		return err
	}
	v, okP := q.Queue.Peek()
	if !okP {
		return noneValue
	}
	return some(v)
}

func queueSize(e *Evaluator, args ...Object) Object {
	q, err := queueArg("queue.size", args[0])
	if err != nil {
		return err
	}
	return &Integer{Value: int64(q.Queue.Len())}
}

func dequeArg(name string, arg Object) (*DequeObject, *RuntimeError) {
	d, okD := arg.(*DequeObject)
	if !okD {
		return nil, newError("%s expects a deque, got %s", name, arg.Type())
	}
	return d, nil
}

func dequePushFront(e *Evaluator, args ...Object) Object {
	d, err := dequeArg("deque.pushFront", args[0])
	if err != nil {
		return err
	}
	return &DequeObject{Deque: d.Deque.PushFront(args[1])}
}

func dequePushBack(e *Evaluator, args ...Object) Object {
	d, err := dequeArg("deque.pushBack", args[0])
	if err != nil {
		return err
	}
	return &DequeObject{Deque: d.Deque.PushBack(args[1])}
}

func dequePopFront(e *Evaluator, args ...Object) Object {
	d, err := dequeArg("deque.popFront", args[0])
	if err != nil {
		return err
	}
	v, rest, okP := d.Deque.PopFront()
	if !okP {
		return noneValue
	}
	return some(&Tuple{Elements: []Object{v, &DequeObject{Deque: rest}}})
}

func dequePopBack(e *Evaluator, args ...Object) Object {
	d, err := dequeArg("deque.popBack", args[0])
	if err != nil {
		return err
	}
	v, rest, okP := d.Deque.PopBack()
	if !okP {
		return noneValue
	}
	return some(&Tuple{Elements: []Object{v, &DequeObject{Deque: rest}}})
}

func dequeSize(e *Evaluator, args ...Object) Object {
	d, err := dequeArg("deque.size", args[0])
	if err != nil {
		return err
	}
	return &Integer{Value: int64(d.Deque.Len())}
}

func heapArg(name string, arg Object) (*HeapObject, *RuntimeError) {
	h, okH := arg.(*HeapObject)
	if !okH {
		return nil, newError("%s expects a heap, got %s", name, arg.Type())
	}
	return h, nil
}

func heapPush(e *Evaluator, args ...Object) Object {
	h, err := heapArg("heap.push", args[0])
	if err != nil {
		return err
	}
	next, okP := h.Heap.Push(args[1])
	if !okP {
		return newError("heap.push: %s is not comparable with the heap contents", args[1].Type())
	}
	return &HeapObject{Heap: next}
}

func heapPeek(e *Evaluator, args ...Object) Object {
	h, err := heapArg("heap.peek", args[0])
	if err != nil {
		return err
	}
	v, okP := h.Heap.Peek()
	if !okP {
		return noneValue
	}
	return some(v)
}

func heapPop(e *Evaluator, args ...Object) Object {
	h, err := heapArg("heap.pop", args[0])
	if err != nil {
		return err
	}
	v, rest, okP := h.Heap.Pop()
	if !okP {
		return noneValue
	}
	return some(&Tuple{Elements: []Object{v, &HeapObject{Heap: rest}}})
}

func heapSize(e *Evaluator, args ...Object) Object {
	h, err := heapArg("heap.size", args[0])
	if err != nil {
		return err
	}
	return &Integer{Value: int64(h.Heap.Len())}
}
