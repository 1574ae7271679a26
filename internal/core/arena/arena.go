package arena

// Arena stores values behind generational handles and keeps them in insertion
// order. Removal is deferred: MarkForRemoval queues a handle and Flush destroys
// every queued value at a point the caller chooses (end of tick), so handles
// held by other systems never dangle mid-tick.
// Accessed only from the game loop goroutine, no locks.
type Arena[T any] struct {
	slots       []slot[T]
	freeList    []uint32
	order       []Handle
	removeQueue []Handle
}

type slot[T any] struct {
	generation uint32
	value      *T
}

func New[T any]() *Arena[T] {
	return &Arena[T]{
		slots:       make([]slot[T], 0, 64),
		freeList:    make([]uint32, 0, 16),
		order:       make([]Handle, 0, 64),
		removeQueue: make([]Handle, 0, 16),
	}
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v *T) Handle {
	var idx uint32
	if n := len(a.freeList); n > 0 {
		idx = a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{generation: 1})
	}
	a.slots[idx].value = v
	h := NewHandle(idx, a.slots[idx].generation)
	a.order = append(a.order, h)
	return h
}

// Get resolves a handle. Stale or zero handles return false.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if !a.Contains(h) {
		return nil, false
	}
	return a.slots[h.Index()].value, true
}

func (a *Arena[T]) Contains(h Handle) bool {
	idx := h.Index()
	if h.IsZero() || int(idx) >= len(a.slots) {
		return false
	}
	s := a.slots[idx]
	return s.value != nil && s.generation == h.Generation()
}

// Len returns the number of stored values, including ones queued for removal.
func (a *Arena[T]) Len() int {
	return len(a.order)
}

// Handles returns a copy of the live handles in insertion order.
func (a *Arena[T]) Handles() []Handle {
	out := make([]Handle, len(a.order))
	copy(out, a.order)
	return out
}

// Values returns the stored values in insertion order. The slice is a fresh
// copy; the pointers are shared with the arena.
func (a *Arena[T]) Values() []*T {
	out := make([]*T, 0, len(a.order))
	for _, h := range a.order {
		out = append(out, a.slots[h.Index()].value)
	}
	return out
}

// Each visits values in insertion order. fn must not insert or flush.
func (a *Arena[T]) Each(fn func(Handle, *T)) {
	for _, h := range a.order {
		fn(h, a.slots[h.Index()].value)
	}
}

// MarkForRemoval queues a handle for the next Flush. Stale handles are ignored.
func (a *Arena[T]) MarkForRemoval(h Handle) {
	if !a.Contains(h) {
		return
	}
	for _, q := range a.removeQueue {
		if q == h {
			return
		}
	}
	a.removeQueue = append(a.removeQueue, h)
}

// Flush destroys every queued value and returns the removed handles.
func (a *Arena[T]) Flush() []Handle {
	if len(a.removeQueue) == 0 {
		return nil
	}
	removed := make([]Handle, 0, len(a.removeQueue))
	for _, h := range a.removeQueue {
		if !a.Contains(h) {
			continue
		}
		idx := h.Index()
		a.slots[idx].value = nil
		a.slots[idx].generation++
		a.freeList = append(a.freeList, idx)
		removed = append(removed, h)
	}
	a.removeQueue = a.removeQueue[:0]

	kept := a.order[:0]
	for _, h := range a.order {
		if a.Contains(h) {
			kept = append(kept, h)
		}
	}
	a.order = kept
	return removed
}
