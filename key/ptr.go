package key

// Ptr is a mutable cursor over the storage key space.
//
// A Ptr starts at a root key and hands out consecutive cell regions:
// every Advance call returns the current key and moves the cursor forward
// by the footprint of the entity that was just placed.
//
// The order in which the sub-entities of a composite advance a shared
// cursor is the layout contract itself: push, pull and clear traversals of
// the same structure must advance the cursor in the identical, fixed order
// or they will read and write disjoint cells. Reordering fields of a stored
// composite therefore breaks compatibility with previously written state.
type Ptr struct {
	next Key
}

// NewPtr creates a cursor positioned at root.
func NewPtr(root Key) *Ptr {
	return &Ptr{next: root}
}

// Advance returns the current cursor key and moves the cursor forward by
// footprint cells.
//
// It must be called exactly once per stored sub-entity during a layout
// traversal.
func (p *Ptr) Advance(footprint uint64) Key {
	cur := p.next
	p.next = p.next.Add(footprint)

	return cur
}

// Next returns the current cursor key and advances by a single cell.
//
// Shorthand for Advance(1), the common case for packed values.
func (p *Ptr) Next() Key {
	return p.Advance(1)
}

// Peek returns the key the next Advance call would hand out, without
// moving the cursor.
func (p *Ptr) Peek() Key {
	return p.next
}
