package composite

import "github.com/robert-malhotra/go-composite/internal/seq"

// cursor is the traversal position inside one level of a tree. A cursor
// over a sub-tree first yields the sub-tree itself (passSelf), then walks
// its slots, delegating to a child cursor per slot. Positions are anchored
// on slot identity and re-derived from the live slots on every step, so the
// caller may mutate the tree between steps.
type cursor struct {
	obj      DataObject
	tree     *Tree
	reverse  bool
	passSelf bool

	elem  *seq.Elem[slot]
	pos   int
	child *cursor
}

func newCursor(obj DataObject, reverse bool) *cursor {
	c := &cursor{obj: obj, reverse: reverse, passSelf: true}
	c.tree, _ = subTree(obj)
	return c
}

// done reports whether the cursor has nothing left to yield.
func (c *cursor) done() bool {
	switch {
	case c.obj == nil:
		return true
	case c.passSelf:
		return false
	case c.tree == nil, c.elem == nil:
		return true
	}
	if c.tree.slots.IndexOf(c.elem, c.pos) >= 0 && (c.child.passSelf || !c.child.done()) {
		return false
	}
	// Nothing is left at or below the current slot; done unless a later
	// slot remains.
	return c.tree.slots.At(c.tree.slots.Step(c.elem, c.pos, c.reverse)) == nil
}

// next advances by one pre-order step.
func (c *cursor) next() {
	if c.passSelf {
		c.passSelf = false
		if c.tree != nil {
			start := 0
			if c.reverse {
				start = c.tree.slots.Len() - 1
			}
			c.seek(start)
		}
		return
	}
	if c.tree == nil || c.elem == nil {
		return
	}
	i := c.tree.slots.IndexOf(c.elem, c.pos)
	if i < 0 {
		// The slot went away together with whatever lay below it.
		c.seek(c.tree.slots.Step(c.elem, c.pos, c.reverse))
		return
	}
	c.pos = i
	c.child.next()
	if c.child.done() {
		c.seek(c.tree.slots.Step(c.elem, c.pos, c.reverse))
	}
}

func (c *cursor) seek(pos int) {
	c.pos = pos
	c.elem = c.tree.slots.At(pos)
	c.child = nil
	if c.elem != nil {
		c.child = newCursor(c.elem.Value.child, c.reverse)
	}
}

// current returns the object under the cursor.
func (c *cursor) current() DataObject {
	if c.passSelf || c.tree == nil {
		return c.obj
	}
	if c.child == nil {
		return nil
	}
	if c.child.passSelf {
		// Read the live slot so a replaced child is seen.
		return c.elem.Value.child
	}
	return c.child.current()
}

// inSubTree reports whether the cursor is below its direct children.
func (c *cursor) inSubTree() bool {
	if c.passSelf || c.done() || c.child == nil {
		return false
	}
	return !c.child.passSelf
}

// index appends the slot offsets from this level down to the current item.
func (c *cursor) index(path []int) []int {
	if c.passSelf || c.tree == nil || c.elem == nil || c.child == nil {
		return path
	}
	if i := c.tree.slots.IndexOf(c.elem, c.pos); i >= 0 {
		c.pos = i
	}
	return c.child.index(append(path, c.pos))
}

// slot returns the parent slot holding the current item.
func (c *cursor) slot() *seq.Elem[slot] {
	if c.passSelf || c.tree == nil || c.child == nil {
		return nil
	}
	if c.child.passSelf {
		return c.elem
	}
	return c.child.slot()
}

// depth returns the number of levels below this cursor to the current item.
func (c *cursor) depth() int {
	if c.passSelf || c.child == nil {
		return 0
	}
	return 1 + c.child.depth()
}
