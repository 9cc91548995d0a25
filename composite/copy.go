package composite

import "fmt"

// copyMode selects how leaf payloads are duplicated.
type copyMode int

const (
	// copyComposite clones the composite shape and aliases leaves.
	copyComposite copyMode = iota
	// copyShallow clones leaves that share arrays with the source.
	copyShallow
	// copyDeep clones leaves together with their arrays.
	copyDeep
)

// copyObject duplicates obj under mode. Composite children are always
// rebuilt so the copy never shares structure with the source.
func copyObject(obj DataObject, mode copyMode) DataObject {
	if isNil(obj) {
		return nil
	}
	switch o := obj.(type) {
	case *Tree:
		out := o.NewInstance()
		out.copyFrom(o, mode)
		return out
	case *AMR:
		out := o.NewInstance()
		out.copyFrom(o, mode)
		return out
	case DataSet:
		switch mode {
		case copyShallow:
			return o.ShallowClone()
		case copyDeep:
			return o.DeepClone()
		}
		return o
	}
	return obj
}

func (t *Tree) copyFrom(src *Tree, mode copyMode) {
	t.slots.Clear()
	for _, e := range src.slots.All() {
		ne := t.slots.Append(slot{child: copyObject(e.Value.child, mode)})
		if e.Value.meta != nil {
			ne.Value.meta = e.Value.meta.Clone(mode == copyDeep)
		}
	}
	t.Modified()
}

// ShallowCopy replaces the children with copies of those of src. Nested
// trees are rebuilt, leaves share their arrays with src.
func (t *Tree) ShallowCopy(src DataObject) {
	t.copyObjectFrom(src, copyShallow, "Tree.ShallowCopy")
}

// DeepCopy replaces the children with full copies of those of src.
func (t *Tree) DeepCopy(src DataObject) {
	t.copyObjectFrom(src, copyDeep, "Tree.DeepCopy")
}

// CompositeShallowCopy replaces the children with those of src. Nested
// trees are rebuilt, leaves are the same objects as in src.
func (t *Tree) CompositeShallowCopy(src Composite) {
	t.copyObjectFrom(src, copyComposite, "Tree.CompositeShallowCopy")
}

func (t *Tree) copyObjectFrom(src DataObject, mode copyMode, op string) {
	if src == DataObject(t) {
		return
	}
	if isNil(src) {
		t.RemoveAllChildren()
		return
	}
	switch s := src.(type) {
	case *Tree:
		t.copyFrom(s, mode)
	case *AMR:
		t.copyFrom(s.tree, mode)
	default:
		t.RemoveAllChildren()
		reportError(op).Str("source", fmt.Sprintf("%T", src)).Msg("source is not a tree")
	}
}

// CopyStructure replaces the children with an empty copy of the shape of src.
// Nested trees are rebuilt with the same kinds and slot counts, leaf slots are
// left empty and metadata is copied shallowly.
//
// An AMR source yields one multipiece child per level, sized to the number of
// blocks on that level and named "Level N". A collection source yields a
// single multipiece child sized to the number of items. Either way the result
// accepts positions from an iterator over src.
func (t *Tree) CopyStructure(src Composite) {
	if src == Composite(t) {
		return
	}
	if isNil(src) {
		src = nil
	}
	t.slots.Clear()
	switch s := src.(type) {
	case *Tree:
		t.copyStructureFrom(s)
	case *AMR:
		for level := range s.NumberOfLevels() {
			piece := NewMultiPiece()
			piece.SetNumberOfChildren(s.NumberOfBlocks(level))
			e := t.slots.Append(slot{child: piece})
			e.Value.meta = NewInformation()
			e.Value.meta.SetName(levelName(level))
		}
	case *Collection:
		piece := NewMultiPiece()
		piece.SetNumberOfChildren(s.NumberOfItems())
		t.slots.Append(slot{child: piece})
	case nil:
	default:
		reportError("Tree.CopyStructure").Str("source", fmt.Sprintf("%T", src)).Msg("unsupported composite")
	}
	t.Modified()
}

func (t *Tree) copyStructureFrom(src *Tree) {
	t.slots.Resize(src.slots.Len())
	for i, e := range src.slots.All() {
		dst := t.slots.At(i)
		switch c := e.Value.child.(type) {
		case *Tree:
			sub := c.NewInstance()
			sub.copyStructureFrom(c)
			dst.Value.child = sub
		case *AMR:
			sub := c.NewInstance()
			sub.CopyStructure(c)
			dst.Value.child = sub
		}
		if e.Value.meta != nil {
			dst.Value.meta = e.Value.meta.Clone(false)
		}
	}
}

func levelName(level int) string {
	return fmt.Sprintf("Level %d", level)
}
