package composite

import (
	"fmt"

	"github.com/robert-malhotra/go-composite/internal/seq"
)

// Kind identifies the concrete flavour of a Tree.
type Kind int

const (
	// MultiBlock trees hold arbitrary blocks, including nested trees.
	MultiBlock Kind = iota
	// MultiPiece trees hold pieces of one logical dataset.
	MultiPiece
	// Partitioned trees hold the partitions of one dataset across ranks.
	Partitioned
)

func (k Kind) String() string {
	switch k {
	case MultiBlock:
		return "MultiBlock"
	case MultiPiece:
		return "MultiPiece"
	case Partitioned:
		return "Partitioned"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// slot is one child entry of a tree.
type slot struct {
	child DataObject
	meta  *Information
}

// Tree is a composite data object holding an ordered list of child slots.
// A child may be shared with other trees and with callers of Child.
type Tree struct {
	objectBase
	kind  Kind
	slots seq.Seq[slot]
}

// NewTree returns an empty tree of the given kind.
func NewTree(kind Kind) *Tree {
	t := &Tree{kind: kind}
	t.Modified()
	return t
}

// NewMultiBlock returns an empty multiblock tree.
func NewMultiBlock() *Tree {
	return NewTree(MultiBlock)
}

// NewMultiPiece returns an empty multipiece tree.
func NewMultiPiece() *Tree {
	return NewTree(MultiPiece)
}

// Kind returns the flavour of the tree.
func (t *Tree) Kind() Kind {
	return t.kind
}

// NewInstance returns an empty tree of the same kind.
func (t *Tree) NewInstance() *Tree {
	return NewTree(t.kind)
}

func (t *Tree) composite() {}

// NewIterator returns a depth-first iterator with default settings.
func (t *Tree) NewIterator() Iterator {
	return t.NewTreeIterator()
}

// NumberOfChildren returns the number of slots.
func (t *Tree) NumberOfChildren() int {
	return t.slots.Len()
}

// SetNumberOfChildren grows the tree with empty slots or discards trailing
// slots together with their children and metadata.
func (t *Tree) SetNumberOfChildren(n int) {
	if n < 0 {
		reportError("Tree.SetNumberOfChildren").Int("count", n).Msg("negative child count")
		return
	}
	if t.slots.Resize(n) {
		t.Modified()
	}
}

// SetChild stores obj in slot i, growing the tree if i is past the end.
// The tree is marked modified only when the slot changes.
func (t *Tree) SetChild(i int, obj DataObject) {
	if i < 0 {
		reportError("Tree.SetChild").Int("index", i).Msg("negative child index")
		return
	}
	if isNil(obj) {
		obj = nil
	}
	if i >= t.slots.Len() {
		t.SetNumberOfChildren(i + 1)
	}
	e := t.slots.At(i)
	if e.Value.child != obj {
		e.Value.child = obj
		t.Modified()
	}
}

// Append stores obj in a new trailing slot and returns its index.
func (t *Tree) Append(obj DataObject) int {
	i := t.slots.Len()
	t.SetChild(i, obj)
	return i
}

// Child returns the child in slot i, or nil if the slot is empty or i is out
// of range.
func (t *Tree) Child(i int) DataObject {
	e := t.slots.At(i)
	if e == nil {
		return nil
	}
	return e.Value.child
}

// RemoveChild erases slot i. Later slots shift down by one, so indices
// captured before the call that point past i become stale.
func (t *Tree) RemoveChild(i int) {
	if !t.slots.Remove(i) {
		reportError("Tree.RemoveChild").
			Int("index", i).
			Int("children", t.slots.Len()).
			Msg("child index out of range")
		return
	}
	t.Modified()
}

// RemoveAllChildren erases every slot.
func (t *Tree) RemoveAllChildren() {
	t.slots.Clear()
	t.Modified()
}

// ChildMetaData returns the metadata of slot i, creating it on first access.
// It returns nil if i is out of range. Use HasChildMetaData to check without
// allocating.
func (t *Tree) ChildMetaData(i int) *Information {
	e := t.slots.At(i)
	if e == nil {
		return nil
	}
	if e.Value.meta == nil {
		e.Value.meta = NewInformation()
	}
	return e.Value.meta
}

// HasChildMetaData reports whether slot i has metadata.
func (t *Tree) HasChildMetaData(i int) bool {
	e := t.slots.At(i)
	return e != nil && e.Value.meta != nil
}

// SetChildMetaData replaces the metadata of slot i, growing the tree if i is
// past the end.
func (t *Tree) SetChildMetaData(i int, info *Information) {
	if i < 0 {
		reportError("Tree.SetChildMetaData").Int("index", i).Msg("negative child index")
		return
	}
	if i >= t.slots.Len() {
		t.SetNumberOfChildren(i + 1)
	}
	t.slots.At(i).Value.meta = info
	t.Modified()
}

// ChildName returns the NAME metadata of slot i without allocating.
func (t *Tree) ChildName(i int) string {
	e := t.slots.At(i)
	if e == nil || e.Value.meta == nil {
		return ""
	}
	return e.Value.meta.Name()
}

// ChildIndexByName returns the index of the first slot named name, or -1.
func (t *Tree) ChildIndexByName(name string) int {
	return t.slots.IndexFunc(func(s slot) bool {
		return s.meta != nil && s.meta.Name() == name
	})
}

// ChildAtIndex follows path from this tree and returns the object found
// there, or nil when the path does not fit the tree.
func (t *Tree) ChildAtIndex(path []int) DataObject {
	var cur DataObject = t
	for _, i := range path {
		sub, ok := subTree(cur)
		if !ok {
			return nil
		}
		cur = sub.Child(i)
	}
	return cur
}

// NumberOfPoints sums the points of all leaves.
func (t *Tree) NumberOfPoints() int64 {
	return t.sumLeaves(DataObject.NumberOfPoints)
}

// NumberOfCells sums the cells of all leaves.
func (t *Tree) NumberOfCells() int64 {
	return t.sumLeaves(DataObject.NumberOfCells)
}

// ActualMemorySize sums the memory size of all leaves.
func (t *Tree) ActualMemorySize() int64 {
	return t.sumLeaves(DataObject.ActualMemorySize)
}

func (t *Tree) sumLeaves(f func(DataObject) int64) int64 {
	var total int64
	it := t.NewTreeIterator(WithSkipEmptyNodes())
	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
		total += f(it.CurrentDataObject())
	}
	return total
}

// SetDataSet stores obj in this tree at the position of it. The iterator may
// walk a different tree as long as this tree has a matching structure.
// Positions inside a nested AMR accept uniform grids only.
func (t *Tree) SetDataSet(it Iterator, obj DataObject) {
	loc, ok := t.resolve(it, "Tree.SetDataSet")
	if !ok {
		return
	}
	switch {
	case loc.amr == nil:
		loc.parent.SetChild(loc.index, obj)
	case loc.level >= 0:
		loc.amr.setBlock(loc.level, loc.index, obj, "Tree.SetDataSet")
	default:
		loc.amr.setLevel(loc.index, obj, "Tree.SetDataSet")
	}
}

// DataSet returns the object of this tree at the position of it.
func (t *Tree) DataSet(it Iterator) DataObject {
	loc, ok := t.resolve(it, "Tree.DataSet")
	if !ok {
		return nil
	}
	return loc.parent.Child(loc.index)
}

// MetaData returns the metadata of this tree at the position of it,
// creating it on first access.
func (t *Tree) MetaData(it Iterator) *Information {
	loc, ok := t.resolve(it, "Tree.MetaData")
	if !ok {
		return nil
	}
	return loc.parent.ChildMetaData(loc.index)
}

// HasMetaData reports whether this tree has metadata at the position of it.
func (t *Tree) HasMetaData(it Iterator) bool {
	loc, ok := t.resolve(it, "Tree.HasMetaData")
	return ok && loc.parent.HasChildMetaData(loc.index)
}

// location is a slot found by resolve. When the slot lies inside an AMR,
// amr is set and level is the block's level, or -1 for a level slot.
type location struct {
	parent *Tree
	index  int
	amr    *AMR
	level  int
}

// resolve maps the position of it onto the parent tree and slot index it
// names in t.
func (t *Tree) resolve(it Iterator, op string) (location, bool) {
	path, ok := positionOf(it)
	if !ok || len(path) == 0 {
		reportError(op).Msg("invalid iterator location")
		return location{}, false
	}
	cur := t
	var amr *AMR
	amrDepth := 0
	for depth, i := range path {
		if i < 0 || i >= cur.NumberOfChildren() {
			reportError(op).
				Str("path", FormatIndex(path)).
				Int("depth", depth).
				Msg("structure does not match, use CopyStructure first")
			return location{}, false
		}
		if depth == len(path)-1 {
			loc := location{parent: cur, index: i, amr: amr, level: -1}
			if amr != nil && depth > amrDepth {
				loc.level = path[amrDepth]
			}
			return loc, true
		}
		child := cur.Child(i)
		sub, ok := subTree(child)
		if !ok {
			reportError(op).
				Str("path", FormatIndex(path)).
				Int("depth", depth).
				Msg("structure does not match, expected a sub-tree")
			return location{}, false
		}
		if a, isAMR := child.(*AMR); isAMR {
			amr, amrDepth = a, depth+1
		}
		cur = sub
	}
	return location{}, false
}

// positionOf returns the structural path of the current item of it.
func positionOf(it Iterator) ([]int, bool) {
	if isNilIterator(it) || it.IsDoneWithTraversal() {
		return nil, false
	}
	switch i := it.(type) {
	case *TreeIterator:
		return i.CurrentIndex(), true
	case *AMRIterator:
		return []int{i.CurrentLevel(), i.CurrentIndex()}, true
	case *CollectionIterator:
		return []int{0, i.CurrentIndex()}, true
	}
	return nil, false
}

func isNilIterator(it Iterator) bool {
	switch i := it.(type) {
	case nil:
		return true
	case *TreeIterator:
		return i == nil
	case *AMRIterator:
		return i == nil || i.TreeIterator == nil
	case *CollectionIterator:
		return i == nil
	}
	return false
}
