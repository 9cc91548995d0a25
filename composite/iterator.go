package composite

// TreeIterator walks a tree in pre-order.
//
// Configure it before calling InitTraversal; settings changed mid-traversal
// take effect on the next step. The iterator keeps the tree alive but does
// not guard it: the caller may insert or remove children between two
// GoToNextItem calls and the iterator continues from the live structure.
type TreeIterator struct {
	tree *Tree
	opts iteratorOptions

	root      *cursor
	flatIndex int
}

// NewTreeIterator returns an iterator over t.
func (t *Tree) NewTreeIterator(opts ...IteratorOption) *TreeIterator {
	o := defaultIteratorOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &TreeIterator{tree: t, opts: *o}
}

// Tree returns the tree being walked.
func (it *TreeIterator) Tree() *Tree {
	return it.tree
}

// SetVisitOnlyLeaves sets whether composite nodes are skipped.
func (it *TreeIterator) SetVisitOnlyLeaves(only bool) {
	it.opts.visitOnlyLeaves = only
}

// VisitOnlyLeaves reports whether composite nodes are skipped.
func (it *TreeIterator) VisitOnlyLeaves() bool {
	return it.opts.visitOnlyLeaves
}

// SetTraverseSubTree sets whether the iterator descends below the direct
// children of the root.
func (it *TreeIterator) SetTraverseSubTree(traverse bool) {
	it.opts.traverseSubTree = traverse
}

// TraverseSubTree reports whether the iterator descends into sub-trees.
func (it *TreeIterator) TraverseSubTree() bool {
	return it.opts.traverseSubTree
}

// SetSkipEmptyNodes sets whether empty slots are skipped.
func (it *TreeIterator) SetSkipEmptyNodes(skip bool) {
	it.opts.skipEmptyNodes = skip
}

// SkipEmptyNodes reports whether empty slots are skipped.
func (it *TreeIterator) SkipEmptyNodes() bool {
	return it.opts.skipEmptyNodes
}

// SetReverse sets the direction used by the next InitTraversal.
func (it *TreeIterator) SetReverse(reverse bool) {
	it.opts.reverse = reverse
}

// Reverse reports whether children are walked last to first.
func (it *TreeIterator) Reverse() bool {
	return it.opts.reverse
}

// InitTraversal positions the iterator on the first item.
func (it *TreeIterator) InitTraversal() {
	it.GoToFirstItem()
}

// GoToFirstItem rebuilds the cursor from the root and moves to the first item
// that passes the filters. The root itself takes flat index 0 and is never
// yielded.
func (it *TreeIterator) GoToFirstItem() {
	it.flatIndex = 0
	var root DataObject
	if it.tree != nil {
		root = it.tree
	}
	it.root = newCursor(root, it.opts.reverse)
	it.nextInternal()
	it.skipFiltered()
}

// GoToNextItem moves to the next item that passes the filters.
func (it *TreeIterator) GoToNextItem() {
	if it.IsDoneWithTraversal() {
		return
	}
	it.nextInternal()
	it.skipFiltered()
}

// nextInternal takes one raw pre-order step. Without sub-tree traversal,
// steps that land below a direct child are taken again until the cursor is
// back on a direct child; each of them still consumes a flat index.
func (it *TreeIterator) nextInternal() {
	for {
		it.flatIndex++
		it.root.next()
		if it.opts.traverseSubTree || !it.root.inSubTree() {
			return
		}
	}
}

func (it *TreeIterator) skipFiltered() {
	for !it.root.done() && it.skipped(it.root.current()) {
		it.nextInternal()
	}
}

func (it *TreeIterator) skipped(obj DataObject) bool {
	if obj == nil {
		return it.opts.skipEmptyNodes
	}
	return it.opts.visitOnlyLeaves && isSubTree(obj)
}

// IsDoneWithTraversal reports whether the iterator is exhausted. An iterator
// that was never initialized is done.
func (it *TreeIterator) IsDoneWithTraversal() bool {
	return it.root == nil || it.root.done()
}

// CurrentDataObject returns the current item, or nil when done.
func (it *TreeIterator) CurrentDataObject() DataObject {
	if it.IsDoneWithTraversal() {
		return nil
	}
	return it.root.current()
}

// CurrentFlatIndex returns the pre-order number of the current item. It is
// only defined for forward traversal and returns 0 when done.
func (it *TreeIterator) CurrentFlatIndex() int {
	if it.opts.reverse {
		reportError("TreeIterator.CurrentFlatIndex").Msg("flat index is not defined for reverse traversal")
		return 0
	}
	if it.IsDoneWithTraversal() {
		return 0
	}
	return it.flatIndex
}

// CurrentIndex returns the slot offsets leading from the root to the current
// item, or nil when done.
func (it *TreeIterator) CurrentIndex() []int {
	if it.IsDoneWithTraversal() {
		return nil
	}
	return it.root.index(nil)
}

// CurrentDepth returns the number of levels between the root and the current
// item; direct children are at depth 1.
func (it *TreeIterator) CurrentDepth() int {
	if it.IsDoneWithTraversal() {
		return 0
	}
	return it.root.depth()
}

// CurrentMetaData returns the metadata of the slot holding the current item,
// creating it on first access. It returns nil when done.
func (it *TreeIterator) CurrentMetaData() *Information {
	if it.IsDoneWithTraversal() {
		return nil
	}
	e := it.root.slot()
	if e == nil {
		return nil
	}
	if e.Value.meta == nil {
		e.Value.meta = NewInformation()
	}
	return e.Value.meta
}

// HasCurrentMetaData reports whether the slot holding the current item has
// metadata.
func (it *TreeIterator) HasCurrentMetaData() bool {
	if it.IsDoneWithTraversal() {
		return false
	}
	e := it.root.slot()
	return e != nil && e.Value.meta != nil
}
