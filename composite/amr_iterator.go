package composite

// AMRIterator walks the blocks of an AMR hierarchy level by level. It is a
// TreeIterator over the level tree that always visits leaves only and always
// descends into levels; changing either setting makes the iterator invalid
// and it then yields nothing. Empty blocks are skipped.
//
// Initialize and CopyStructure lay the hierarchy out anew. An iterator in the
// middle of a traversal then reports done; InitTraversal starts it over on
// the new layout.
type AMRIterator struct {
	*TreeIterator
	amr *AMR

	level int
	index int
}

// NewAMRIterator returns an iterator over the blocks of a.
func (a *AMR) NewAMRIterator() *AMRIterator {
	return &AMRIterator{
		TreeIterator: a.tree.NewTreeIterator(WithSkipEmptyNodes()),
		amr:          a,
	}
}

// IsValid reports whether the iterator is still configured for AMR
// traversal, logging an error if it is not.
func (it *AMRIterator) IsValid() bool {
	if it.misconfigured() {
		reportError("AMRIterator").
			Bool("visitOnlyLeaves", it.VisitOnlyLeaves()).
			Bool("traverseSubTree", it.TraverseSubTree()).
			Msg("AMR iterator requires leaves-only sub-tree traversal")
		return false
	}
	return true
}

func (it *AMRIterator) misconfigured() bool {
	return !it.VisitOnlyLeaves() || !it.TraverseSubTree()
}

// InitTraversal positions the iterator on the first block.
func (it *AMRIterator) InitTraversal() {
	it.GoToFirstItem()
}

// GoToFirstItem positions the iterator on the first non-empty block.
func (it *AMRIterator) GoToFirstItem() {
	if !it.IsValid() {
		return
	}
	it.tree = it.amr.tree
	it.TreeIterator.GoToFirstItem()
	it.checkItemAndLoopIfNeeded()
}

// GoToNextItem moves to the next non-empty block.
func (it *AMRIterator) GoToNextItem() {
	if !it.IsValid() || it.stale() {
		return
	}
	it.TreeIterator.GoToNextItem()
	it.checkItemAndLoopIfNeeded()
}

// checkItemAndLoopIfNeeded steps past anything that is not a block and then
// records the level and block index of the current item.
func (it *AMRIterator) checkItemAndLoopIfNeeded() {
	for !it.TreeIterator.IsDoneWithTraversal() {
		obj := it.TreeIterator.CurrentDataObject()
		path := it.TreeIterator.CurrentIndex()
		if obj != nil && !isSubTree(obj) && len(path) == 2 {
			it.level, it.index = path[0], path[1]
			return
		}
		it.TreeIterator.GoToNextItem()
	}
	it.level, it.index = 0, 0
}

// IsDoneWithTraversal reports whether the iterator is exhausted or invalid.
func (it *AMRIterator) IsDoneWithTraversal() bool {
	return it.misconfigured() || it.stale() || it.TreeIterator.IsDoneWithTraversal()
}

// stale reports whether the hierarchy was laid out anew since the traversal
// started.
func (it *AMRIterator) stale() bool {
	return it.tree != it.amr.tree
}

// CurrentDataObject returns the current block, or nil when done.
func (it *AMRIterator) CurrentDataObject() DataObject {
	if it.IsDoneWithTraversal() {
		return nil
	}
	return it.TreeIterator.CurrentDataObject()
}

// CurrentGrid returns the current block as a grid, or nil.
func (it *AMRIterator) CurrentGrid() *UniformGrid {
	grid, _ := it.CurrentDataObject().(*UniformGrid)
	return grid
}

// CurrentLevel returns the refinement level of the current block.
func (it *AMRIterator) CurrentLevel() int {
	return it.level
}

// CurrentIndex returns the index of the current block within its level.
func (it *AMRIterator) CurrentIndex() int {
	return it.index
}

// CurrentFlatIndex returns the composite index of the current block, that is
// its position with all levels laid end to end. It returns 0 when done.
func (it *AMRIterator) CurrentFlatIndex() int {
	if it.IsDoneWithTraversal() {
		return 0
	}
	return it.amr.CompositeIndex(it.level, it.index)
}

// CurrentMetaData returns the metadata of the current block. For overlapping
// hierarchies it returns a new bag holding a copy of the stored metadata plus
// the block's bounding box, level and index; the stored metadata is left as
// it was and changes to the returned bag are not kept.
func (it *AMRIterator) CurrentMetaData() *Information {
	if it.IsDoneWithTraversal() {
		return nil
	}
	if !it.amr.overlapping {
		return it.TreeIterator.CurrentMetaData()
	}
	md := NewInformation()
	if e := it.root.slot(); e != nil {
		md.ShallowCopyFrom(e.Value.meta)
	}
	if bounds, ok := it.amr.BlockBounds(it.level, it.index); ok {
		md.SetBoundingBox(bounds)
	}
	md.Set(KeyLevel, it.level)
	md.Set(KeyIndex, it.index)
	return md
}

// HasCurrentMetaData reports whether the current block has metadata. Blocks
// of overlapping hierarchies always do.
func (it *AMRIterator) HasCurrentMetaData() bool {
	if it.IsDoneWithTraversal() {
		return false
	}
	return it.amr.overlapping || it.TreeIterator.HasCurrentMetaData()
}
