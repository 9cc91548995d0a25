// Package composite implements trees of heterogeneous data objects and the
// iterators that walk them.
//
// A [Tree] is an ordered list of child slots. Each slot holds a [DataObject]
// (a leaf [DataSet], a nested [Tree], an [AMR] hierarchy, or nothing) and an
// optional [Information] bag with per-slot metadata such as the block name.
//
// # Traversal
//
// [TreeIterator] walks a tree in pre-order:
//
//	it := tree.NewTreeIterator(composite.WithSkipEmptyNodes())
//	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
//	    fmt.Println(it.CurrentFlatIndex(), it.CurrentIndex(), it.CurrentDataObject())
//	}
//
// Every node receives a flat index in pre-order (the root is 0), whether or not
// the iterator's filters yield it, so the flat index of a block is the same for
// every forward iterator over the same tree. The caller may add or remove
// children between two GoToNextItem calls; cursors re-derive their position
// from the live slots instead of trusting a stored index.
//
// # Positions
//
// A position captured from one iterator can be resolved against another tree
// with the same shape, typically one built with [Tree.CopyStructure]:
//
//	out := composite.NewMultiBlock()
//	out.CopyStructure(in)
//	it := in.NewTreeIterator()
//	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
//	    out.SetDataSet(it, process(it.CurrentDataObject()))
//	}
//
// # Error Reporting
//
// Structural misuse (removing a missing child, resolving a position against a
// tree of a different shape, reconfiguring an AMR iterator) never panics and
// never returns an error: the call becomes a no-op and an error line is written
// to the package logger, see [SetLogger]. Reading out of range simply returns
// nil.
//
// # Key Types
//
//   - [Tree]: composite container of slots (multiblock, multipiece, partitioned)
//   - [TreeIterator]: configurable pre-order iterator
//   - [AMR], [AMRIterator]: two-level refinement hierarchy and its iterator
//   - [Collection]: flat ordered container with collection insert semantics
//   - [Information]: per-slot metadata
//   - [PointSet], [UniformGrid]: leaf datasets
package composite
