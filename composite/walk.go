package composite

// WalkFunc is called for each node during traversal.
// path holds the slot offsets from the root to the node (empty for the root).
// obj is the node, nil for empty slots.
// md is the slot metadata, or nil when the slot has none; Walk never
// allocates metadata.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(path []int, obj DataObject, md *Information) error

// Walk visits every node of c in pre-order, starting with c itself.
// Composite nodes are visited before their children and empty slots are
// visited with a nil obj. Returning ErrStopWalk stops the walk without an
// error.
//
// Example:
//
//	composite.Walk(tree, func(path []int, obj composite.DataObject, md *composite.Information) error {
//	    fmt.Println(composite.FormatIndex(path), md.Name(), obj)
//	    return nil
//	})
func Walk(c Composite, fn WalkFunc) error {
	err := walk(c, fn)
	if IsStopWalk(err) {
		return nil
	}
	return err
}

func walk(c Composite, fn WalkFunc) error {
	if err := fn(nil, c, nil); err != nil {
		return err
	}

	switch x := c.(type) {
	case *Collection:
		it := x.NewCollectionIterator()
		for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
			var md *Information
			if it.HasCurrentMetaData() {
				md = it.CurrentMetaData()
			}
			if err := fn([]int{it.CurrentIndex()}, it.CurrentDataObject(), md); err != nil {
				return err
			}
		}
		return nil
	}

	tree, ok := subTree(c)
	if !ok {
		return nil
	}
	it := tree.NewTreeIterator(WithVisitOnlyLeaves(false))
	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
		var md *Information
		if it.HasCurrentMetaData() {
			md = it.CurrentMetaData()
		}
		if err := fn(it.CurrentIndex(), it.CurrentDataObject(), md); err != nil {
			return err
		}
	}
	return nil
}
