package composite

import (
	"reflect"
	"sync/atomic"
)

// DataObject is anything that can occupy a slot of a composite.
type DataObject interface {
	// NumberOfPoints returns the number of points held by the object.
	NumberOfPoints() int64
	// NumberOfCells returns the number of cells held by the object.
	NumberOfCells() int64
	// ActualMemorySize returns the approximate payload size in bytes.
	ActualMemorySize() int64
	// MTime returns the modification time of the object.
	MTime() uint64
}

// DataSet is a data object that can be copied on its own. Leaf payloads
// implement it.
type DataSet interface {
	DataObject

	// ShallowClone returns a new object sharing the receiver's arrays.
	ShallowClone() DataSet
	// DeepClone returns a new object with copies of the receiver's arrays.
	DeepClone() DataSet
}

// Composite is implemented by the container kinds of this package: *Tree,
// *AMR and *Collection. The set is closed.
type Composite interface {
	DataObject

	// NewIterator returns an iterator with default settings.
	NewIterator() Iterator

	composite()
}

// Iterator is the traversal contract shared by all composite kinds.
type Iterator interface {
	InitTraversal()
	GoToFirstItem()
	GoToNextItem()
	IsDoneWithTraversal() bool

	CurrentDataObject() DataObject
	CurrentFlatIndex() int
	CurrentMetaData() *Information
	HasCurrentMetaData() bool

	SetSkipEmptyNodes(skip bool)
	SkipEmptyNodes() bool
}

var clock atomic.Uint64

// objectBase carries the modification time every object has.
type objectBase struct {
	mtime uint64
}

// Modified bumps the modification time.
func (o *objectBase) Modified() {
	o.mtime = clock.Add(1)
}

// MTime returns the modification time.
func (o *objectBase) MTime() uint64 {
	return o.mtime
}

// isNil reports whether obj is nil or a typed nil pointer.
func isNil(obj DataObject) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// subTree returns the tree a cursor descends into for obj, if any.
func subTree(obj DataObject) (*Tree, bool) {
	switch o := obj.(type) {
	case *Tree:
		return o, o != nil
	case *AMR:
		if o == nil {
			return nil, false
		}
		return o.tree, true
	}
	return nil, false
}

// isSubTree reports whether obj is walked into rather than treated as a leaf.
func isSubTree(obj DataObject) bool {
	_, ok := subTree(obj)
	return ok
}
