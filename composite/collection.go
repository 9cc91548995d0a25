package composite

import (
	"iter"

	"github.com/robert-malhotra/go-composite/internal/seq"
)

// item is one entry of a collection.
type item struct {
	obj  DataObject
	meta *Information
}

// Collection is a flat ordered list of data objects.
//
// Its index policy differs from Tree on purpose: InsertItem with a negative
// index prepends, InsertItem past the end and RemoveItem out of range are
// silent no-ops.
type Collection struct {
	objectBase
	items seq.Seq[item]
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	c := &Collection{}
	c.Modified()
	return c
}

func (c *Collection) composite() {}

// NewIterator returns an iterator over the items.
func (c *Collection) NewIterator() Iterator {
	return c.NewCollectionIterator()
}

// NumberOfItems returns the number of items.
func (c *Collection) NumberOfItems() int {
	return c.items.Len()
}

// AddItem appends obj.
func (c *Collection) AddItem(obj DataObject) {
	if isNil(obj) {
		obj = nil
	}
	c.items.Append(item{obj: obj})
	c.Modified()
}

// InsertItem places obj after the i-th item. A negative i puts obj first;
// an i at or past the end does nothing.
func (c *Collection) InsertItem(i int, obj DataObject) {
	if i >= c.items.Len() {
		return
	}
	if isNil(obj) {
		obj = nil
	}
	c.items.Insert(max(i+1, 0), item{obj: obj})
	c.Modified()
}

// ReplaceItem replaces the i-th item. It marks the collection modified even
// when obj is the item already there.
func (c *Collection) ReplaceItem(i int, obj DataObject) {
	e := c.items.At(i)
	if e == nil {
		return
	}
	if isNil(obj) {
		obj = nil
	}
	e.Value.obj = obj
	c.Modified()
}

// RemoveItem removes the i-th item.
func (c *Collection) RemoveItem(i int) {
	if c.items.Remove(i) {
		c.Modified()
	}
}

// RemoveItemValue removes the first occurrence of obj and reports whether
// it was present.
func (c *Collection) RemoveItemValue(obj DataObject) bool {
	i := c.IndexOf(obj)
	if i < 0 {
		return false
	}
	c.RemoveItem(i)
	return true
}

// RemoveAllItems empties the collection.
func (c *Collection) RemoveAllItems() {
	if c.items.Len() == 0 {
		return
	}
	c.items.Clear()
	c.Modified()
}

// Item returns the i-th item, or nil if i is out of range.
func (c *Collection) Item(i int) DataObject {
	e := c.items.At(i)
	if e == nil {
		return nil
	}
	return e.Value.obj
}

// IndexOf returns the index of the first occurrence of obj, or -1.
func (c *Collection) IndexOf(obj DataObject) int {
	return c.items.IndexFunc(func(it item) bool { return it.obj == obj })
}

// IsItemPresent reports whether obj is in the collection.
func (c *Collection) IsItemPresent(obj DataObject) bool {
	return c.IndexOf(obj) >= 0
}

// ItemMetaData returns the metadata of the i-th item, creating it on first
// access, or nil if i is out of range.
func (c *Collection) ItemMetaData(i int) *Information {
	e := c.items.At(i)
	if e == nil {
		return nil
	}
	if e.Value.meta == nil {
		e.Value.meta = NewInformation()
	}
	return e.Value.meta
}

// HasItemMetaData reports whether the i-th item has metadata.
func (c *Collection) HasItemMetaData(i int) bool {
	e := c.items.At(i)
	return e != nil && e.Value.meta != nil
}

// All iterates over index and item pairs.
func (c *Collection) All() iter.Seq2[int, DataObject] {
	return func(yield func(int, DataObject) bool) {
		for i, e := range c.items.All() {
			if !yield(i, e.Value.obj) {
				return
			}
		}
	}
}

// NumberOfPoints sums the points of all items.
func (c *Collection) NumberOfPoints() int64 {
	return c.sum(DataObject.NumberOfPoints)
}

// NumberOfCells sums the cells of all items.
func (c *Collection) NumberOfCells() int64 {
	return c.sum(DataObject.NumberOfCells)
}

// ActualMemorySize sums the memory size of all items.
func (c *Collection) ActualMemorySize() int64 {
	return c.sum(DataObject.ActualMemorySize)
}

func (c *Collection) sum(f func(DataObject) int64) int64 {
	var total int64
	for _, obj := range c.All() {
		if obj != nil {
			total += f(obj)
		}
	}
	return total
}

// ShallowClone returns a collection holding the same items.
func (c *Collection) ShallowClone() DataSet {
	return c.clone(copyComposite)
}

// DeepClone returns a collection holding deep copies of the items.
func (c *Collection) DeepClone() DataSet {
	return c.clone(copyDeep)
}

func (c *Collection) clone(mode copyMode) *Collection {
	out := NewCollection()
	for _, e := range c.items.All() {
		ne := out.items.Append(item{obj: copyObject(e.Value.obj, mode)})
		if e.Value.meta != nil {
			ne.Value.meta = e.Value.meta.Clone(mode == copyDeep)
		}
	}
	return out
}

// CollectionIterator walks the items of a collection. Like TreeIterator it
// tolerates removals between steps.
type CollectionIterator struct {
	coll *Collection

	skipEmptyNodes bool
	reverse        bool

	started   bool
	elem      *seq.Elem[item]
	pos       int
	flatIndex int
}

// NewCollectionIterator returns an iterator over the items of c.
func (c *Collection) NewCollectionIterator() *CollectionIterator {
	return &CollectionIterator{coll: c}
}

// SetSkipEmptyNodes sets whether nil items are skipped.
func (it *CollectionIterator) SetSkipEmptyNodes(skip bool) {
	it.skipEmptyNodes = skip
}

// SkipEmptyNodes reports whether nil items are skipped.
func (it *CollectionIterator) SkipEmptyNodes() bool {
	return it.skipEmptyNodes
}

// SetReverse sets the direction used by the next InitTraversal.
func (it *CollectionIterator) SetReverse(reverse bool) {
	it.reverse = reverse
}

// InitTraversal positions the iterator on the first item.
func (it *CollectionIterator) InitTraversal() {
	it.GoToFirstItem()
}

// GoToFirstItem positions the iterator on the first item that passes the
// filter.
func (it *CollectionIterator) GoToFirstItem() {
	it.started = true
	it.flatIndex = 0
	it.pos = 0
	if it.reverse {
		it.pos = it.coll.items.Len() - 1
	}
	it.elem = it.coll.items.At(it.pos)
	it.skipFiltered()
}

// GoToNextItem moves to the next item that passes the filter.
func (it *CollectionIterator) GoToNextItem() {
	if it.IsDoneWithTraversal() {
		return
	}
	it.step()
	it.skipFiltered()
}

func (it *CollectionIterator) step() {
	it.pos = it.coll.items.Step(it.elem, it.pos, it.reverse)
	it.elem = it.coll.items.At(it.pos)
	it.flatIndex++
}

func (it *CollectionIterator) skipFiltered() {
	for it.skipEmptyNodes && !it.IsDoneWithTraversal() && it.CurrentDataObject() == nil {
		it.step()
	}
}

// IsDoneWithTraversal reports whether the iterator is exhausted.
func (it *CollectionIterator) IsDoneWithTraversal() bool {
	if !it.started || it.elem == nil {
		return true
	}
	items := &it.coll.items
	if items.IndexOf(it.elem, it.pos) >= 0 {
		return false
	}
	return items.At(items.Step(it.elem, it.pos, it.reverse)) == nil
}

// CurrentDataObject returns the current item, or nil when done.
func (it *CollectionIterator) CurrentDataObject() DataObject {
	if it.IsDoneWithTraversal() {
		return nil
	}
	return it.elem.Value.obj
}

// CurrentIndex returns the live index of the current item, or -1 when done.
func (it *CollectionIterator) CurrentIndex() int {
	if it.IsDoneWithTraversal() {
		return -1
	}
	if i := it.coll.items.IndexOf(it.elem, it.pos); i >= 0 {
		it.pos = i
	}
	return it.pos
}

// CurrentFlatIndex returns the number of steps taken since the first item.
func (it *CollectionIterator) CurrentFlatIndex() int {
	if it.IsDoneWithTraversal() {
		return 0
	}
	return it.flatIndex
}

// CurrentMetaData returns the metadata of the current item, creating it on
// first access.
func (it *CollectionIterator) CurrentMetaData() *Information {
	if it.IsDoneWithTraversal() {
		return nil
	}
	if it.elem.Value.meta == nil {
		it.elem.Value.meta = NewInformation()
	}
	return it.elem.Value.meta
}

// HasCurrentMetaData reports whether the current item has metadata.
func (it *CollectionIterator) HasCurrentMetaData() bool {
	return !it.IsDoneWithTraversal() && it.elem.Value.meta != nil
}
