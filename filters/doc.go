// Package filters holds consumers of the composite iteration contract:
// block extraction by flat index, pruning of empty branches and cell
// selection by bounding box.
//
// Flat indices are the pre-order numbers assigned by a forward
// [composite.TreeIterator], with the root at 0. They stay valid as long as
// the tree is not restructured.
package filters
