package filters

import (
	"slices"

	"github.com/robert-malhotra/go-composite/composite"
)

// ExtractBlocks returns a tree with the shape of input that holds only the
// nodes whose flat index is listed, each with everything below it. Leaves
// are shallow clones of those in input. With prune set, branches left empty
// are removed from the result.
func ExtractBlocks(input *composite.Tree, flatIndices []int, prune bool) *composite.Tree {
	out := input.NewInstance()
	selected := make(map[int]bool, len(flatIndices))
	for _, i := range flatIndices {
		selected[i] = true
	}

	if selected[0] {
		out.ShallowCopy(input)
	} else {
		out.CopyStructure(input)
		var taken [][]int
		it := input.NewTreeIterator(composite.WithVisitOnlyLeaves(false), composite.WithSkipEmptyNodes())
		for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
			if !selected[it.CurrentFlatIndex()] {
				continue
			}
			path := it.CurrentIndex()
			if below(path, taken) {
				continue
			}
			taken = append(taken, path)
			out.SetDataSet(it, cloneNode(it.CurrentDataObject()))
		}
	}

	if prune {
		Prune(out)
	}
	return out
}

// below reports whether path lies under one of the ancestors.
func below(path []int, ancestors [][]int) bool {
	for _, a := range ancestors {
		if len(a) < len(path) && slices.Equal(a, path[:len(a)]) {
			return true
		}
	}
	return false
}

func cloneNode(obj composite.DataObject) composite.DataObject {
	switch o := obj.(type) {
	case *composite.Tree:
		out := o.NewInstance()
		out.ShallowCopy(o)
		return out
	case composite.DataSet:
		return o.ShallowClone()
	}
	return obj
}

// Prune removes empty slots from t, then removes nested trees and AMR
// hierarchies that hold no data. Metadata of the remaining slots is kept.
// It reports whether t itself ended up empty.
func Prune(t *composite.Tree) bool {
	for i := t.NumberOfChildren() - 1; i >= 0; i-- {
		if empty(t.Child(i)) {
			t.RemoveChild(i)
		}
	}
	return t.NumberOfChildren() == 0
}

func empty(obj composite.DataObject) bool {
	switch o := obj.(type) {
	case nil:
		return true
	case *composite.Tree:
		return Prune(o)
	case *composite.AMR:
		it := o.NewAMRIterator()
		it.InitTraversal()
		return it.IsDoneWithTraversal()
	}
	return false
}
