package composite

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

// captureLog routes reported errors into a buffer for the duration of t.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { SetLogger(prev) })
	return &buf
}

// newLeaf returns a point set with the given number of points and
// single-point cells.
func newLeaf(points, cells int) *PointSet {
	pts := make([][3]float64, points)
	for i := range pts {
		pts[i] = [3]float64{float64(i), 0, 0}
	}
	cs := make([][]int, cells)
	for i := range cs {
		cs[i] = []int{i % max(points, 1)}
	}
	return NewPointSet(pts, cs)
}

// sample holds the leaves of the tree built by newSampleTree:
//
//	root (MultiBlock)          flat 0
//	├── 0: a                   flat 1
//	├── 1: sub (MultiPiece)    flat 2
//	│   ├── 0: x               flat 3
//	│   ├── 1: <empty>         flat 4
//	│   └── 2: y               flat 5
//	├── 2: <empty>             flat 6
//	└── 3: c                   flat 7
type sample struct {
	root    *Tree
	sub     *Tree
	a, x, y *PointSet
	c       *PointSet
}

func newSampleTree() *sample {
	s := &sample{
		root: NewMultiBlock(),
		sub:  NewMultiPiece(),
		a:    newLeaf(3, 1),
		x:    newLeaf(2, 0),
		y:    newLeaf(4, 2),
		c:    newLeaf(1, 1),
	}
	s.sub.SetChild(0, s.x)
	s.sub.SetChild(2, s.y)
	s.root.SetChild(0, s.a)
	s.root.SetChild(1, s.sub)
	s.root.SetChild(3, s.c)
	s.root.ChildMetaData(0).SetName("a")
	s.root.ChildMetaData(1).SetName("sub")
	s.sub.ChildMetaData(2).SetName("y")
	return s
}

// visit is one item yielded by an iterator.
type visit struct {
	obj  DataObject
	flat int
	path []int
}

func collect(it *TreeIterator) []visit {
	var out []visit
	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
		v := visit{obj: it.CurrentDataObject(), path: it.CurrentIndex()}
		if !it.Reverse() {
			v.flat = it.CurrentFlatIndex()
		}
		out = append(out, v)
	}
	return out
}

func flats(vs []visit) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v.flat
	}
	return out
}

func objects(vs []visit) []DataObject {
	out := make([]DataObject, len(vs))
	for i, v := range vs {
		out[i] = v.obj
	}
	return out
}
