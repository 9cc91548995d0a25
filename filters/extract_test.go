package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-composite/composite"
)

// fixture builds
//
//	root (MultiBlock)          flat 0
//	├── 0: a                   flat 1
//	├── 1: sub (MultiPiece)    flat 2
//	│   ├── 0: x               flat 3
//	│   ├── 1: <empty>         flat 4
//	│   └── 2: y               flat 5
//	├── 2: <empty>             flat 6
//	└── 3: c                   flat 7
type fixture struct {
	root, sub *composite.Tree
	a, x, y   *composite.PointSet
	c         *composite.PointSet
}

func point(x, y, z float64) *composite.PointSet {
	return composite.NewPointSet([][3]float64{{x, y, z}}, [][]int{{0}})
}

func newFixture() *fixture {
	f := &fixture{
		root: composite.NewMultiBlock(),
		sub:  composite.NewMultiPiece(),
		a:    point(0, 0, 0),
		x:    point(1, 0, 0),
		y:    point(2, 0, 0),
		c:    point(3, 0, 0),
	}
	f.sub.SetChild(0, f.x)
	f.sub.SetChild(2, f.y)
	f.root.SetChild(0, f.a)
	f.root.SetChild(1, f.sub)
	f.root.SetChild(3, f.c)
	f.root.ChildMetaData(0).SetName("a")
	f.root.ChildMetaData(1).SetName("sub")
	f.sub.ChildMetaData(2).SetName("y")
	return f
}

func leaves(t *composite.Tree) []composite.DataObject {
	var out []composite.DataObject
	it := t.NewTreeIterator(composite.WithSkipEmptyNodes())
	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
		out = append(out, it.CurrentDataObject())
	}
	return out
}

func TestExtractLeaves(t *testing.T) {
	f := newFixture()
	out := ExtractBlocks(f.root, []int{1, 5}, false)

	require.Equal(t, 4, out.NumberOfChildren())
	a, ok := out.Child(0).(*composite.PointSet)
	require.True(t, ok)
	assert.NotSame(t, f.a, a)
	assert.Equal(t, f.a.Points, a.Points)

	sub, ok := out.Child(1).(*composite.Tree)
	require.True(t, ok)
	assert.Equal(t, 3, sub.NumberOfChildren())
	assert.Nil(t, sub.Child(0))
	assert.NotNil(t, sub.Child(2))
	assert.Nil(t, out.Child(3))
	assert.Equal(t, "sub", out.ChildMetaData(1).Name())
	assert.Len(t, leaves(out), 2)

	assert.Len(t, leaves(f.root), 4, "input is untouched")
}

func TestExtractWithPrune(t *testing.T) {
	f := newFixture()
	out := ExtractBlocks(f.root, []int{1, 5}, true)

	require.Equal(t, 2, out.NumberOfChildren())
	assert.Equal(t, "a", out.ChildMetaData(0).Name())
	assert.Equal(t, "sub", out.ChildMetaData(1).Name())
	sub := out.Child(1).(*composite.Tree)
	require.Equal(t, 1, sub.NumberOfChildren())
	assert.Equal(t, "y", sub.ChildMetaData(0).Name())
	assert.Equal(t, f.y.Points, sub.Child(0).(*composite.PointSet).Points)
}

func TestExtractSubTree(t *testing.T) {
	f := newFixture()
	out := ExtractBlocks(f.root, []int{2, 3}, true)

	require.Equal(t, 1, out.NumberOfChildren())
	sub := out.Child(0).(*composite.Tree)
	assert.Equal(t, composite.MultiPiece, sub.Kind())
	assert.Equal(t, 2, sub.NumberOfChildren())
	assert.Equal(t, "y", sub.ChildMetaData(1).Name())
	assert.NotSame(t, f.sub, sub)
}

func TestExtractRoot(t *testing.T) {
	f := newFixture()
	out := ExtractBlocks(f.root, []int{0}, false)
	assert.Equal(t, f.root.NumberOfChildren(), out.NumberOfChildren())
	assert.Len(t, leaves(out), 4)
}

func TestExtractNothing(t *testing.T) {
	f := newFixture()
	out := ExtractBlocks(f.root, nil, true)
	assert.Equal(t, 0, out.NumberOfChildren())

	out = ExtractBlocks(f.root, []int{4, 6, 99}, false)
	assert.Equal(t, 4, out.NumberOfChildren())
	assert.Empty(t, leaves(out))
}

func TestExtractThroughAMR(t *testing.T) {
	amr := composite.NewOverlappingAMR(1, 1)
	amr.SetDataSet(0, 0, composite.NewUniformGrid([3]int{2, 2, 2}, [3]float64{}, [3]float64{1, 1, 1}))
	amr.SetDataSet(1, 0, composite.NewUniformGrid([3]int{3, 3, 3}, [3]float64{}, [3]float64{0.5, 0.5, 0.5}))
	root := composite.NewMultiBlock()
	root.SetChild(0, amr)

	// root 0, amr 1, level 0 2, block 3, level 1 4, block 5
	out := ExtractBlocks(root, []int{5}, false)
	got, ok := out.Child(0).(*composite.AMR)
	require.True(t, ok)
	assert.Nil(t, got.DataSet(0, 0))
	require.NotNil(t, got.DataSet(1, 0))
	assert.Equal(t, int64(27), got.NumberOfPoints())
}

func TestExtractAMRLevel(t *testing.T) {
	amr := composite.NewOverlappingAMR(1, 2)
	amr.SetDataSet(0, 0, composite.NewUniformGrid([3]int{2, 2, 2}, [3]float64{}, [3]float64{1, 1, 1}))
	amr.SetDataSet(1, 1, composite.NewUniformGrid([3]int{3, 3, 3}, [3]float64{}, [3]float64{0.5, 0.5, 0.5}))
	root := composite.NewMultiBlock()
	root.SetChild(0, amr)

	// root 0, amr 1, level 0 2, block 3, level 1 4, blocks 5 and 6
	out := ExtractBlocks(root, []int{4}, false)
	got, ok := out.Child(0).(*composite.AMR)
	require.True(t, ok)
	assert.Equal(t, 2, got.NumberOfBlocks(1))
	assert.Nil(t, got.DataSet(0, 0))
	assert.Nil(t, got.DataSet(1, 0))
	require.NotNil(t, got.DataSet(1, 1))
	assert.NotSame(t, amr.DataSet(1, 1), got.DataSet(1, 1))
	assert.Equal(t, int64(27), got.NumberOfPoints())
}

func TestSetDataSetKeepsAMRGrids(t *testing.T) {
	root := composite.NewMultiBlock()
	root.SetChild(0, composite.NewOverlappingAMR(1))
	root.Child(0).(*composite.AMR).SetDataSet(0, 0,
		composite.NewUniformGrid([3]int{2, 2, 2}, [3]float64{}, [3]float64{1, 1, 1}))
	out := ExtractBlocks(root, nil, false)

	it := root.NewTreeIterator()
	it.InitTraversal()
	require.Equal(t, []int{0, 0, 0}, it.CurrentIndex())
	out.SetDataSet(it, point(0, 0, 0))

	got := out.Child(0).(*composite.AMR)
	assert.Nil(t, got.DataSet(0, 0))
	assert.Equal(t, int64(0), got.NumberOfPoints())
}

func TestPrune(t *testing.T) {
	root := composite.NewMultiBlock()
	root.SetNumberOfChildren(3)
	hollow := composite.NewMultiBlock()
	hollow.SetChild(1, composite.NewMultiPiece())
	root.SetChild(0, hollow)
	root.SetChild(1, composite.NewNonOverlappingAMR(2))
	leaf := point(0, 0, 0)
	root.SetChild(2, leaf)
	root.ChildMetaData(2).SetName("kept")

	assert.False(t, Prune(root))
	require.Equal(t, 1, root.NumberOfChildren())
	assert.Same(t, leaf, root.Child(0))
	assert.Equal(t, "kept", root.ChildMetaData(0).Name())

	empty := composite.NewMultiBlock()
	empty.SetNumberOfChildren(2)
	assert.True(t, Prune(empty))
}
