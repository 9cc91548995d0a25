package composite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSampleAMR returns an overlapping hierarchy with one block on level 0
// and two slots on level 1, the second of them empty.
func newSampleAMR() *AMR {
	amr := NewOverlappingAMR(1, 2)
	amr.SetOrigin([3]float64{0, 0, 0})
	amr.SetSpacing(0, [3]float64{1, 1, 1})
	amr.SetSpacing(1, [3]float64{0.5, 0.5, 0.5})
	amr.SetDataSet(0, 0, NewUniformGrid([3]int{5, 5, 5}, [3]float64{}, [3]float64{1, 1, 1}))
	amr.SetAMRBox(0, 0, AMRBox{Hi: [3]int{3, 3, 3}})
	amr.SetDataSet(1, 0, NewUniformGrid([3]int{3, 3, 3}, [3]float64{}, [3]float64{0.5, 0.5, 0.5}))
	amr.SetAMRBox(1, 0, AMRBox{Hi: [3]int{1, 1, 1}})
	return amr
}

func TestAMRLayout(t *testing.T) {
	amr := newSampleAMR()
	assert.Equal(t, 2, amr.NumberOfLevels())
	assert.Equal(t, 1, amr.NumberOfBlocks(0))
	assert.Equal(t, 2, amr.NumberOfBlocks(1))
	assert.Equal(t, 0, amr.NumberOfBlocks(7))
	assert.Equal(t, 3, amr.TotalNumberOfBlocks())
	assert.Equal(t, 2, amr.CompositeIndex(1, 1))
	assert.Equal(t, -1, amr.CompositeIndex(1, 2))
	assert.Nil(t, amr.DataSet(1, 1))
	assert.Nil(t, amr.DataSet(4, 0))
	assert.Equal(t, int64(125+27), amr.NumberOfPoints())
	assert.Equal(t, int64(64+8), amr.NumberOfCells())
}

func TestAMROutOfRange(t *testing.T) {
	buf := captureLog(t)
	amr := newSampleAMR()
	amr.SetDataSet(0, 1, NewUniformGrid([3]int{2, 2, 2}, [3]float64{}, [3]float64{1, 1, 1}))
	amr.SetAMRBox(3, 0, AMRBox{})
	amr.SetSpacing(-1, [3]float64{})
	assert.Equal(t, 1, amr.NumberOfBlocks(0))
	assert.Contains(t, buf.String(), "AMR.SetDataSet")
	assert.Contains(t, buf.String(), "AMR.SetAMRBox")
	assert.Contains(t, buf.String(), "AMR.SetSpacing")

	_, ok := amr.Spacing(5)
	assert.False(t, ok)
	box, ok := amr.AMRBox(1, 9)
	assert.False(t, ok)
	assert.True(t, box.IsInvalid())
}

func TestAMRBox(t *testing.T) {
	assert.True(t, InvalidAMRBox().IsInvalid())
	assert.Equal(t, int64(0), InvalidAMRBox().NumberOfCells())
	box := AMRBox{Lo: [3]int{1, 1, 0}, Hi: [3]int{2, 3, 0}}
	assert.False(t, box.IsInvalid())
	assert.Equal(t, int64(2*3*1), box.NumberOfCells())
}

func TestAMRBlockBounds(t *testing.T) {
	amr := newSampleAMR()
	b, ok := amr.BlockBounds(0, 0)
	require.True(t, ok)
	assert.Equal(t, [6]float64{0, 4, 0, 4, 0, 4}, b)

	b, ok = amr.BlockBounds(1, 0)
	require.True(t, ok)
	assert.Equal(t, [6]float64{0, 1, 0, 1, 0, 1}, b)

	_, ok = amr.BlockBounds(1, 1)
	assert.False(t, ok, "no box and no grid")
}

func TestAMRIterator(t *testing.T) {
	amr := newSampleAMR()
	it := amr.NewAMRIterator()

	type block struct{ level, index, flat int }
	var got []block
	var grids []*UniformGrid
	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
		got = append(got, block{it.CurrentLevel(), it.CurrentIndex(), it.CurrentFlatIndex()})
		grids = append(grids, it.CurrentGrid())
	}
	assert.Equal(t, []block{{0, 0, 0}, {1, 0, 1}}, got)
	assert.Same(t, amr.DataSet(0, 0), grids[0])
	assert.Same(t, amr.DataSet(1, 0), grids[1])

	assert.Nil(t, it.CurrentDataObject())
	assert.Nil(t, it.CurrentMetaData())
	assert.Equal(t, 0, it.CurrentFlatIndex())
}

func TestAMRIteratorSkipsEmptyEvenWhenAsked(t *testing.T) {
	amr := newSampleAMR()
	it := amr.NewAMRIterator()
	it.SetSkipEmptyNodes(false)
	n := 0
	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
		require.NotNil(t, it.CurrentDataObject())
		n++
	}
	assert.Equal(t, 2, n)
}

func TestAMRIteratorOverlappingMetaData(t *testing.T) {
	amr := newSampleAMR()
	it := amr.NewAMRIterator()
	it.InitTraversal()
	it.GoToNextItem()
	require.False(t, it.IsDoneWithTraversal())

	assert.True(t, it.HasCurrentMetaData())
	md := it.CurrentMetaData()
	require.NotNil(t, md)
	b, ok := md.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, [6]float64{0, 1, 0, 1, 0, 1}, b)
	level, _ := InfoGet[int](md, KeyLevel)
	assert.Equal(t, 1, level)

	// Nothing is stored on the block by reading.
	assert.False(t, amr.HasBlockMetaData(1, 0))
}

func TestAMRIteratorMetaDataKeepsStoredBag(t *testing.T) {
	amr := newSampleAMR()
	stored := amr.BlockMetaData(1, 0)
	stored.SetBoundingBox([6]float64{9, 9, 9, 9, 9, 9})
	stored.SetName("fine")

	it := amr.NewAMRIterator()
	it.InitTraversal()
	require.False(t, amr.HasBlockMetaData(0, 0))
	md := it.CurrentMetaData()
	require.NotNil(t, md)
	assert.False(t, amr.HasBlockMetaData(0, 0))

	it.GoToNextItem()
	require.Equal(t, 1, it.CurrentLevel())
	md = it.CurrentMetaData()
	assert.NotSame(t, stored, md)
	assert.Equal(t, "fine", md.Name())
	b, _ := md.BoundingBox()
	assert.Equal(t, [6]float64{0, 1, 0, 1, 0, 1}, b)

	md.SetName("changed")
	assert.Equal(t, []string{KeyBoundingBox, KeyName}, stored.Keys())
	b, _ = stored.BoundingBox()
	assert.Equal(t, [6]float64{9, 9, 9, 9, 9, 9}, b)
	assert.Equal(t, "fine", stored.Name())
}

func TestAMRIteratorAfterRelayout(t *testing.T) {
	amr := newSampleAMR()
	it := amr.NewAMRIterator()
	it.InitTraversal()
	require.False(t, it.IsDoneWithTraversal())

	amr.Initialize(3)
	amr.SetDataSet(0, 2, NewUniformGrid([3]int{2, 2, 2}, [3]float64{}, [3]float64{1, 1, 1}))
	assert.True(t, it.IsDoneWithTraversal())
	assert.Nil(t, it.CurrentDataObject())
	it.GoToNextItem()
	assert.True(t, it.IsDoneWithTraversal())

	it.InitTraversal()
	require.False(t, it.IsDoneWithTraversal())
	assert.Same(t, amr.DataSet(0, 2), it.CurrentDataObject())
	assert.Equal(t, 2, it.CurrentIndex())
	it.GoToNextItem()
	assert.True(t, it.IsDoneWithTraversal())

	other := NewOverlappingAMR(1)
	amr.CopyStructure(other)
	assert.True(t, it.IsDoneWithTraversal())
	it.InitTraversal()
	assert.True(t, it.IsDoneWithTraversal())
	assert.Equal(t, 1, amr.NumberOfLevels())
}

func TestAMRCopyStructureFromNil(t *testing.T) {
	amr := newSampleAMR()
	assert.NotPanics(t, func() { amr.CopyStructure(nil) })
	assert.Equal(t, 0, amr.NumberOfLevels())
	assert.Equal(t, int64(0), amr.NumberOfPoints())
}

// seekFlat moves it to the item with the given flat index.
func seekFlat(t *testing.T, it *TreeIterator, flat int) {
	t.Helper()
	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
		if it.CurrentFlatIndex() == flat {
			return
		}
	}
	t.Fatalf("no item with flat index %d", flat)
}

func TestTreeSetDataSetInsideAMR(t *testing.T) {
	// root 0, amr 1, level 0 2, block (0,0) 3, level 1 4, blocks 5 and 6
	root := NewMultiBlock()
	root.SetChild(0, newSampleAMR())
	out := NewMultiBlock()
	out.CopyStructure(root)
	inner, ok := out.Child(0).(*AMR)
	require.True(t, ok)
	it := root.NewTreeIterator(WithVisitOnlyLeaves(false))

	t.Run("grid block", func(t *testing.T) {
		grid := NewUniformGrid([3]int{2, 2, 2}, [3]float64{}, [3]float64{1, 1, 1})
		seekFlat(t, it, 3)
		out.SetDataSet(it, grid)
		assert.Same(t, grid, inner.DataSet(0, 0))
		assert.Same(t, grid, out.DataSet(it))
	})

	t.Run("other block", func(t *testing.T) {
		buf := captureLog(t)
		before := inner.NumberOfPoints()
		seekFlat(t, it, 5)
		out.SetDataSet(it, newLeaf(1, 1))
		assert.Nil(t, inner.DataSet(1, 0))
		assert.Nil(t, out.DataSet(it))
		assert.Equal(t, before, inner.NumberOfPoints())
		assert.Contains(t, buf.String(), "AMR blocks must be uniform grids")
	})

	t.Run("level", func(t *testing.T) {
		seekFlat(t, it, 4)
		piece := NewMultiPiece()
		piece.SetNumberOfChildren(2)
		grid := NewUniformGrid([3]int{3, 3, 3}, [3]float64{}, [3]float64{0.5, 0.5, 0.5})
		piece.SetChild(1, grid)
		out.SetDataSet(it, piece)
		assert.Nil(t, inner.DataSet(1, 0))
		assert.Same(t, grid, inner.DataSet(1, 1))
	})

	t.Run("level of wrong size", func(t *testing.T) {
		buf := captureLog(t)
		seekFlat(t, it, 4)
		out.SetDataSet(it, NewMultiPiece())
		assert.Equal(t, 2, inner.NumberOfBlocks(1))
		assert.NotNil(t, inner.DataSet(1, 1))
		assert.Contains(t, buf.String(), "one slot per block")
	})

	t.Run("level holding points", func(t *testing.T) {
		buf := captureLog(t)
		seekFlat(t, it, 4)
		piece := NewMultiPiece()
		piece.SetChild(1, newLeaf(1, 1))
		out.SetDataSet(it, piece)
		assert.NotNil(t, inner.DataSet(1, 1))
		assert.Contains(t, buf.String(), "AMR blocks must be uniform grids")
	})
}

func TestAMRIteratorNonOverlappingMetaData(t *testing.T) {
	amr := NewNonOverlappingAMR(2)
	amr.SetDataSet(0, 1, NewUniformGrid([3]int{2, 2, 2}, [3]float64{}, [3]float64{1, 1, 1}))
	it := amr.NewAMRIterator()
	it.InitTraversal()
	require.False(t, it.IsDoneWithTraversal())
	assert.Equal(t, 1, it.CurrentIndex())
	assert.False(t, it.HasCurrentMetaData())
	md := it.CurrentMetaData()
	require.NotNil(t, md)
	_, ok := md.BoundingBox()
	assert.False(t, ok)
}

func TestAMRIteratorMisconfigured(t *testing.T) {
	tests := []struct {
		name      string
		configure func(*AMRIterator)
	}{
		{"visit composites", func(it *AMRIterator) { it.SetVisitOnlyLeaves(false) }},
		{"no sub-trees", func(it *AMRIterator) { it.SetTraverseSubTree(false) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			it := newSampleAMR().NewAMRIterator()
			assert.True(t, it.IsValid())
			tt.configure(it)

			it.InitTraversal()
			assert.True(t, it.IsDoneWithTraversal())
			assert.Nil(t, it.CurrentDataObject())
			assert.False(t, it.IsValid())
			assert.Contains(t, buf.String(), "requires leaves-only")
		})
	}
}

func TestAMRIteratorMisconfiguredMidTraversal(t *testing.T) {
	captureLog(t)
	it := newSampleAMR().NewAMRIterator()
	it.InitTraversal()
	require.False(t, it.IsDoneWithTraversal())
	it.SetVisitOnlyLeaves(false)
	assert.True(t, it.IsDoneWithTraversal())
	it.GoToNextItem()
	assert.True(t, it.IsDoneWithTraversal())
}

func TestAMRInsideTree(t *testing.T) {
	amr := newSampleAMR()
	root := NewMultiBlock()
	root.SetChild(0, amr)
	root.SetChild(1, newLeaf(3, 1))

	assert.Equal(t, int64(125+27+3), root.NumberOfPoints())

	vs := collect(root.NewTreeIterator(WithSkipEmptyNodes()))
	require.Len(t, vs, 3)
	assert.Equal(t, []int{0, 0, 0}, vs[0].path)
	assert.Equal(t, []int{0, 1, 0}, vs[1].path)
	assert.Equal(t, []int{1}, vs[2].path)
}

func TestAMRCopies(t *testing.T) {
	amr := newSampleAMR()
	amr.DataSet(0, 0).CellScalars = []float64{1, 2, 3}

	shallow, ok := amr.ShallowClone().(*AMR)
	require.True(t, ok)
	assert.NotSame(t, amr.DataSet(0, 0), shallow.DataSet(0, 0))
	assert.Same(t, &amr.DataSet(0, 0).CellScalars[0], &shallow.DataSet(0, 0).CellScalars[0])

	deep, ok := amr.DeepClone().(*AMR)
	require.True(t, ok)
	assert.NotSame(t, &amr.DataSet(0, 0).CellScalars[0], &deep.DataSet(0, 0).CellScalars[0])
	assert.Equal(t, amr.Origin(), deep.Origin())
	b1, _ := amr.BlockBounds(1, 0)
	b2, _ := deep.BlockBounds(1, 0)
	assert.Equal(t, b1, b2)

	through := NewMultiBlock()
	through.SetChild(0, amr)
	copied := NewMultiBlock()
	copied.DeepCopy(through)
	inner, ok := copied.Child(0).(*AMR)
	require.True(t, ok)
	assert.NotSame(t, amr, inner)
	assert.Equal(t, amr.NumberOfPoints(), inner.NumberOfPoints())
}
