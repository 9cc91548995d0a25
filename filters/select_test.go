package filters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-composite/composite"
)

func line(n int) *composite.PointSet {
	pts := make([][3]float64, n+1)
	for i := range pts {
		pts[i] = [3]float64{float64(i), 0, 0}
	}
	cells := make([][]int, n)
	for i := range cells {
		cells[i] = []int{i, i + 1}
	}
	return composite.NewPointSet(pts, cells)
}

func TestIntersects(t *testing.T) {
	box := [6]float64{0, 1, 0, 1, 0, 1}
	assert.True(t, Intersects(box, [6]float64{0.5, 2, 0.5, 2, 0.5, 2}))
	assert.True(t, Intersects(box, [6]float64{1, 2, 1, 2, 1, 2}), "touching")
	assert.False(t, Intersects(box, [6]float64{1.1, 2, 0, 1, 0, 1}))
	assert.False(t, Intersects(box, [6]float64{0, 1, 0, 1, -3, -2}))
}

func TestSelectCellsInBounds(t *testing.T) {
	ds := line(10)
	bounds := [6]float64{2.5, 4.5, -1, 1, -1, 1}
	want := make([]bool, 10)
	for _, i := range []int{2, 3, 4} {
		want[i] = true
	}

	for _, workers := range []int{0, 1, 3, 10, 64} {
		mask, err := SelectCellsInBounds(context.Background(), ds, bounds, workers)
		require.NoError(t, err)
		assert.Equal(t, want, mask, "workers=%d", workers)
	}
}

func TestSelectCellsEmpty(t *testing.T) {
	mask, err := SelectCellsInBounds(context.Background(), composite.NewPointSet(nil, nil), [6]float64{}, 4)
	require.NoError(t, err)
	assert.Empty(t, mask)
}

func TestSelectCellsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := SelectCellsInBounds(ctx, line(100), [6]float64{0, 1, 0, 1, 0, 1}, 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelectTreeCells(t *testing.T) {
	root := composite.NewMultiBlock()
	root.SetChild(0, line(4))
	root.SetChild(2, composite.NewUniformGrid([3]int{3, 2, 1}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1}))
	far := line(2)
	far.Points = [][3]float64{{100, 0, 0}, {101, 0, 0}, {102, 0, 0}}
	root.SetChild(3, far)

	got, err := SelectTreeCells(context.Background(), root, [6]float64{1.5, 1.5, -1, 1, -1, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, map[int][]bool{
		1: {false, true, false, false},
		3: {false, true},
	}, got)
}

func TestSelectBlocksInBounds(t *testing.T) {
	f := newFixture()
	got := SelectBlocksInBounds(f.root, [6]float64{0.5, 2.5, -1, 1, -1, 1})
	assert.Equal(t, []int{3, 5}, got)

	out := ExtractBlocks(f.root, got, true)
	assert.Len(t, leaves(out), 2)
}
