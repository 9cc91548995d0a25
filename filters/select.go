package filters

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-composite/composite"
)

// CellSource is a dataset whose cells have bounds.
type CellSource interface {
	NumberOfCells() int64
	CellBounds(i int) [6]float64
}

// bounded is a dataset with overall bounds.
type bounded interface {
	Bounds() [6]float64
}

// cancelCheckInterval is how many cells a worker tests between context checks.
const cancelCheckInterval = 4096

// Intersects reports whether two boxes given as xmin, xmax, ymin, ymax, zmin,
// zmax overlap. Touching boxes overlap.
func Intersects(a, b [6]float64) bool {
	for axis := range 3 {
		if a[2*axis] > b[2*axis+1] || b[2*axis] > a[2*axis+1] {
			return false
		}
	}
	return true
}

// SelectCellsInBounds marks the cells of ds whose bounds intersect bounds.
// The cells are split into disjoint ranges tested by up to workers
// goroutines; workers below 1 means one.
func SelectCellsInBounds(ctx context.Context, ds CellSource, bounds [6]float64, workers int) ([]bool, error) {
	n := int(ds.NumberOfCells())
	mask := make([]bool, n)
	if n == 0 {
		return mask, nil
	}
	workers = min(max(workers, 1), n)
	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				mask[i] = Intersects(ds.CellBounds(i), bounds)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mask, nil
}

// SelectTreeCells runs SelectCellsInBounds over every leaf of t that has
// cells, keyed by the leaf's flat index. Leaves whose bounds miss the box
// entirely are left out of the result.
func SelectTreeCells(ctx context.Context, t *composite.Tree, bounds [6]float64, workers int) (map[int][]bool, error) {
	out := make(map[int][]bool)
	it := t.NewTreeIterator(composite.WithSkipEmptyNodes())
	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
		ds, ok := it.CurrentDataObject().(CellSource)
		if !ok {
			continue
		}
		if b, ok := ds.(bounded); ok && !Intersects(b.Bounds(), bounds) {
			continue
		}
		mask, err := SelectCellsInBounds(ctx, ds, bounds, workers)
		if err != nil {
			return nil, err
		}
		out[it.CurrentFlatIndex()] = mask
	}
	return out, nil
}

// SelectBlocksInBounds returns the flat indices of the leaves of t whose
// bounds intersect bounds, ready for ExtractBlocks.
func SelectBlocksInBounds(t *composite.Tree, bounds [6]float64) []int {
	var out []int
	it := t.NewTreeIterator(composite.WithSkipEmptyNodes())
	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
		if b, ok := it.CurrentDataObject().(bounded); ok && Intersects(b.Bounds(), bounds) {
			out = append(out, it.CurrentFlatIndex())
		}
	}
	return out
}
