package composite

import (
	"maps"
	"math"
	"slices"
)

// PointSet is an unstructured leaf dataset: a list of points and cells
// that index into it.
type PointSet struct {
	objectBase

	// Points holds the point coordinates.
	Points [][3]float64

	// Cells holds point indices per cell.
	Cells [][]int

	// PointData holds named per-point scalar fields.
	PointData map[string][]float64
}

// NewPointSet returns a point set over the given points and cells.
func NewPointSet(points [][3]float64, cells [][]int) *PointSet {
	p := &PointSet{Points: points, Cells: cells}
	p.Modified()
	return p
}

// NumberOfPoints returns the number of points.
func (p *PointSet) NumberOfPoints() int64 {
	return int64(len(p.Points))
}

// NumberOfCells returns the number of cells.
func (p *PointSet) NumberOfCells() int64 {
	return int64(len(p.Cells))
}

// ActualMemorySize returns the size of points, connectivity and fields in bytes.
func (p *PointSet) ActualMemorySize() int64 {
	size := int64(len(p.Points)) * 24
	for _, c := range p.Cells {
		size += int64(len(c)) * 8
	}
	for _, f := range p.PointData {
		size += int64(len(f)) * 8
	}
	return size
}

// SetField sets a named per-point field.
func (p *PointSet) SetField(name string, values []float64) {
	if p.PointData == nil {
		p.PointData = make(map[string][]float64)
	}
	p.PointData[name] = values
	p.Modified()
}

// Bounds returns xmin, xmax, ymin, ymax, zmin, zmax over all points.
// An empty set yields an inverted box.
func (p *PointSet) Bounds() [6]float64 {
	return boundsOf(p.Points)
}

// CellBounds returns the bounds of cell i.
func (p *PointSet) CellBounds(i int) [6]float64 {
	b := emptyBounds()
	if i < 0 || i >= len(p.Cells) {
		return b
	}
	for _, id := range p.Cells[i] {
		if id >= 0 && id < len(p.Points) {
			extend(&b, p.Points[id])
		}
	}
	return b
}

// ShallowClone returns a point set sharing the receiver's arrays.
func (p *PointSet) ShallowClone() DataSet {
	out := &PointSet{Points: p.Points, Cells: p.Cells, PointData: maps.Clone(p.PointData)}
	out.Modified()
	return out
}

// DeepClone returns a point set with copies of the receiver's arrays.
func (p *PointSet) DeepClone() DataSet {
	out := &PointSet{Points: slices.Clone(p.Points)}
	if p.Cells != nil {
		out.Cells = make([][]int, len(p.Cells))
		for i, c := range p.Cells {
			out.Cells[i] = slices.Clone(c)
		}
	}
	if p.PointData != nil {
		out.PointData = make(map[string][]float64, len(p.PointData))
		for k, v := range p.PointData {
			out.PointData[k] = slices.Clone(v)
		}
	}
	out.Modified()
	return out
}

// UniformGrid is a regular lattice of points, the block type of AMR
// hierarchies.
type UniformGrid struct {
	objectBase

	// Dimensions is the number of points along each axis.
	Dimensions [3]int

	Origin  [3]float64
	Spacing [3]float64

	// CellScalars holds one optional value per cell.
	CellScalars []float64
}

// NewUniformGrid returns a grid with the given point dimensions, origin and
// spacing.
func NewUniformGrid(dims [3]int, origin, spacing [3]float64) *UniformGrid {
	g := &UniformGrid{Dimensions: dims, Origin: origin, Spacing: spacing}
	g.Modified()
	return g
}

// NumberOfPoints returns the product of the point dimensions.
func (g *UniformGrid) NumberOfPoints() int64 {
	n := int64(1)
	for _, d := range g.Dimensions {
		n *= int64(max(d, 0))
	}
	return n
}

// NumberOfCells returns the number of cells. Axes with a single point are
// flat and do not multiply the count.
func (g *UniformGrid) NumberOfCells() int64 {
	if g.NumberOfPoints() == 0 {
		return 0
	}
	n := int64(1)
	for _, d := range g.Dimensions {
		n *= int64(max(d-1, 1))
	}
	return n
}

// ActualMemorySize returns the size of the cell scalars in bytes.
func (g *UniformGrid) ActualMemorySize() int64 {
	return int64(len(g.CellScalars)) * 8
}

// Bounds returns xmin, xmax, ymin, ymax, zmin, zmax of the lattice.
func (g *UniformGrid) Bounds() [6]float64 {
	var b [6]float64
	for axis := range 3 {
		lo := g.Origin[axis]
		hi := lo + float64(max(g.Dimensions[axis]-1, 0))*g.Spacing[axis]
		b[2*axis], b[2*axis+1] = min(lo, hi), max(lo, hi)
	}
	return b
}

// CellBounds returns the bounds of cell i, with cells numbered x fastest.
// Flat axes give cells of zero thickness.
func (g *UniformGrid) CellBounds(i int) [6]float64 {
	if i < 0 || int64(i) >= g.NumberOfCells() {
		return emptyBounds()
	}
	var b [6]float64
	for axis := range 3 {
		n := max(g.Dimensions[axis]-1, 1)
		c := i % n
		i /= n
		lo := g.Origin[axis] + float64(c)*g.Spacing[axis]
		hi := lo
		if g.Dimensions[axis] > 1 {
			hi += g.Spacing[axis]
		}
		b[2*axis], b[2*axis+1] = min(lo, hi), max(lo, hi)
	}
	return b
}

// ShallowClone returns a grid sharing the receiver's cell scalars.
func (g *UniformGrid) ShallowClone() DataSet {
	out := *g
	out.Modified()
	return &out
}

// DeepClone returns a grid with a copy of the receiver's cell scalars.
func (g *UniformGrid) DeepClone() DataSet {
	out := *g
	out.CellScalars = slices.Clone(g.CellScalars)
	out.Modified()
	return &out
}

func emptyBounds() [6]float64 {
	inf := math.Inf(1)
	return [6]float64{inf, -inf, inf, -inf, inf, -inf}
}

func extend(b *[6]float64, p [3]float64) {
	for axis := range 3 {
		b[2*axis] = min(b[2*axis], p[axis])
		b[2*axis+1] = max(b[2*axis+1], p[axis])
	}
}

func boundsOf(points [][3]float64) [6]float64 {
	b := emptyBounds()
	for _, p := range points {
		extend(&b, p)
	}
	return b
}
