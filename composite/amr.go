package composite

import "fmt"

// AMRBox is an axis-aligned box of cells on one refinement level, given by
// inclusive lower and upper cell corners.
type AMRBox struct {
	Lo [3]int
	Hi [3]int
}

// InvalidAMRBox returns a box with no cells.
func InvalidAMRBox() AMRBox {
	return AMRBox{Hi: [3]int{-1, -1, -1}}
}

// IsInvalid reports whether the box holds no cells.
func (b AMRBox) IsInvalid() bool {
	for axis := range 3 {
		if b.Hi[axis] < b.Lo[axis] {
			return true
		}
	}
	return false
}

// NumberOfCells returns the number of cells covered by the box.
func (b AMRBox) NumberOfCells() int64 {
	if b.IsInvalid() {
		return 0
	}
	n := int64(1)
	for axis := range 3 {
		n *= int64(b.Hi[axis] - b.Lo[axis] + 1)
	}
	return n
}

// AMR is a two-level hierarchy of uniform grids: refinement levels, then
// the blocks present on each level. Blocks of an overlapping AMR cover
// regions that are also covered, coarser, by lower levels.
//
// The hierarchy is stored as a tree with one multipiece child per level, so
// it can be walked and addressed like any other tree.
type AMR struct {
	objectBase
	overlapping bool
	tree        *Tree

	origin  [3]float64
	spacing [][3]float64
	boxes   [][]AMRBox
}

// NewOverlappingAMR returns a hierarchy with the given number of blocks per
// level.
func NewOverlappingAMR(blocksPerLevel ...int) *AMR {
	a := &AMR{overlapping: true}
	a.Initialize(blocksPerLevel...)
	return a
}

// NewNonOverlappingAMR returns a hierarchy whose blocks do not overlap.
func NewNonOverlappingAMR(blocksPerLevel ...int) *AMR {
	a := &AMR{}
	a.Initialize(blocksPerLevel...)
	return a
}

// NewInstance returns an empty hierarchy of the same kind.
func (a *AMR) NewInstance() *AMR {
	out := &AMR{overlapping: a.overlapping}
	out.Initialize()
	return out
}

// Initialize discards all blocks and lays out empty levels.
func (a *AMR) Initialize(blocksPerLevel ...int) {
	a.tree = NewMultiBlock()
	a.spacing = make([][3]float64, len(blocksPerLevel))
	a.boxes = make([][]AMRBox, len(blocksPerLevel))
	for level, n := range blocksPerLevel {
		n = max(n, 0)
		piece := NewMultiPiece()
		piece.SetNumberOfChildren(n)
		a.tree.SetChild(level, piece)
		a.tree.ChildMetaData(level).SetName(levelName(level))
		a.boxes[level] = make([]AMRBox, n)
		for i := range a.boxes[level] {
			a.boxes[level][i] = InvalidAMRBox()
		}
	}
	a.Modified()
}

func (a *AMR) composite() {}

// NewIterator returns an AMR iterator with default settings.
func (a *AMR) NewIterator() Iterator {
	return a.NewAMRIterator()
}

// Overlapping reports whether this is an overlapping hierarchy.
func (a *AMR) Overlapping() bool {
	return a.overlapping
}

// NumberOfLevels returns the number of refinement levels.
func (a *AMR) NumberOfLevels() int {
	return a.tree.NumberOfChildren()
}

// NumberOfBlocks returns the number of blocks on level, or 0 if the level
// does not exist.
func (a *AMR) NumberOfBlocks(level int) int {
	if piece := a.level(level); piece != nil {
		return piece.NumberOfChildren()
	}
	return 0
}

// TotalNumberOfBlocks returns the number of blocks over all levels.
func (a *AMR) TotalNumberOfBlocks() int {
	total := 0
	for level := range a.NumberOfLevels() {
		total += a.NumberOfBlocks(level)
	}
	return total
}

// CompositeIndex returns the position of a block when all levels are laid
// end to end, or -1 if the block does not exist.
func (a *AMR) CompositeIndex(level, index int) int {
	if index < 0 || index >= a.NumberOfBlocks(level) {
		return -1
	}
	offset := 0
	for l := range level {
		offset += a.NumberOfBlocks(l)
	}
	return offset + index
}

func (a *AMR) level(level int) *Tree {
	piece, _ := a.tree.Child(level).(*Tree)
	return piece
}

// SetDataSet stores grid as block index of level.
func (a *AMR) SetDataSet(level, index int, grid *UniformGrid) {
	piece := a.level(level)
	if piece == nil || index < 0 || index >= piece.NumberOfChildren() {
		reportError("AMR.SetDataSet").Int("level", level).Int("index", index).Msg("block out of range")
		return
	}
	piece.SetChild(index, grid)
	a.Modified()
}

// setBlock stores obj as a block on behalf of op. Only uniform grids are
// accepted; nil empties the block.
func (a *AMR) setBlock(level, index int, obj DataObject, op string) {
	if isNil(obj) {
		a.SetDataSet(level, index, nil)
		return
	}
	grid, ok := obj.(*UniformGrid)
	if !ok {
		reportError(op).
			Int("level", level).
			Int("index", index).
			Str("block", fmt.Sprintf("%T", obj)).
			Msg("AMR blocks must be uniform grids")
		return
	}
	a.SetDataSet(level, index, grid)
}

// setLevel replaces every block of level with the children of obj, which
// must be a tree with one slot per block holding grids or nothing.
func (a *AMR) setLevel(level int, obj DataObject, op string) {
	piece, ok := obj.(*Tree)
	if isNil(obj) {
		piece, ok = NewMultiPiece(), true
		piece.SetNumberOfChildren(a.NumberOfBlocks(level))
	}
	if !ok || piece.NumberOfChildren() != a.NumberOfBlocks(level) {
		reportError(op).
			Int("level", level).
			Str("source", fmt.Sprintf("%T", obj)).
			Msg("AMR level must be replaced by a tree with one slot per block")
		return
	}
	for i := range piece.NumberOfChildren() {
		if c := piece.Child(i); c != nil {
			if _, isGrid := c.(*UniformGrid); !isGrid {
				reportError(op).
					Int("level", level).
					Int("index", i).
					Str("block", fmt.Sprintf("%T", c)).
					Msg("AMR blocks must be uniform grids")
				return
			}
		}
	}
	for i := range piece.NumberOfChildren() {
		a.setBlock(level, i, piece.Child(i), op)
	}
}

// DataSet returns block index of level, or nil.
func (a *AMR) DataSet(level, index int) *UniformGrid {
	piece := a.level(level)
	if piece == nil {
		return nil
	}
	grid, _ := piece.Child(index).(*UniformGrid)
	return grid
}

// BlockMetaData returns the metadata of a block, creating it on first access.
func (a *AMR) BlockMetaData(level, index int) *Information {
	piece := a.level(level)
	if piece == nil {
		return nil
	}
	return piece.ChildMetaData(index)
}

// HasBlockMetaData reports whether a block has metadata without creating it.
func (a *AMR) HasBlockMetaData(level, index int) bool {
	piece := a.level(level)
	return piece != nil && piece.HasChildMetaData(index)
}

// SetOrigin sets the origin shared by all levels.
func (a *AMR) SetOrigin(origin [3]float64) {
	a.origin = origin
	a.Modified()
}

// Origin returns the origin shared by all levels.
func (a *AMR) Origin() [3]float64 {
	return a.origin
}

// SetSpacing sets the cell size of level.
func (a *AMR) SetSpacing(level int, spacing [3]float64) {
	if level < 0 || level >= len(a.spacing) {
		reportError("AMR.SetSpacing").Int("level", level).Msg("level out of range")
		return
	}
	a.spacing[level] = spacing
	a.Modified()
}

// Spacing returns the cell size of level.
func (a *AMR) Spacing(level int) ([3]float64, bool) {
	if level < 0 || level >= len(a.spacing) {
		return [3]float64{}, false
	}
	return a.spacing[level], true
}

// SetAMRBox sets the cell box of a block.
func (a *AMR) SetAMRBox(level, index int, box AMRBox) {
	if level < 0 || level >= len(a.boxes) || index < 0 || index >= len(a.boxes[level]) {
		reportError("AMR.SetAMRBox").Int("level", level).Int("index", index).Msg("block out of range")
		return
	}
	a.boxes[level][index] = box
	a.Modified()
}

// AMRBox returns the cell box of a block.
func (a *AMR) AMRBox(level, index int) (AMRBox, bool) {
	if level < 0 || level >= len(a.boxes) || index < 0 || index >= len(a.boxes[level]) {
		return InvalidAMRBox(), false
	}
	return a.boxes[level][index], true
}

// BlockBounds returns the world bounds of a block computed from its box, the
// origin and the level spacing. It falls back to the grid bounds when no box
// was set.
func (a *AMR) BlockBounds(level, index int) ([6]float64, bool) {
	box, ok := a.AMRBox(level, index)
	if !ok {
		return [6]float64{}, false
	}
	if box.IsInvalid() {
		if grid := a.DataSet(level, index); grid != nil {
			return grid.Bounds(), true
		}
		return [6]float64{}, false
	}
	spacing := a.spacing[level]
	var b [6]float64
	for axis := range 3 {
		b[2*axis] = a.origin[axis] + float64(box.Lo[axis])*spacing[axis]
		b[2*axis+1] = a.origin[axis] + float64(box.Hi[axis]+1)*spacing[axis]
	}
	return b, true
}

// NumberOfPoints sums the points of all blocks.
func (a *AMR) NumberOfPoints() int64 {
	return a.tree.NumberOfPoints()
}

// NumberOfCells sums the cells of all blocks.
func (a *AMR) NumberOfCells() int64 {
	return a.tree.NumberOfCells()
}

// ActualMemorySize sums the memory size of all blocks.
func (a *AMR) ActualMemorySize() int64 {
	return a.tree.ActualMemorySize()
}

// CopyStructure lays out the same levels and boxes as src with empty blocks.
// A nil src leaves a hierarchy with no levels.
func (a *AMR) CopyStructure(src *AMR) {
	if src == a {
		return
	}
	if src == nil {
		a.Initialize()
		return
	}
	a.overlapping = src.overlapping
	a.tree = NewMultiBlock()
	a.tree.copyStructureFrom(src.tree)
	a.copyGeometry(src)
	a.Modified()
}

func (a *AMR) copyFrom(src *AMR, mode copyMode) {
	a.overlapping = src.overlapping
	a.tree = NewMultiBlock()
	a.tree.copyFrom(src.tree, mode)
	a.copyGeometry(src)
	a.Modified()
}

func (a *AMR) copyGeometry(src *AMR) {
	a.origin = src.origin
	a.spacing = append([][3]float64(nil), src.spacing...)
	a.boxes = make([][]AMRBox, len(src.boxes))
	for level, boxes := range src.boxes {
		a.boxes[level] = append([]AMRBox(nil), boxes...)
	}
}

// ShallowClone returns a hierarchy whose grids share arrays with a.
func (a *AMR) ShallowClone() DataSet {
	out := a.NewInstance()
	out.copyFrom(a, copyShallow)
	return out
}

// DeepClone returns a hierarchy with copies of all grids.
func (a *AMR) DeepClone() DataSet {
	out := a.NewInstance()
	out.copyFrom(a, copyDeep)
	return out
}
