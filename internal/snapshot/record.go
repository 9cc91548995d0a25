package snapshot

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-composite/composite"
)

type nodeType uint8

const (
	nodeTree nodeType = iota + 1
	nodeAMR
	nodeCollection
	nodePoints
	nodeGrid
)

type node struct {
	Type   nodeType `msgpack:"t"`
	Kind   int      `msgpack:"k,omitempty"`
	Slots  []slot   `msgpack:"s,omitempty"`
	Points *points  `msgpack:"p,omitempty"`
	Grid   *grid    `msgpack:"g,omitempty"`
	AMR    *amr     `msgpack:"a,omitempty"`
}

// slot is a child entry. A nil Meta means the slot has no metadata, an
// empty one means it has an empty bag.
type slot struct {
	Node *node            `msgpack:"n,omitempty"`
	Meta map[string]value `msgpack:"m"`
}

type points struct {
	Points [][3]float64         `msgpack:"p"`
	Cells  [][]int              `msgpack:"c"`
	Fields map[string][]float64 `msgpack:"f,omitempty"`
}

type grid struct {
	Dims    [3]int     `msgpack:"d"`
	Origin  [3]float64 `msgpack:"o"`
	Spacing [3]float64 `msgpack:"s"`
	Scalars []float64  `msgpack:"v,omitempty"`
}

type amr struct {
	Overlapping bool       `msgpack:"ov"`
	Origin      [3]float64 `msgpack:"o"`
	Levels      []amrLevel `msgpack:"l"`
}

type amrLevel struct {
	Spacing [3]float64 `msgpack:"s"`
	Blocks  []amrBlock `msgpack:"b"`
}

type amrBlock struct {
	Lo   [3]int           `msgpack:"lo"`
	Hi   [3]int           `msgpack:"hi"`
	Grid *grid            `msgpack:"g,omitempty"`
	Meta map[string]value `msgpack:"m"`
}

type valueType uint8

const (
	valString valueType = iota + 1
	valBool
	valInt
	valInt64
	valFloat
	valFloats
	valInts
	valInt64s
	valStrings
	valBounds
	valInfo
)

// value is a metadata entry tagged with its Go type.
type value struct {
	Type    valueType        `msgpack:"t"`
	String  string           `msgpack:"s,omitempty"`
	Bool    bool             `msgpack:"b,omitempty"`
	Int     int64            `msgpack:"i,omitempty"`
	Float   float64          `msgpack:"f,omitempty"`
	Floats  []float64        `msgpack:"fs,omitempty"`
	Ints    []int64          `msgpack:"is,omitempty"`
	Strings []string         `msgpack:"ss,omitempty"`
	Info    map[string]value `msgpack:"m,omitempty"`
}

func fromObject(obj composite.DataObject) (*node, error) {
	switch o := obj.(type) {
	case nil:
		return nil, nil
	case *composite.Tree:
		return fromTree(o)
	case *composite.AMR:
		return fromAMR(o)
	case *composite.Collection:
		return fromCollection(o)
	case *composite.PointSet:
		return &node{Type: nodePoints, Points: &points{Points: o.Points, Cells: o.Cells, Fields: o.PointData}}, nil
	case *composite.UniformGrid:
		return &node{Type: nodeGrid, Grid: fromGrid(o)}, nil
	}
	return nil, errors.Wrapf(ErrUnsupported, "data object %T", obj)
}

func fromTree(t *composite.Tree) (*node, error) {
	n := &node{Type: nodeTree, Kind: int(t.Kind()), Slots: make([]slot, t.NumberOfChildren())}
	for i := range n.Slots {
		child, err := fromObject(t.Child(i))
		if err != nil {
			return nil, errors.Wrapf(err, "child %d", i)
		}
		n.Slots[i].Node = child
		if t.HasChildMetaData(i) {
			if n.Slots[i].Meta, err = fromInfo(t.ChildMetaData(i)); err != nil {
				return nil, errors.Wrapf(err, "child %d", i)
			}
		}
	}
	return n, nil
}

func fromCollection(c *composite.Collection) (*node, error) {
	n := &node{Type: nodeCollection, Slots: make([]slot, c.NumberOfItems())}
	for i := range n.Slots {
		child, err := fromObject(c.Item(i))
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
		n.Slots[i].Node = child
		if c.HasItemMetaData(i) {
			if n.Slots[i].Meta, err = fromInfo(c.ItemMetaData(i)); err != nil {
				return nil, errors.Wrapf(err, "item %d", i)
			}
		}
	}
	return n, nil
}

func fromAMR(a *composite.AMR) (*node, error) {
	rec := &amr{Overlapping: a.Overlapping(), Origin: a.Origin(), Levels: make([]amrLevel, a.NumberOfLevels())}
	for l := range rec.Levels {
		level := &rec.Levels[l]
		level.Spacing, _ = a.Spacing(l)
		level.Blocks = make([]amrBlock, a.NumberOfBlocks(l))
		for b := range level.Blocks {
			block := &level.Blocks[b]
			box, _ := a.AMRBox(l, b)
			block.Lo, block.Hi = box.Lo, box.Hi
			if g := a.DataSet(l, b); g != nil {
				block.Grid = fromGrid(g)
			}
			if a.HasBlockMetaData(l, b) {
				var err error
				if block.Meta, err = fromInfo(a.BlockMetaData(l, b)); err != nil {
					return nil, errors.Wrapf(err, "block %d of level %d", b, l)
				}
			}
		}
	}
	return &node{Type: nodeAMR, AMR: rec}, nil
}

func fromGrid(g *composite.UniformGrid) *grid {
	return &grid{Dims: g.Dimensions, Origin: g.Origin, Spacing: g.Spacing, Scalars: g.CellScalars}
}

func fromInfo(in *composite.Information) (map[string]value, error) {
	out := make(map[string]value, in.Len())
	for _, key := range in.Keys() {
		raw, _ := in.Get(key)
		v, err := fromValue(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "metadata key %q", key)
		}
		out[key] = v
	}
	return out, nil
}

func fromValue(raw any) (value, error) {
	switch x := raw.(type) {
	case string:
		return value{Type: valString, String: x}, nil
	case bool:
		return value{Type: valBool, Bool: x}, nil
	case int:
		return value{Type: valInt, Int: int64(x)}, nil
	case int64:
		return value{Type: valInt64, Int: x}, nil
	case float64:
		return value{Type: valFloat, Float: x}, nil
	case []float64:
		return value{Type: valFloats, Floats: x}, nil
	case []int:
		ints := make([]int64, len(x))
		for i, v := range x {
			ints[i] = int64(v)
		}
		return value{Type: valInts, Ints: ints}, nil
	case []int64:
		return value{Type: valInt64s, Ints: x}, nil
	case []string:
		return value{Type: valStrings, Strings: x}, nil
	case [6]float64:
		return value{Type: valBounds, Floats: x[:]}, nil
	case *composite.Information:
		m, err := fromInfo(x)
		return value{Type: valInfo, Info: m}, err
	}
	return value{}, errors.Wrapf(ErrUnsupported, "type %T", raw)
}

func (n *node) toObject() (composite.DataObject, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Type {
	case nodeTree:
		return n.toTree()
	case nodeCollection:
		c := composite.NewCollection()
		for i, s := range n.Slots {
			child, err := s.Node.toObject()
			if err != nil {
				return nil, errors.Wrapf(err, "item %d", i)
			}
			c.AddItem(child)
			if s.Meta != nil {
				if err := toInfo(s.Meta, c.ItemMetaData(i)); err != nil {
					return nil, errors.Wrapf(err, "item %d", i)
				}
			}
		}
		return c, nil
	case nodeAMR:
		if n.AMR == nil {
			return nil, errors.Wrap(ErrFormat, "AMR node without hierarchy")
		}
		return n.AMR.toAMR()
	case nodePoints:
		if n.Points == nil {
			return nil, errors.Wrap(ErrFormat, "point set node without points")
		}
		p := composite.NewPointSet(n.Points.Points, n.Points.Cells)
		for name, f := range n.Points.Fields {
			p.SetField(name, f)
		}
		return p, nil
	case nodeGrid:
		if n.Grid == nil {
			return nil, errors.Wrap(ErrFormat, "grid node without grid")
		}
		return n.Grid.toGrid(), nil
	}
	return nil, errors.Wrapf(ErrFormat, "unknown node type %d", n.Type)
}

func (n *node) toTree() (*composite.Tree, error) {
	if n.Type != nodeTree {
		return nil, errors.Wrapf(ErrFormat, "expected a tree node, got type %d", n.Type)
	}
	kind := composite.Kind(n.Kind)
	switch kind {
	case composite.MultiBlock, composite.MultiPiece, composite.Partitioned:
	default:
		return nil, errors.Wrapf(ErrFormat, "unknown tree kind %d", n.Kind)
	}
	t := composite.NewTree(kind)
	t.SetNumberOfChildren(len(n.Slots))
	for i, s := range n.Slots {
		child, err := s.Node.toObject()
		if err != nil {
			return nil, errors.Wrapf(err, "child %d", i)
		}
		if child != nil {
			t.SetChild(i, child)
		}
		if s.Meta != nil {
			if err := toInfo(s.Meta, t.ChildMetaData(i)); err != nil {
				return nil, errors.Wrapf(err, "child %d", i)
			}
		}
	}
	return t, nil
}

func (r *amr) toAMR() (*composite.AMR, error) {
	blocks := make([]int, len(r.Levels))
	for l, level := range r.Levels {
		blocks[l] = len(level.Blocks)
	}
	var a *composite.AMR
	if r.Overlapping {
		a = composite.NewOverlappingAMR(blocks...)
	} else {
		a = composite.NewNonOverlappingAMR(blocks...)
	}
	a.SetOrigin(r.Origin)
	for l, level := range r.Levels {
		a.SetSpacing(l, level.Spacing)
		for b, block := range level.Blocks {
			a.SetAMRBox(l, b, composite.AMRBox{Lo: block.Lo, Hi: block.Hi})
			if block.Grid != nil {
				a.SetDataSet(l, b, block.Grid.toGrid())
			}
			if block.Meta != nil {
				if err := toInfo(block.Meta, a.BlockMetaData(l, b)); err != nil {
					return nil, errors.Wrapf(err, "block %d of level %d", b, l)
				}
			}
		}
	}
	return a, nil
}

func (g *grid) toGrid() *composite.UniformGrid {
	out := composite.NewUniformGrid(g.Dims, g.Origin, g.Spacing)
	out.CellScalars = g.Scalars
	return out
}

func toInfo(m map[string]value, dst *composite.Information) error {
	for key, v := range m {
		raw, err := v.toValue()
		if err != nil {
			return errors.Wrapf(err, "metadata key %q", key)
		}
		dst.Set(key, raw)
	}
	return nil
}

func (v value) toValue() (any, error) {
	switch v.Type {
	case valString:
		return v.String, nil
	case valBool:
		return v.Bool, nil
	case valInt:
		return int(v.Int), nil
	case valInt64:
		return v.Int, nil
	case valFloat:
		return v.Float, nil
	case valFloats:
		return nonNil(v.Floats), nil
	case valInts:
		ints := make([]int, len(v.Ints))
		for i, x := range v.Ints {
			ints[i] = int(x)
		}
		return ints, nil
	case valInt64s:
		return nonNil(v.Ints), nil
	case valStrings:
		return nonNil(v.Strings), nil
	case valBounds:
		var b [6]float64
		if len(v.Floats) != len(b) {
			return nil, errors.Wrapf(ErrFormat, "bounding box with %d values", len(v.Floats))
		}
		copy(b[:], v.Floats)
		return b, nil
	case valInfo:
		in := composite.NewInformation()
		if err := toInfo(v.Info, in); err != nil {
			return nil, err
		}
		return in, nil
	}
	return nil, errors.Wrapf(ErrFormat, "unknown value type %d", v.Type)
}

// nonNil keeps empty slices empty rather than nil after omitempty dropped
// them from the payload.
func nonNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
