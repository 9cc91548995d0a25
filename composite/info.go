package composite

import (
	"maps"
	"slices"
)

// Standard metadata keys.
const (
	KeyName        = "NAME"
	KeyBoundingBox = "BOUNDING_BOX"
	KeyLevel       = "LEVEL"
	KeyIndex       = "INDEX"
)

// Information is a per-slot property bag. The zero value is empty and ready
// to use; Set creates the underlying map on first use.
type Information struct {
	values map[string]any
}

// NewInformation returns an empty bag.
func NewInformation() *Information {
	return &Information{}
}

// Set stores value under key.
func (in *Information) Set(key string, value any) {
	if in.values == nil {
		in.values = make(map[string]any)
	}
	in.values[key] = value
}

// Get returns the raw value stored under key.
func (in *Information) Get(key string) (any, bool) {
	if in == nil {
		return nil, false
	}
	v, ok := in.values[key]
	return v, ok
}

// InfoGet returns the value under key if it is present and has type T.
func InfoGet[T any](in *Information, key string) (T, bool) {
	var zero T
	x, ok := in.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := x.(T)
	return v, ok
}

// Has reports whether key is present.
func (in *Information) Has(key string) bool {
	_, ok := in.Get(key)
	return ok
}

// Remove deletes key.
func (in *Information) Remove(key string) {
	if in == nil {
		return
	}
	delete(in.values, key)
}

// Clear deletes every key.
func (in *Information) Clear() {
	if in == nil {
		return
	}
	clear(in.values)
}

// Len returns the number of keys.
func (in *Information) Len() int {
	if in == nil {
		return 0
	}
	return len(in.values)
}

// Keys returns the keys in sorted order.
func (in *Information) Keys() []string {
	if in == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(in.values))
}

// ShallowCopyFrom replaces the contents with those of src. Slice values are
// shared with src.
func (in *Information) ShallowCopyFrom(src *Information) {
	in.Clear()
	if src == nil {
		return
	}
	for k, v := range src.values {
		in.Set(k, v)
	}
}

// DeepCopyFrom replaces the contents with copies of those of src.
func (in *Information) DeepCopyFrom(src *Information) {
	in.Clear()
	if src == nil {
		return
	}
	for k, v := range src.values {
		in.Set(k, deepCopyValue(v))
	}
}

// Clone returns a new bag with the same contents.
func (in *Information) Clone(deep bool) *Information {
	out := NewInformation()
	if deep {
		out.DeepCopyFrom(in)
	} else {
		out.ShallowCopyFrom(in)
	}
	return out
}

func deepCopyValue(v any) any {
	switch x := v.(type) {
	case []float64:
		return slices.Clone(x)
	case []int:
		return slices.Clone(x)
	case []int64:
		return slices.Clone(x)
	case []string:
		return slices.Clone(x)
	case *Information:
		return x.Clone(true)
	}
	return v
}

// Name returns the NAME key, or "" if it is not set.
func (in *Information) Name() string {
	name, _ := InfoGet[string](in, KeyName)
	return name
}

// SetName sets the NAME key.
func (in *Information) SetName(name string) {
	in.Set(KeyName, name)
}

// BoundingBox returns the BOUNDING_BOX key as xmin, xmax, ymin, ymax, zmin, zmax.
func (in *Information) BoundingBox() ([6]float64, bool) {
	return InfoGet[[6]float64](in, KeyBoundingBox)
}

// SetBoundingBox sets the BOUNDING_BOX key.
func (in *Information) SetBoundingBox(bounds [6]float64) {
	in.Set(KeyBoundingBox, bounds)
}
