package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(s *Seq[string]) []string {
	var out []string
	for _, e := range s.All() {
		out = append(out, e.Value)
	}
	return out
}

func TestResize(t *testing.T) {
	var s Seq[string]
	assert.True(t, s.Resize(3))
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.Resize(3))
	assert.False(t, s.Resize(-1))

	s.At(0).Value = "a"
	s.At(2).Value = "c"
	assert.Equal(t, []string{"a", "", "c"}, values(&s))

	assert.True(t, s.Resize(1))
	assert.Equal(t, []string{"a"}, values(&s))
	assert.Nil(t, s.At(1))
	assert.Nil(t, s.At(-1))
}

func TestInsertRemove(t *testing.T) {
	var s Seq[string]
	s.Append("a")
	s.Append("c")

	_, ok := s.Insert(1, "b")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, values(&s))

	_, ok = s.Insert(4, "x")
	assert.False(t, ok)
	_, ok = s.Insert(-1, "x")
	assert.False(t, ok)

	assert.True(t, s.Remove(0))
	assert.Equal(t, []string{"b", "c"}, values(&s))
	assert.False(t, s.Remove(2))

	e := s.At(1)
	assert.True(t, s.RemoveElem(e))
	assert.False(t, s.RemoveElem(e))
	assert.Equal(t, []string{"b"}, values(&s))

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestIndexOfHint(t *testing.T) {
	var s Seq[int]
	var elems []*Elem[int]
	for i := range 10 {
		elems = append(elems, s.Append(i))
	}
	for _, hint := range []int{-5, 0, 4, 9, 50} {
		for i, e := range elems {
			assert.Equal(t, i, s.IndexOf(e, hint))
		}
	}
	s.Remove(3)
	assert.Equal(t, -1, s.IndexOf(elems[3], 3))
	assert.Equal(t, 3, s.IndexOf(elems[4], 4))
	assert.Equal(t, -1, s.IndexOf(nil, 0))
	assert.Equal(t, 4, s.IndexFunc(func(v int) bool { return v == 5 }))
	assert.Equal(t, -1, s.IndexFunc(func(v int) bool { return v == 3 }))
}

func TestStep(t *testing.T) {
	tests := []struct {
		name    string
		remove  int
		anchor  int
		reverse bool
		want    string
	}{
		{"forward remove next", 1, 0, false, "c"},
		{"forward remove anchor", 0, 0, false, "b"},
		{"forward remove earlier", 0, 1, false, "c"},
		{"reverse remove anchor", 2, 2, true, "b"},
		{"reverse remove next", 1, 2, true, "a"},
		{"reverse remove later", 2, 1, true, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Seq[string]
			for _, v := range []string{"a", "b", "c"} {
				s.Append(v)
			}
			anchor := s.At(tt.anchor)
			s.Remove(tt.remove)
			next := s.At(s.Step(anchor, tt.anchor, tt.reverse))
			require.NotNil(t, next)
			assert.Equal(t, tt.want, next.Value)
		})
	}
}

func TestStepExhausted(t *testing.T) {
	var s Seq[string]
	s.Append("a")
	s.Append("b")
	anchor := s.At(0)
	s.Clear()
	assert.Nil(t, s.At(s.Step(anchor, 0, false)))
	assert.Equal(t, -1, s.Step(anchor, 1, true))
}
