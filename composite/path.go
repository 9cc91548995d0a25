package composite

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatIndex renders a tree index as a slash path.
//
// Examples:
//   - []int{} -> "/"
//   - []int{0, 2, 1} -> "/0/2/1"
func FormatIndex(path []int) string {
	if len(path) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, i := range path {
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}

// ParseIndex parses a slash path produced by FormatIndex. Leading and
// trailing slashes are optional.
//
// Examples:
//   - "/" -> []int{}
//   - "/0/2/1" -> []int{0, 2, 1}
//   - "1/3" -> []int{1, 3}
func ParseIndex(path string) ([]int, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return []int{}, nil
	}
	parts := strings.Split(path, "/")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		i, err := strconv.Atoi(p)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIndex, path)
		}
		out = append(out, i)
	}
	return out, nil
}
