package fieldpath

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Wildcard matches every key of an object or every element of a slice.
const Wildcard = "*"

// Segment is one step of a parsed path.
type Segment struct {
	Key      string
	Index    int
	IsIndex  bool
	Wildcard bool
}

// Parse splits a path into segments. The empty path addresses the root.
func Parse(path string) ([]Segment, error) {
	if path == "" {
		return nil, nil
	}

	var segs []Segment
	i := 0
	expectKey := true
	for i < len(path) {
		switch c := path[i]; c {
		case '.':
			if expectKey {
				return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
			}
			expectKey = true
			i++
			if i == len(path) {
				return nil, fmt.Errorf("%w: trailing dot in %q", ErrInvalidPath, path)
			}
		case '[':
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidPath, path)
			}
			inner := path[i+1 : i+end]
			seg, err := parseBracket(inner)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPath, path, err)
			}
			segs = append(segs, seg)
			expectKey = false
			i += end + 1
		case ']':
			return nil, fmt.Errorf("%w: unexpected ']' in %q", ErrInvalidPath, path)
		default:
			if !expectKey {
				return nil, fmt.Errorf("%w: missing separator in %q", ErrInvalidPath, path)
			}
			end := strings.IndexAny(path[i:], ".[]")
			if end < 0 {
				end = len(path) - i
			}
			key := path[i : i+end]
			if key == Wildcard {
				segs = append(segs, Segment{Wildcard: true})
			} else {
				segs = append(segs, Segment{Key: key})
			}
			expectKey = false
			i += end
		}
	}
	return segs, nil
}

func parseBracket(inner string) (Segment, error) {
	if inner == Wildcard {
		return Segment{Wildcard: true}, nil
	}
	n, err := strconv.Atoi(inner)
	if err != nil || n < 0 {
		return Segment{}, fmt.Errorf("bad index %q", inner)
	}
	return Segment{Index: n, IsIndex: true}, nil
}

// Format renders segments back into path syntax.
func Format(segs []Segment) string {
	var b strings.Builder
	for i, s := range segs {
		switch {
		case s.IsIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
		case s.Wildcard:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(Wildcard)
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.Key)
		}
	}
	return b.String()
}

// HasWildcard reports whether the path contains a wildcard segment.
func HasWildcard(path string) bool {
	segs, err := Parse(path)
	if err != nil {
		return false
	}
	return slices.ContainsFunc(segs, func(s Segment) bool { return s.Wildcard })
}

// asIndex returns the slice index a segment addresses, if any.
func (s Segment) asIndex() (int, bool) {
	if s.IsIndex {
		return s.Index, true
	}
	if s.Wildcard {
		return 0, false
	}
	n, err := strconv.Atoi(s.Key)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// asKey returns the object key a segment addresses.
func (s Segment) asKey() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}
