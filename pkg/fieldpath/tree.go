package fieldpath

import (
	"fmt"
	"slices"
	"sort"
)

// Get returns the value at path and whether every segment resolved.
// Paths with wildcards or syntax errors never resolve.
func Get(root any, path string) (any, bool) {
	segs, err := Parse(path)
	if err != nil {
		return nil, false
	}
	node := root
	for _, s := range segs {
		if s.Wildcard {
			return nil, false
		}
		next, ok := child(node, s)
		if !ok {
			return nil, false
		}
		node = next
	}
	return node, true
}

func child(node any, s Segment) (any, bool) {
	switch n := node.(type) {
	case map[string]any:
		v, ok := n[s.asKey()]
		return v, ok
	case []any:
		i, ok := s.asIndex()
		if !ok || i >= len(n) {
			return nil, false
		}
		return n[i], true
	default:
		return nil, false
	}
}

// Set stores value at path and returns the root, which is a new container when
// root was nil or a scalar. Existing maps and slices are modified in place; a slice
// that has to grow is reallocated and re-attached to its parent.
func Set(root any, path string, value any) (any, error) {
	segs, err := Parse(path)
	if err != nil {
		return root, err
	}
	if slices.ContainsFunc(segs, func(s Segment) bool { return s.Wildcard }) {
		return root, fmt.Errorf("%w: %q", ErrWildcardNotAllowed, path)
	}
	return setIn(root, segs, value)
}

func setIn(node any, segs []Segment, value any) (any, error) {
	if len(segs) == 0 {
		return value, nil
	}
	s, rest := segs[0], segs[1:]

	if list, ok := node.([]any); ok {
		i, ok := s.asIndex()
		if !ok {
			return node, fmt.Errorf("%w: key %q on a list", ErrTypeMismatch, s.Key)
		}
		if i >= len(list) {
			grown := make([]any, i+1)
			copy(grown, list)
			list = grown
		}
		v, err := setIn(list[i], rest, value)
		if err != nil {
			return node, err
		}
		list[i] = v
		return list, nil
	}

	if s.IsIndex && node == nil {
		list := make([]any, s.Index+1)
		v, err := setIn(nil, rest, value)
		if err != nil {
			return node, err
		}
		list[s.Index] = v
		return list, nil
	}

	obj, ok := node.(map[string]any)
	if !ok {
		obj = make(map[string]any)
	}
	key := s.asKey()
	v, err := setIn(obj[key], rest, value)
	if err != nil {
		return node, err
	}
	obj[key] = v
	return obj, nil
}

// Expand resolves wildcards in pattern against root and returns concrete paths in a
// stable order: object keys sorted, slice elements by index. A pattern without
// wildcards is returned unchanged. Wildcards over missing or scalar nodes produce
// no paths.
func Expand(root any, pattern string) ([]string, error) {
	segs, err := Parse(pattern)
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(segs, func(s Segment) bool { return s.Wildcard }) {
		return []string{pattern}, nil
	}
	var out []string
	expand(root, segs, nil, &out)
	return out, nil
}

func expand(node any, segs, prefix []Segment, out *[]string) {
	if len(segs) == 0 {
		*out = append(*out, Format(prefix))
		return
	}
	s, rest := segs[0], segs[1:]
	if !s.Wildcard {
		next, _ := child(node, s)
		expand(next, rest, append(slices.Clip(prefix), s), out)
		return
	}

	switch n := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			expand(n[k], rest, append(slices.Clip(prefix), Segment{Key: k}), out)
		}
	case []any:
		for i, v := range n {
			expand(v, rest, append(slices.Clip(prefix), Segment{Index: i, IsIndex: true}), out)
		}
	}
}
