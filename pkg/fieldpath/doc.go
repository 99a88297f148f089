// Package fieldpath addresses values inside decoded request data.
//
// Request data is modelled as a tree of map[string]any and []any values, the shape
// produced by encoding/json and by the check package when it decodes query strings,
// headers, cookies and forms. A path selects one node of that tree:
//
//	user.email          nested object keys
//	tags[0]             slice index
//	items[*].sku        every element of a slice
//	meta.*              every key of an object
//
// Dots separate keys, brackets hold indices or the "*" wildcard. A numeric key is
// accepted as an index when the node is a slice, so "tags.0" and "tags[0]" are
// equivalent.
//
// # Usage
//
//	paths, err := fieldpath.Expand(body, "items[*].sku")
//	// ["items[0].sku", "items[1].sku"]
//
//	v, ok := fieldpath.Get(body, "items[1].sku")
//
//	body, err = fieldpath.Set(body, "items[1].sku", "ABC-1")
//
// Set writes in place where the containers already exist and creates missing maps
// and slices along the way, returning the (possibly new) root.
//
// # Errors
//
//   - ErrInvalidPath: the path could not be parsed
//   - ErrWildcardNotAllowed: Set or Get received a path containing "*"
//   - ErrTypeMismatch: Set met a slice where an object key was required
package fieldpath
