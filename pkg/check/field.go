package check

// Location names the part of a request a field is read from.
type Location string

const (
	LocationBody    Location = "body"
	LocationCookies Location = "cookies"
	LocationHeaders Location = "headers"
	LocationParams  Location = "params"
	LocationQuery   Location = "query"
)

// AllLocations is the search order used by Check.
var AllLocations = []Location{
	LocationBody,
	LocationCookies,
	LocationHeaders,
	LocationParams,
	LocationQuery,
}

// Valid reports whether l is one of the known locations.
func (l Location) Valid() bool {
	switch l {
	case LocationBody, LocationCookies, LocationHeaders, LocationParams, LocationQuery:
		return true
	}
	return false
}

// FieldInstance is one extracted field: its current value and where it came from.
// Path and Value may be rewritten by later stages; location and the original path
// and value are fixed when the instance is created.
type FieldInstance struct {
	Path  string
	Value any

	location      Location
	originalPath  string
	originalValue any
}

// NewFieldInstance creates an instance whose original value is value.
func NewFieldInstance(location Location, originalPath, path string, value any) FieldInstance {
	return FieldInstance{
		Path:          path,
		Value:         value,
		location:      location,
		originalPath:  originalPath,
		originalValue: value,
	}
}

func (f FieldInstance) Location() Location { return f.location }
func (f FieldInstance) OriginalPath() string { return f.originalPath }
func (f FieldInstance) OriginalValue() any { return f.originalValue }
