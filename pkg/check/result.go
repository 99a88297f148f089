package check

// ResultSet is a read-only view of the errors accumulated on a request.
type ResultSet struct {
	errs ValidationErrors
}

// ValidationResult collects the errors recorded on req so far. A nil req yields
// an empty set.
func ValidationResult(req *Request) *ResultSet {
	if req == nil {
		return &ResultSet{}
	}
	return &ResultSet{errs: req.ValidationErrors()}
}

func (rs *ResultSet) IsEmpty() bool { return len(rs.errs) == 0 }

func (rs *ResultSet) Errors() ValidationErrors { return rs.errs }

// Mapped keeps the first error of each param.
func (rs *ResultSet) Mapped() map[string]ValidationError { return rs.errs.Mapped() }

// Err returns the errors as an error, or nil when there are none.
func (rs *ResultSet) Err() error {
	if rs.IsEmpty() {
		return nil
	}
	return rs.errs
}
