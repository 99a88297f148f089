// Package validator provides stateless string predicates used to evaluate request
// field values.
//
// Request data reaches validators as text: query strings, headers and form fields
// are strings, and the check package renders JSON numbers and booleans to their
// canonical text before evaluating a rule. Every predicate therefore takes a string
// and returns a bool, which keeps the rules trivially composable and goroutine-safe.
//
// # Rule families
//
//   - Presence and size – IsEmpty, Length.
//   - Formats – IsEmail, IsURL, IsUUID, IsAlpha, IsAlphanumeric, Matches.
//   - Numbers – IsInt, IsFloat, IsBoolean with optional bounds via IntRange and FloatRange.
//   - Choice – IsIn, Equals.
//
// # Usage
//
//	if !validator.IsEmail(email) {
//	    // reject
//	}
//
//	if !validator.IsInt(age, validator.IntRange{Min: ptr(18)}) {
//	    // reject
//	}
//
// Rules never panic on arbitrary input; malformed patterns passed to Matches are
// reported as a failed match.
package validator
