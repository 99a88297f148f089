package check

import (
	"fmt"
	"strings"
)

// ValidationError describes one field that failed validation.
type ValidationError struct {
	Location Location `json:"location"`
	Param    string   `json:"param"`
	Value    any      `json:"value"`
	Msg      string   `json:"msg"`
}

// ValidationErrors is an ordered list of failures that satisfies error.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Param, err.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Has(param string) bool {
	for _, err := range ve {
		if err.Param == param {
			return true
		}
	}
	return false
}

// Get returns every message recorded for param.
func (ve ValidationErrors) Get(param string) []string {
	var messages []string
	for _, err := range ve {
		if err.Param == param {
			messages = append(messages, err.Msg)
		}
	}
	return messages
}

// Fields returns the failing params in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Param] {
			fields = append(fields, err.Param)
			seen[err.Param] = true
		}
	}
	return fields
}

// Mapped keeps the first error of each param.
func (ve ValidationErrors) Mapped() map[string]ValidationError {
	mapped := make(map[string]ValidationError, len(ve))
	for _, err := range ve {
		if _, ok := mapped[err.Param]; !ok {
			mapped[err.Param] = err
		}
	}
	return mapped
}

// Details groups messages by param, the shape used for JSON error responses.
func (ve ValidationErrors) Details() map[string][]string {
	details := make(map[string][]string)
	for _, err := range ve {
		details[err.Param] = append(details[err.Param], err.Msg)
	}
	return details
}
