package sanitizer

// Func transforms a string value.
type Func func(string) string

// Apply runs transforms over value in order.
func Apply(value string, transforms ...Func) string {
	result := value
	for _, transform := range transforms {
		result = transform(result)
	}
	return result
}

// Compose builds a reusable transform from several transforms.
func Compose(transforms ...Func) Func {
	return func(value string) string {
		return Apply(value, transforms...)
	}
}
