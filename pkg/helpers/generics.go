package helpers

func Ptr[T any](value T) *T {
	return &value
}

// Deref returns the value behind ptr, or the zero value when ptr is nil.
func Deref[T any](ptr *T) T {
	if ptr == nil {
		var zero T
		return zero
	}
	return *ptr
}
