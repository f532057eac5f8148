package common

// Coalesce returns the first non-zero value, or the zero value if every value is zero.
// Useful for optional vector and scalar parameters where zero means "use the default",
// e.g. Coalesce(up, AxisZ).
//
// Parameters:
//   - values: candidates in order of preference
//
// Returns:
//   - T: the first non-zero candidate
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
