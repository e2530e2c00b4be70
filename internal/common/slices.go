package common

// IsEmpty reports whether s has no elements.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle reports whether s has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// First returns the first element of s; ok is false for an empty slice.
func First[S ~[]E, E any](s S) (first E, ok bool) {
	if len(s) == 0 {
		return first, false
	}

	return s[0], true
}

// Dedup returns the distinct elements of s in first-seen order.
func Dedup[S ~[]E, E comparable](s S) S {
	if len(s) < 2 {
		return s
	}

	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, e := range s {
		if _, ok := seen[e]; ok {
			continue
		}

		seen[e] = struct{}{}
		out = append(out, e)
	}

	return out
}
