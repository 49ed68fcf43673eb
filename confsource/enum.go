package confsource

import "encoding"

// validator is implemented by enumerations that can report whether a value
// is one of their declared members.
type validator interface {
	Valid() bool
}

// ParseEnum reconstructs a string-backed enumeration from raw.
//
// If *T implements encoding.TextUnmarshaler it decides; otherwise, if T has a
// Valid() bool method, that decides; otherwise any non-empty raw is accepted.
// Whenever reconstruction fails fallback is returned. It never reports an error.
func ParseEnum[T ~string](raw string, fallback T) T {
	if raw == "" {
		return fallback
	}

	var v T
	if u, ok := any(&v).(encoding.TextUnmarshaler); ok {
		if err := u.UnmarshalText([]byte(raw)); err != nil {
			return fallback
		}
		return v
	}

	v = T(raw)
	if val, ok := any(v).(validator); ok && !val.Valid() {
		return fallback
	}
	return v
}
