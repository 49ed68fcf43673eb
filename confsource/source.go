// Package confsource is the runtime contract used by code generated by confgen.
//
// Generated LoadConfig methods only ever talk to a Source. A Source resolves a
// dotted Key, optionally under a scope, to a typed value and falls back to the
// supplied default when the key is unset or cannot be converted. Accessors
// never fail.
//
// Three implementations are provided:
//   - FromEnv: process environment, key "a.b.c" under scope "s" maps to S_A_B_C
//   - FromViper: any *viper.Viper (config files, flags, env)
//   - Map: a static map of dotted keys, handy in tests
package confsource

import "strings"

// Key identifies a configuration value by its dotted path, e.g. "gcp.project.id".
type Key string

// Source resolves configuration keys to typed values.
type Source interface {
	// Scoped returns a view that prefixes every lookup with scope.
	// Scoping an already scoped Source nests the prefixes.
	Scoped(scope string) Source
	String(key Key, def string) string
	Int(key Key, def int) int
	Float(key Key, def float64) float64
	Bool(key Key, def bool) bool
}

// Loader is implemented by every type confgen generates a LoadConfig method for.
type Loader interface {
	LoadConfig(src Source)
}

// Load populates l from src and returns it.
func Load[T Loader](l T, src Source) T {
	l.LoadConfig(src)
	return l
}

// join builds the dotted path of key under scope.
func join(scope string, key Key) string {
	if scope == "" {
		return string(key)
	}
	if key == "" {
		return scope
	}
	return scope + "." + string(key)
}

func joinScope(parent, child string) string {
	child = strings.Trim(child, ".")
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}
