package confsource

import (
	"strings"

	"github.com/spf13/cast"
)

// Map is a static Source keyed by full dotted paths, scope included.
//
//	src := confsource.Map{"gcp.project.id": "demo"}
//	src.Scoped("gcp").String("project.id", "") // "demo"
type Map map[string]string

func (m Map) Scoped(scope string) Source {
	return scopedMap{values: m, scope: joinScope("", scope)}
}

func (m Map) String(key Key, def string) string {
	return scopedMap{values: m}.String(key, def)
}

func (m Map) Int(key Key, def int) int {
	return scopedMap{values: m}.Int(key, def)
}

func (m Map) Float(key Key, def float64) float64 {
	return scopedMap{values: m}.Float(key, def)
}

func (m Map) Bool(key Key, def bool) bool {
	return scopedMap{values: m}.Bool(key, def)
}

type scopedMap struct {
	values Map
	scope  string
}

func (s scopedMap) Scoped(scope string) Source {
	return scopedMap{values: s.values, scope: joinScope(s.scope, scope)}
}

func (s scopedMap) lookup(key Key) (string, bool) {
	raw, ok := s.values[join(s.scope, key)]
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

func (s scopedMap) String(key Key, def string) string {
	if raw, ok := s.lookup(key); ok {
		return raw
	}
	return def
}

func (s scopedMap) Int(key Key, def int) int {
	raw, ok := s.lookup(key)
	if !ok {
		return def
	}
	val, err := cast.ToIntE(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return val
}

func (s scopedMap) Float(key Key, def float64) float64 {
	raw, ok := s.lookup(key)
	if !ok {
		return def
	}
	val, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return val
}

func (s scopedMap) Bool(key Key, def bool) bool {
	raw, ok := s.lookup(key)
	if !ok {
		return def
	}
	val, err := cast.ToBoolE(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return val
}
