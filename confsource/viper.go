package confsource

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// envKeyReplacer turns a dotted key into an environment variable name segment.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// viperSource adapts a *viper.Viper to Source.
type viperSource struct {
	v     *viper.Viper
	scope string
}

// FromEnv returns a Source backed by the process environment.
//
// The key "a.b.c" resolves the variable A_B_C; under scope "s" it resolves
// S_A_B_C. Empty variables count as unset.
func FromEnv() Source {
	v := viper.New()
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper returns a Source reading from v. Keys are looked up with their
// full dotted path, so values from config files, flags and the environment
// all resolve through the same Source.
func FromViper(v *viper.Viper) Source {
	return &viperSource{v: v}
}

func (s *viperSource) Scoped(scope string) Source {
	return &viperSource{v: s.v, scope: joinScope(s.scope, scope)}
}

func (s *viperSource) lookup(key Key) (any, bool) {
	path := join(s.scope, key)
	if !s.v.IsSet(path) {
		return nil, false
	}
	return s.v.Get(path), true
}

func (s *viperSource) String(key Key, def string) string {
	raw, ok := s.lookup(key)
	if !ok {
		return def
	}
	val, err := cast.ToStringE(raw)
	if err != nil {
		return def
	}
	return val
}

func (s *viperSource) Int(key Key, def int) int {
	raw, ok := s.lookup(key)
	if !ok {
		return def
	}
	if str, isStr := raw.(string); isStr {
		raw = strings.TrimSpace(str)
	}
	val, err := cast.ToIntE(raw)
	if err != nil {
		return def
	}
	return val
}

func (s *viperSource) Float(key Key, def float64) float64 {
	raw, ok := s.lookup(key)
	if !ok {
		return def
	}
	if str, isStr := raw.(string); isStr {
		raw = strings.TrimSpace(str)
	}
	val, err := cast.ToFloat64E(raw)
	if err != nil {
		return def
	}
	return val
}

func (s *viperSource) Bool(key Key, def bool) bool {
	raw, ok := s.lookup(key)
	if !ok {
		return def
	}
	if str, isStr := raw.(string); isStr {
		raw = strings.TrimSpace(str)
	}
	val, err := cast.ToBoolE(raw)
	if err != nil {
		return def
	}
	return val
}
