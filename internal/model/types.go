// Package model holds the transient, expansion-time data model shared by the
// extractor, the synthesizers and the expansion driver.
package model

import (
	"go/token"
)

// Kind classifies a configurable field for code synthesis.
type Kind int

// Constants for the supported field kinds.
const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindEnum
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// MarshalText lets kinds appear by name in YAML dumps.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Accessor returns the Source method that reads a value of this kind.
// Enumerations are read through their string representation.
func (k Kind) Accessor() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	default:
		return "String"
	}
}

// AnnotationKind names an aggregate-level directive verb.
type AnnotationKind string

// Known aggregate annotations.
const (
	AnnotationConfig AnnotationKind = "config"
	AnnotationGroup  AnnotationKind = "group"
)

// PropertyDescriptor describes one configurable field of a config aggregate.
type PropertyDescriptor struct {
	Name           string `yaml:"name"`
	ConfigKey      string `yaml:"key"`
	DefaultLiteral string `yaml:"default"`
	DeclaredType   string `yaml:"type"`
	Kind           Kind   `yaml:"kind"`
	// Fallback is set when DeclaredType was not recognised and the field was
	// routed to the string accessor.
	Fallback bool `yaml:"fallback,omitempty"`
}

// NestedFieldDescriptor describes one field of a group aggregate.
type NestedFieldDescriptor struct {
	Name     string `yaml:"name"`
	TypeName string `yaml:"type"`
	Pointer  bool   `yaml:"pointer,omitempty"`
}

// Aggregate is an annotated struct declaration ready for synthesis.
type Aggregate struct {
	Name       string                  `yaml:"name"`
	Annotation AnnotationKind          `yaml:"annotation"`
	Scope      string                  `yaml:"scope,omitempty"`
	Properties []PropertyDescriptor    `yaml:"properties,omitempty"`
	Nested     []NestedFieldDescriptor `yaml:"nested,omitempty"`
	// Imports are the import specs, as written in an import block, that the
	// declared types and defaults refer to.
	Imports  []string       `yaml:"imports,omitempty"`
	Position token.Position `yaml:"-"`
}

// Scoped reports whether the aggregate carries a key-prefix scope.
func (a *Aggregate) Scoped() bool {
	return a.Scope != ""
}

// DeclKind identifies the role of a synthesized declaration.
type DeclKind int

// Declaration roles, in the order they are emitted.
const (
	DeclKeys DeclKind = iota
	DeclDefaults
	DeclInitializer
	DeclFactory
	DeclConformance
)

// String returns the name of the declaration role.
func (k DeclKind) String() string {
	switch k {
	case DeclKeys:
		return "keys"
	case DeclDefaults:
		return "defaults"
	case DeclInitializer:
		return "initializer"
	case DeclFactory:
		return "factory"
	case DeclConformance:
		return "conformance"
	default:
		return "unknown"
	}
}

// MarshalText lets declaration roles appear by name in YAML dumps.
func (k DeclKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Declaration is one synthesized top-level Go declaration.
type Declaration struct {
	Kind DeclKind
	// Name is the declared identifier, e.g. "serverConfigKeys" or "LoadConfig".
	Name   string
	Source string
}

// Expansion is the generated artifact for a single aggregate.
type Expansion struct {
	TypeName     string
	Imports      []string
	Declarations []Declaration
}

// Find returns the first declaration of the given kind.
func (e *Expansion) Find(kind DeclKind) (Declaration, bool) {
	for _, d := range e.Declarations {
		if d.Kind == kind {
			return d, true
		}
	}
	return Declaration{}, false
}

// Kinds lists the roles of the declarations in emission order.
func (e *Expansion) Kinds() []DeclKind {
	kinds := make([]DeclKind, 0, len(e.Declarations))
	for _, d := range e.Declarations {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}
