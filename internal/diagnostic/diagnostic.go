// Package diagnostic provides positioned, coded diagnostics reported while
// expanding annotated declarations.
package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// Diagnostic codes.
const (
	CodeRequiresAggregateType    = "RequiresAggregateType"
	CodeConflictingAnnotations   = "ConflictingAnnotations"
	CodeUnknownAnnotation        = "UnknownAnnotation"
	CodeMalformedValueAnnotation = "MalformedValueAnnotation"
	CodeUnsupportedType          = "UnsupportedType"
	CodeGenerationFailed         = "GenerationFailed"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Severity Severity
	// Code is a unique identifier for this kind of diagnostic.
	Code    string
	Message string
	// TypeName is the declaration the diagnostic relates to, if any.
	TypeName string
	// Field is the struct field the diagnostic relates to, if any.
	Field    string
	Position token.Position
}

// String formats the diagnostic the way the Go compiler formats errors.
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Position.IsValid() {
		b.WriteString(d.Position.String())
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	if d.Code != "" {
		fmt.Fprintf(&b, " [%s]", d.Code)
	}
	b.WriteString(": ")
	if d.TypeName != "" {
		b.WriteString(d.TypeName)
		if d.Field != "" {
			b.WriteString(".")
			b.WriteString(d.Field)
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// Diagnostics collects diagnostics in the order they were reported.
type Diagnostics struct {
	items []Diagnostic
}

// Add appends a diagnostic.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.items = append(d.items, diag)
}

// Errorf appends an error diagnostic.
func (d *Diagnostics) Errorf(pos token.Position, code, typeName, format string, args ...any) {
	d.Add(Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		TypeName: typeName,
		Position: pos,
	})
}

// Warnf appends a warning diagnostic.
func (d *Diagnostics) Warnf(pos token.Position, code, typeName, format string, args ...any) {
	d.Add(Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		TypeName: typeName,
		Position: pos,
	})
}

// Merge appends all diagnostics of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.items = append(d.items, other.items...)
}

// All returns every diagnostic in report order.
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Errors returns the error diagnostics.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(SeverityError)
}

// Warnings returns the warning diagnostics.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(SeverityWarning)
}

func (d *Diagnostics) filter(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, item := range d.items {
		if item.Severity == s {
			out = append(out, item)
		}
	}
	return out
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.items {
		if item.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.items)
}

// Err returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Err() error {
	var errs []error
	for _, item := range d.Errors() {
		errs = append(errs, errors.New(item.String()))
	}
	return errors.Join(errs...)
}
