package directive

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// DefaultTagName is the struct tag key carrying the value annotation.
const DefaultTagName = "confgen"

const defaultSlot = "default="

// ErrNoValueTag is returned when a field carries no value annotation.
var ErrNoValueTag = errors.New("no value annotation")

// MalformedTagError reports a value annotation missing one of its slots.
type MalformedTagError struct {
	Tag    string
	Reason string
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("malformed value annotation %q: %s", e.Tag, e.Reason)
}

// ValueTag is a parsed value annotation: `confgen:"<key>,default=<expr>"`.
type ValueTag struct {
	Key     string
	Default string
}

// ParseFieldTag parses the value annotation named tagName out of a raw field
// tag literal as found in the AST, backquotes included.
func ParseFieldTag(literal, tagName string) (ValueTag, error) {
	if literal == "" {
		return ValueTag{}, ErrNoValueTag
	}
	raw, err := strconv.Unquote(literal)
	if err != nil {
		return ValueTag{}, &MalformedTagError{Tag: literal, Reason: "struct tag is not a string literal"}
	}
	return ParseValueTag(reflect.StructTag(raw), tagName)
}

// ParseValueTag extracts the value annotation tagName from tag.
//
// The annotation carries an unlabeled leading key and a default-labeled
// expression. Everything after the first ",default=" belongs to the default,
// so defaults may contain commas.
func ParseValueTag(tag reflect.StructTag, tagName string) (ValueTag, error) {
	value, ok := tag.Lookup(tagName)
	if !ok {
		return ValueTag{}, ErrNoValueTag
	}

	key, rest, hasRest := strings.Cut(value, ",")
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "=") {
		return ValueTag{}, &MalformedTagError{Tag: value, Reason: "missing key"}
	}
	if !hasRest {
		return ValueTag{}, &MalformedTagError{Tag: value, Reason: "missing default"}
	}

	rest = strings.TrimLeft(rest, " ")
	if !strings.HasPrefix(rest, defaultSlot) {
		return ValueTag{}, &MalformedTagError{Tag: value, Reason: "missing default"}
	}

	return ValueTag{
		Key:     key,
		Default: strings.TrimSpace(strings.TrimPrefix(rest, defaultSlot)),
	}, nil
}
