package diagnostic

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityError,
		Code:     CodeRequiresAggregateType,
		Message:  "//go:confgen:config requires a struct type",
		TypeName: "Level",
		Position: token.Position{Filename: "config.go", Line: 12, Column: 6},
	}
	assert.Equal(t,
		"config.go:12:6: error [RequiresAggregateType]: Level: //go:confgen:config requires a struct type",
		d.String())

	field := Diagnostic{Severity: SeverityWarning, Message: "bad tag", TypeName: "Server", Field: "Port"}
	assert.Equal(t, "warning: Server.Port: bad tag", field.String())
}

func TestDiagnostics_Collect(t *testing.T) {
	var d Diagnostics
	assert.False(t, d.HasErrors())
	assert.NoError(t, d.Err())

	pos := token.Position{Filename: "a.go", Line: 3, Column: 1}
	d.Warnf(pos, CodeUnknownAnnotation, "A", "unknown directive %q", "frob")
	d.Errorf(pos, CodeConflictingAnnotations, "B", "both %s and %s", "config", "group")

	var other Diagnostics
	other.Errorf(token.Position{}, CodeRequiresAggregateType, "C", "not a struct")
	d.Merge(other)

	assert.Equal(t, 3, d.Len())
	assert.True(t, d.HasErrors())
	assert.Len(t, d.Errors(), 2)
	assert.Len(t, d.Warnings(), 1)
	assert.Equal(t, "C", d.All()[2].TypeName)

	err := d.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both config and group")
	assert.Contains(t, err.Error(), "C: not a struct")
	assert.NotContains(t, err.Error(), "frob")
}
