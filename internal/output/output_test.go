package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutput(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(prev)
		SetVerbose(false)
	})

	Success("wrote demo_confgen.go")
	Error("generation failed")
	Warn("unknown directive")
	Info("2 declarations")
	Step("ServerConfig")
	Verbose("hidden")
	SetVerbose(true)
	Verbose("shown")
	Raw([]byte("package demo\n"))

	got := buf.String()
	for _, want := range []string{"wrote demo_confgen.go", "generation failed", "unknown directive", "2 declarations", "ServerConfig", "shown", "package demo\n"} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "hidden")
}
