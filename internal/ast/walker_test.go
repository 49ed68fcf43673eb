package ast

import (
	goast "go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walkerSource = `package demo

// Server holds listener settings.
//go:confgen:config scope="server"
type Server struct {
	Port int ` + "`confgen:\"port,default=8080\"`" + `
}

// Plain is not annotated.
type Plain struct{}

type (
	// Cache settings.
	//go:confgen:config
	Cache struct{}

	//go:confgen:group
	App struct {
		Server Server
	}
)

//go:confgen:config
type Level string

//go:confgen:config
func Setup() {}

//go:confgen:config
var defaults = Server{}
`

const generatedSource = `// Code generated by confgen. DO NOT EDIT.

package demo

//go:confgen:config
type Generated struct{}
`

func parseFiles(t *testing.T, srcs ...string) (*token.FileSet, []*goast.File) {
	t.Helper()
	fset := token.NewFileSet()
	var files []*goast.File
	for i, src := range srcs {
		f, err := parser.ParseFile(fset, []string{"a.go", "b.go", "c.go"}[i], src, parser.ParseComments)
		require.NoError(t, err)
		files = append(files, f)
	}
	return fset, files
}

func TestPackageWalker_Walk(t *testing.T) {
	fset, files := parseFiles(t, walkerSource, generatedSource)
	targets := NewPackageWalker(fset).Walk(files)

	var names []string
	for _, tgt := range targets {
		names = append(names, tgt.Name)
	}
	assert.Equal(t, []string{"Server", "Cache", "App", "Level", "Setup", "defaults"}, names)

	server := targets[0]
	require.True(t, server.IsType())
	assert.Equal(t, "type", server.DeclKind)
	assert.Equal(t, "config", server.Directives[0].Verb)
	assert.Equal(t, "server", server.Directives[0].Scope())
	assert.Equal(t, "a.go", server.Position.Filename)
	assert.Equal(t, 5, server.Position.Line)
	assert.Same(t, files[0], server.File)

	assert.Equal(t, "group", targets[2].Directives[0].Verb)

	setup := targets[4]
	assert.False(t, setup.IsType())
	assert.Equal(t, "func", setup.DeclKind)
	assert.Equal(t, "var", targets[5].DeclKind)
}
