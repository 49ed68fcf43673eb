// Package template renders the declarations confgen emits from embedded
// text/template files.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"text/template"

	"github.com/origadmin/confgen/internal/model"
)

//go:embed *.tpl
var templates embed.FS

// Template names.
const (
	Keys        = "keys.tpl"
	Defaults    = "defaults.tpl"
	Initializer = "initializer.tpl"
	Group       = "group.tpl"
	Factory     = "factory.tpl"
	Conformance = "conformance.tpl"
	File        = "file.tpl"
)

var funcs = template.FuncMap{
	"quote": strconv.Quote,
	"isEnum": func(k model.Kind) bool {
		return k == model.KindEnum
	},
}

// Renderer is the interface for rendering templates.
type Renderer interface {
	Render(templateName string, data any) ([]byte, error)
}

// Manager holds the parsed templates.
type Manager struct {
	tmpl *template.Template
}

// NewManager creates a new template manager and parses the embedded templates.
func NewManager() *Manager {
	tmpl := template.Must(template.New("confgen").Funcs(funcs).ParseFS(templates, "*.tpl"))
	return &Manager{tmpl: tmpl}
}

// Render executes the named template with the given data.
func (m *Manager) Render(templateName string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&buf, templateName, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", templateName, err)
	}
	return buf.Bytes(), nil
}

// Decl is the data passed to the declaration templates.
type Decl struct {
	TypeName    string
	Runtime     string
	Scope       string
	Handle      string
	KeysVar     string
	DefaultsVar string
	FactoryName string
	Empty       bool
	Properties  []model.PropertyDescriptor
	Nested      []model.NestedFieldDescriptor
}

// FileData is the data passed to the file template.
type FileData struct {
	Package      string
	Imports      []string
	Declarations []string
}
