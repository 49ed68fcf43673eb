package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestKind_Accessor(t *testing.T) {
	assert.Equal(t, "String", KindString.Accessor())
	assert.Equal(t, "Int", KindInt.Accessor())
	assert.Equal(t, "Float", KindFloat.Accessor())
	assert.Equal(t, "Bool", KindBool.Accessor())
	assert.Equal(t, "String", KindEnum.Accessor())
}

func TestExpansion_FindAndKinds(t *testing.T) {
	exp := &Expansion{
		TypeName: "Server",
		Declarations: []Declaration{
			{Kind: DeclKeys, Name: "serverKeys"},
			{Kind: DeclInitializer, Name: "LoadConfig"},
			{Kind: DeclConformance},
		},
	}

	d, ok := exp.Find(DeclInitializer)
	assert.True(t, ok)
	assert.Equal(t, "LoadConfig", d.Name)

	_, ok = exp.Find(DeclFactory)
	assert.False(t, ok)

	assert.Equal(t, []DeclKind{DeclKeys, DeclInitializer, DeclConformance}, exp.Kinds())
}

func TestAggregate_YAML(t *testing.T) {
	agg := &Aggregate{
		Name:       "Server",
		Annotation: AnnotationConfig,
		Scope:      "server",
		Properties: []PropertyDescriptor{
			{Name: "Port", ConfigKey: "port", DefaultLiteral: "8080", DeclaredType: "int", Kind: KindInt},
		},
	}

	out, err := yaml.Marshal(agg)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "kind: int")
	assert.Contains(t, string(out), "scope: server")
	assert.NotContains(t, string(out), "fallback")
	assert.True(t, agg.Scoped())
}
