package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/confgen/internal/directive"
	"github.com/origadmin/confgen/internal/generator"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(NewViper(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Settings{
		Tag:     directive.DefaultTagName,
		Runtime: generator.DefaultRuntimePath,
	}, s)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := "output: settings_gen.go\ntag: cfg\nstrict: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
	t.Setenv("CONFGEN_TAG", "env")
	t.Setenv("CONFGEN_DRY_RUN", "true")

	s, err := Load(NewViper(), dir)
	require.NoError(t, err)
	assert.Equal(t, "settings_gen.go", s.Output)
	assert.Equal(t, "env", s.Tag)
	assert.True(t, s.Strict)
	assert.True(t, s.DryRun)
}

func TestLoad_Override(t *testing.T) {
	v := NewViper()
	v.Set(KeyRuntime, "example.com/cfg")
	s, err := Load(v, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "example.com/cfg", s.Runtime)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("tag: [unterminated\n"), 0o644))
	_, err := Load(NewViper(), dir)
	assert.Error(t, err)
}
