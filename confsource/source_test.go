package confsource

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

type level string

const (
	levelDebug level = "debug"
	levelInfo  level = "info"
)

func (l *level) UnmarshalText(text []byte) error {
	switch v := level(strings.ToLower(string(text))); v {
	case levelDebug, levelInfo:
		*l = v
		return nil
	}
	return errors.New("unknown level")
}

type region string

func (r region) Valid() bool { return r == "eu" || r == "us" }

type color string

func TestFromEnv_KeyMapping(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GCP_PROJECT_ID", "demo")
	t.Setenv("APP_GCP_PROJECT_ID", "nested")

	src := FromEnv()
	assert.Equal(t, 9090, src.Int("server.port", 8080))
	assert.Equal(t, "demo", src.Scoped("gcp").String("project.id", ""))
	assert.Equal(t, "nested", src.Scoped("app").Scoped("gcp").String("project.id", ""))
	assert.Equal(t, "fallback", src.String("missing.key", "fallback"))
}

func TestFromEnv_UnparseableValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("SERVER_RATIO", "not-a-float")
	t.Setenv("SERVER_DEBUG", "maybe")
	t.Setenv("SERVER_EMPTY", "")

	src := FromEnv().Scoped("server")
	assert.Equal(t, 8080, src.Int("port", 8080))
	assert.Equal(t, 0.5, src.Float("ratio", 0.5))
	assert.True(t, src.Bool("debug", true))
	assert.Equal(t, "default", src.String("empty", "default"))
}

func TestFromEnv_TypedValues(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", " 30 ")
	t.Setenv("CACHE_RATIO", "0.75")
	t.Setenv("CACHE_ENABLED", "true")

	src := FromEnv().Scoped("cache")
	assert.Equal(t, 30, src.Int("ttl.seconds", 0))
	assert.Equal(t, 0.75, src.Float("ratio", 0))
	assert.True(t, src.Bool("enabled", false))
}

func TestFromViper_ReadsConfigValues(t *testing.T) {
	v := viper.New()
	v.Set("db.host", "db.internal")
	v.Set("db.port", 5433)

	src := FromViper(v).Scoped("db")
	assert.Equal(t, "db.internal", src.String("host", "localhost"))
	assert.Equal(t, 5433, src.Int("port", 5432))
	assert.Equal(t, "disable", src.String("sslmode", "disable"))
}

func TestMap_Scoping(t *testing.T) {
	src := Map{
		"test.key":              "value",
		"outer.inner.port":      "7000",
		"outer.inner.ratio":     "1.5",
		"outer.inner.enabled":   "false",
		"outer.inner.bad.port":  "x",
		"outer.inner.empty.key": "",
	}

	assert.Equal(t, "value", src.String("test.key", "default"))
	inner := src.Scoped("outer").Scoped("inner")
	assert.Equal(t, 7000, inner.Int("port", 1))
	assert.Equal(t, 1.5, inner.Float("ratio", 0))
	assert.False(t, inner.Bool("enabled", true))
	assert.Equal(t, 42, inner.Int("bad.port", 42))
	assert.Equal(t, "d", inner.String("empty.key", "d"))
	assert.Equal(t, 7000, src.Scoped("outer.inner").Int("port", 1))
}

func TestParseEnum(t *testing.T) {
	tests := []struct {
		name string
		got  any
		want any
	}{
		{name: "text unmarshaler accepts", got: ParseEnum("DEBUG", levelInfo), want: levelDebug},
		{name: "text unmarshaler rejects", got: ParseEnum("verbose", levelInfo), want: levelInfo},
		{name: "empty raw", got: ParseEnum("", levelInfo), want: levelInfo},
		{name: "validator accepts", got: ParseEnum("us", region("eu")), want: region("us")},
		{name: "validator rejects", got: ParseEnum("mars", region("eu")), want: region("eu")},
		{name: "plain string enum", got: ParseEnum("red", color("blue")), want: color("red")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

type counter struct{ loads int }

func (c *counter) LoadConfig(Source) { c.loads++ }

func TestLoad(t *testing.T) {
	c := Load(&counter{}, Map{})
	assert.Equal(t, 1, c.loads)
}
