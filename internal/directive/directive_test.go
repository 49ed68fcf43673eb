package directive

import (
	goast "go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantOK    bool
		wantVerb  string
		wantScope string
	}{
		{name: "bare config", line: "//go:confgen:config", wantOK: true, wantVerb: "config"},
		{name: "quoted scope", line: `//go:confgen:config scope="gcp"`, wantOK: true, wantVerb: "config", wantScope: "gcp"},
		{name: "unquoted scope", line: "//go:confgen:group scope=app", wantOK: true, wantVerb: "group", wantScope: "app"},
		{name: "single quoted scope", line: "//go:confgen:group scope='app.edge'", wantOK: true, wantVerb: "group", wantScope: "app.edge"},
		{name: "spaces around equals", line: `//go:confgen:config scope = "db"`, wantOK: true, wantVerb: "config", wantScope: "db"},
		{name: "trailing whitespace", line: "//go:confgen:config   ", wantOK: true, wantVerb: "config"},
		{name: "empty verb", line: "//go:confgen:", wantOK: false},
		{name: "other directive", line: "//go:generate confgen generate", wantOK: false},
		{name: "plain comment", line: "// go:confgen:config", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Parse(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantVerb, d.Verb)
			assert.Equal(t, tt.wantScope, d.Scope())
		})
	}
}

func TestFromComments(t *testing.T) {
	doc := &goast.CommentGroup{List: []*goast.Comment{
		{Text: "// Server holds listener settings."},
		{Text: `//go:confgen:config scope="server"`},
	}}
	extra := &goast.CommentGroup{List: []*goast.Comment{
		{Text: "//go:confgen:group"},
	}}

	got := FromComments(doc, nil, extra)
	require.Len(t, got, 2)
	assert.Equal(t, "config", got[0].Verb)
	assert.Equal(t, "server", got[0].Scope())
	assert.Equal(t, "group", got[1].Verb)
}
