package pathtpl

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Run("fills named parameters", func(t *testing.T) {
		tpl := MustCompile("/users/:id", Options{})
		p, err := tpl.Build(map[string]string{"id": "42"})
		require.NoError(t, err)
		assert.Equal(t, "/users/42", p)
	})

	t.Run("missing required parameter", func(t *testing.T) {
		tpl := MustCompile("/users/:id", Options{})
		_, err := tpl.Build(nil)

		var buildErr *BuildError
		require.ErrorAs(t, err, &buildErr)
		assert.Equal(t, "id", buildErr.Param)
		assert.Equal(t, "/users/:id", buildErr.Template)
	})

	t.Run("empty value treated as missing", func(t *testing.T) {
		tpl := MustCompile("/users/:id", Options{})
		_, err := tpl.Build(map[string]string{"id": ""})
		assert.Error(t, err)
	})

	t.Run("optional parameter omitted with its delimiter", func(t *testing.T) {
		tpl := MustCompile("/users/:id?", Options{})
		p, err := tpl.Build(nil)
		require.NoError(t, err)
		assert.Equal(t, "/users", p)
	})

	t.Run("optional parameter filled when supplied", func(t *testing.T) {
		tpl := MustCompile("/users/:id?", Options{})
		p, err := tpl.Build(map[string]string{"id": "42"})
		require.NoError(t, err)
		assert.Equal(t, "/users/42", p)
	})

	t.Run("percent-encodes values", func(t *testing.T) {
		tpl := MustCompile("/search/:q", Options{})
		p, err := tpl.Build(map[string]string{"q": "a b"})
		require.NoError(t, err)
		assert.Equal(t, "/search/a%20b", p)
	})

	t.Run("escapes path separators inside values", func(t *testing.T) {
		tpl := MustCompile("/users/:id", Options{})
		p, err := tpl.Build(map[string]string{"id": "a/b"})
		require.NoError(t, err)
		assert.Equal(t, "/users/a%2Fb", p)
	})

	t.Run("repeated parameter keeps segment boundaries", func(t *testing.T) {
		tpl := MustCompile("/files/:path+", Options{})
		p, err := tpl.Build(map[string]string{"path": "a/b c/d"})
		require.NoError(t, err)
		assert.Equal(t, "/files/a/b%20c/d", p)
	})

	t.Run("wildcard stripped", func(t *testing.T) {
		tpl := MustCompile("/static/(.*)", Options{})
		p, err := tpl.Build(nil)
		require.NoError(t, err)
		assert.Equal(t, "/static", p)
	})

	t.Run("regexp template not reversible", func(t *testing.T) {
		tpl := FromRegexp(regexp.MustCompile(`^/api$`))
		_, err := tpl.Build(nil)
		assert.ErrorIs(t, err, ErrNotReversible)
	})

	t.Run("round trip through matcher", func(t *testing.T) {
		tpl := MustCompile("/:category/:title", Options{})
		p, err := tpl.Build(map[string]string{"category": "programming", "title": "how to node"})
		require.NoError(t, err)
		assert.Equal(t, "/programming/how%20to%20node", p)
		assert.True(t, tpl.MatchString(p))
		assert.Equal(t, []string{"programming", "how%20to%20node"}, tpl.Captures(p))
	})
}
