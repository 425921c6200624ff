package pathtpl

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("literal only", func(t *testing.T) {
		tokens, err := Parse("/users")
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, "/users", tokens[0].Literal)
		assert.False(t, tokens[0].IsParam())
	})

	t.Run("named parameter", func(t *testing.T) {
		tokens, err := Parse("/users/:id")
		require.NoError(t, err)
		require.Len(t, tokens, 2)
		assert.Equal(t, "/users", tokens[0].Literal)
		assert.Equal(t, "id", tokens[1].Name)
		assert.Equal(t, "/", tokens[1].Prefix)
		assert.Equal(t, defaultPattern, tokens[1].Pattern)
		assert.False(t, tokens[1].Optional)
		assert.False(t, tokens[1].Repeat)
	})

	t.Run("modifiers", func(t *testing.T) {
		tokens, err := Parse("/a/:x?/b/:y+/c/:z*")
		require.NoError(t, err)

		var params []Token
		for _, tok := range tokens {
			if tok.IsParam() {
				params = append(params, tok)
			}
		}
		require.Len(t, params, 3)

		assert.True(t, params[0].Optional)
		assert.False(t, params[0].Repeat)

		assert.False(t, params[1].Optional)
		assert.True(t, params[1].Repeat)

		assert.True(t, params[2].Optional)
		assert.True(t, params[2].Repeat)
	})

	t.Run("custom pattern", func(t *testing.T) {
		tokens, err := Parse("/posts/:id([0-9]{4})")
		require.NoError(t, err)
		require.Len(t, tokens, 2)
		assert.Equal(t, "[0-9]{4}", tokens[1].Pattern)
	})

	t.Run("nested parens in pattern", func(t *testing.T) {
		tokens, err := Parse("/v/:tag((?:a|b)+)")
		require.NoError(t, err)
		require.Len(t, tokens, 2)
		assert.Equal(t, "(?:a|b)+", tokens[1].Pattern)
	})

	t.Run("anonymous wildcard", func(t *testing.T) {
		tokens, err := Parse("/static/(.*)")
		require.NoError(t, err)
		require.Len(t, tokens, 2)
		assert.True(t, tokens[1].Anonymous)
		assert.Equal(t, "0", tokens[1].Name)
		assert.Equal(t, ".*", tokens[1].Pattern)
		assert.Equal(t, "/", tokens[1].Prefix)
	})

	t.Run("anonymous groups are numbered in order", func(t *testing.T) {
		tokens, err := Parse("/(a+)/(b+)")
		require.NoError(t, err)
		require.Len(t, tokens, 2)
		assert.Equal(t, "0", tokens[0].Name)
		assert.Equal(t, "1", tokens[1].Name)
	})

	t.Run("backslash escapes colon", func(t *testing.T) {
		tokens, err := Parse(`/a\:b`)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, "/a:b", tokens[0].Literal)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := Parse("/users/:")
		assert.Error(t, err)
	})

	t.Run("unbalanced parens", func(t *testing.T) {
		_, err := Parse("/x/:id([0-9]+")
		assert.Error(t, err)
	})
}

func TestCompileMatch(t *testing.T) {
	t.Run("simple parameter", func(t *testing.T) {
		tpl, err := Compile("/users/:id", Options{})
		require.NoError(t, err)

		assert.True(t, tpl.MatchString("/users/5"))
		assert.False(t, tpl.MatchString("/users"))
		assert.False(t, tpl.MatchString("/users/5/files"))
	})

	t.Run("trailing slash optional by default", func(t *testing.T) {
		tpl, err := Compile("/users/:id", Options{})
		require.NoError(t, err)
		assert.True(t, tpl.MatchString("/users/5/"))
	})

	t.Run("strict requires exact form", func(t *testing.T) {
		tpl, err := Compile("/users/:id", Options{Strict: true})
		require.NoError(t, err)
		assert.True(t, tpl.MatchString("/users/5"))
		assert.False(t, tpl.MatchString("/users/5/"))
	})

	t.Run("case-insensitive by default", func(t *testing.T) {
		tpl, err := Compile("/Users/:id", Options{})
		require.NoError(t, err)
		assert.True(t, tpl.MatchString("/users/5"))
	})

	t.Run("sensitive matching", func(t *testing.T) {
		tpl, err := Compile("/Users/:id", Options{Sensitive: true})
		require.NoError(t, err)
		assert.False(t, tpl.MatchString("/users/5"))
		assert.True(t, tpl.MatchString("/Users/5"))
	})

	t.Run("optional parameter", func(t *testing.T) {
		tpl, err := Compile("/users/:id?", Options{})
		require.NoError(t, err)
		assert.True(t, tpl.MatchString("/users"))
		assert.True(t, tpl.MatchString("/users/5"))
	})

	t.Run("repeated parameter", func(t *testing.T) {
		tpl, err := Compile("/files/:path+", Options{})
		require.NoError(t, err)
		assert.True(t, tpl.MatchString("/files/a"))
		assert.True(t, tpl.MatchString("/files/a/b/c"))
		assert.False(t, tpl.MatchString("/files"))
	})

	t.Run("custom pattern restricts values", func(t *testing.T) {
		tpl, err := Compile("/posts/:id(int)", Options{})
		require.NoError(t, err)
		assert.True(t, tpl.MatchString("/posts/42"))
		assert.False(t, tpl.MatchString("/posts/abc"))
	})

	t.Run("wildcard matches remaining path", func(t *testing.T) {
		tpl, err := Compile("/static/(.*)", Options{})
		require.NoError(t, err)
		assert.True(t, tpl.MatchString("/static/css/app.css"))
		assert.True(t, tpl.MatchString("/static/"))
		assert.False(t, tpl.MatchString("/assets/app.css"))
	})

	t.Run("duplicate parameter names", func(t *testing.T) {
		_, err := Compile("/:a/:a", Options{})
		assert.Error(t, err)
	})

	t.Run("invalid custom pattern", func(t *testing.T) {
		_, err := Compile("/x/:id([)", Options{})
		assert.Error(t, err)
	})
}

func TestCaptures(t *testing.T) {
	t.Run("in template order", func(t *testing.T) {
		tpl := MustCompile("/:category/:title", Options{})
		assert.Equal(t, []string{"programming", "how-to-node"},
			tpl.Captures("/programming/how-to-node"))
	})

	t.Run("missing optional captured as empty", func(t *testing.T) {
		tpl := MustCompile("/users/:id?", Options{})
		assert.Equal(t, []string{""}, tpl.Captures("/users"))
	})

	t.Run("repeated parameter captured whole", func(t *testing.T) {
		tpl := MustCompile("/files/:path+", Options{})
		assert.Equal(t, []string{"a/b/c"}, tpl.Captures("/files/a/b/c"))
	})

	t.Run("nil on no match", func(t *testing.T) {
		tpl := MustCompile("/users/:id", Options{})
		assert.Nil(t, tpl.Captures("/posts/5"))
	})
}

func TestParams(t *testing.T) {
	tpl := MustCompile("/:category/:title?", Options{})
	params := tpl.Params()
	require.Len(t, params, 2)
	assert.Equal(t, "category", params[0].Name)
	assert.False(t, params[0].Optional)
	assert.Equal(t, "title", params[1].Name)
	assert.True(t, params[1].Optional)
}

func TestFromRegexp(t *testing.T) {
	re := regexp.MustCompile(`^/api/.*$`)
	tpl := FromRegexp(re)

	assert.True(t, tpl.MatchString("/api/anything"))
	assert.Empty(t, tpl.Params())
	assert.Empty(t, tpl.Source())
	assert.Same(t, re, tpl.Regexp())
}
