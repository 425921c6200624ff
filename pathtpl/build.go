package pathtpl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNotReversible is returned by Build for templates constructed with
// FromRegexp, which carry no token list to rebuild a path from.
var ErrNotReversible = errors.New("pathtpl: template has no source to build from")

// BuildError reports a required parameter with no corresponding value
// during reverse path building.
type BuildError struct {
	Param    string
	Template string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("pathtpl: missing value for parameter %q in %q", e.Param, e.Template)
}

// Build produces a concrete path from the template and the given values.
// Each value is percent-encoded with path separators escaped, so a literal
// "/" inside a value cannot introduce a path boundary. Repeated parameters
// accept multi-segment values separated by "/"; each segment is escaped
// individually. Anonymous wildcard tokens are stripped, optional
// parameters with no value drop their prefix delimiter, and a required
// parameter with no value fails with *BuildError.
func (t *Template) Build(values map[string]string) (string, error) {
	if t.tokens == nil && t.source == "" {
		return "", ErrNotReversible
	}

	var b strings.Builder
	for _, tok := range t.tokens {
		if !tok.IsParam() {
			b.WriteString(tok.Literal)
			continue
		}
		if tok.Anonymous && tok.Pattern == ".*" {
			// Catch-all wildcards are never filled in.
			continue
		}

		v, ok := values[tok.Name]
		if !ok || v == "" {
			if tok.Optional {
				continue
			}
			return "", &BuildError{Param: tok.Name, Template: t.source}
		}

		b.WriteString(tok.Prefix)
		if tok.Repeat {
			segments := strings.Split(v, "/")
			for i, s := range segments {
				segments[i] = url.PathEscape(s)
			}
			b.WriteString(strings.Join(segments, "/"))
		} else {
			b.WriteString(url.PathEscape(v))
		}
	}

	return b.String(), nil
}
