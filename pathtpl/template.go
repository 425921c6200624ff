package pathtpl

import (
	"fmt"
	"regexp"
	"strings"
)

// Param describes one parameter placeholder of a template, in the order
// parameters appear left to right.
type Param struct {
	Name     string
	Optional bool
	Repeat   bool
	Pattern  string
}

// Options control how a template is compiled into a matcher.
type Options struct {
	// Sensitive enables case-sensitive matching. Off by default.
	Sensitive bool

	// Strict requires the exact trailing-slash form of the template.
	// When off, a trailing slash on the request path is accepted either way.
	Strict bool
}

// Template is a compiled route path template: an anchored matcher regexp
// plus the ordered parameter descriptors and the token list used for
// reverse path building.
type Template struct {
	source string
	re     *regexp.Regexp
	tokens []Token
	params []Param
}

// Compile parses the template and builds the matcher. The compiled regexp
// is served from a process-wide cache keyed by the final pattern string.
func Compile(template string, opts Options) (*Template, error) {
	tokens, err := Parse(template)
	if err != nil {
		return nil, err
	}

	params := make([]Param, 0, len(tokens))
	names := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.IsParam() {
			continue
		}
		params = append(params, Param{
			Name:     tok.Name,
			Optional: tok.Optional,
			Repeat:   tok.Repeat,
			Pattern:  tok.Pattern,
		})
		names = append(names, tok.Name)
	}
	if err := checkDuplicateParams(names); err != nil {
		return nil, err
	}

	re, err := cachedCompile(buildPattern(tokens, opts))
	if err != nil {
		return nil, fmt.Errorf("pathtpl: invalid pattern in %q: %w", template, err)
	}

	return &Template{
		source: template,
		re:     re,
		tokens: tokens,
		params: params,
	}, nil
}

// MustCompile is like Compile but panics on error. Intended for templates
// known at program start.
func MustCompile(template string, opts Options) *Template {
	t, err := Compile(template, opts)
	if err != nil {
		panic(err)
	}
	return t
}

// FromRegexp wraps an already-compiled matcher. The resulting template has
// no source text, no tokens, and an empty parameter list; it cannot be
// reversed into a concrete path.
func FromRegexp(re *regexp.Regexp) *Template {
	return &Template{re: re}
}

// Source returns the original template text. Empty for templates built
// with FromRegexp.
func (t *Template) Source() string {
	return t.source
}

// Regexp returns the compiled matcher.
func (t *Template) Regexp() *regexp.Regexp {
	return t.re
}

// Params returns the parameter descriptors in template order. The returned
// slice must not be modified.
func (t *Template) Params() []Param {
	return t.params
}

// MatchString reports whether the matcher accepts the given path.
func (t *Template) MatchString(path string) bool {
	return t.re.MatchString(path)
}

// Captures runs the matcher against path and returns the captured groups
// in template order, excluding the whole-match group. Returns nil when the
// path does not match.
func (t *Template) Captures(path string) []string {
	m := t.re.FindStringSubmatch(path)
	if m == nil {
		return nil
	}
	return m[1:]
}

// buildPattern assembles the anchored regexp source for the token list.
func buildPattern(tokens []Token, opts Options) string {
	var b strings.Builder

	if !opts.Sensitive {
		b.WriteString("(?i)")
	}
	b.WriteByte('^')

	for i, tok := range tokens {
		if !tok.IsParam() {
			text := tok.Literal
			// Strip the trailing slash from the final literal so the
			// optional [/]? group below can take its place.
			if !opts.Strict && i == len(tokens)-1 {
				text = strings.TrimSuffix(text, "/")
			}
			b.WriteString(regexp.QuoteMeta(text))
			continue
		}

		inner := tok.Pattern
		if tok.Repeat {
			sep := tok.Prefix
			if sep == "" {
				sep = "/"
			}
			inner = fmt.Sprintf("(?:%s)(?:%s(?:%s))*", tok.Pattern, regexp.QuoteMeta(sep), tok.Pattern)
		}

		if tok.Optional {
			fmt.Fprintf(&b, "(?:%s(%s))?", regexp.QuoteMeta(tok.Prefix), inner)
		} else {
			fmt.Fprintf(&b, "%s(%s)", regexp.QuoteMeta(tok.Prefix), inner)
		}
	}

	if !opts.Strict {
		b.WriteString("[/]?")
	}
	b.WriteByte('$')

	return b.String()
}

// checkDuplicateParams returns an error if any parameter name is repeated.
func checkDuplicateParams(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return fmt.Errorf("pathtpl: duplicated parameter %q", n)
		}
		seen[n] = true
	}
	return nil
}
