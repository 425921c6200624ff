package pathtpl

import (
	"fmt"
	"strconv"
)

// Token is one element of a parsed template: either a run of literal text
// or a single parameter placeholder.
type Token struct {
	// Literal holds raw text for literal tokens. Empty for parameters.
	Literal string

	// Name is the parameter name. Anonymous groups are numbered "0", "1",
	// and so on in order of appearance.
	Name string

	// Prefix is the delimiter character immediately preceding the
	// parameter, usually "/". It is omitted from the built path when an
	// optional parameter has no value.
	Prefix string

	// Optional marks parameters that may be absent from a matched path.
	Optional bool

	// Repeat marks parameters that may span multiple path segments.
	Repeat bool

	// Pattern is the regexp fragment the parameter value must match.
	Pattern string

	// Anonymous marks unnamed capture groups such as the (.*) wildcard.
	Anonymous bool
}

// IsParam reports whether the token is a parameter placeholder.
func (t Token) IsParam() bool {
	return t.Literal == ""
}

// defaultPattern matches a single path segment.
const defaultPattern = `[^/]+`

// isNameByte reports whether c may appear in a parameter name.
func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// Parse splits a template into an ordered token list. Backslash escapes
// the following character into literal text. Returns an error on an empty
// parameter name or unbalanced parentheses.
func Parse(template string) ([]Token, error) {
	var (
		tokens  []Token
		literal []byte
		anon    int
	)

	flushLiteral := func() {
		if len(literal) > 0 {
			tokens = append(tokens, Token{Literal: string(literal)})
			literal = literal[:0]
		}
	}

	// popPrefix removes a trailing delimiter from the pending literal so
	// it can become the parameter's prefix.
	popPrefix := func() string {
		if n := len(literal); n > 0 && (literal[n-1] == '/' || literal[n-1] == '.') {
			p := string(literal[n-1])
			literal = literal[:n-1]
			return p
		}
		return ""
	}

	for i := 0; i < len(template); i++ {
		c := template[i]

		switch c {
		case '\\':
			if i+1 < len(template) {
				i++
				literal = append(literal, template[i])
			} else {
				literal = append(literal, c)
			}

		case ':':
			start := i + 1
			j := start
			for j < len(template) && isNameByte(template[j]) {
				j++
			}
			if j == start {
				return nil, fmt.Errorf("pathtpl: missing parameter name at offset %d in %q", i, template)
			}
			name := template[start:j]

			pattern := defaultPattern
			if j < len(template) && template[j] == '(' {
				inner, end, err := balancedGroup(template, j)
				if err != nil {
					return nil, err
				}
				pattern = expandMacro(inner)
				j = end
			}

			tok := Token{Name: name, Pattern: pattern}
			j = applyModifier(template, j, &tok)

			prefix := popPrefix()
			flushLiteral()
			tok.Prefix = prefix
			tokens = append(tokens, tok)
			i = j - 1

		case '(':
			inner, end, err := balancedGroup(template, i)
			if err != nil {
				return nil, err
			}

			tok := Token{
				Name:      strconv.Itoa(anon),
				Pattern:   inner,
				Anonymous: true,
			}
			anon++
			j := applyModifier(template, end, &tok)

			prefix := popPrefix()
			flushLiteral()
			tok.Prefix = prefix
			tokens = append(tokens, tok)
			i = j - 1

		default:
			literal = append(literal, c)
		}
	}

	flushLiteral()
	return tokens, nil
}

// applyModifier consumes a trailing ?, * or + at offset j and updates the
// token flags. Returns the offset after the modifier.
func applyModifier(template string, j int, tok *Token) int {
	if j >= len(template) {
		return j
	}
	switch template[j] {
	case '?':
		tok.Optional = true
		return j + 1
	case '*':
		tok.Optional = true
		tok.Repeat = true
		return j + 1
	case '+':
		tok.Repeat = true
		return j + 1
	}
	return j
}

// balancedGroup extracts the content of a parenthesized group starting at
// offset start (which must point at the opening paren). Returns the inner
// text and the offset just past the closing paren.
func balancedGroup(template string, start int) (string, int, error) {
	level := 0
	for i := start; i < len(template); i++ {
		switch template[i] {
		case '\\':
			i++
		case '(':
			level++
		case ')':
			level--
			if level == 0 {
				return template[start+1 : i], i + 1, nil
			}
		}
	}
	return "", 0, fmt.Errorf("pathtpl: unbalanced parentheses in %q", template)
}
