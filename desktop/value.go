package desktop

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrEscapeIncomplete = errors.New("unexpected end of string, escape sequence not completed")
	ErrInvalidKey       = errors.New("invalid key")
)

// escapes maps the character following a backslash to the character it stands for.
var escapes = map[byte]byte{
	's':  ' ',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'\\': '\\',
}

var escaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

// ValidKey reports whether key can be used as the key of a key-value pair.
// Keys must be non-empty ASCII without control characters. A locale suffix with an empty locale,
// such as Name[], is invalid.
func ValidKey(key string) bool {
	if key == "" || strings.HasSuffix(key, "[]") {
		return false
	}

	for _, r := range key {
		if r > unicode.MaxASCII || unicode.IsControl(r) {
			return false
		}
	}

	return true
}

// ParseKey separates a key such as Name[nl_BE] into its name and locale.
// The locale is empty when the key is not localized.
func ParseKey(key string) (name string, locale string, err error) {
	if !strings.HasSuffix(key, "]") {
		return key, "", nil
	}

	name, locale, found := strings.Cut(strings.TrimSuffix(key, "]"), "[")
	if !found {
		return "", "", fmt.Errorf("%w: no opening bracket in %s", ErrInvalidKey, key)
	}

	return name, locale, nil
}

// LocalizedKey is the inverse of ParseKey.
func LocalizedKey(name string, locale string) string {
	if locale == "" {
		return name
	}

	return name + "[" + locale + "]"
}

// Unescape replaces the escape sequences \s, \n, \t, \r and \\ of a [string value].
// Backslashes followed by any other character are kept as is.
//
// [string value]: https://specifications.freedesktop.org/desktop-entry-spec/1.5/value-types.html
func Unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var builder strings.Builder
	builder.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			builder.WriteByte(s[i])
			continue
		}

		if i+1 == len(s) {
			return "", ErrEscapeIncomplete
		}

		if c, ok := escapes[s[i+1]]; ok {
			builder.WriteByte(c)
			i++
			continue
		}

		builder.WriteByte('\\')
	}

	return builder.String(), nil
}

// Escape is the inverse of Unescape. Spaces are never escaped since values are not trimmed by
// this package.
func Escape(s string) string {
	return escaper.Replace(s)
}

// SplitList splits a list value on the semicolons which are not escaped, then unescapes every
// element. The trailing semicolon is optional, "a;b;" and "a;b" both yield [a b].
func SplitList(s string) ([]string, error) {
	var (
		result  []string
		current strings.Builder
	)

	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 == len(s):
			return nil, ErrEscapeIncomplete
		case s[i] == '\\' && s[i+1] == ';':
			current.WriteByte(';')
			i++
		case s[i] == '\\':
			current.WriteString(s[i : i+2])
			i++
		case s[i] == ';':
			result = append(result, current.String())
			current.Reset()
		default:
			current.WriteByte(s[i])
		}
	}

	if current.Len() > 0 {
		result = append(result, current.String())
	}

	for i, element := range result {
		unescaped, err := Unescape(element)
		if err != nil {
			return nil, err
		}
		result[i] = unescaped
	}

	return result, nil
}

// JoinList joins the elements with semicolons so that SplitList returns the same elements.
// No trailing semicolon is added.
func JoinList(elements []string) string {
	escaped := make([]string, len(elements))
	for i, element := range elements {
		escaped[i] = strings.ReplaceAll(Escape(element), ";", `\;`)
	}

	return strings.Join(escaped, ";")
}
