package boxed

import (
	"math"
	"strings"

	"github.com/raveit65/caja-actions/desktop"
)

// parseBoolean is lenient: anything that is not a recognized true value is false.
func parseBoolean(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "t", "1", "yes", "on":
		return true
	}

	return false
}

// parseUint behaves like atoi: leading white space is skipped, digits are read up to the first
// other character, and anything unparsable is 0. Negative numbers are 0 too, overflows saturate.
func parseUint(text string) uint {
	text = strings.TrimLeft(text, " \t\n\r")
	negative := false

	if len(text) > 0 && (text[0] == '-' || text[0] == '+') {
		negative = text[0] == '-'
		text = text[1:]
	}

	var result uint
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c < '0' || c > '9' {
			break
		}

		digit := uint(c - '0')
		if result > (math.MaxUint-digit)/10 {
			result = math.MaxUint
			continue
		}
		result = result*10 + digit
	}

	if negative {
		return 0
	}

	return result
}

// splitElements splits a list either in the semicolon separated form, "a;b;c;", or in the
// bracketed form of the legacy configuration store, "[a,b,c]".
// Elements are trimmed and empty elements are dropped.
func splitElements(text string) []string {
	trimmed := strings.TrimSpace(text)

	var raw []string
	if isBracketed(trimmed) {
		inner := trimmed[1 : len(trimmed)-1]
		if inner != "" {
			raw = strings.Split(inner, ",")
		}
	} else {
		split, err := desktop.SplitList(trimmed)
		if err != nil {
			// A dangling escape is kept as a literal backslash.
			split = strings.Split(strings.TrimSuffix(trimmed, ";"), ";")
		}
		raw = split
	}

	result := make([]string, 0, len(raw))
	for _, element := range raw {
		element = strings.TrimSpace(element)
		if element == "" {
			continue
		}
		result = append(result, element)
	}

	return result
}

func isBracketed(text string) bool {
	return strings.HasPrefix(text, "[") &&
		strings.HasSuffix(text, "]") &&
		!strings.Contains(text, ";")
}

// parseStringList splits text and suppresses duplicates, keeping the first occurrence.
func parseStringList(text string) []string {
	return removeDuplicates(splitElements(text))
}

// parseUintList splits text and converts every element. Duplicates are kept.
func parseUintList(text string) []uint {
	elements := splitElements(text)
	result := make([]uint, 0, len(elements))

	for _, element := range elements {
		result = append(result, parseUint(element))
	}

	return result
}

// removeDuplicates removes duplicates entries from a slice and returns the slice.
// Order is preserved and the first occurrence of every entry is preserved.
// If input is nil, nil is returned.
func removeDuplicates[T comparable](input []T) []T {
	if input == nil {
		return nil
	}

	seen := make(map[T]bool, len(input))
	list := make([]T, 0, len(input))

	for _, item := range input {
		if !seen[item] {
			seen[item] = true
			list = append(list, item)
		}
	}

	return list
}
