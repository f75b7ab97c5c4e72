package desktop

import (
	"fmt"
	"strings"
)

// Locale is a POSIX locale, lang_COUNTRY.ENCODING@MODIFIER, split into its parts.
// Only Lang is required.
type Locale struct {
	Lang     string
	Country  string
	Encoding string
	Modifier string
}

// ParseLocale splits a locale such as sr_RS.UTF-8@latin.
// It returns false for the C and POSIX locales and for anything which is not a locale.
func ParseLocale(s string) (Locale, bool) {
	var l Locale

	s, l.Modifier, _ = strings.Cut(s, "@")
	s, l.Encoding, _ = strings.Cut(s, ".")
	l.Lang, l.Country, _ = strings.Cut(s, "_")

	if len(l.Lang) < 2 || !isRange(l.Lang, 'a', 'z') {
		return Locale{}, false
	}

	if l.Country != "" && (len(l.Country) != 2 || !isRange(l.Country, 'A', 'Z')) {
		return Locale{}, false
	}

	return l, true
}

func isRange(s string, lo byte, hi byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < lo || s[i] > hi {
			return false
		}
	}

	return true
}

// Candidates returns the locale keys matching l, most specific first, in the order given by
// [Localized values for keys]. The encoding never takes part in the match.
//
// [Localized values for keys]: https://specifications.freedesktop.org/desktop-entry-spec/1.5/localized-keys.html
func (l Locale) Candidates() []string {
	candidates := make([]string, 0, 4)

	if l.Country != "" && l.Modifier != "" {
		candidates = append(candidates, fmt.Sprintf("%s_%s@%s", l.Lang, l.Country, l.Modifier))
	}

	if l.Country != "" {
		candidates = append(candidates, l.Lang+"_"+l.Country)
	}

	if l.Modifier != "" {
		candidates = append(candidates, l.Lang+"@"+l.Modifier)
	}

	return append(candidates, l.Lang)
}

// BCP47 returns the language tag of l, such as nl-BE. The modifier is dropped.
func (l Locale) BCP47() string {
	if l.Country == "" {
		return l.Lang
	}

	return l.Lang + "-" + l.Country
}

// LocaleString is a value with an unlocalized default and any number of localized variants, keyed
// by locale such as nl_BE or sr@Latn.
type LocaleString struct {
	Default   string
	Localized map[string]string
}

// Set assigns the value for the given locale. An empty locale assigns the default.
func (s *LocaleString) Set(locale string, value string) {
	if locale == "" {
		s.Default = value
		return
	}

	if s.Localized == nil {
		s.Localized = make(map[string]string)
	}

	s.Localized[locale] = value
}

// Match returns the key of the non-empty variant selected for locale.
func (s *LocaleString) Match(locale string) (string, bool) {
	l, ok := ParseLocale(locale)
	if !ok {
		return "", false
	}

	for _, key := range l.Candidates() {
		if s.Localized[key] != "" {
			return key, true
		}
	}

	return "", false
}

// ToLocale returns the variant selected for locale, the default if there is none.
func (s *LocaleString) ToLocale(locale string) string {
	if key, ok := s.Match(locale); ok {
		return s.Localized[key]
	}

	return s.Default
}
