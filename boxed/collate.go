package boxed

import (
	"fmt"
	"strings"
	"sync"

	"github.com/raveit65/caja-actions/desktop"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// A collate.Collator keeps internal buffers and must not be shared between goroutines.
var collation = struct {
	sync.Mutex
	collator *collate.Collator
}{
	collator: collate.New(language.Und),
}

// SetLocale selects the collation used to compare locale-string values.
// The locale has the POSIX format lang_COUNTRY.ENCODING@MODIFIER, as found in $LANG. Empty, "C" and
// "POSIX" select the root collation.
func SetLocale(locale string) error {
	tag := language.Und

	if l, ok := desktop.ParseLocale(locale); ok {
		parsed, err := language.Parse(l.BCP47())
		if err != nil {
			return fmt.Errorf("SetLocale: invalid locale %q: %w", locale, err)
		}
		tag = parsed
	} else if !isPOSIXLocale(locale) {
		return fmt.Errorf("SetLocale: invalid locale %q", locale)
	}

	collation.Lock()
	collation.collator = collate.New(tag)
	collation.Unlock()

	return nil
}

func isPOSIXLocale(locale string) bool {
	name, _, _ := strings.Cut(locale, ".")
	return name == "" || name == "C" || name == "POSIX"
}

func collateEqual(a string, b string) bool {
	if a == b {
		return true
	}

	collation.Lock()
	defer collation.Unlock()

	return collation.collator.CompareString(a, b) == 0
}
