package desktop

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "browser;Internet;WWW;", want: []string{"browser", "Internet", "WWW"}},
		{input: "browser;Internet;WWW", want: []string{"browser", "Internet", "WWW"}},
		{input: `a\;b;c`, want: []string{"a;b", "c"}},
		{input: `new\nline;tab\t`, want: []string{"new\nline", "tab\t"}},
		{input: "a;;b", want: []string{"a", "", "b"}},
		{input: "", want: nil},
	}

	for _, tt := range tests {
		got, err := SplitList(tt.input)
		if err != nil {
			t.Errorf("SplitList(%q) returned error: %v", tt.input, err)
			continue
		}

		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("SplitList(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestSplitListIncompleteEscape(t *testing.T) {
	_, err := SplitList(`a;b\`)
	if !errors.Is(err, ErrEscapeIncomplete) {
		t.Errorf("SplitList() error = %v, want %v", err, ErrEscapeIncomplete)
	}
}

func TestJoinListRoundTrip(t *testing.T) {
	elements := []string{"plain", "semi;colon", `back\slash`, "new\nline", `tricky\;`}

	joined := JoinList(elements)
	got, err := SplitList(joined)
	if err != nil {
		t.Fatalf("SplitList(%q) returned error: %v", joined, err)
	}

	if diff := cmp.Diff(elements, got); diff != "" {
		t.Errorf("round trip of %q mismatch (-want +got):\n%s", joined, diff)
	}
}

func TestUnescape(t *testing.T) {
	got, err := Unescape(`a\sb\\c\x`)
	if err != nil {
		t.Fatal(err)
	}

	if got != `a b\c\x` {
		t.Errorf("Unescape() = %q, want %q", got, `a b\c\x`)
	}

	_, err = Unescape(`end\`)
	if !errors.Is(err, ErrEscapeIncomplete) {
		t.Errorf("Unescape() error = %v, want %v", err, ErrEscapeIncomplete)
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		key        string
		wantName   string
		wantLocale string
		wantErr    bool
	}{
		{key: "Name", wantName: "Name"},
		{key: "Name[nl_BE]", wantName: "Name", wantLocale: "nl_BE"},
		{key: "label[sr@Latn]", wantName: "label", wantLocale: "sr@Latn"},
		{key: "broken]", wantErr: true},
	}

	for _, tt := range tests {
		name, locale, err := ParseKey(tt.key)
		switch {
		case tt.wantErr && err == nil:
			t.Errorf("ParseKey(%s) did not return an error", tt.key)
		case !tt.wantErr && err != nil:
			t.Errorf("ParseKey(%s) returned error: %v", tt.key, err)
		case name != tt.wantName || locale != tt.wantLocale:
			t.Errorf(
				"ParseKey(%s) = (%s, %s), want (%s, %s)",
				tt.key,
				name,
				locale,
				tt.wantName,
				tt.wantLocale,
			)
		}

		if !tt.wantErr && LocalizedKey(name, locale) != tt.key {
			t.Errorf("LocalizedKey(%s, %s) != %s", name, locale, tt.key)
		}
	}
}

func TestValidKey(t *testing.T) {
	valid := []string{"label", "label[fr]", "X-Custom"}
	invalid := []string{"", "label[]", "labél", "tab\tkey"}

	for _, key := range valid {
		if !ValidKey(key) {
			t.Errorf("ValidKey(%q) = false, want true", key)
		}
	}

	for _, key := range invalid {
		if ValidKey(key) {
			t.Errorf("ValidKey(%q) = true, want false", key)
		}
	}
}
