package boxed

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStringListDeduplicates(t *testing.T) {
	list, err := Parse(KindStringList, "a;b;b;c;").StringList()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, list); diff != "" {
		t.Errorf("StringList mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStringListBracketed(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "[a,b,c]", want: []string{"a", "b", "c"}},
		{input: "[a, b ,a]", want: []string{"a", "b"}},
		{input: "[*]", want: []string{"*"}},
	}

	for _, tt := range tests {
		list, err := Parse(KindStringList, tt.input).StringList()
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(tt.want, list); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}

	if list, _ := Parse(KindStringList, "[]").StringList(); len(list) != 0 {
		t.Errorf("Parse(\"[]\") = %v, want an empty list", list)
	}
}

func TestParseUintListKeepsDuplicates(t *testing.T) {
	list, err := Parse(KindUintList, "1;2;2;3").UintList()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]uint{1, 2, 2, 3}, list); diff != "" {
		t.Errorf("UintList mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBoolean(t *testing.T) {
	tests := map[string]bool{
		"true":  true,
		"TRUE":  true,
		" yes ": true,
		"1":     true,
		"false": false,
		"":      false,
		"maybe": false,
	}

	for input, want := range tests {
		got, err := Parse(KindBoolean, input).Boolean()
		if err != nil {
			t.Fatal(err)
		}

		if got != want {
			t.Errorf("Parse(boolean, %q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseUint(t *testing.T) {
	tests := map[string]uint{
		"42":     42,
		"  7abc": 7,
		"":       0,
		"abc":    0,
		"-3":     0,
		"+5":     5,
	}

	for input, want := range tests {
		got, err := Parse(KindUint, input).Uint()
		if err != nil {
			t.Fatal(err)
		}

		if got != want {
			t.Errorf("Parse(uint, %q) = %d, want %d", input, got, want)
		}
	}
}

func TestParseAlwaysSets(t *testing.T) {
	for kind := range kindNames {
		if !Parse(kind, "").IsSet() {
			t.Errorf("Parse(%s, \"\") is not set", kind)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	tests := []struct {
		kind Kind
		text string
	}{
		{KindBoolean, "yes"},
		{KindBoolean, "false"},
		{KindUint, "12abc"},
		{KindString, "Hello world"},
		{KindLocaleString, "Bonjour"},
		{KindStringList, "a;b;b;c;"},
		{KindStringList, "[x,y]"},
		{KindStringList, "[a,b];"},
		{KindStringList, "[x];"},
		{KindStringList, `semi\;colon;back\\slash`},
		{KindUintList, "1;x;3;3"},
		{KindUintList, ""},
	}

	for _, tt := range tests {
		first := Parse(tt.kind, tt.text)
		second := Parse(tt.kind, first.String())

		if !first.Equal(second) {
			t.Errorf(
				"Parse(%s, %q) = %q does not survive a round trip, got %q",
				tt.kind,
				tt.text,
				first.String(),
				second.String(),
			)
		}
	}
}

func TestStringCanonical(t *testing.T) {
	tests := []struct {
		kind Kind
		text string
		want string
	}{
		{KindBoolean, "YES", "true"},
		{KindUint, "0012", "12"},
		{KindStringList, "a;b;b;c;", "a;b;c"},
		{KindStringList, "[a,b,c]", "a;b;c"},
		{KindStringList, "[a,b];", "[a,b];"},
		{KindUintList, "1;2;2;3;", "1;2;2;3"},
	}

	for _, tt := range tests {
		if got := Parse(tt.kind, tt.text).String(); got != tt.want {
			t.Errorf("Parse(%s, %q).String() = %q, want %q", tt.kind, tt.text, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Parse(KindString, "a").Equal(Parse(KindString, "a")) {
		t.Error("equal strings are not equal")
	}

	if Parse(KindString, "a").Equal(Parse(KindString, "b")) {
		t.Error("different strings are equal")
	}

	if Parse(KindString, "").Equal(New(KindString)) {
		t.Error("a set value equals an unset value")
	}

	if !New(KindUint).Equal(New(KindUint)) {
		t.Error("two unset values are not equal")
	}

	if Parse(KindStringList, "a;b").Equal(Parse(KindStringList, "b;a")) {
		t.Error("list equality ignores order")
	}

	if Parse(KindUintList, "1;2").Equal(Parse(KindUintList, "1;2;3")) {
		t.Error("lists of different length are equal")
	}
}

func TestEqualLocaleString(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"

	if !Parse(KindLocaleString, composed).Equal(Parse(KindLocaleString, decomposed)) {
		t.Error("canonically equivalent locale strings are not equal")
	}

	if Parse(KindString, composed).Equal(Parse(KindString, decomposed)) {
		t.Error("plain strings are compared by collation")
	}

	if Parse(KindLocaleString, "cafe").Equal(Parse(KindLocaleString, composed)) {
		t.Error("locale strings differing by an accent are equal")
	}
}

func TestEqualKindMismatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrKindMismatch) {
			t.Errorf("Equal() recovered %v, want a kind mismatch", r)
		}
	}()

	Parse(KindString, "1").Equal(Parse(KindUint, "1"))
}

func TestCopy(t *testing.T) {
	for kind := range kindNames {
		original := Parse(kind, "a;b;1")
		if !original.Copy().Equal(original) {
			t.Errorf("copy of %s value is not equal to the original", kind)
		}

		unset := New(kind)
		if unset.Copy().IsSet() {
			t.Errorf("copy of unset %s value is set", kind)
		}
	}
}

func TestCopyIsDeep(t *testing.T) {
	original := Parse(KindStringList, "a;b")
	copied := original.Copy()

	if err := original.SetAny([]string{"c"}); err != nil {
		t.Fatal(err)
	}

	list, _ := copied.StringList()
	if diff := cmp.Diff([]string{"a", "b"}, list); diff != "" {
		t.Errorf("copy changed with the original (-want +got):\n%s", diff)
	}
}

func TestPointerCopiesReference(t *testing.T) {
	type referent struct{ name string }
	ref := &referent{name: "first"}

	original := New(KindPointer)
	if err := original.SetAny(ref); err != nil {
		t.Fatal(err)
	}

	copied := original.Copy()
	p, err := copied.Pointer()
	if err != nil {
		t.Fatal(err)
	}

	if p.Ref() != any(ref) {
		t.Error("copied pointer does not refer to the original referent")
	}

	other := New(KindPointer)
	if err := other.SetAny(&referent{name: "first"}); err != nil {
		t.Fatal(err)
	}

	if original.Equal(other) {
		t.Error("pointers to distinct referents are equal")
	}
}

func TestSetFrom(t *testing.T) {
	target := Parse(KindString, "old")

	if err := target.SetFrom(Parse(KindString, "new")); err != nil {
		t.Fatal(err)
	}

	if target.String() != "new" {
		t.Errorf("SetFrom() = %q, want new", target.String())
	}

	if err := target.SetFrom(New(KindString)); err != nil {
		t.Fatal(err)
	}

	if target.IsSet() {
		t.Error("SetFrom(unset) left the target set")
	}

	var kindErr *KindError
	if err := target.SetFrom(Parse(KindUint, "1")); !errors.As(err, &kindErr) {
		t.Errorf("SetFrom() error = %v, want *KindError", err)
	}
}

func TestAccessorKindMismatch(t *testing.T) {
	v := Parse(KindString, "3")

	if _, err := v.Uint(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Uint() error = %v, want %v", err, ErrKindMismatch)
	}

	if _, err := v.Boolean(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Boolean() error = %v, want %v", err, ErrKindMismatch)
	}

	if _, err := v.StringList(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("StringList() error = %v, want %v", err, ErrKindMismatch)
	}

	if text, err := Parse(KindLocaleString, "x").Text(); err != nil || text != "x" {
		t.Errorf("Text() on a locale string = (%q, %v), want (x, nil)", text, err)
	}
}

func TestSetAny(t *testing.T) {
	v := New(KindUint)

	if err := v.SetAny(7); err != nil {
		t.Fatal(err)
	}

	if v.Any() != any(uint(7)) {
		t.Errorf("Any() = %v, want 7", v.Any())
	}

	var typeErr *TypeError
	if err := v.SetAny(-1); !errors.As(err, &typeErr) {
		t.Errorf("SetAny(-1) error = %v, want *TypeError", err)
	}

	if err := v.SetAny("7"); !errors.As(err, &typeErr) {
		t.Errorf("SetAny(\"7\") error = %v, want *TypeError", err)
	}

	list := New(KindStringList)
	if err := list.SetAny([]string{"a", "a", "b"}); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, list.Any()); diff != "" {
		t.Errorf("SetAny() did not drop duplicates (-want +got):\n%s", diff)
	}
}

func TestVoid(t *testing.T) {
	b := Parse(KindBoolean, "true")
	if b.Void() != any(uintptr(1)) {
		t.Errorf("Void() = %v, want uintptr(1)", b.Void())
	}

	u := New(KindUint)
	if err := u.SetVoid(uintptr(12)); err != nil {
		t.Fatal(err)
	}

	if got, _ := u.Uint(); got != 12 {
		t.Errorf("SetVoid(uintptr(12)) = %d", got)
	}

	flag := New(KindBoolean)
	if err := flag.SetVoid(b.Void()); err != nil {
		t.Fatal(err)
	}

	if !flag.Equal(b) {
		t.Error("SetVoid(Void()) did not restore the boolean")
	}

	list := Parse(KindStringList, "a;b")
	raw := list.Void().([]string)
	raw[0] = "changed"

	if got, _ := list.StringList(); got[0] != "a" {
		t.Error("Void() of a list is not a copy")
	}
}

func TestIsZero(t *testing.T) {
	for kind := range kindNames {
		if !New(kind).IsZero() {
			t.Errorf("unset %s value is not zero", kind)
		}
	}

	if Parse(KindBoolean, "true").IsZero() {
		t.Error("true is zero")
	}
}

func TestParseKind(t *testing.T) {
	for kind, name := range kindNames {
		got, err := ParseKind(name)
		if err != nil || got != kind {
			t.Errorf("ParseKind(%s) = (%v, %v), want %v", name, got, err, kind)
		}
	}

	if _, err := ParseKind("float"); err == nil {
		t.Error("ParseKind(float) did not return an error")
	}
}

func TestSetLocale(t *testing.T) {
	t.Cleanup(func() {
		_ = SetLocale("")
	})

	for _, locale := range []string{"fr_FR.UTF-8", "sr_RS@latin", "C", "POSIX", ""} {
		if err := SetLocale(locale); err != nil {
			t.Errorf("SetLocale(%s) returned error: %v", locale, err)
		}
	}

	if err := SetLocale("not a locale"); err == nil {
		t.Error("SetLocale(not a locale) did not return an error")
	}
}
