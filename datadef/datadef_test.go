package datadef

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/raveit65/caja-actions/boxed"
)

var testIdGroup = Group{
	Name: "test-id",
	Defs: []Def{
		{Name: "id", Kind: boxed.KindString, Flags: Readable | Copyable | Comparable | Mandatory},
		{
			Name:       "label",
			Kind:       boxed.KindLocaleString,
			Default:    Text(""),
			Flags:      Persisted | Localizable,
			DesktopKey: "Name",
			ConfigKey:  "label",
		},
	},
}

var testItemGroup = Group{
	Name: "test-item",
	Defs: []Def{
		{
			Name:       "enabled",
			Kind:       boxed.KindBoolean,
			Default:    Text("true"),
			Flags:      Persisted,
			DesktopKey: "Enabled",
			ConfigKey:  "enabled",
		},
		{Name: "v1-only", Kind: boxed.KindString, Flags: Readable, ConfigKey: "legacy"},
	},
}

func TestRegisterAndLookup(t *testing.T) {
	class, err := Register("datadef-test-item", testIdGroup, testItemGroup)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, def := range class.Defs() {
		names = append(names, def.Name)
	}

	if diff := cmp.Diff([]string{"id", "label", "enabled", "v1-only"}, names); diff != "" {
		t.Errorf("Defs() mismatch (-want +got):\n%s", diff)
	}

	def := class.Lookup("enabled")
	if def == nil {
		t.Fatal("Lookup(enabled) = nil")
	}

	if def.Key(BackendDesktop) != "Enabled" || def.Key(BackendConfig) != "enabled" {
		t.Errorf("Key() = (%s, %s), want (Enabled, enabled)", def.Key(BackendDesktop), def.Key(BackendConfig))
	}

	if class.Lookup("missing") != nil {
		t.Error("Lookup(missing) is not nil")
	}

	found, ok := Lookup("datadef-test-item")
	if !ok || found != class {
		t.Error("registry Lookup does not return the registered class")
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	first := MustRegister("datadef-test-idempotent", testIdGroup)
	second := MustRegister("datadef-test-idempotent", testIdGroup, testItemGroup)

	if first != second {
		t.Error("registering twice returned distinct classes")
	}

	if second.Lookup("enabled") != nil {
		t.Error("second registration changed the class table")
	}

	count := 0
	for _, name := range Classes() {
		if name == "datadef-test-idempotent" {
			count++
		}
	}

	if count != 1 {
		t.Errorf("class listed %d times", count)
	}
}

func TestClassesOwnTheirDefs(t *testing.T) {
	a := MustRegister("datadef-test-a", testIdGroup)
	b := MustRegister("datadef-test-b", testIdGroup)

	if a.Lookup("label") == b.Lookup("label") {
		t.Error("classes sharing a group share Def pointers")
	}
}

func TestRegisterRejectsMalformedTables(t *testing.T) {
	_, err := Register("datadef-test-duplicate", testIdGroup, Group{
		Name: "again",
		Defs: []Def{{Name: "label", Kind: boxed.KindString}},
	})
	if !errors.Is(err, ErrDuplicateData) {
		t.Errorf("Register() error = %v, want %v", err, ErrDuplicateData)
	}

	_, err = Register("datadef-test-kind", Group{Name: "g", Defs: []Def{{Name: "x"}}})
	if !errors.Is(err, ErrInvalidKind) {
		t.Errorf("Register() error = %v, want %v", err, ErrInvalidKind)
	}

	if _, ok := Lookup("datadef-test-duplicate"); ok {
		t.Error("malformed class was registered")
	}
}

func TestDataBoxedDefaults(t *testing.T) {
	class := MustRegister("datadef-test-defaults", testIdGroup, testItemGroup)

	enabled := NewDataBoxed(class.Lookup("enabled"))
	if enabled.Value().IsSet() {
		t.Error("new data is set")
	}

	if !enabled.IsDefault() {
		t.Error("unset data is not default")
	}

	enabled.SetDefault()
	if got, _ := enabled.Value().Boolean(); !got || !enabled.Value().IsSet() {
		t.Error("SetDefault() did not apply true")
	}

	enabled.Value().SetFromString("false")
	if enabled.IsDefault() {
		t.Error("false is considered the default of enabled")
	}

	legacy := NewDataBoxed(class.Lookup("v1-only"))
	legacy.SetDefault()
	if legacy.Value().IsSet() {
		t.Error("SetDefault() set data without default")
	}

	legacy.Value().SetFromString("")
	if !legacy.IsDefault() {
		t.Error("empty data without default is not default")
	}

	legacy.Value().SetFromString("1.4.1")
	if legacy.IsDefault() {
		t.Error("non-empty data without default is default")
	}
}

func TestDataBoxedRebind(t *testing.T) {
	a := MustRegister("datadef-test-rebind-a", testIdGroup)
	b := MustRegister("datadef-test-rebind-b", testIdGroup, testItemGroup)

	data := NewDataBoxed(a.Lookup("label"))
	if err := data.Rebind(b.Lookup("label")); err != nil {
		t.Fatal(err)
	}

	if data.Def() != b.Lookup("label") {
		t.Error("Rebind() did not change the definition")
	}

	if err := data.Rebind(b.Lookup("enabled")); err == nil {
		t.Error("Rebind() to another name did not fail")
	}
}

func TestDataBoxedIsValid(t *testing.T) {
	class := MustRegister("datadef-test-valid", testIdGroup)

	id := NewDataBoxed(class.Lookup("id"))
	if id.IsValid() {
		t.Error("unset mandatory id is valid")
	}

	id.Value().SetFromString("")
	if id.IsValid() {
		t.Error("empty mandatory id is valid")
	}

	id.Value().SetFromString("my-action")
	if !id.IsValid() {
		t.Error("non-empty mandatory id is invalid")
	}

	label := NewDataBoxed(class.Lookup("label"))
	if !label.IsValid() {
		t.Error("optional data is invalid")
	}
}
