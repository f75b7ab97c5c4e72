// Package boxed implements Value, a tagged union holding exactly one typed datum of item data:
// a boolean, a non-owning pointer, a string, a list of strings, a localized string, an unsigned
// integer or a list of unsigned integers.
//
// The kind of a Value is fixed when it is created. Operations between two values require both to
// be of the same kind, mixing kinds is a programming error.
package boxed

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/raveit65/caja-actions/desktop"
)

// Value holds one datum of a fixed Kind, and whether it has been assigned at all.
// The zero Value is invalid, use New or Parse.
type Value struct {
	kind  Kind
	set   bool
	b     bool
	u     uint
	s     string
	list  []string
	ulist []uint
	ptr   Pointer
}

// New returns an unset value of the given kind.
// It panics if kind is not one of the known kinds.
func New(kind Kind) *Value {
	if !kind.Valid() {
		panic(fmt.Sprintf("boxed.New: invalid kind %v", kind))
	}

	return &Value{kind: kind}
}

// Parse returns a set value of the given kind parsed from text.
// See SetFromString for the parsing rules.
func Parse(kind Kind, text string) *Value {
	v := New(kind)
	v.SetFromString(text)
	return v
}

// Kind returns the kind of the value.
func (v *Value) Kind() Kind {
	return v.kind
}

// IsSet reports whether a value has been assigned since creation or the last Clear.
func (v *Value) IsSet() bool {
	return v.set
}

// Clear releases the payload and marks the value unset.
func (v *Value) Clear() {
	*v = Value{kind: v.kind}
}

func (v *Value) requireKind(op string, other Kind) error {
	if v.kind != other {
		return &KindError{Op: op, Want: v.kind, Got: other}
	}

	return nil
}

// Equal reports whether v and other hold the same datum.
// A set value never equals an unset one. Locale strings are compared using the collation selected
// with SetLocale, lists element by element in order.
// Equal panics with a *KindError if the kinds differ.
func (v *Value) Equal(other *Value) bool {
	if err := v.requireKind("Equal", other.kind); err != nil {
		panic(err)
	}

	if v.set != other.set {
		return false
	}

	switch v.kind {
	case KindBoolean:
		return v.b == other.b
	case KindPointer:
		return v.ptr.Same(other.ptr)
	case KindString:
		return v.s == other.s
	case KindLocaleString:
		return collateEqual(v.s, other.s)
	case KindStringList:
		return slices.Equal(v.list, other.list)
	case KindUint:
		return v.u == other.u
	case KindUintList:
		return slices.Equal(v.ulist, other.ulist)
	}

	return false
}

// Copy returns a new value of the same kind. Strings and lists are duplicated, a pointer is copied
// by reference only. An unset value copies to an unset value.
func (v *Value) Copy() *Value {
	c := &Value{kind: v.kind}
	if v.set {
		c.assign(v)
	}

	return c
}

func (v *Value) assign(src *Value) {
	v.Clear()
	v.b = src.b
	v.u = src.u
	v.s = src.s
	v.list = slices.Clone(src.list)
	v.ulist = slices.Clone(src.ulist)
	v.ptr = src.ptr
	v.set = true
}

// SetFrom makes v a copy of src, including whether src is set.
// It returns a *KindError if the kinds differ.
func (v *Value) SetFrom(src *Value) error {
	if err := v.requireKind("SetFrom", src.kind); err != nil {
		return err
	}

	if !src.set {
		v.Clear()
		return nil
	}

	v.assign(src)
	return nil
}

// SetFromString parses text according to the kind of v:
//   - boolean: true, t, 1, yes and on, in any case, are true, everything else is false.
//   - uint: leading digits as atoi does, 0 when there are none.
//   - string and locale-string: the text itself.
//   - string-list: split on unescaped semicolons, a trailing semicolon being optional, or the
//     bracketed [a,b,c] form. Empty elements and duplicates are dropped, order is kept.
//   - uint-list: split as string-list, each element parsed as uint. Duplicates are kept.
//   - pointer: text cannot denote a reference, the value holds a nil pointer.
//
// The value is set afterwards.
func (v *Value) SetFromString(text string) {
	v.Clear()

	switch v.kind {
	case KindBoolean:
		v.b = parseBoolean(text)
	case KindUint:
		v.u = parseUint(text)
	case KindString, KindLocaleString:
		v.s = text
	case KindStringList:
		v.list = parseStringList(text)
	case KindUintList:
		v.ulist = parseUintList(text)
	case KindPointer:
	}

	v.set = true
}

// String returns the canonical text of the value, which SetFromString parses back to an equal
// value, except for pointers which are formatted for diagnostics only.
func (v *Value) String() string {
	switch v.kind {
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindUint:
		return strconv.FormatUint(uint64(v.u), 10)
	case KindString, KindLocaleString:
		return v.s
	case KindStringList:
		joined := desktop.JoinList(v.list)
		if isBracketed(strings.TrimSpace(joined)) {
			// A trailing separator keeps the legacy bracket form from applying on parse.
			joined += ";"
		}
		return joined
	case KindUintList:
		elements := make([]string, len(v.ulist))
		for i, u := range v.ulist {
			elements[i] = strconv.FormatUint(uint64(u), 10)
		}
		return strings.Join(elements, ";")
	case KindPointer:
		return v.ptr.String()
	}

	return ""
}

// SetAny assigns a Go value of the type matching the kind: bool, any unsigned or non-negative
// signed integer, string, []string, []uint, and for pointers either a Pointer or any referent.
// Duplicates of a []string are dropped. The value is set afterwards.
func (v *Value) SetAny(x any) error {
	switch v.kind {
	case KindBoolean:
		b, ok := x.(bool)
		if !ok {
			return &TypeError{Op: "SetAny", Kind: v.kind, Value: x}
		}
		v.Clear()
		v.b = b
	case KindUint:
		u, ok := toUint(x)
		if !ok {
			return &TypeError{Op: "SetAny", Kind: v.kind, Value: x}
		}
		v.Clear()
		v.u = u
	case KindString, KindLocaleString:
		s, ok := x.(string)
		if !ok {
			return &TypeError{Op: "SetAny", Kind: v.kind, Value: x}
		}
		v.Clear()
		v.s = s
	case KindStringList:
		list, ok := x.([]string)
		if !ok {
			return &TypeError{Op: "SetAny", Kind: v.kind, Value: x}
		}
		v.Clear()
		v.list = removeDuplicates(slices.Clone(list))
	case KindUintList:
		list, ok := x.([]uint)
		if !ok {
			return &TypeError{Op: "SetAny", Kind: v.kind, Value: x}
		}
		v.Clear()
		v.ulist = slices.Clone(list)
	case KindPointer:
		v.Clear()
		if p, ok := x.(Pointer); ok {
			v.ptr = p
		} else {
			v.ptr = NewPointer(x)
		}
	}

	v.set = true
	return nil
}

// Any returns the datum as a Go value: bool, uint, string, a copy of the []string or []uint, or
// the referent of a pointer.
func (v *Value) Any() any {
	switch v.kind {
	case KindBoolean:
		return v.b
	case KindUint:
		return v.u
	case KindString, KindLocaleString:
		return v.s
	case KindStringList:
		return slices.Clone(v.list)
	case KindUintList:
		return slices.Clone(v.ulist)
	case KindPointer:
		return v.ptr.Ref()
	}

	return nil
}

// SetVoid is the raw counterpart of SetAny: booleans and unsigned integers may also be given
// encoded in an uintptr, as returned by Void.
func (v *Value) SetVoid(x any) error {
	raw, ok := x.(uintptr)
	if !ok {
		return v.SetAny(x)
	}

	switch v.kind {
	case KindBoolean:
		v.Clear()
		v.b = raw != 0
		v.set = true
		return nil
	case KindUint:
		v.Clear()
		v.u = uint(raw)
		v.set = true
		return nil
	}

	return v.SetAny(x)
}

// Void returns the raw form of the datum. Booleans and unsigned integers are encoded in an
// uintptr. Strings and lists are fresh copies owned by the caller. A pointer is passed through
// as is and is not safe to copy, see Pointer.
func (v *Value) Void() any {
	switch v.kind {
	case KindBoolean:
		if v.b {
			return uintptr(1)
		}
		return uintptr(0)
	case KindUint:
		return uintptr(v.u)
	}

	return v.Any()
}

// Boolean returns the datum of a boolean value.
func (v *Value) Boolean() (bool, error) {
	if err := v.requireKind("Boolean", KindBoolean); err != nil {
		return false, err
	}

	return v.b, nil
}

// Uint returns the datum of a uint value.
func (v *Value) Uint() (uint, error) {
	if err := v.requireKind("Uint", KindUint); err != nil {
		return 0, err
	}

	return v.u, nil
}

// Text returns the datum of a string or locale-string value.
func (v *Value) Text() (string, error) {
	if v.kind == KindLocaleString {
		return v.s, nil
	}

	if err := v.requireKind("Text", KindString); err != nil {
		return "", err
	}

	return v.s, nil
}

// StringList returns a copy of the datum of a string-list value.
func (v *Value) StringList() ([]string, error) {
	if err := v.requireKind("StringList", KindStringList); err != nil {
		return nil, err
	}

	return slices.Clone(v.list), nil
}

// UintList returns a copy of the datum of a uint-list value.
func (v *Value) UintList() ([]uint, error) {
	if err := v.requireKind("UintList", KindUintList); err != nil {
		return nil, err
	}

	return slices.Clone(v.ulist), nil
}

// Pointer returns the reference held by a pointer value.
func (v *Value) Pointer() (Pointer, error) {
	if err := v.requireKind("Pointer", KindPointer); err != nil {
		return Pointer{}, err
	}

	return v.ptr, nil
}

// IsZero reports whether the datum is the zero value of its kind: false, 0, an empty string, an
// empty list or a nil pointer.
func (v *Value) IsZero() bool {
	switch v.kind {
	case KindBoolean:
		return !v.b
	case KindUint:
		return v.u == 0
	case KindString, KindLocaleString:
		return v.s == ""
	case KindStringList:
		return len(v.list) == 0
	case KindUintList:
		return len(v.ulist) == 0
	case KindPointer:
		return v.ptr.IsNil()
	}

	return true
}

func toUint(x any) (uint, bool) {
	switch n := x.(type) {
	case uint:
		return n, true
	case uint8:
		return uint(n), true
	case uint16:
		return uint(n), true
	case uint32:
		return uint(n), true
	case uint64:
		if n > math.MaxUint {
			return 0, false
		}
		return uint(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case int32:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	}

	return 0, false
}
