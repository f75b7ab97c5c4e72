package boxed

import (
	"errors"
	"fmt"
)

// Kind is the type of the data held by a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindBoolean
	KindPointer
	KindString
	KindStringList
	KindLocaleString
	KindUint
	KindUintList
)

var kindNames = map[Kind]string{
	KindBoolean:      "boolean",
	KindPointer:      "pointer",
	KindString:       "string",
	KindStringList:   "string-list",
	KindLocaleString: "locale-string",
	KindUint:         "uint",
	KindUintList:     "uint-list",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind returns the kind whose String() is name.
func ParseKind(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}

	return KindInvalid, fmt.Errorf("ParseKind: unknown kind %q", name)
}

// ErrKindMismatch is wrapped by every KindError.
var ErrKindMismatch = errors.New("kind mismatch")

// KindError is returned, or panicked with, when an operation is applied to a Value of another
// kind than the operation requires.
type KindError struct {
	Op   string
	Want Kind
	Got  Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("boxed: %s: %v, want %s, got %s", e.Op, ErrKindMismatch, e.Want, e.Got)
}

func (e *KindError) Unwrap() error {
	return ErrKindMismatch
}

// TypeError is returned when a Go value cannot be stored in a Value of the given kind.
type TypeError struct {
	Op    string
	Kind  Kind
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("boxed: %s: cannot store %T in a %s value", e.Op, e.Value, e.Kind)
}
