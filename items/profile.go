package items

import (
	"fmt"

	"github.com/raveit65/caja-actions/factory"
)

// Profile holds a command of an action and the conditions under which it applies.
type Profile struct {
	object
}

// NewProfile returns a profile with its defaults. An empty id is allocated when the profile is
// added to an action.
func NewProfile(id string) *Profile {
	p := &Profile{object: newObject(ProfileType)}
	if id != "" {
		p.SetID(id)
	}
	factory.ApplyDefaults(p)
	return p
}

// EmptyProfile returns a profile with only its id, ready to be read from storage.
func EmptyProfile(id string) *Profile {
	p := &Profile{object: newObject(ProfileType)}
	p.SetID(id)
	return p
}

func (p *Profile) Type() string {
	return ProfileType
}

// Action returns the action holding p, nil if p has not been added to one.
func (p *Profile) Action() *Action {
	a, _ := parentOf(p).(*Action)
	return a
}

// Command returns the path and the parameters of the command.
func (p *Profile) Command() (path string, parameters string) {
	return text(p, FieldPath), text(p, FieldParameters)
}

// ReadDone converts the conditions stored by versions 2 and older.
func (p *Profile) ReadDone(factory.Reader, any, *factory.Messages) {
	p.convertLegacy()
}

// convertLegacy turns the isfile, isdir and accept-multiple-files booleans into mimetypes and a
// selection count, unless those are stored too.
func (p *Profile) convertLegacy() {
	isFile := p.Data().Detach(FieldIsFile)
	isDir := p.Data().Detach(FieldIsDir)

	if (isFile != nil || isDir != nil) && p.Data().Get(FieldMimetypes) == nil {
		file := isFile == nil || legacyBoolean(isFile.Value().Any())
		dir := isDir != nil && legacyBoolean(isDir.Value().Any())

		var mimetypes []string
		switch {
		case file && dir, !file && !dir:
			mimetypes = []string{"*"}
		case file:
			mimetypes = []string{"all/allfiles"}
		case dir:
			mimetypes = []string{"inode/directory"}
		}
		mustSet(p, FieldMimetypes, mimetypes)
	}

	multiple := p.Data().Detach(FieldMultiple)
	if multiple != nil && p.Data().Get(FieldSelectionCount) == nil {
		count := "=1"
		if legacyBoolean(multiple.Value().Any()) {
			count = ">0"
		}
		mustSet(p, FieldSelectionCount, count)
	}
}

func legacyBoolean(x any) bool {
	b, _ := x.(bool)
	return b
}

// CopyFrom only accepts profiles, the data copy is all there is to it.
func (p *Profile) CopyFrom(source factory.Object) error {
	if _, ok := source.(*Profile); !ok {
		return fmt.Errorf("%w: cannot copy %s into a profile", ErrUnknownType, source.Class().Name)
	}

	return nil
}

// Validate requires a command and conditions which can match.
func (p *Profile) Validate() bool {
	path, parameters := p.Command()
	if path == "" && parameters == "" {
		return false
	}

	return conditionsValid(p)
}
