package items

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/raveit65/caja-actions/datadef"
	"github.com/raveit65/caja-actions/factory"
	"github.com/rs/zerolog/log"
)

// PreV2ProfileID is the id of the profile created for actions stored before profiles existed.
const PreV2ProfileID = "profile-pre-v2"

const profileIDPrefix = "profile-"

// Action is a command of the file manager menus. What it runs is held by its profiles.
type Action struct {
	object
	profiles []*Profile
}

// NewAction returns an action with its defaults and without any profile.
func NewAction(id string) *Action {
	a := &Action{object: newObject(ActionType)}
	a.SetID(id)
	factory.ApplyDefaults(a)
	return a
}

func (a *Action) Type() string {
	return ActionType
}

// Profiles returns the profiles in order.
func (a *Action) Profiles() []*Profile {
	return slices.Clone(a.profiles)
}

// Profile returns the profile with the given id, or nil.
func (a *Action) Profile(id string) *Profile {
	for _, p := range a.profiles {
		if p.ID() == id {
			return p
		}
	}

	return nil
}

// AddProfile appends p to the profiles of a. A profile without id gets a new one.
func (a *Action) AddProfile(p *Profile) {
	if p.ID() == "" {
		p.SetID(a.NewProfileID())
	}

	mustSet(p, FieldParent, a)
	a.profiles = append(a.profiles, p)
}

// RemoveProfile removes the profile with the given id and reports whether there was one.
func (a *Action) RemoveProfile(id string) bool {
	for i, p := range a.profiles {
		if p.ID() == id {
			a.profiles = slices.Delete(a.profiles, i, i+1)
			return true
		}
	}

	return false
}

// NewProfileID allocates an id which no profile of a uses.
func (a *Action) NewProfileID() string {
	last, _ := factory.Get(a, FieldLastAllocated)
	n, _ := last.(uint)

	for {
		n++
		id := profileIDPrefix + strconv.FormatUint(uint64(n), 10)
		if a.Profile(id) == nil {
			mustSet(a, FieldLastAllocated, n)
			return id
		}
	}
}

// IsTargetSelection reports whether the action is displayed in the selection context menu.
func (a *Action) IsTargetSelection() bool {
	return boolean(a, FieldTargetSelection)
}

// ToolbarLabel returns the label of the action in the toolbar.
func (a *Action) ToolbarLabel() string {
	if boolean(a, FieldToolbarSameLabel) {
		return a.Label()
	}

	return text(a, FieldToolbarLabel)
}

// ReadDone converts data stored before profiles existed and reconciles the toolbar label.
func (a *Action) ReadDone(_ factory.Reader, _ any, msgs *factory.Messages) {
	if a.isPreV2() {
		a.convertPreV2(msgs)
	}

	a.reconcileToolbarLabel()
}

func (a *Action) isPreV2() bool {
	if version := factory.Value(a, FieldVersion); version != nil && version.IsSet() {
		if s, _ := version.Text(); strings.HasPrefix(s, "1.") {
			return true
		}
	}

	for _, def := range actionV1Group.Defs {
		if def.Name != FieldVersion && a.Data().Get(def.Name) != nil {
			return true
		}
	}

	return false
}

// convertPreV2 moves the command and the conditions of the action into a new profile.
func (a *Action) convertPreV2(msgs *factory.Messages) {
	profile := &Profile{object: newObject(ProfileType)}
	profile.SetID(PreV2ProfileID)
	profile.SetLabel("Default profile")

	var moved []string
	for _, group := range [][]string{names(actionV1Group.Defs), names(conditionsGroup.Defs)} {
		for _, name := range group {
			if name == FieldVersion || a.Data().Get(name) == nil {
				continue
			}

			if err := factory.Move(profile, a, name); err != nil {
				msgs.Add("%s: %v", a.ID(), err)
				continue
			}
			moved = append(moved, name)
		}
	}

	a.Data().Detach(FieldVersion)
	profile.convertLegacy()
	factory.ApplyDefaults(profile)
	a.AddProfile(profile)
	mustSet(a, FieldIVersion, CurrentIVersion)

	log.Info().Str("action", a.ID()).Strs("fields", moved).Msg("converted pre-v2 action")
}

// reconcileToolbarLabel derives whether the toolbar shows the main label. An empty toolbar label
// means the main label.
func (a *Action) reconcileToolbarLabel() {
	toolbar := text(a, FieldToolbarLabel)
	mustSet(a, FieldToolbarSameLabel, toolbar == "" || toolbar == a.Label())
}

// WriteStart rebuilds the ordered list of profile ids.
func (a *Action) WriteStart(factory.Writer, any, *factory.Messages) factory.Code {
	ids := make([]string, len(a.profiles))
	for i, p := range a.profiles {
		ids[i] = p.ID()
	}
	mustSet(a, FieldItems, ids)

	if !factory.IsSet(a, FieldIVersion) {
		mustSet(a, FieldIVersion, CurrentIVersion)
	}

	return factory.OK
}

// WriteDone writes each profile with the same writer.
func (a *Action) WriteDone(writer factory.Writer, handle any, msgs *factory.Messages) factory.Code {
	for _, p := range a.profiles {
		if code := factory.Write(p, writer, handle, msgs); code != factory.OK {
			return code
		}
	}

	return factory.OK
}

// CopyFrom replaces the profiles of a with copies of the profiles of source.
func (a *Action) CopyFrom(source factory.Object) error {
	src, ok := source.(*Action)
	if !ok {
		return fmt.Errorf("%w: cannot copy %s into an action", ErrUnknownType, source.Class().Name)
	}

	a.profiles = nil
	for _, sp := range src.profiles {
		p := &Profile{object: newObject(ProfileType)}
		if err := factory.Copy(p, sp); err != nil {
			return err
		}
		a.AddProfile(p)
	}

	return nil
}

// EqualTo compares the profiles, matched by id.
func (a *Action) EqualTo(other factory.Object) bool {
	o, ok := other.(*Action)
	if !ok || len(a.profiles) != len(o.profiles) {
		return false
	}

	for _, p := range a.profiles {
		op := o.Profile(p.ID())
		if op == nil || !factory.AreEqual(p, op) {
			return false
		}
	}

	return true
}

// Validate requires a label and at least one valid profile.
func (a *Action) Validate() bool {
	if a.Label() == "" || !conditionsValid(a) {
		return false
	}

	for _, p := range a.profiles {
		if factory.IsValid(p) {
			return true
		}
	}

	return false
}

func names(defs []datadef.Def) []string {
	result := make([]string, len(defs))
	for i, def := range defs {
		result[i] = def.Name
	}

	return result
}
