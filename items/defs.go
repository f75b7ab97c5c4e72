package items

import (
	"sync"

	"github.com/raveit65/caja-actions/boxed"
	"github.com/raveit65/caja-actions/datadef"
	"github.com/raveit65/caja-actions/factory"
)

// Class names, also used as the type of stored items.
const (
	ActionType  = "Action"
	ProfileType = "Profile"
	MenuType    = "Menu"
)

// Field names.
const (
	FieldID               = "id"
	FieldLabel            = "label"
	FieldParent           = "parent"
	FieldTooltip          = "tooltip"
	FieldIcon             = "icon"
	FieldDescription      = "description"
	FieldShortcut         = "shortcut"
	FieldEnabled          = "enabled"
	FieldReadonly         = "readonly"
	FieldProvider         = factory.ProviderField
	FieldProviderData     = factory.ProviderDataField
	FieldItems            = "items"
	FieldVersion          = "version"
	FieldIVersion         = "iversion"
	FieldTargetSelection  = "target-selection"
	FieldTargetLocation   = "target-location"
	FieldTargetToolbar    = "target-toolbar"
	FieldToolbarLabel     = "toolbar-label"
	FieldToolbarSameLabel = "toolbar-same-label"
	FieldLastAllocated    = "last-allocated"
	FieldPath             = "path"
	FieldParameters       = "parameters"
	FieldBasenames        = "basenames"
	FieldMatchcase        = "matchcase"
	FieldMimetypes        = "mimetypes"
	FieldIsFile           = "isfile"
	FieldIsDir            = "isdir"
	FieldMultiple         = "multiple"
	FieldSchemes          = "schemes"
	FieldFolders          = "folders"
	FieldSelectionCount   = "selection-count"
	FieldOnlyShowIn       = "only-show-in"
	FieldNotShowIn        = "not-show-in"
	FieldTryExec          = "try-exec"
	FieldShowIfRegistered = "show-if-registered"
	FieldShowIfTrue       = "show-if-true"
	FieldShowIfRunning    = "show-if-running"
	FieldCapabilities     = "capabilities"
	FieldExecutionMode    = "execution-mode"
	FieldStartupNotify    = "startup-notify"
	FieldStartupWMClass   = "startup-wmclass"
	FieldWorkingDir       = "working-dir"
)

// CurrentIVersion is the internal version of the data layout written by this package.
const CurrentIVersion = 3

var idGroup = datadef.Group{
	Name: "id",
	Defs: []datadef.Def{
		{
			Name:       FieldID,
			Kind:       boxed.KindString,
			Flags:      datadef.HasProperty | datadef.Mandatory | datadef.Copyable | datadef.Comparable,
			ShortLabel: "Id",
			LongLabel:  "Unique identifier of the item",
		},
		{
			Name:       FieldLabel,
			Kind:       boxed.KindLocaleString,
			Default:    datadef.Text(""),
			Flags:      datadef.Persisted | datadef.Localizable,
			ShortLabel: "Label",
			LongLabel:  "Label displayed in the file manager menus",
			DesktopKey: "Name",
			ConfigKey:  "label",
		},
		{
			Name:      FieldParent,
			Kind:      boxed.KindPointer,
			LongLabel: "Item the object belongs to",
		},
	},
}

var itemGroup = datadef.Group{
	Name: "item",
	Defs: []datadef.Def{
		{
			Name:       FieldTooltip,
			Kind:       boxed.KindLocaleString,
			Default:    datadef.Text(""),
			Flags:      datadef.Persisted | datadef.Localizable,
			ShortLabel: "Tooltip",
			LongLabel:  "Tooltip of the item in the status bar",
			DesktopKey: "Tooltip",
			ConfigKey:  "tooltip",
		},
		{
			Name:       FieldIcon,
			Kind:       boxed.KindLocaleString,
			Default:    datadef.Text(""),
			Flags:      datadef.Persisted | datadef.Localizable,
			ShortLabel: "Icon",
			LongLabel:  "Icon name or path",
			DesktopKey: "Icon",
			ConfigKey:  "icon",
		},
		{
			Name:       FieldDescription,
			Kind:       boxed.KindLocaleString,
			Default:    datadef.Text(""),
			Flags:      datadef.Persisted | datadef.Localizable,
			ShortLabel: "Description",
			DesktopKey: "Description",
			ConfigKey:  "description",
		},
		{
			Name:       FieldShortcut,
			Kind:       boxed.KindString,
			Default:    datadef.Text(""),
			Flags:      datadef.Persisted,
			ShortLabel: "Shortcut",
			LongLabel:  "Suggested keyboard shortcut",
			DesktopKey: "SuggestedShortcut",
			ConfigKey:  "shortcut",
		},
		{
			Name:       FieldEnabled,
			Kind:       boxed.KindBoolean,
			Default:    datadef.Text("true"),
			Flags:      datadef.Persisted,
			ShortLabel: "Enabled",
			LongLabel:  "Whether the item is candidate to be displayed",
			DesktopKey: "Enabled",
			ConfigKey:  "enabled",
		},
		{
			Name:      FieldReadonly,
			Kind:      boxed.KindBoolean,
			Default:   datadef.Text("false"),
			Flags:     datadef.HasProperty,
			LongLabel: "Whether the item is stored where it cannot be written",
		},
		{
			Name:      FieldProvider,
			Kind:      boxed.KindPointer,
			LongLabel: "Provider the item was read from",
		},
		{
			Name:      FieldProviderData,
			Kind:      boxed.KindPointer,
			LongLabel: "Provider specific data of the item",
		},
	},
}

var conditionsGroup = datadef.Group{
	Name: "conditions",
	Defs: []datadef.Def{
		{
			Name:       FieldBasenames,
			Kind:       boxed.KindStringList,
			Default:    datadef.Text("*"),
			Flags:      datadef.Persisted,
			ShortLabel: "Basenames",
			LongLabel:  "Filename patterns the selection must match",
			DesktopKey: "Basenames",
			ConfigKey:  "basenames",
		},
		{
			Name:       FieldMatchcase,
			Kind:       boxed.KindBoolean,
			Default:    datadef.Text("true"),
			Flags:      datadef.Persisted,
			ShortLabel: "Case sensitive",
			DesktopKey: "Matchcase",
			ConfigKey:  "matchcase",
		},
		{
			Name:       FieldMimetypes,
			Kind:       boxed.KindStringList,
			Default:    datadef.Text("*"),
			Flags:      datadef.Persisted,
			ShortLabel: "Mimetypes",
			DesktopKey: "MimeTypes",
			ConfigKey:  "mimetypes",
		},
		{
			Name:       FieldSchemes,
			Kind:       boxed.KindStringList,
			Default:    datadef.Text("file"),
			Flags:      datadef.Persisted,
			ShortLabel: "Schemes",
			DesktopKey: "Schemes",
			ConfigKey:  "schemes",
		},
		{
			Name:       FieldFolders,
			Kind:       boxed.KindStringList,
			Default:    datadef.Text("/"),
			Flags:      datadef.Persisted,
			ShortLabel: "Folders",
			DesktopKey: "Folders",
			ConfigKey:  "folders",
		},
		{
			Name:       FieldSelectionCount,
			Kind:       boxed.KindString,
			Default:    datadef.Text(">0"),
			Flags:      datadef.Persisted,
			ShortLabel: "Selection count",
			DesktopKey: "SelectionCount",
			ConfigKey:  "selection-count",
		},
		{
			Name:       FieldOnlyShowIn,
			Kind:       boxed.KindStringList,
			Flags:      datadef.Persisted,
			DesktopKey: "OnlyShowIn",
			ConfigKey:  "only-show-in",
		},
		{
			Name:       FieldNotShowIn,
			Kind:       boxed.KindStringList,
			Flags:      datadef.Persisted,
			DesktopKey: "NotShowIn",
			ConfigKey:  "not-show-in",
		},
		{
			Name:       FieldTryExec,
			Kind:       boxed.KindString,
			Flags:      datadef.Persisted,
			DesktopKey: "TryExec",
			ConfigKey:  "try-exec",
		},
		{
			Name:       FieldShowIfRegistered,
			Kind:       boxed.KindString,
			Flags:      datadef.Persisted,
			DesktopKey: "ShowIfRegistered",
			ConfigKey:  "show-if-registered",
		},
		{
			Name:       FieldShowIfTrue,
			Kind:       boxed.KindString,
			Flags:      datadef.Persisted,
			DesktopKey: "ShowIfTrue",
			ConfigKey:  "show-if-true",
		},
		{
			Name:       FieldShowIfRunning,
			Kind:       boxed.KindString,
			Flags:      datadef.Persisted,
			DesktopKey: "ShowIfRunning",
			ConfigKey:  "show-if-running",
		},
		{
			Name:       FieldCapabilities,
			Kind:       boxed.KindStringList,
			Flags:      datadef.Persisted,
			DesktopKey: "Capabilities",
			ConfigKey:  "capabilities",
		},
	},
}

var actionGroup = datadef.Group{
	Name: "action",
	Defs: []datadef.Def{
		{
			Name:       FieldItems,
			Kind:       boxed.KindStringList,
			Flags:      datadef.Readable | datadef.Writable | datadef.Copyable,
			LongLabel:  "Ordered list of the profile ids",
			DesktopKey: "Profiles",
			ConfigKey:  "items",
		},
		{
			Name:       FieldIVersion,
			Kind:       boxed.KindUint,
			Default:    datadef.Text("3"),
			Flags:      datadef.Persisted | datadef.WriteIfDefault,
			LongLabel:  "Internal version of the data layout",
			ConfigKey:  "iversion",
		},
		{
			Name:       FieldTargetSelection,
			Kind:       boxed.KindBoolean,
			Default:    datadef.Text("true"),
			Flags:      datadef.Persisted,
			ShortLabel: "Targets the selection",
			DesktopKey: "TargetContext",
			ConfigKey:  "target-selection",
		},
		{
			Name:       FieldTargetLocation,
			Kind:       boxed.KindBoolean,
			Default:    datadef.Text("false"),
			Flags:      datadef.Persisted,
			ShortLabel: "Targets the location",
			DesktopKey: "TargetLocation",
			ConfigKey:  "target-location",
		},
		{
			Name:       FieldTargetToolbar,
			Kind:       boxed.KindBoolean,
			Default:    datadef.Text("false"),
			Flags:      datadef.Persisted,
			ShortLabel: "Targets the toolbar",
			DesktopKey: "TargetToolbar",
			ConfigKey:  "target-toolbar",
		},
		{
			Name:       FieldToolbarLabel,
			Kind:       boxed.KindLocaleString,
			Default:    datadef.Text(""),
			Flags:      datadef.Persisted | datadef.Localizable,
			ShortLabel: "Toolbar label",
			DesktopKey: "ToolbarLabel",
			ConfigKey:  "toolbar-label",
		},
		{
			Name:      FieldToolbarSameLabel,
			Kind:      boxed.KindBoolean,
			Default:   datadef.Text("true"),
			Flags:     datadef.HasProperty | datadef.Copyable | datadef.Comparable,
			LongLabel: "Whether the toolbar label is the main label",
		},
		{
			Name:      FieldLastAllocated,
			Kind:      boxed.KindUint,
			Default:   datadef.Text("0"),
			Flags:     datadef.HasProperty | datadef.Copyable,
			LongLabel: "Last number allocated to a new profile id",
		},
	},
}

// actionV1Group only serves to detect data stored before profiles existed. It is read, never
// written.
var actionV1Group = datadef.Group{
	Name: "action-v1",
	Defs: []datadef.Def{
		{Name: FieldVersion, Kind: boxed.KindString, Flags: datadef.Readable, ConfigKey: "version"},
		{Name: FieldPath, Kind: boxed.KindString, Flags: datadef.Readable, ConfigKey: "path"},
		{Name: FieldParameters, Kind: boxed.KindString, Flags: datadef.Readable, ConfigKey: "parameters"},
		{Name: FieldIsFile, Kind: boxed.KindBoolean, Flags: datadef.Readable, ConfigKey: "isfile"},
		{Name: FieldIsDir, Kind: boxed.KindBoolean, Flags: datadef.Readable, ConfigKey: "isdir"},
		{Name: FieldMultiple, Kind: boxed.KindBoolean, Flags: datadef.Readable, ConfigKey: "accept-multiple-files"},
	},
}

var profileGroup = datadef.Group{
	Name: "profile",
	Defs: []datadef.Def{
		{
			Name:       FieldPath,
			Kind:       boxed.KindString,
			Default:    datadef.Text(""),
			Flags:      datadef.Persisted,
			ShortLabel: "Command",
			LongLabel:  "Path of the command to execute",
			ConfigKey:  "path",
		},
		{
			Name:       FieldParameters,
			Kind:       boxed.KindString,
			Default:    datadef.Text(""),
			Flags:      datadef.Persisted,
			ShortLabel: "Parameters",
			LongLabel:  "Parameters of the command, with their placeholders",
			ConfigKey:  "parameters",
		},
		{
			Name:       FieldWorkingDir,
			Kind:       boxed.KindString,
			Default:    datadef.Text("%d"),
			Flags:      datadef.Persisted,
			ShortLabel: "Working directory",
			DesktopKey: "Path",
			ConfigKey:  "working-dir",
		},
		{
			Name:       FieldExecutionMode,
			Kind:       boxed.KindString,
			Default:    datadef.Text("Normal"),
			Flags:      datadef.Persisted,
			ShortLabel: "Execution mode",
			DesktopKey: "ExecutionMode",
			ConfigKey:  "execution-mode",
		},
		{
			Name:       FieldStartupNotify,
			Kind:       boxed.KindBoolean,
			Default:    datadef.Text("false"),
			Flags:      datadef.Persisted,
			ShortLabel: "Startup notification",
			DesktopKey: "StartupNotify",
			ConfigKey:  "startup-notify",
		},
		{
			Name:       FieldStartupWMClass,
			Kind:       boxed.KindString,
			Flags:      datadef.Persisted,
			DesktopKey: "StartupWMClass",
			ConfigKey:  "startup-wmclass",
		},
		{Name: FieldIsFile, Kind: boxed.KindBoolean, Flags: datadef.Readable, ConfigKey: "isfile"},
		{Name: FieldIsDir, Kind: boxed.KindBoolean, Flags: datadef.Readable, ConfigKey: "isdir"},
		{Name: FieldMultiple, Kind: boxed.KindBoolean, Flags: datadef.Readable, ConfigKey: "accept-multiple-files"},
	},
}

var menuGroup = datadef.Group{
	Name: "menu",
	Defs: []datadef.Def{
		{
			Name:       FieldItems,
			Kind:       boxed.KindStringList,
			Flags:      datadef.Readable | datadef.Writable | datadef.Copyable,
			LongLabel:  "Ordered list of the ids of the menu children",
			DesktopKey: "ItemsList",
			ConfigKey:  "items",
		},
	},
}

var (
	registerOnce sync.Once
	actionClass  *datadef.Class
	profileClass *datadef.Class
	menuClass    *datadef.Class
)

// Register registers the item classes. It is called by the constructors, calling it again does
// nothing.
func Register() {
	registerOnce.Do(func() {
		actionClass = datadef.MustRegister(ActionType, idGroup, itemGroup, conditionsGroup, actionGroup, actionV1Group)
		profileClass = datadef.MustRegister(ProfileType, idGroup, conditionsGroup, profileGroup)
		menuClass = datadef.MustRegister(MenuType, idGroup, itemGroup, conditionsGroup, menuGroup)
	})
}

// ActionClass returns the registered Action class.
func ActionClass() *datadef.Class {
	Register()
	return actionClass
}

// ProfileClass returns the registered Profile class.
func ProfileClass() *datadef.Class {
	Register()
	return profileClass
}

// MenuClass returns the registered Menu class.
func MenuClass() *datadef.Class {
	Register()
	return menuClass
}
