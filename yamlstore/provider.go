package yamlstore

import (
	"github.com/raveit65/caja-actions/boxed"
	"github.com/raveit65/caja-actions/datadef"
	"github.com/raveit65/caja-actions/desktop"
	"github.com/raveit65/caja-actions/factory"
	"github.com/raveit65/caja-actions/items"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var (
	_ factory.Reader = (*Store)(nil)
	_ factory.Writer = (*Store)(nil)
)

// Backend keys the data by datadef.Def.ConfigKey.
func (s *Store) Backend() datadef.Backend {
	return datadef.BackendConfig
}

func (s *Store) document(obj factory.Object, handle any, msgs *factory.Messages) *document {
	doc, ok := handle.(*document)
	if !ok {
		msgs.Add("%s: handle %T does not belong to the yaml store", obj.Class().Name, handle)
		return nil
	}

	return doc
}

// ReadStart binds an item to the root of the document. Profiles are bound by ReadDone of their
// action.
func (s *Store) ReadStart(obj factory.Object, handle any, msgs *factory.Messages) {
	doc := s.document(obj, handle, msgs)
	if doc == nil {
		return
	}

	if _, ok := doc.nodes[obj]; !ok {
		doc.nodes[obj] = doc.root
	}
}

// ReadData returns the stored value of def. Localizable data is read from the variant matching
// the locale of the store.
func (s *Store) ReadData(obj factory.Object, handle any, def *datadef.Def, msgs *factory.Messages) *datadef.DataBoxed {
	if def.Kind == boxed.KindPointer {
		return nil
	}

	doc := s.document(obj, handle, msgs)
	if doc == nil {
		return nil
	}

	mapping := doc.nodes[obj]
	key := def.ConfigKey
	if def.Has(datadef.Localizable) {
		key = localizedKey(mapping, key, s.locale)
	}

	node := lookup(mapping, key)
	if node == nil {
		return nil
	}

	data, err := decode(def, node)
	if err != nil {
		msgs.Add("%s: %v", doc.path, err)
		return nil
	}

	return data
}

// ReadDone reads the profiles of an action and links the item to the store.
func (s *Store) ReadDone(obj factory.Object, handle any, msgs *factory.Messages) {
	doc := s.document(obj, handle, msgs)
	if doc == nil {
		return
	}

	switch o := obj.(type) {
	case *items.Action:
		s.readProfiles(o, doc, msgs)
	case *items.Profile:
		return
	}

	if item, ok := obj.(items.Item); ok {
		s.link(item, doc)
	}
}

// readProfiles reads the profiles in the stored order of the action, then those stored but not
// listed.
func (s *Store) readProfiles(action *items.Action, doc *document, msgs *factory.Messages) {
	profiles := lookup(doc.root, profilesKey)

	var ids []string
	if listed, err := factory.Get(action, items.FieldItems); err == nil {
		ids, _ = listed.([]string)
	}
	for _, id := range doc.profileIDs() {
		if !contains(ids, id) {
			ids = append(ids, id)
		}
	}

	for _, id := range ids {
		if action.Profile(id) != nil {
			continue
		}

		mapping := lookup(profiles, id)
		if mapping == nil || mapping.Kind != yaml.MappingNode {
			msgs.Add("%s: profile %s of %s is not stored", doc.path, id, action.ID())
			continue
		}

		profile := items.EmptyProfile(id)
		doc.nodes[profile] = mapping
		factory.Read(profile, s, doc, msgs)
		action.AddProfile(profile)
	}
}

func contains(list []string, s string) bool {
	for _, element := range list {
		if element == s {
			return true
		}
	}

	return false
}

// WriteStart binds the object to its mapping, creating it if needed.
func (s *Store) WriteStart(obj factory.Object, handle any, msgs *factory.Messages) factory.Code {
	doc := s.document(obj, handle, msgs)
	if doc == nil {
		return factory.ProgramError
	}

	if doc.readonly {
		msgs.Add("%s: not writable", doc.path)
		return factory.NotWritable
	}

	switch o := obj.(type) {
	case *items.Profile:
		doc.nodes[obj] = ensureMapping(ensureMapping(doc.root, profilesKey), o.ID())
	case items.Item:
		doc.nodes[obj] = doc.root
		setValue(doc.root, typeKey, newScalar("!!str", o.Type()))
	default:
		msgs.Add("%s: cannot store a %s", doc.path, obj.Class().Name)
		return factory.NotWillingToRun
	}

	dropReadOnlyKeys(doc.nodes[obj], obj.Class())
	return factory.OK
}

// dropReadOnlyKeys removes the keys of data which is read but never written, such as the data of
// pre-v2 actions, so that it is not found again on next read.
func dropReadOnlyKeys(mapping *yaml.Node, class *datadef.Class) {
	for _, def := range class.Defs() {
		if def.ConfigKey == "" || !def.Has(datadef.Readable) || def.Has(datadef.Writable) {
			continue
		}

		removeKeys(mapping, func(key string) bool {
			return key == def.ConfigKey
		})
	}
}

// WriteData stores one datum. Localizable data goes to the variant it would be read from.
func (s *Store) WriteData(obj factory.Object, handle any, data *datadef.DataBoxed, msgs *factory.Messages) factory.Code {
	doc := s.document(obj, handle, msgs)
	if doc == nil {
		return factory.ProgramError
	}

	node, err := encode(data.Value())
	if err != nil {
		msgs.Add("%s: %s: %v", doc.path, data.Name(), err)
		return factory.ProgramError
	}

	mapping := doc.nodes[obj]
	key := data.Def().ConfigKey
	if data.Def().Has(datadef.Localizable) {
		key = localizedKey(mapping, key, s.locale)
	}

	setValue(mapping, key, node)
	return factory.OK
}

// RemoveData removes the key of def and, for localizable data, the variants matching the locale
// of the store. Variants of other locales are kept.
func (s *Store) RemoveData(obj factory.Object, handle any, def *datadef.Def, msgs *factory.Messages) factory.Code {
	doc := s.document(obj, handle, msgs)
	if doc == nil {
		return factory.ProgramError
	}

	locales := map[string]bool{"": true}
	if l, ok := desktop.ParseLocale(s.locale); ok && def.Has(datadef.Localizable) {
		for _, candidate := range l.Candidates() {
			locales[candidate] = true
		}
	}

	removeKeys(doc.nodes[obj], func(key string) bool {
		name, locale, err := desktop.ParseKey(key)
		return err == nil && name == def.ConfigKey && locales[locale]
	})

	return factory.OK
}

// WriteDone drops the profiles an action no longer has and saves the document of an item.
func (s *Store) WriteDone(obj factory.Object, handle any, msgs *factory.Messages) factory.Code {
	doc := s.document(obj, handle, msgs)
	if doc == nil {
		return factory.ProgramError
	}

	switch o := obj.(type) {
	case *items.Profile:
		return factory.OK
	case *items.Action:
		pruneProfiles(o, doc)
	}

	if err := doc.save(); err != nil {
		msgs.Add("%v", err)
		return factory.WriteError
	}

	log.Debug().Str("path", doc.path).Str("class", obj.Class().Name).Msg("saved")
	return factory.OK
}

func pruneProfiles(action *items.Action, doc *document) {
	profiles := lookup(doc.root, profilesKey)
	if profiles == nil {
		return
	}

	removeKeys(profiles, func(id string) bool {
		return action.Profile(id) == nil
	})

	if len(profiles.Content) == 0 {
		removeKeys(doc.root, func(key string) bool {
			return key == profilesKey
		})
	}
}
