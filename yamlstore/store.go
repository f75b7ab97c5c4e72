// Package yamlstore stores items as YAML documents, one <id>.yaml file per action or menu, in an
// ordered list of directories.
//
// The data of an item is stored at the top level of its document, keyed by the configuration key
// of its definition. Profiles of an action are nested under a profiles mapping, keyed by id:
//
//	type: Action
//	label: Compress
//	label[fr]: Compresser
//	items: [profile-1]
//	profiles:
//	  profile-1:
//	    path: file-roller
//	    parameters: --add %F
//
// Only the first directory is written to. Items found in later directories only are readonly, an
// item found in several directories is read from the first one.
package yamlstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/raveit65/caja-actions/factory"
	"github.com/raveit65/caja-actions/items"
	"github.com/rs/zerolog/log"
)

var ErrNoWritableDir = errors.New("no writable directory")

// Store is a set of item documents in directories.
type Store struct {
	dirs   []string
	locale string

	mu    sync.RWMutex
	items map[string]items.Item
}

// New returns a store over dirs, in order of precedence. Localized data is read and written for
// locale, such as fr_FR.UTF-8. An empty locale only uses unlocalized keys.
func New(dirs []string, locale string) *Store {
	return &Store{
		dirs:   dirs,
		locale: locale,
		items:  make(map[string]items.Item),
	}
}

// Dirs returns the directories of the store, the writable one first.
func (s *Store) Dirs() []string {
	return append([]string(nil), s.dirs...)
}

// Load reads all items of the store and links menus to their children. Items which cannot be
// read are logged and skipped.
func (s *Store) Load() ([]items.Item, error) {
	paths, order, err := s.scan()
	if err != nil {
		return nil, err
	}

	loaded := make(map[string]items.Item, len(order))
	result := make([]items.Item, 0, len(order))

	for _, id := range order {
		item, err := s.LoadFile(paths[id], id, s.isReadonly(paths[id]))
		if err != nil {
			log.Warn().Err(err).Str("path", paths[id]).Msg("Load")
		}
		if item == nil {
			continue
		}

		loaded[id] = item
		result = append(result, item)
	}

	for _, item := range result {
		if menu, ok := item.(*items.Menu); ok {
			menu.Link(func(id string) items.Item {
				return loaded[id]
			})
		}
	}

	s.mu.Lock()
	s.items = loaded
	s.mu.Unlock()

	return result, nil
}

// scan maps the ids of all documents to their path, the first directory winning.
func (s *Store) scan() (map[string]string, []string, error) {
	paths := make(map[string]string)
	var order []string

	for _, dir := range s.dirs {
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			if entry.IsDir() || filepath.Ext(path) != Ext || strings.HasPrefix(entry.Name(), ".") {
				return nil
			}

			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}

			id := strings.ReplaceAll(strings.TrimSuffix(rel, Ext), string(filepath.Separator), "-")
			if shadowing, ok := paths[id]; ok {
				log.Debug().Str("id", id).Str("path", path).Str("shadowed-by", shadowing).Msg("scan")
				return nil
			}

			paths[id] = path
			order = append(order, id)
			return nil
		})

		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, nil, fmt.Errorf("scan: failed to walk dir %s: %w", dir, err)
		}
	}

	sort.Strings(order)
	return paths, order, nil
}

func (s *Store) isReadonly(path string) bool {
	if len(s.dirs) == 0 {
		return true
	}

	rel, err := filepath.Rel(s.dirs[0], path)
	return err != nil || strings.HasPrefix(rel, "..")
}

// LoadFile reads the item with the given id from path.
// An item whose document is readable is returned even with an error, which then collects the
// problems met while reading its data.
func (s *Store) LoadFile(path string, id string, readonly bool) (items.Item, error) {
	doc, err := readDocument(path, readonly)
	if err != nil {
		return nil, err
	}

	item, err := items.Empty(doc.itemType(), id)
	if err != nil {
		return nil, fmt.Errorf("LoadFile %s: %w", path, err)
	}

	var msgs factory.Messages
	factory.Read(item, s, doc, &msgs)

	if readonly {
		item.SetReadonly(true)
	}

	if err := msgs.Err(); err != nil {
		return item, fmt.Errorf("LoadFile %s: %w", path, err)
	}

	return item, nil
}

// link records doc as the stored form of item.
func (s *Store) link(item items.Item, doc *document) {
	if err := factory.Set(item, items.FieldProvider, s); err != nil {
		log.Error().Err(err).Str("id", item.ID()).Msg("link")
		return
	}

	if err := factory.Set(item, items.FieldProviderData, doc); err != nil {
		log.Error().Err(err).Str("id", item.ID()).Msg("link")
	}
}

// documentOf returns the document item was read from or saved to by s, nil if there is none.
func (s *Store) documentOf(item items.Item) *document {
	provider, _ := factory.Get(item, items.FieldProvider)
	if provider != any(s) {
		return nil
	}

	data, _ := factory.Get(item, items.FieldProviderData)
	doc, _ := data.(*document)
	return doc
}

// Path returns the path of the document of item, empty if it has never been stored.
func (s *Store) Path(item items.Item) string {
	if doc := s.documentOf(item); doc != nil {
		return doc.path
	}

	return ""
}

// Save writes item to its document, a new document in the writable directory if it has none.
func (s *Store) Save(item items.Item) error {
	doc := s.documentOf(item)
	if doc == nil {
		if len(s.dirs) == 0 {
			return fmt.Errorf("Save %s: %w", item.ID(), ErrNoWritableDir)
		}
		doc = newDocument(filepath.Join(s.dirs[0], item.ID()+Ext), false)
	}

	var msgs factory.Messages
	if code := factory.Write(item, s, doc, &msgs); code != factory.OK {
		return fmt.Errorf("Save %s: %w", item.ID(), errors.Join(code.Err(), msgs.Err()))
	}

	s.link(item, doc)

	s.mu.Lock()
	s.items[item.ID()] = item
	s.mu.Unlock()

	return nil
}

// Delete removes the document of item.
func (s *Store) Delete(item items.Item) error {
	doc := s.documentOf(item)
	if doc == nil {
		if len(s.dirs) == 0 {
			return fmt.Errorf("Delete %s: %w", item.ID(), ErrNoWritableDir)
		}
		doc = newDocument(filepath.Join(s.dirs[0], item.ID()+Ext), false)
	}

	if doc.readonly {
		return fmt.Errorf("Delete %s: %w", item.ID(), factory.NotWritable.Err())
	}

	if err := os.Remove(doc.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("Delete %s: %w: %w", item.ID(), factory.DeleteError.Err(), err)
	}

	s.mu.Lock()
	delete(s.items, item.ID())
	s.mu.Unlock()

	return nil
}

// Item returns the loaded or saved item with the given id.
func (s *Store) Item(id string) (items.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	return item, ok
}

// Items returns the loaded or saved items, sorted by id.
func (s *Store) Items() []items.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]items.Item, 0, len(s.items))
	for _, item := range s.items {
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID() < result[j].ID()
	})

	return result
}
