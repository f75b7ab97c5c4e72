package yamlstore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raveit65/caja-actions/factory"
	"github.com/raveit65/caja-actions/items"
	"gopkg.in/yaml.v3"
)

// Ext is the extension of item documents.
const Ext = ".yaml"

const (
	typeKey     = "type"
	profilesKey = "profiles"
)

// document is the stored form of one item and the handle given to the factory traversal.
type document struct {
	path     string
	root     *yaml.Node
	readonly bool

	// nodes maps the item and its profiles to their mapping in root.
	nodes map[factory.Object]*yaml.Node
}

func newDocument(path string, readonly bool) *document {
	return &document{
		path:     path,
		root:     newMapping(),
		readonly: readonly,
		nodes:    make(map[factory.Object]*yaml.Node),
	}
}

func readDocument(path string, readonly bool) (*document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("readDocument: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, fmt.Errorf("readDocument: failed to parse %s: %w", path, err)
	}

	doc := newDocument(path, readonly)

	switch {
	case node.Kind == 0:
	case node.Kind == yaml.DocumentNode && len(node.Content) == 1 && node.Content[0].Kind == yaml.MappingNode:
		doc.root = node.Content[0]
	default:
		return nil, fmt.Errorf("readDocument: %s: %w", path, ErrNotMapping)
	}

	return doc, nil
}

// itemType returns the stored type, actions being the default.
func (d *document) itemType() string {
	if node := lookup(d.root, typeKey); node != nil && node.Kind == yaml.ScalarNode {
		return node.Value
	}

	return items.ActionType
}

// profileIDs returns the ids of the stored profiles in document order.
func (d *document) profileIDs() []string {
	profiles := lookup(d.root, profilesKey)
	if profiles == nil || profiles.Kind != yaml.MappingNode {
		return nil
	}

	return keys(profiles)
}

// save writes the document to a temporary file renamed over path.
func (d *document) save() error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(d.root); err != nil {
		return fmt.Errorf("save: failed to encode %s: %w", d.path, err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("save: failed to encode %s: %w", d.path, err)
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("save: failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".*"+Ext)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	_, err = tmp.Write(buf.Bytes())
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err == nil {
		err = os.Rename(tmp.Name(), d.path)
	}

	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("save: failed to write %s: %w", d.path, err)
	}

	return nil
}
