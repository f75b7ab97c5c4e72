package yamlstore

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/raveit65/caja-actions/boxed"
	"github.com/raveit65/caja-actions/datadef"
	"github.com/raveit65/caja-actions/desktop"
	"gopkg.in/yaml.v3"
)

var (
	ErrNotMapping      = errors.New("document is not a mapping")
	ErrUnsupportedKind = errors.New("data kind cannot be stored")
	ErrUnexpectedNode  = errors.New("unexpected node")
)

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func newScalar(tag string, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// lookup returns the value of key in mapping, or nil.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil {
		return nil
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return resolve(mapping.Content[i+1])
		}
	}

	return nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	return node
}

// keys returns the keys of mapping in document order.
func keys(mapping *yaml.Node) []string {
	var result []string
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		result = append(result, mapping.Content[i].Value)
	}

	return result
}

// setValue replaces the value of key in mapping, appending the pair when key is not there.
func setValue(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}

	mapping.Content = append(mapping.Content, newScalar("!!str", key), value)
}

// removeKeys removes every pair whose key matches.
func removeKeys(mapping *yaml.Node, match func(key string) bool) {
	for i := 0; i+1 < len(mapping.Content); {
		if match(mapping.Content[i].Value) {
			mapping.Content = slices.Delete(mapping.Content, i, i+2)
			continue
		}
		i += 2
	}
}

// ensureMapping returns the mapping value of key, replacing anything else found there.
func ensureMapping(mapping *yaml.Node, key string) *yaml.Node {
	if node := lookup(mapping, key); node != nil && node.Kind == yaml.MappingNode {
		return node
	}

	node := newMapping()
	setValue(mapping, key, node)
	return node
}

// localizedKey returns the key of the variant of key matching locale, key itself when there is
// none.
func localizedKey(mapping *yaml.Node, key string, locale string) string {
	variants := desktop.LocaleString{Default: key}

	for _, k := range keys(mapping) {
		name, keyLocale, err := desktop.ParseKey(k)
		if err != nil || name != key || keyLocale == "" {
			continue
		}
		variants.Set(keyLocale, k)
	}

	return variants.ToLocale(locale)
}

// decode converts node into a value of def. It returns nil for a null node.
func decode(def *datadef.Def, node *yaml.Node) (*datadef.DataBoxed, error) {
	data := datadef.NewDataBoxed(def)

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		data.Value().SetFromString(node.Value)
		return data, nil

	case yaml.SequenceNode:
		elements := make([]string, 0, len(node.Content))
		for _, element := range node.Content {
			element = resolve(element)
			if element.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: nested element in %s", ErrUnexpectedNode, element.Line, def.Name)
			}
			elements = append(elements, element.Value)
		}

		switch def.Kind {
		case boxed.KindStringList:
			return data, data.Value().SetAny(elements)
		case boxed.KindUintList:
			numbers := make([]uint, len(elements))
			for i, element := range elements {
				numbers[i], _ = boxed.Parse(boxed.KindUint, element).Uint()
			}
			return data, data.Value().SetAny(numbers)
		}
	}

	return nil, fmt.Errorf("%w: line %d: %s data %s", ErrUnexpectedNode, node.Line, def.Kind, def.Name)
}

// encode converts value into a typed node.
func encode(value *boxed.Value) (*yaml.Node, error) {
	switch value.Kind() {
	case boxed.KindBoolean:
		return newScalar("!!bool", value.String()), nil
	case boxed.KindUint:
		return newScalar("!!int", value.String()), nil
	case boxed.KindString, boxed.KindLocaleString:
		text, _ := value.Text()
		return newScalar("!!str", text), nil
	case boxed.KindStringList:
		list, _ := value.StringList()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, element := range list {
			node.Content = append(node.Content, newScalar("!!str", element))
		}
		return node, nil
	case boxed.KindUintList:
		list, _ := value.UintList()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, element := range list {
			node.Content = append(node.Content, newScalar("!!int", strconv.FormatUint(uint64(element), 10)))
		}
		return node, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, value.Kind())
}
