package frontmatter

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Metadata is an ordered YAML mapping. Keys that this tool does not own are kept
// verbatim, in their original order, along with their comments and styles.
type Metadata struct {
	node *yaml.Node
}

// NewMetadata returns an empty mapping.
func NewMetadata() *Metadata {
	return &Metadata{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// FromMap builds metadata from a plain map. Keys are emitted in yaml.v3's sorted order.
func FromMap(values map[string]interface{}) (*Metadata, error) {
	var node yaml.Node
	if err := node.Encode(values); err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("encoding metadata: expected mapping, got %s", kindName(node.Kind))
	}
	return &Metadata{node: &node}, nil
}

// Len returns the number of keys.
func (m *Metadata) Len() int {
	return len(m.node.Content) / 2
}

// Keys returns the keys in document order.
func (m *Metadata) Keys() []string {
	keys := make([]string, 0, m.Len())
	for i := 0; i+1 < len(m.node.Content); i += 2 {
		keys = append(keys, m.node.Content[i].Value)
	}
	return keys
}

// Has reports whether key is present, whatever its value.
func (m *Metadata) Has(key string) bool {
	return m.index(key) != -1
}

// Get decodes the value stored under key.
func (m *Metadata) Get(key string) (interface{}, bool) {
	i := m.index(key)
	if i == -1 {
		return nil, false
	}
	var v interface{}
	if err := m.node.Content[i+1].Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// GetString returns the literal text of a scalar value, so that both
// `id: 7` and `id: "7"` yield "7". Null, missing and non-scalar values yield "".
func (m *Metadata) GetString(key string) string {
	i := m.index(key)
	if i == -1 {
		return ""
	}
	value := m.node.Content[i+1]
	if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
		return ""
	}
	return value.Value
}

// Set stores value under key, replacing an existing entry in place or
// appending a new one. A nil value removes the key instead of writing null.
func (m *Metadata) Set(key string, value interface{}) error {
	if value == nil {
		m.Delete(key)
		return nil
	}

	var valueNode yaml.Node
	if err := valueNode.Encode(value); err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	m.put(key, &valueNode)
	return nil
}

// SetScalar stores text as an untagged plain scalar: YAML resolves its type on
// the next read, so "7" is written as `7` and read back as a number.
func (m *Metadata) SetScalar(key, text string) {
	m.put(key, &yaml.Node{Kind: yaml.ScalarNode, Value: text})
}

// Delete removes key and reports whether it was present.
func (m *Metadata) Delete(key string) bool {
	i := m.index(key)
	if i == -1 {
		return false
	}
	m.node.Content = append(m.node.Content[:i], m.node.Content[i+2:]...)
	return true
}

// Map decodes the whole mapping into plain Go values.
func (m *Metadata) Map() (map[string]interface{}, error) {
	out := make(map[string]interface{}, m.Len())
	if m.Len() == 0 {
		return out, nil
	}
	if err := m.node.Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}
	return out, nil
}

func (m *Metadata) put(key string, value *yaml.Node) {
	if i := m.index(key); i != -1 {
		// Keep the existing key node so its comments survive
		m.node.Content[i+1] = value
		return
	}
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	m.node.Content = append(m.node.Content, keyNode, value)
}

func (m *Metadata) index(key string) int {
	for i := 0; i+1 < len(m.node.Content); i += 2 {
		if m.node.Content[i].Value == key {
			return i
		}
	}
	return -1
}
