package treechart

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON parses a JSON document into chart state. Objects become Maps
// in document order, arrays become []any and numbers stay json.Number so
// labels keep their original spelling.
func DecodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Map{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, errors.Wrap(err, "decode json state")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode json state: trailing data after top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		m := Map{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, errors.Newf("object key %v is not a string", keyTok)
			}
			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, errors.Wrapf(err, "value of %q", key)
			}
			m = append(m, Entry{Key: key, Value: val})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return m, nil
	case '[':
		items := []any{}
		for dec.More() {
			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", len(items))
			}
			items = append(items, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	default:
		return nil, errors.Newf("unexpected delimiter %q", rune(delim))
	}
}

// DecodeYAML parses a YAML document into chart state, preserving mapping
// order. An empty document yields an empty Map.
func DecodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode yaml state")
	}
	if doc.Kind == 0 {
		return Map{}, nil
	}
	v, err := fromYAMLNode(&doc)
	if err != nil {
		return nil, errors.Wrap(err, "decode yaml state")
	}
	return v, nil
}

// fromYAMLNode converts a yaml.v3 node tree into Map, []any and scalars.
func fromYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Map{}, nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.MappingNode:
		m := make(Map, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, errors.Wrapf(err, "value of %q (line %d)", key, n.Content[i].Line)
			}
			m = append(m, Entry{Key: key, Value: val})
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			val, err := fromYAMLNode(c)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
			items = append(items, val)
		}
		return items, nil
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, errors.Newf("dangling alias at line %d", n.Line)
		}
		return fromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, errors.Wrapf(err, "scalar at line %d", n.Line)
		}
		return v, nil
	default:
		return nil, errors.Newf("unsupported yaml node kind %d", n.Kind)
	}
}

// ReadStateFile reads and decodes a state file. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
func ReadStateFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read state %s", path)
	}
	var state any
	if isYAMLPath(path) {
		state, err = DecodeYAML(data)
	} else {
		state, err = DecodeJSON(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "state %s", path)
	}
	return state, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
