package treechart

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// DefaultRootName names the root of trees built from chart state.
const DefaultRootName = "state"

// Entry is one key/value pair of an ordered mapping.
type Entry struct {
	Key   string
	Value any
}

// Map is a mapping that preserves key order. DecodeJSON and DecodeYAML
// produce Maps so that charts show keys in document order.
type Map []Entry

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Build converts a nested state value into a tree rooted at a node named
// rootName.
//
// Mappings (Map or map[string]any) contribute one child per key, sequences
// one child per element named key[i], and scalars become leaves carrying
// the scalar as Value. Keys of a plain Go map are sorted, since Go maps have
// no order of their own.
func Build(state any, rootName string) *TreeNode {
	root := &TreeNode{Name: rootName, Path: escapePathSegment(rootName)}
	switch v := normalize(state).(type) {
	case nil:
	case Map:
		root.Children = buildMapping(root.Path, v)
	case []any:
		root.Children = buildSequence(root.Path, rootName, v)
	default:
		root.Value = v
	}
	return root
}

func buildMapping(parentPath string, m Map) []*TreeNode {
	if len(m) == 0 {
		return nil
	}
	seen := make(map[string]int, len(m))
	children := make([]*TreeNode, 0, len(m))
	for _, e := range m {
		children = append(children, buildNode(childPath(parentPath, e.Key, seen), e.Key, e.Value))
	}
	return children
}

func buildSequence(parentPath, key string, items []any) []*TreeNode {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]int, len(items))
	children := make([]*TreeNode, 0, len(items))
	for i, item := range items {
		name := key + "[" + strconv.Itoa(i) + "]"
		children = append(children, buildNode(childPath(parentPath, name, seen), name, item))
	}
	return children
}

func buildNode(path, name string, value any) *TreeNode {
	n := &TreeNode{Name: name, Path: path}
	switch v := normalize(value).(type) {
	case Map:
		n.Children = buildMapping(path, v)
	case []any:
		n.Children = buildSequence(path, name, v)
	default:
		n.Value = v
	}
	return n
}

// normalize maps the accepted state shapes onto Map, []any or a scalar.
func normalize(v any) any {
	switch t := v.(type) {
	case Map, []any:
		return t
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := make(Map, 0, len(keys))
		for _, k := range keys {
			m = append(m, Entry{Key: k, Value: t[k]})
		}
		return m
	case map[any]any:
		keys := make([]string, 0, len(t))
		byKey := make(map[string]any, len(t))
		for k, val := range t {
			ks := fmt.Sprint(k)
			keys = append(keys, ks)
			byKey[ks] = val
		}
		sort.Strings(keys)
		m := make(Map, 0, len(keys))
		for _, k := range keys {
			m = append(m, Entry{Key: k, Value: byKey[k]})
		}
		return m
	case []Map:
		items := make([]any, len(t))
		for i := range t {
			items[i] = t[i]
		}
		return items
	case []string:
		items := make([]any, len(t))
		for i := range t {
			items[i] = t[i]
		}
		return items
	default:
		return normalizeReflect(v)
	}
}

// normalizeReflect covers typed slices, arrays and maps such as []int or
// map[string]int. Byte slices stay scalars.
func normalizeReflect(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			ks := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, ks)
			byKey[ks] = iter.Value().Interface()
		}
		sort.Strings(keys)
		m := make(Map, 0, len(keys))
		for _, k := range keys {
			m = append(m, Entry{Key: k, Value: byKey[k]})
		}
		return m
	default:
		return v
	}
}

// childPath derives a child's path, numbering repeated sibling names so
// every sibling keeps a distinct key.
func childPath(parent, name string, seen map[string]int) string {
	seen[name]++
	seg := escapePathSegment(name)
	if n := seen[name]; n > 1 {
		seg += "#" + strconv.Itoa(n)
	}
	return parent + "/" + seg
}

var pathEscaper = strings.NewReplacer("%", "%25", "/", "%2F", "#", "%23")

func escapePathSegment(name string) string {
	return pathEscaper.Replace(name)
}
