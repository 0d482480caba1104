package treechart

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONKeepsOrder(t *testing.T) {
	state, err := DecodeJSON([]byte(`{"z": 1, "a": {"y": true, "b": null}, "list": [1, "two", {"k": 3}]}`))
	require.NoError(t, err)

	m, ok := state.(Map)
	require.True(t, ok, "top level is %T", state)
	require.Len(t, m, 3)
	assert.Equal(t, "z", m[0].Key)
	assert.Equal(t, "a", m[1].Key)

	inner := m[1].Value.(Map)
	assert.Equal(t, "y", inner[0].Key)
	assert.Equal(t, true, inner[0].Value)
	assert.Nil(t, inner[1].Value)

	list := m[2].Value.([]any)
	require.Len(t, list, 3)
	assert.Equal(t, "1", fmt.Sprint(list[0]))
	assert.Equal(t, "two", list[1])
	assert.IsType(t, Map{}, list[2])
}

func TestDecodeJSONEmpty(t *testing.T) {
	for _, in := range []string{"", "  \n\t"} {
		state, err := DecodeJSON([]byte(in))
		require.NoError(t, err)
		assert.Equal(t, Map{}, state)
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	for _, in := range []string{`{"a": `, `{"a": 1} {"b": 2}`, `[1, 2`} {
		_, err := DecodeJSON([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestDecodeYAMLKeepsOrder(t *testing.T) {
	state, err := DecodeYAML([]byte(`
zeta: 1
alpha:
  - x
  - nested: true
base: &b
  k: v
copy: *b
`))
	require.NoError(t, err)

	m := state.(Map)
	require.Len(t, m, 4)
	assert.Equal(t, []string{"zeta", "alpha", "base", "copy"}, []string{m[0].Key, m[1].Key, m[2].Key, m[3].Key})
	assert.Equal(t, 1, m[0].Value)

	alpha := m[1].Value.([]any)
	assert.Equal(t, "x", alpha[0])
	assert.Equal(t, Map{{Key: "nested", Value: true}}, alpha[1])

	assert.Equal(t, m[2].Value, m[3].Value, "aliases resolve to their anchor")
}

func TestDecodeYAMLEmpty(t *testing.T) {
	state, err := DecodeYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, Map{}, state)
}

func TestDecodeYAMLError(t *testing.T) {
	_, err := DecodeYAML([]byte("a: [1, 2"))
	assert.Error(t, err)
}

func TestReadStateFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "s.json")
	yamlPath := filepath.Join(dir, "s.YML")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"a": 1}`), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte("a: 1\n"), 0o644))

	for _, p := range []string{jsonPath, yamlPath} {
		state, err := ReadStateFile(p)
		require.NoError(t, err, p)
		m := state.(Map)
		require.Len(t, m, 1)
		assert.Equal(t, "a", m[0].Key)
	}

	_, err := ReadStateFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}
