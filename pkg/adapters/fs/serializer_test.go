package fs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmzhu2/yui3/pkg/adapters/fs"
)

func TestJSONSerializer(t *testing.T) {
	s := fs.JSONSerializer{}

	raw, err := s.Encode(map[string]any{"id": "a", "count": 2})
	require.NoError(t, err)

	attrs, err := s.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "a", attrs["id"])
	assert.Equal(t, float64(2), attrs["count"])

	_, err = s.Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestYAMLSerializer(t *testing.T) {
	s := fs.YAMLSerializer{}

	raw, err := s.Encode(map[string]any{"id": "a", "tags": []string{"x", "y"}})
	require.NoError(t, err)

	attrs, err := s.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "a", attrs["id"])

	_, err = s.Decode([]byte(":\tbroken"))
	assert.Error(t, err)
}

func TestDefaultSerializers(t *testing.T) {
	serializers := fs.DefaultSerializers()
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		assert.Contains(t, serializers, ext)
	}
}
