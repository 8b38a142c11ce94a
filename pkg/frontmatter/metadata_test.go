package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataSetReplacesInPlace(t *testing.T) {
	md, _, err := Split("---\na: 1\nb: 2\nc: 3\n---\n")
	require.NoError(t, err)

	require.NoError(t, md.Set("b", "two"))
	assert.Equal(t, []string{"a", "b", "c"}, md.Keys())

	v, ok := md.Get("b")
	require.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestMetadataSetNilDeletes(t *testing.T) {
	md, _, err := Split("---\ndrupal_node_id: 7\ntitle: X\n---\n")
	require.NoError(t, err)

	require.NoError(t, md.Set("drupal_node_id", nil))
	assert.False(t, md.Has("drupal_node_id"))
	assert.Equal(t, 1, md.Len())

	out, err := Join(md, "Body")
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: X\n---\n\nBody", out)
}

func TestMetadataGetString(t *testing.T) {
	md, _, err := Split("---\nnum: 7\nquoted: \"7\"\nempty:\nlist: [1]\n---\n")
	require.NoError(t, err)

	assert.Equal(t, "7", md.GetString("num"))
	assert.Equal(t, "7", md.GetString("quoted"))
	assert.Equal(t, "", md.GetString("empty"))
	assert.Equal(t, "", md.GetString("list"))
	assert.Equal(t, "", md.GetString("missing"))
}

func TestMetadataSetScalarResolvesType(t *testing.T) {
	md := NewMetadata()
	md.SetScalar("drupal_node_id", "42")

	out, err := Join(md, "")
	require.NoError(t, err)

	parsed, _, err := Split(out)
	require.NoError(t, err)
	v, ok := parsed.Get("drupal_node_id")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestMetadataDeleteMissing(t *testing.T) {
	md := NewMetadata()
	assert.False(t, md.Delete("nope"))
	assert.Empty(t, md.Keys())
}
