package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTagIndex expects an empty index.
func TestTagIndex(t *testing.T, index TagIndex) {
	require.NoError(t, index.Index("tech", "travel", "go"))
	require.NoError(t, index.Index("tech"))
	require.NoError(t, index.Index())

	tags, err := index.Search("")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "tech", "travel"}, tags)

	tags, err = index.Search("t")
	require.NoError(t, err)
	assert.Equal(t, []string{"tech", "travel"}, tags)

	tags, err = index.Search("tr")
	require.NoError(t, err)
	assert.Equal(t, []string{"travel"}, tags)

	tags, err = index.Search("z")
	require.NoError(t, err)
	assert.Equal(t, []string{}, tags)
}
