package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Prod(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("prod", &buf)

	l.Debugf("hidden %d", 1)
	assert.Zero(t, buf.Len(), "debug entries are dropped in prod")

	l.With("method", "feed").Printf("served %d posts", 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "served 3 posts", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "feed", entry["method"])
	assert.Equal(t, "prod", entry["env"])
	assert.Equal(t, "blogsynergy", entry["service"])
	assert.Contains(t, entry, "ts")
}

func TestLogger_Dev(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("dev", &buf)

	l.Debugf("cache miss for %s", "u-1")
	assert.True(t, strings.Contains(buf.String(), "cache miss for u-1"), buf.String())
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := newLogger("prod", &buf)
	_ = base.With("method", "feed")

	base.Print("plain")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "method", "With must not change the parent logger")
}
