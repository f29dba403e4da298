package jsonutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePretty(&buf, map[string]any{"name": "a<b>", "n": 1}))
	assert.Equal(t, "{\n    \"n\": 1,\n    \"name\": \"a<b>\"\n}\n", buf.String())
}
