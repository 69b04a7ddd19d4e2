package msgpack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenLoad(t *testing.T) {
	var buf bytes.Buffer
	in := map[string]any{
		"name":   "Bob",
		"age":    42,
		"powers": []any{"fly", 1.5},
		"allies": map[string]any{"robin": 1},
		"nick":   nil,
	}
	require.NoError(t, Write(&buf, in))

	doc, err := Load("hero.msgpack", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":   "Bob",
		"age":    int64(42),
		"powers": []any{"fly", 1.5},
		"allies": map[string]any{"robin": int64(1)},
		"nick":   nil,
	}, doc.Value)
}

func TestLoad_EmptyAndCorrupt(t *testing.T) {
	doc, err := Load("empty.msgpack", nil)
	require.NoError(t, err)
	assert.Nil(t, doc.Value)

	_, err = Load("corrupt.msgpack", []byte{0xc1})
	assert.Error(t, err)
}
