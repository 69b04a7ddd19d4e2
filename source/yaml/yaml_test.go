package yaml

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equinor/configsuite/keypath"
)

func TestLoad_ValuesAndPositions(t *testing.T) {
	src := `name: Bob
age: 42
height: 1.85
alive: true
nick: ~
born: 2001-02-03
powers:
  - fly
  - swim
`
	doc, err := Load("hero.yml", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":   "Bob",
		"age":    int64(42),
		"height": 1.85,
		"alive":  true,
		"nick":   nil,
		"born":   time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC),
		"powers": []any{"fly", "swim"},
	}, doc.Value)

	pos, ok := doc.Positions.Lookup(keypath.Path{"age"})
	require.True(t, ok)
	assert.Equal(t, "hero.yml", pos.File)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 6, pos.Column)

	pos, ok = doc.Positions.Lookup(keypath.Path{"powers", 1})
	require.True(t, ok)
	assert.Equal(t, 9, pos.Line)

	// Unknown paths resolve to the closest ancestor.
	pos, ok = doc.Positions.Lookup(keypath.Path{"powers", 1, "deeper"})
	require.True(t, ok)
	assert.Equal(t, 9, pos.Line)
}

func TestLoad_DuplicateKey(t *testing.T) {
	_, err := Load("dup.yml", []byte("a: 1\nb:\n  c: 1\n  c: 2\n"))
	require.Error(t, err)
	var dup *DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "c", dup.Key)
	assert.Equal(t, keypath.Path{"b"}, dup.Path)
	assert.Equal(t, 3, dup.FirstLine)
	assert.Equal(t, 4, dup.Line)
}

func TestLoad_QuotedScalarsStayStrings(t *testing.T) {
	doc, err := Load("q.yml", []byte("a: \"42\"\nb: 'true'\nc: \"2001-02-03\"\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "42", "b": "true", "c": "2001-02-03"}, doc.Value)
}

func TestLoad_AnchorsAndMerge(t *testing.T) {
	src := `base: &base
  colour: red
  size: 1
car:
  <<: *base
  size: 2
`
	doc, err := Load("m.yml", []byte(src))
	require.NoError(t, err)
	v := doc.Value.(map[string]any)
	assert.Equal(t, map[string]any{"colour": "red", "size": int64(2)}, v["car"])
}

func TestLoad_SpecialFloats(t *testing.T) {
	doc, err := Load("f.yml", []byte("a: .inf\nb: -.Inf\nc: .nan\n"))
	require.NoError(t, err)
	v := doc.Value.(map[string]any)
	assert.True(t, math.IsInf(v["a"].(float64), 1))
	assert.True(t, math.IsInf(v["b"].(float64), -1))
	assert.True(t, math.IsNaN(v["c"].(float64)))
}

func TestLoad_Empty(t *testing.T) {
	doc, err := Load("empty.yml", nil)
	require.NoError(t, err)
	assert.Nil(t, doc.Value)
}

func TestLoad_Syntax(t *testing.T) {
	_, err := Load("bad.yml", []byte("a: [1, 2\n"))
	assert.Error(t, err)
}
