package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equinor/configsuite/i18n"
)

const heroSchema = `type: record
description: A hero
content:
  name:
    type: string
    transformation: trim
  strength:
    type: integer
    default: 10
    element_validators: [positive]
  powers:
    type: list
    content:
      item:
        type: string
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	i18n.SetLanguage("en")
	return out.String(), errOut.String(), err
}

func TestValidate_Valid(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"schema.yml": heroSchema,
		"base.toml":  "powers = [\"fly\"]\n",
		"user.json":  `{"name": "  Bob  ", "powers": ["swim"]}`,
	})
	out, _, err := run(t, "validate", "--schema", filepath.Join(dir, "schema.yml"),
		filepath.Join(dir, "base.toml"), filepath.Join(dir, "user.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "user.json is valid")
}

func TestValidate_InvalidReportsPositions(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"schema.yml": heroSchema,
		"hero.yml":   "name: Bob\nstrength: -1\npowers: [1]\ncolour: red\n",
	})
	out, _, err := run(t, "validate", "--schema", filepath.Join(dir, "schema.yml"), filepath.Join(dir, "hero.yml"))
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "unknown key /: Unknown key: colour")
	assert.Contains(t, out, "invalid type /powers/0")
	assert.Contains(t, out, "hero.yml:3:10")
	assert.Contains(t, out, "invalid value /strength: Is x positive is false on input '-1'")
	assert.Contains(t, out, "hero.yml:2:11")
	assert.Contains(t, out, "is invalid (3 errors)")
}

func TestValidate_NotReadableLayer(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"schema.yml": heroSchema,
		"base.yml":   "powers: nope\n",
		"user.yml":   "name: Bob\n",
	})
	out, _, err := run(t, "--lang", "ja", "validate", "--schema", filepath.Join(dir, "schema.yml"),
		filepath.Join(dir, "base.yml"), filepath.Join(dir, "user.yml"))
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "設定を読み取れませんでした")
	assert.Contains(t, out, "型が不正です")
	assert.Contains(t, out, "base.yml:1:9")
	assert.Contains(t, out, "レイヤー 0")
}

func TestValidate_Errors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"schema.yml": heroSchema,
		"bad.yml":    "type: record\ncontent: 3\n",
		"hero.ini":   "name=Bob\n",
	})
	_, _, err := run(t, "validate", filepath.Join(dir, "hero.ini"))
	assert.ErrorContains(t, err, "--schema is required")

	_, _, err = run(t, "validate", "--schema", filepath.Join(dir, "schema.yml"), filepath.Join(dir, "hero.ini"))
	assert.ErrorContains(t, err, "unsupported file extension")

	_, _, err = run(t, "validate", "--schema", filepath.Join(dir, "bad.yml"), filepath.Join(dir, "schema.yml"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errInvalid)
}

func TestSnapshot_JSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"schema.yml": heroSchema,
		"base.hcl":   "powers = [\"fly\"]\n",
		"user.yml":   "name: ' Bob '\npowers: [swim]\n",
	})
	out, _, err := run(t, "snapshot", "--format", "json", "--schema", filepath.Join(dir, "schema.yml"),
		filepath.Join(dir, "base.hcl"), filepath.Join(dir, "user.yml"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, j.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{
		"name":     "Bob",
		"strength": float64(10),
		"powers":   []any{"fly", "swim"},
	}, got)
}

func TestSnapshot_Invalid(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"schema.yml": heroSchema,
		"user.yml":   "powers: []\n",
	})
	_, errOut, err := run(t, "snapshot", "--schema", filepath.Join(dir, "schema.yml"), filepath.Join(dir, "user.yml"))
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, errOut, "Missing key: name")

	_, _, err = run(t, "snapshot", "--format", "xml", "--schema", filepath.Join(dir, "schema.yml"), filepath.Join(dir, "user.yml"))
	assert.Error(t, err)
}

func TestJSONSchema(t *testing.T) {
	dir := writeFiles(t, map[string]string{"schema.yml": heroSchema})
	out, _, err := run(t, "jsonschema", "--schema", filepath.Join(dir, "schema.yml"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, j.Unmarshal([]byte(out), &got))
	assert.Equal(t, "object", got["type"])
	assert.Equal(t, "A hero", got["description"])
	assert.Equal(t, []any{"name", "powers"}, got["required"])
}
