package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const packageJSON = `{
  "name": "example",
  "version": "1.2.3",
  "description": "<b>html</b> & stuff",
  "scripts": {
    "test": "jest",
    "build": "tsc"
  },
  "files": [],
  "config": {},
  "private": true,
  "weight": 1.50
}
`

func TestRoundTripIsUnchanged(t *testing.T) {
	m, err := Parse([]byte(packageJSON))
	require.NoError(t, err)

	out, err := m.Marshal()
	require.NoError(t, err)

	assert.Equal(t, packageJSON, string(out))
}

func TestSetVersionPreservesFieldOrder(t *testing.T) {
	m, err := Parse([]byte(`{"version":"2.0.0","name":"x"}`))
	require.NoError(t, err)

	v, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", v)

	require.NoError(t, m.SetVersion("3.0.0"))

	out, err := m.Marshal()
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"version\": \"3.0.0\",\n  \"name\": \"x\"\n}", string(out))
}

func TestNestedObjectsAreReindented(t *testing.T) {
	m, err := Parse([]byte(`{"b":{"z":1,"a":[1, 2]},"version":"0.1.0"}`))
	require.NoError(t, err)

	out, err := m.Marshal()
	require.NoError(t, err)

	expected := `{
  "b": {
    "z": 1,
    "a": [
      1,
      2
    ]
  },
  "version": "0.1.0"
}`
	assert.Equal(t, expected, string(out))
}

func TestDuplicateKeyKeepsFirstPosition(t *testing.T) {
	m, err := Parse([]byte(`{"version":"1.0.0","name":"a","version":"1.1.0"}`))
	require.NoError(t, err)

	v, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", v)

	out, err := m.Marshal()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"version\": \"1.1.0\",\n  \"name\": \"a\"\n}", string(out))
}

func TestSetVersionAppendsMissingField(t *testing.T) {
	m, err := Parse([]byte("{\"name\":\"a\"}\n"))
	require.NoError(t, err)

	_, err = m.Version()
	assert.Error(t, err)

	require.NoError(t, m.SetVersion("0.0.1"))

	out, err := m.Marshal()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"a\",\n  \"version\": \"0.0.1\"\n}\n", string(out))
}

func TestVersionNotAString(t *testing.T) {
	m, err := Parse([]byte(`{"version": 1}`))
	require.NoError(t, err)

	_, err = m.Version()
	assert.ErrorContains(t, err, "not a string")
}

func TestParseErrors(t *testing.T) {
	for _, doc := range []string{
		"",
		"[]",
		`"version"`,
		`{"version": "1.0.0"`,
		`{"version": "1.0.0"} {}`,
		`{"version": "1.0.0"} x`,
	} {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, "document: %q", doc)
	}
}

func TestLocatePrefersComposerJSON(t *testing.T) {
	dir := t.TempDir()

	_, err := Locate(dir, FileExists)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o600))
	p, err := Locate(dir, FileExists)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "package.json"), p)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "composer.json"), []byte("{}"), 0o600))
	p, err = Locate(dir, FileExists)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "composer.json"), p)
}

func TestLocateIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "composer.json"), 0o700))

	_, err := Locate(dir, FileExists)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreKeepsPermissions(t *testing.T) {
	p := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"version":"1.2.3","name":"x"}`), 0o600))

	store := NewFileStore(p)

	m, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, m.SetVersion("1.3.0"))
	require.NoError(t, store.Store(m))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"version\": \"1.3.0\",\n  \"name\": \"x\"\n}", string(data))

	fi, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	_, err := NewFileStore(filepath.Join(t.TempDir(), "package.json")).Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
