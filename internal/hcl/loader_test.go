package hcl_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/dynval"
	"github.com/vk/prototable/internal/hcl"
	"github.com/vk/prototable/internal/testutil"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestLoadDirMergesLabelsIntoDefinition(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"rock.hcl": `
prototype "entity" "rock" {
  width      = 2
  max_health = 200
}
`,
	})

	defs, err := hcl.NewLoader().LoadDir(testutil.Context(t), dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	typ, err := dynval.String(dynval.Attr(def, "type"))
	require.NoError(t, err)
	require.Equal(t, "entity", typ)
	name, err := dynval.String(dynval.Attr(def, "name"))
	require.NoError(t, err)
	require.Equal(t, "rock", name)
	width, err := dynval.Int(dynval.Attr(def, "width"))
	require.NoError(t, err)
	require.Equal(t, int64(2), width)
}

func TestLoadDirOrdersFilesLexicographically(t *testing.T) {
	t.Parallel()

	// Written in reverse order on purpose; the loader sorts by path, so the
	// nested a/ file still comes first.
	dir := writeFiles(t, map[string]string{
		"b.hcl":   `prototype "entity" "second" { width = 1 }`,
		"a/a.hcl": `prototype "entity" "first" { width = 1 }`,
	})

	defs, err := hcl.NewLoader().LoadDir(testutil.Context(t), dir)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	first, err := dynval.String(dynval.Attr(defs[0], "name"))
	require.NoError(t, err)
	require.Equal(t, "first", first)
	second, err := dynval.String(dynval.Attr(defs[1], "name"))
	require.NoError(t, err)
	require.Equal(t, "second", second)
}

func TestLoadDirIgnoresOtherExtensions(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"notes.txt": `not a definition`,
		"rock.hcl":  `prototype "entity" "rock" { width = 1 }`,
	})

	defs, err := hcl.NewLoader().LoadDir(testutil.Context(t), dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)
}

func TestLoadDirEmptyDirectoryYieldsNoDefinitions(t *testing.T) {
	t.Parallel()

	defs, err := hcl.NewLoader().LoadDir(testutil.Context(t), t.TempDir())
	require.NoError(t, err)
	require.Empty(t, defs)
}

func TestLoadDirParseErrorNamesTheFile(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"broken.hcl": `prototype "entity" "rock" {`,
	})

	_, err := hcl.NewLoader().LoadDir(testutil.Context(t), dir)
	require.Error(t, err)
	require.ErrorContains(t, err, "broken.hcl")
}

func TestLoadDirRejectsVariableReferences(t *testing.T) {
	t.Parallel()

	// Definition files are pure data; expressions referencing variables have
	// nothing to evaluate against.
	dir := writeFiles(t, map[string]string{
		"rock.hcl": `
prototype "entity" "rock" {
  width = var.width
}
`,
	})

	_, err := hcl.NewLoader().LoadDir(testutil.Context(t), dir)
	require.Error(t, err)
	require.ErrorContains(t, err, `prototype "entity" "rock"`)
}

func TestLoadDirRejectsReservedAttributeNames(t *testing.T) {
	t.Parallel()

	// "type" and "name" come from the block labels; a body attribute of the
	// same name would be silently shadowed, so it is an error instead.
	dir := writeFiles(t, map[string]string{
		"rock.hcl": `
prototype "entity" "rock" {
  name  = "other"
  width = 1
}
`,
	})

	_, err := hcl.NewLoader().LoadDir(testutil.Context(t), dir)
	require.Error(t, err)
	require.ErrorContains(t, err, "reserved for the block labels")
	require.ErrorContains(t, err, `"name"`)
}

func TestLoadDirKeepsComplexValues(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"recipe.hcl": `
prototype "recipe" "pipe" {
  ingredients = [["iron-plate", 1]]
  result      = "pipe-item"
}
`,
	})

	defs, err := hcl.NewLoader().LoadDir(testutil.Context(t), dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	ingredients := dynval.Attr(defs[0], "ingredients")
	require.Equal(t, dynval.KindSequence, dynval.KindOf(ingredients))
	elems, err := dynval.Elements(ingredients)
	require.NoError(t, err)
	require.Len(t, elems, 1)

	pair, err := dynval.Index(ingredients, 0)
	require.NoError(t, err)
	first, err := dynval.Index(pair, 0)
	require.NoError(t, err)
	require.Equal(t, cty.StringVal("iron-plate"), first)
}
