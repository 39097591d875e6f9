package driver

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memCorpus(t *testing.T, files map[string]string) *Corpus {
	t.Helper()
	fs := memfs.New()
	for name, contents := range files {
		data := []byte(strings.TrimSpace(contents) + "\n")
		require.NoError(t, util.WriteFile(fs, name, data, 0o644))
	}
	return NewCorpus(fs, "memory", true)
}

func TestCorpusFixtures(t *testing.T) {
	corpus := memCorpus(t, map[string]string{
		"b/manifest.yml":        "description: second",
		"b/main.js":             "1;",
		"a/nested/manifest.yml": "description: first",
		"a/nested/main.js":      "2;",
		"scratch/manifest.yml":  "description: ignored",
		"a/notes.txt":           "not a fixture",
		".gitignore":            "scratch/",
		"c/manifest.yml":        "entry: program.json",
		"c/program.json":        `{"type": "Program", "body": []}`,
		"c/unrelated/readme.md": "nothing",
	})

	fixtures, err := corpus.Fixtures(context.Background())
	require.NoError(t, err)
	names := make([]string, len(fixtures))
	for i, f := range fixtures {
		names[i] = f.Name()
	}
	assert.Equal(t, []string{"a/nested", "b", "c"}, names)
	assert.Equal(t, "first", fixtures[0].Manifest.Description)
	assert.Equal(t, "program.json", fixtures[2].Manifest.Entry)

	src, err := fixtures[1].Source()
	require.NoError(t, err)
	assert.Equal(t, "1;\n", string(src))
}

func TestCorpusWithoutIgnoreFile(t *testing.T) {
	corpus := memCorpus(t, map[string]string{
		".gitignore":           "scratch/",
		"scratch/manifest.yml": "description: kept",
	})
	corpus.IgnoreFile = false

	fixtures, err := corpus.Fixtures(context.Background())
	require.NoError(t, err)
	require.Len(t, fixtures, 1)
	assert.Equal(t, "scratch", fixtures[0].Name())
}

func TestCorpusInvalidManifest(t *testing.T) {
	corpus := memCorpus(t, map[string]string{
		"bad/manifest.yml": "entry: main.py",
	})
	_, err := corpus.Fixtures(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad/manifest.yml")
}

func TestOpenCorpusFromDisk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one", "manifest.yml"), "description: on disk")
	writeFile(t, filepath.Join(dir, "one", "main.js"), "let x = 1; x;")

	corpus, err := OpenCorpus(dir, true)
	require.NoError(t, err)
	fixtures, err := corpus.Fixtures(context.Background())
	require.NoError(t, err)
	require.Len(t, fixtures, 1)
	assert.Equal(t, "one", fixtures[0].Name())

	_, err = OpenCorpus(filepath.Join(dir, "one", "main.js"), true)
	assert.Error(t, err)
}
