package driver

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/pkg/errors"

	"lexenv/interpreter-go/pkg/logging"
)

// Corpus is a tree of fixture directories on a billy filesystem.
type Corpus struct {
	FS   billy.Filesystem
	Name string
	// IgnoreFile enables .gitignore filtering of fixture directories.
	IgnoreFile bool
}

// Fixture is one directory holding a manifest and its entry script.
type Fixture struct {
	Dir      string
	Manifest *Manifest
	corpus   *Corpus
}

// NewCorpus wraps fs, which may be in memory or a git worktree.
func NewCorpus(fs billy.Filesystem, name string, ignoreFile bool) *Corpus {
	return &Corpus{FS: fs, Name: name, IgnoreFile: ignoreFile}
}

// OpenCorpus opens a corpus rooted at dir on the local disk.
func OpenCorpus(dir string, ignoreFile bool) (*Corpus, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "corpus: %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("corpus: %s is not a directory", dir)
	}
	return NewCorpus(osfs.New(dir), dir, ignoreFile), nil
}

// Fixtures finds every directory containing a manifest, sorted by path.
// Directories matched by .gitignore patterns are skipped.
func (c *Corpus) Fixtures(ctx context.Context) ([]*Fixture, error) {
	logger := logging.Logger(ctx)
	var ignorer gitignore.Matcher
	if c.IgnoreFile {
		ps, err := gitignore.ReadPatterns(c.FS, nil)
		if err != nil {
			logger.Debugf("Error loading .gitignore: %v", err)
		}
		ignorer = gitignore.NewMatcher(ps)
	}

	var dirs []string
	err := util.Walk(c.FS, ".", func(file string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel := filepath.ToSlash(filepath.Clean(file))
		if rel != "." {
			split := strings.Split(rel, "/")
			if split[len(split)-1] == ".git" && fi.IsDir() {
				return filepath.SkipDir
			}
			if ignorer != nil && ignorer.Match(split, fi.IsDir()) {
				logger.WithField("path", rel).Trace("ignored")
				if fi.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if !fi.IsDir() && fi.Name() == ManifestFile {
			dirs = append(dirs, filepath.ToSlash(filepath.Dir(rel)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "corpus: walk %s", c.Name)
	}
	sort.Strings(dirs)

	fixtures := make([]*Fixture, 0, len(dirs))
	for _, dir := range dirs {
		fixture, err := c.Fixture(dir)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fixture)
	}
	logger.WithField("count", len(fixtures)).Debug("fixtures discovered")
	return fixtures, nil
}

// Fixture loads the fixture in dir, relative to the corpus root.
func (c *Corpus) Fixture(dir string) (*Fixture, error) {
	manifest, err := LoadManifest(c.FS, dir)
	if err != nil {
		return nil, err
	}
	return &Fixture{Dir: dir, Manifest: manifest, corpus: c}, nil
}

// Source reads the fixture's entry script.
func (f *Fixture) Source() ([]byte, error) {
	name := filepath.ToSlash(filepath.Join(f.Dir, f.Manifest.Entry))
	data, err := util.ReadFile(f.corpus.FS, name)
	if err != nil {
		return nil, errors.Wrapf(err, "fixture %s", f.Dir)
	}
	return data, nil
}

// Name is the fixture's path within its corpus.
func (f *Fixture) Name() string {
	return f.Dir
}
