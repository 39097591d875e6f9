package driver

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5/memfs"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"lexenv/interpreter-go/pkg/logging"
)

// CloneCorpus clones src into memory and checks out its revision. An empty
// revision keeps the remote HEAD; branch names resolve as refs/heads/<name>.
func CloneCorpus(ctx context.Context, src GitSource, ignoreFile bool) (*Corpus, error) {
	logger := logging.Logger(ctx)
	if src.URL == "" {
		return nil, errors.New("git: repository url is required")
	}
	logger.WithFields(logrus.Fields{"url": src.URL, "rev": src.Revision}).Info("cloning fixture corpus")

	worktreeFS := memfs.New()
	repo, err := git.CloneContext(ctx, memory.NewStorage(), worktreeFS, &git.CloneOptions{
		URL:      src.URL,
		Progress: progressWriter(logger),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "git: clone %s", src.URL)
	}

	if rev := strings.TrimSpace(src.Revision); rev != "" {
		hash, err := resolveRevision(repo, rev)
		if err != nil {
			return nil, err
		}
		worktree, err := repo.Worktree()
		if err != nil {
			return nil, errors.Wrap(err, "git: worktree")
		}
		if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
			return nil, errors.Wrapf(err, "git: checkout %s", rev)
		}
		logger.WithField("hash", hash.String()).Debug("checked out revision")
	}
	return NewCorpus(worktreeFS, src.URL, ignoreFile), nil
}

func resolveRevision(repo *git.Repository, rev string) (*plumbing.Hash, error) {
	if hash, err := repo.ResolveRevision(plumbing.Revision(rev)); err == nil {
		return hash, nil
	}
	candidates := []string{"refs/heads/" + rev, "refs/remotes/origin/" + rev, "refs/tags/" + rev}
	for _, candidate := range candidates {
		if hash, err := repo.ResolveRevision(plumbing.Revision(candidate)); err == nil {
			return hash, nil
		}
	}
	return nil, errors.Errorf("git: unknown revision %q", rev)
}

// progressWriter forwards clone progress to the debug log on a terminal.
func progressWriter(logger logrus.FieldLogger) io.Writer {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return nil
	}
	switch lgr := logger.(type) {
	case *logrus.Entry:
		return lgr.WriterLevel(logrus.DebugLevel)
	case *logrus.Logger:
		return lgr.WriterLevel(logrus.DebugLevel)
	default:
		return nil
	}
}
