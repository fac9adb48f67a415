package driver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// FetchOptions selects a project to check out from git.
type FetchOptions struct {
	// URL is any location go-git can clone, including a local path.
	URL string
	// Rev is a commit hash, tag or branch. Empty means HEAD.
	Rev string
	// CacheDir holds checkouts and the snail.lock that pins them.
	CacheDir string
	// Update ignores an existing pin and resolves Rev again.
	Update bool
}

// FetchResult is a checked-out project.
type FetchResult struct {
	Dir    string
	Commit string
	Reused bool
}

// FetchProject clones opts.URL, checks out opts.Rev and pins the resolved
// commit in CacheDir/snail.lock. A pinned checkout that is still on disk is
// returned without cloning.
func FetchProject(ctx context.Context, opts FetchOptions) (*FetchResult, error) {
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return nil, errors.New("fetch: git URL required")
	}
	if opts.CacheDir == "" {
		return nil, errors.New("fetch: cache directory required")
	}
	rev := strings.TrimSpace(opts.Rev)
	if rev == "" {
		rev = "HEAD"
	}
	if err := os.MkdirAll(opts.CacheDir, 0o755); err != nil {
		return nil, err
	}

	lockPath := filepath.Join(opts.CacheDir, LockfileName)
	lock, err := loadOrCreateLockfile(lockPath, "snail")
	if err != nil {
		return nil, err
	}
	if pinned, ok := lock.Find(url, rev); ok && !opts.Update {
		dir := filepath.Join(opts.CacheDir, filepath.FromSlash(pinned.Dir))
		if _, err := os.Stat(dir); err == nil {
			return &FetchResult{Dir: dir, Commit: pinned.Commit, Reused: true}, nil
		}
	}

	baseDir := filepath.Join(opts.CacheDir, sanitizePathSegment(url))
	commit, dir, err := ensureGitCheckout(ctx, baseDir, url, rev)
	if err != nil {
		return nil, err
	}
	checksum, err := dirChecksum(dir)
	if err != nil {
		return nil, fmt.Errorf("fetch: checksum %s: %w", dir, err)
	}
	rel, err := filepath.Rel(opts.CacheDir, dir)
	if err != nil {
		return nil, err
	}
	lock.Put(&LockedCheckout{
		Source:   url,
		Rev:      rev,
		Commit:   commit,
		Dir:      filepath.ToSlash(rel),
		Checksum: checksum,
	})
	if err := WriteLockfile(lock, lockPath); err != nil {
		return nil, err
	}
	return &FetchResult{Dir: dir, Commit: commit}, nil
}

func ensureGitCheckout(ctx context.Context, baseDir, url, rev string) (string, string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{
		URL:  url,
		Tags: git.AllTags,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("resolve revision %s: %w", rev, err)
	}

	targetDir := filepath.Join(baseDir, hash.String())
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return hash.String(), targetDir, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", rev, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return hash.String(), targetDir, nil
}

// dirChecksum hashes file names and contents under path, skipping .git.
func dirChecksum(path string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		return "head"
	}
	return cleaned
}
