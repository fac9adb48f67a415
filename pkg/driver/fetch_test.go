package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// commitFile writes name in the worktree of repo and commits it.
func commitFile(t *testing.T, repo *git.Repository, dir, name, contents string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	hash, err := wt.Commit("update "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "snail", Email: "snail@example.com", When: time.Unix(1700000000, 0)},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return hash.String()
}

func TestFetchProjectPinsRevision(t *testing.T) {
	origin := t.TempDir()
	repo, err := git.PlainInit(origin, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	commitFile(t, repo, origin, ManifestName, "name: remote\nprograms:\n  main: main.snail\n")
	first := commitFile(t, repo, origin, "main.snail", `BEGIN PRESENT "v1" STOP`)
	second := commitFile(t, repo, origin, "main.snail", `BEGIN PRESENT "v2" STOP`)

	cache := t.TempDir()
	ctx := context.Background()

	res, err := FetchProject(ctx, FetchOptions{URL: origin, Rev: first, CacheDir: cache})
	if err != nil {
		t.Fatalf("FetchProject: %v", err)
	}
	if res.Commit != first || res.Reused {
		t.Fatalf("unexpected result %#v", res)
	}
	src, err := LoadSource(res.Dir, "")
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if src.Text != `BEGIN PRESENT "v1" STOP` {
		t.Fatalf("checked out wrong revision: %q", src.Text)
	}

	head, err := FetchProject(ctx, FetchOptions{URL: origin, CacheDir: cache})
	if err != nil {
		t.Fatalf("FetchProject HEAD: %v", err)
	}
	if head.Commit != second {
		t.Fatalf("HEAD resolved to %s, want %s", head.Commit, second)
	}

	lock, err := LoadLockfile(filepath.Join(cache, LockfileName))
	if err != nil {
		t.Fatalf("LoadLockfile: %v", err)
	}
	pinned, ok := lock.Find(origin, first)
	if !ok || pinned.Commit != first || pinned.Checksum == "" {
		t.Fatalf("expected pinned checkout for %s, got %#v", first, pinned)
	}
	if len(lock.Checkouts) != 2 {
		t.Fatalf("expected 2 checkouts, got %d", len(lock.Checkouts))
	}

	again, err := FetchProject(ctx, FetchOptions{URL: origin, Rev: first, CacheDir: cache})
	if err != nil {
		t.Fatalf("FetchProject again: %v", err)
	}
	if !again.Reused || again.Dir != res.Dir {
		t.Fatalf("expected pinned checkout reuse, got %#v", again)
	}
}

func TestFetchProjectErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := FetchProject(ctx, FetchOptions{CacheDir: t.TempDir()}); err == nil {
		t.Fatalf("expected error for missing URL")
	}
	if _, err := FetchProject(ctx, FetchOptions{URL: "x"}); err == nil {
		t.Fatalf("expected error for missing cache dir")
	}

	origin := t.TempDir()
	repo, err := git.PlainInit(origin, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	commitFile(t, repo, origin, "main.snail", "BEGIN STOP")
	if _, err := FetchProject(ctx, FetchOptions{URL: origin, Rev: "no-such-branch", CacheDir: t.TempDir()}); err == nil {
		t.Fatalf("expected unresolved revision error")
	}
}

func TestLockfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockfileName)
	lock := NewLockfile("snail")
	lock.Put(&LockedCheckout{Source: "b", Rev: "HEAD", Commit: "2", Dir: "b/2"})
	lock.Put(&LockedCheckout{Source: "a", Rev: "v1", Commit: "1", Dir: "a/1"})
	lock.Put(&LockedCheckout{Source: "b", Rev: "HEAD", Commit: "3", Dir: "b/3"})
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile: %v", err)
	}
	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile: %v", err)
	}
	if len(loaded.Checkouts) != 2 || loaded.Checkouts[0].Source != "a" {
		t.Fatalf("unexpected checkouts %#v", loaded.Checkouts)
	}
	if got, ok := loaded.Find("b", "HEAD"); !ok || got.Commit != "3" {
		t.Fatalf("expected replaced pin, got %#v", got)
	}
	if loaded.Tool != "snail" || loaded.Generated == "" {
		t.Fatalf("metadata lost: %#v", loaded)
	}
}

func TestSanitizePathSegment(t *testing.T) {
	cases := map[string]string{
		"https://example.com/demo.git": "https___example.com_demo.git",
		"..":                           "head",
		"  ":                           "head",
		".hidden.":                     "hidden",
	}
	for in, want := range cases {
		if got := sanitizePathSegment(in); got != want {
			t.Fatalf("sanitizePathSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
