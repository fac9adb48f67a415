package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LockfileName is the fetch record kept in a project cache directory.
const LockfileName = "snail.lock"

// Lockfile records which commit each fetched (source, rev) pair resolved to,
// so later runs reuse the checkout without touching the network.
type Lockfile struct {
	Path      string
	Generated string
	Tool      string
	Checkouts []*LockedCheckout
}

// LockedCheckout is one pinned project checkout.
type LockedCheckout struct {
	Source   string
	Rev      string
	Commit   string
	Dir      string
	Checksum string
}

// NewLockfile constructs an empty lockfile stamped with tool.
func NewLockfile(tool string) *Lockfile {
	return &Lockfile{
		Generated: time.Now().UTC().Format(time.RFC3339),
		Tool:      strings.TrimSpace(tool),
		Checkouts: []*LockedCheckout{},
	}
}

// LoadLockfile parses snail.lock from disk.
func LoadLockfile(path string) (*Lockfile, error) {
	if path == "" {
		return nil, fmt.Errorf("lockfile: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw lockfileDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", abs, err)
	}

	lock := raw.toLockfile()
	lock.Path = abs
	lock.normalize()
	return lock, nil
}

// loadOrCreateLockfile returns the lockfile at path, or a fresh one when the
// file does not exist yet.
func loadOrCreateLockfile(path, tool string) (*Lockfile, error) {
	lock, err := LoadLockfile(path)
	if err == nil {
		return lock, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		lock = NewLockfile(tool)
		lock.Path = path
		return lock, nil
	}
	return nil, err
}

// WriteLockfile serialises the lockfile back to disk, refreshing metadata.
func WriteLockfile(lock *Lockfile, path string) error {
	if lock == nil {
		return fmt.Errorf("lockfile: nil lockfile")
	}
	if path == "" {
		if lock.Path == "" {
			return fmt.Errorf("lockfile: missing path")
		}
		path = lock.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}

	lock.Generated = time.Now().UTC().Format(time.RFC3339)
	lock.Path = abs
	lock.normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(lock.toDisk()); err != nil {
		return fmt.Errorf("lockfile: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("lockfile: encoder close: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", abs, err)
	}
	return nil
}

// Find returns the checkout pinned for source at rev.
func (l *Lockfile) Find(source, rev string) (*LockedCheckout, bool) {
	if l == nil {
		return nil, false
	}
	for _, checkout := range l.Checkouts {
		if checkout != nil && checkout.Source == source && checkout.Rev == rev {
			return checkout, true
		}
	}
	return nil, false
}

// Put records checkout, replacing any entry with the same source and rev.
func (l *Lockfile) Put(checkout *LockedCheckout) {
	for i, existing := range l.Checkouts {
		if existing != nil && existing.Source == checkout.Source && existing.Rev == checkout.Rev {
			l.Checkouts[i] = checkout
			return
		}
	}
	l.Checkouts = append(l.Checkouts, checkout)
}

func (l *Lockfile) normalize() {
	if l == nil {
		return
	}
	l.Tool = strings.TrimSpace(l.Tool)
	kept := l.Checkouts[:0]
	for _, checkout := range l.Checkouts {
		if checkout == nil {
			continue
		}
		checkout.Source = strings.TrimSpace(checkout.Source)
		checkout.Rev = strings.TrimSpace(checkout.Rev)
		checkout.Commit = strings.TrimSpace(checkout.Commit)
		checkout.Dir = strings.TrimSpace(checkout.Dir)
		checkout.Checksum = strings.TrimSpace(checkout.Checksum)
		kept = append(kept, checkout)
	}
	l.Checkouts = kept
	sort.SliceStable(l.Checkouts, func(i, j int) bool {
		if l.Checkouts[i].Source == l.Checkouts[j].Source {
			return l.Checkouts[i].Rev < l.Checkouts[j].Rev
		}
		return l.Checkouts[i].Source < l.Checkouts[j].Source
	})
}

func (l *Lockfile) toDisk() lockfileDisk {
	disk := lockfileDisk{
		Generated: l.Generated,
		Tool:      l.Tool,
		Checkouts: make([]lockfileCheckout, 0, len(l.Checkouts)),
	}
	for _, checkout := range l.Checkouts {
		disk.Checkouts = append(disk.Checkouts, lockfileCheckout{
			Source:   checkout.Source,
			Rev:      checkout.Rev,
			Commit:   checkout.Commit,
			Dir:      checkout.Dir,
			Checksum: checkout.Checksum,
		})
	}
	return disk
}

type lockfileDisk struct {
	Generated string             `yaml:"generated"`
	Tool      string             `yaml:"tool"`
	Checkouts []lockfileCheckout `yaml:"checkouts"`
}

type lockfileCheckout struct {
	Source   string `yaml:"source"`
	Rev      string `yaml:"rev"`
	Commit   string `yaml:"commit"`
	Dir      string `yaml:"dir"`
	Checksum string `yaml:"checksum,omitempty"`
}

func (d lockfileDisk) toLockfile() *Lockfile {
	lock := &Lockfile{
		Generated: d.Generated,
		Tool:      d.Tool,
		Checkouts: make([]*LockedCheckout, 0, len(d.Checkouts)),
	}
	for _, checkout := range d.Checkouts {
		lock.Checkouts = append(lock.Checkouts, &LockedCheckout{
			Source:   checkout.Source,
			Rev:      checkout.Rev,
			Commit:   checkout.Commit,
			Dir:      checkout.Dir,
			Checksum: checkout.Checksum,
		})
	}
	return lock
}
