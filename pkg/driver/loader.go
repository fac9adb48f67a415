package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"snail/interpreter-go/pkg/interpreter"
)

// Source is a program ready to run: its text plus the project settings that
// apply to it.
type Source struct {
	Name     string
	Path     string
	Text     string
	Inputs   []string
	Division interpreter.DivisionMode
	Manifest *Manifest
}

// LoadSource resolves entry relative to dir. entry may be a path to a .snail
// file, the name of a program in the nearest snail.yml, or empty to select
// the manifest's default program. A file outside any project runs with
// default settings.
func LoadSource(dir, entry string) (*Source, error) {
	entry = strings.TrimSpace(entry)
	if entry != "" && looksLikePath(entry) {
		path := entry
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return loadFile(path)
	}

	manifestPath, err := FindManifest(dir)
	if err != nil {
		if errors.Is(err, ErrManifestNotFound) && entry != "" {
			return nil, fmt.Errorf("no %s file %q and no %s to look up program %q", SourceExt, entry, ManifestName, entry)
		}
		return nil, err
	}
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	var program *ProgramSpec
	if entry == "" {
		program, err = manifest.DefaultProgram()
		if err != nil {
			return nil, err
		}
	} else {
		var ok bool
		program, ok = manifest.Program(entry)
		if !ok {
			return nil, fmt.Errorf("manifest %s has no program %q", manifest.Path, entry)
		}
	}
	return loadProgram(manifest, program)
}

func loadFile(path string) (*Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	text, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	src := &Source{
		Name: strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)),
		Path: abs,
		Text: string(text),
	}
	if manifestPath, err := FindManifest(filepath.Dir(abs)); err == nil {
		manifest, err := LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		src.Manifest = manifest
		src.Division = manifest.Division()
		for _, name := range manifest.ProgramOrder {
			program := manifest.Programs[name]
			if filepath.Clean(manifest.MainPath(program)) == filepath.Clean(abs) {
				src.Name = program.Name
				src.Inputs = append([]string(nil), program.Inputs...)
				break
			}
		}
	} else if !errors.Is(err, ErrManifestNotFound) {
		return nil, err
	}
	return src, nil
}

func loadProgram(manifest *Manifest, program *ProgramSpec) (*Source, error) {
	path := manifest.MainPath(program)
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program %q: read %s: %w", program.Name, path, err)
	}
	return &Source{
		Name:     program.Name,
		Path:     path,
		Text:     string(text),
		Inputs:   append([]string(nil), program.Inputs...),
		Division: manifest.Division(),
		Manifest: manifest,
	}, nil
}

func looksLikePath(entry string) bool {
	if strings.HasSuffix(entry, SourceExt) {
		return true
	}
	return strings.ContainsRune(entry, '/') || strings.ContainsRune(entry, filepath.Separator)
}
