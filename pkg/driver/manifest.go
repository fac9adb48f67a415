package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"snail/interpreter-go/pkg/interpreter"
)

// ManifestName is the project file looked up by FindManifest.
const ManifestName = "snail.yml"

// SourceExt is the extension of Snail source files.
const SourceExt = ".snail"

var (
	ErrManifestNotFound = errors.New("manifest: snail.yml not found")
	ErrNoPrograms       = errors.New("manifest: no programs defined")
)

// Manifest represents the parsed contents of snail.yml.
type Manifest struct {
	Path           string
	Dir            string
	Name           string
	DivisionByZero string
	Programs       map[string]*ProgramSpec
	ProgramOrder   []string
}

// ProgramSpec describes one runnable source file of the project.
type ProgramSpec struct {
	Name   string
	Main   string
	Inputs []string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses snail.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from dir up to the filesystem root looking for snail.yml.
func FindManifest(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrManifestNotFound
		}
		current = parent
	}
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if _, err := interpreter.ParseDivisionMode(m.DivisionByZero); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("division_by_zero must be ieee or error, got %q", m.DivisionByZero))
	}
	for _, name := range m.ProgramOrder {
		program := m.Programs[name]
		if program.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("program %q requires a main entrypoint", name))
			continue
		}
		if filepath.IsAbs(program.Main) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("program %q main must be relative to the manifest", name))
		}
		if filepath.Ext(program.Main) != SourceExt {
			errs.Issues = append(errs.Issues, fmt.Sprintf("program %q main %q must have the %s extension", name, program.Main, SourceExt))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Division returns the interpreter option selected by division_by_zero.
func (m *Manifest) Division() interpreter.DivisionMode {
	if m == nil {
		return interpreter.DivisionIEEE
	}
	mode, _ := interpreter.ParseDivisionMode(m.DivisionByZero)
	return mode
}

// Program looks up a program by name (case-insensitive).
func (m *Manifest) Program(name string) (*ProgramSpec, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if program, ok := m.Programs[name]; ok {
		return program, true
	}
	for _, key := range m.ProgramOrder {
		if strings.EqualFold(key, name) {
			return m.Programs[key], true
		}
	}
	return nil, false
}

// DefaultProgram returns the first program in manifest order.
func (m *Manifest) DefaultProgram() (*ProgramSpec, error) {
	if m == nil || len(m.ProgramOrder) == 0 {
		return nil, ErrNoPrograms
	}
	return m.Programs[m.ProgramOrder[0]], nil
}

// MainPath resolves a program's entrypoint against the manifest directory.
func (m *Manifest) MainPath(program *ProgramSpec) string {
	return filepath.Join(m.Dir, filepath.FromSlash(program.Main))
}

type manifestFile struct {
	Name           string     `yaml:"name"`
	DivisionByZero string     `yaml:"division_by_zero"`
	Programs       programMap `yaml:"programs"`
}

type programYAML struct {
	Main   string   `yaml:"main"`
	Inputs []string `yaml:"inputs"`
}

type programMap struct {
	items []programMapEntry
}

type programMapEntry struct {
	name string
	spec programYAML
}

// UnmarshalYAML keeps programs in file order and accepts the shorthand
// "name: path.snail" next to the full mapping form.
func (pm *programMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		pm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		pm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: programs must be a mapping")
	}
	items := make([]programMapEntry, 0, len(value.Content)/2)
	seen := make(map[string]struct{}, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: programs must not use empty keys")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("manifest: program %q defined twice", key)
		}
		seen[key] = struct{}{}
		var entry programYAML
		switch valueNode.Kind {
		case yaml.ScalarNode:
			if err := valueNode.Decode(&entry.Main); err != nil {
				return fmt.Errorf("manifest: program %q: %w", key, err)
			}
		default:
			if err := valueNode.Decode(&entry); err != nil {
				return fmt.Errorf("manifest: program %q: %w", key, err)
			}
		}
		items = append(items, programMapEntry{name: key, spec: entry})
	}
	pm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:           path,
		Dir:            filepath.Dir(path),
		Name:           strings.TrimSpace(mf.Name),
		DivisionByZero: strings.ToLower(strings.TrimSpace(mf.DivisionByZero)),
		Programs:       make(map[string]*ProgramSpec, len(mf.Programs.items)),
		ProgramOrder:   make([]string, 0, len(mf.Programs.items)),
	}
	for _, item := range mf.Programs.items {
		result.Programs[item.name] = &ProgramSpec{
			Name:   item.name,
			Main:   strings.TrimSpace(item.spec.Main),
			Inputs: append([]string(nil), item.spec.Inputs...),
		}
		result.ProgramOrder = append(result.ProgramOrder, item.name)
	}
	return result
}
