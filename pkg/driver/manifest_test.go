package driver

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"snail/interpreter-go/pkg/interpreter"
)

func TestLoadManifestBasic(t *testing.T) {
	path := writeManifest(t, `
name: demo
division_by_zero: ERROR
programs:
  hello: hello.snail
  quiz:
    main: games/quiz.snail
    inputs: ["3", "4"]
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if manifest.Name != "demo" {
		t.Fatalf("Name = %q", manifest.Name)
	}
	if manifest.Division() != interpreter.DivisionError {
		t.Fatalf("Division = %v, want error", manifest.Division())
	}
	if got, want := manifest.ProgramOrder, []string{"hello", "quiz"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ProgramOrder = %v, want %v", got, want)
	}
	quiz, ok := manifest.Program("quiz")
	if !ok {
		t.Fatalf("quiz program missing")
	}
	if quiz.Main != "games/quiz.snail" || !reflect.DeepEqual(quiz.Inputs, []string{"3", "4"}) {
		t.Fatalf("quiz parsed wrong: %#v", quiz)
	}
	if got, want := manifest.MainPath(quiz), filepath.Join(filepath.Dir(path), "games", "quiz.snail"); got != want {
		t.Fatalf("MainPath = %q, want %q", got, want)
	}
	if _, ok := manifest.Program("QUIZ"); !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
	if _, ok := manifest.Program("missing"); ok {
		t.Fatalf("expected missing program lookup to fail")
	}
	def, err := manifest.DefaultProgram()
	if err != nil || def.Name != "hello" {
		t.Fatalf("DefaultProgram = %#v, %v", def, err)
	}
}

func TestLoadManifestDefaultsToIEEE(t *testing.T) {
	manifest, err := LoadManifest(writeManifest(t, "name: demo\n"))
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if manifest.Division() != interpreter.DivisionIEEE {
		t.Fatalf("expected IEEE division by default")
	}
	if _, err := manifest.DefaultProgram(); !errors.Is(err, ErrNoPrograms) {
		t.Fatalf("expected ErrNoPrograms, got %v", err)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	path := writeManifest(t, `
name: ""
division_by_zero: trap
programs:
  empty:
    inputs: ["1"]
  wrong: main.txt
  rooted: /abs/main.snail
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	msg := err.Error()
	for _, fragment := range []string{
		"name must be provided",
		`division_by_zero must be ieee or error, got "trap"`,
		`program "empty" requires a main entrypoint`,
		`program "wrong" main "main.txt" must have the .snail extension`,
		`program "rooted" main must be relative to the manifest`,
	} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("validation error missing fragment %q: %s", fragment, msg)
		}
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, "name: demo\nversion: 1\n"))
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadManifestRejectsDuplicatePrograms(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, "name: demo\nprograms:\n  a: a.snail\n  a: b.snail\n"))
	if err == nil {
		t.Fatalf("expected duplicate program error")
	}
}

func TestLoadManifestEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	path := writeManifest(t, "name: demo\n")
	nested := filepath.Join(filepath.Dir(path), "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if found != path {
		t.Fatalf("FindManifest = %q, want %q", found, path)
	}
}

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}
