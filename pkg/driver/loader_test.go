package driver

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"snail/interpreter-go/pkg/interpreter"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, contents := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadSourceByProgramName(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"snail.yml":       "name: demo\ndivision_by_zero: error\nprograms:\n  hello: hello.snail\n  sum:\n    main: src/sum.snail\n    inputs: [\"2\", \"3\"]\n",
		"hello.snail":     `BEGIN PRESENT "hi" STOP`,
		"src/sum.snail":   "BEGIN STOP",
		"src/other.snail": "BEGIN STOP",
	})
	src, err := LoadSource(filepath.Join(dir, "src"), "sum")
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if src.Name != "sum" || src.Text != "BEGIN STOP" {
		t.Fatalf("unexpected source %#v", src)
	}
	if !reflect.DeepEqual(src.Inputs, []string{"2", "3"}) {
		t.Fatalf("Inputs = %v", src.Inputs)
	}
	if src.Division != interpreter.DivisionError {
		t.Fatalf("expected division mode from manifest")
	}

	def, err := LoadSource(dir, "")
	if err != nil {
		t.Fatalf("LoadSource default: %v", err)
	}
	if def.Name != "hello" || def.Path != filepath.Join(dir, "hello.snail") {
		t.Fatalf("unexpected default source %#v", def)
	}

	if _, err := LoadSource(dir, "missing"); err == nil {
		t.Fatalf("expected missing program error")
	}
}

func TestLoadSourceByPath(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"snail.yml":       "name: demo\nprograms:\n  sum:\n    main: src/sum.snail\n    inputs: [\"7\"]\n",
		"src/sum.snail":   "BEGIN STOP",
		"src/other.snail": `BEGIN PRESENT 1 STOP`,
	})
	src, err := LoadSource(dir, "src/sum.snail")
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if src.Name != "sum" || !reflect.DeepEqual(src.Inputs, []string{"7"}) || src.Manifest == nil {
		t.Fatalf("expected manifest program settings, got %#v", src)
	}
	other, err := LoadSource(dir, "src/other.snail")
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if other.Name != "other" || other.Inputs != nil {
		t.Fatalf("unexpected source %#v", other)
	}
}

func TestLoadSourceWithoutManifest(t *testing.T) {
	dir := writeProject(t, map[string]string{"solo.snail": "BEGIN STOP"})
	src, err := LoadSource(dir, "solo.snail")
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if src.Manifest != nil || src.Division != interpreter.DivisionIEEE || src.Name != "solo" {
		t.Fatalf("unexpected source %#v", src)
	}
	if _, err := LoadSource(dir, "nope.snail"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
