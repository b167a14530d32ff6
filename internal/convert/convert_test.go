package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tool := filepath.Join(dir, "DSFTool")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	opts := Options{SceneryDir: dir, ToolPath: tool}

	// Missing Earth nav data.
	if err := checkTree(opts); err == nil || !strings.Contains(err.Error(), NavDataDir) {
		t.Fatalf("expected nav data error, got %v", err)
	}

	navDir := filepath.Join(dir, NavDataDir)
	if err := os.MkdirAll(navDir, 0o755); err != nil {
		t.Fatal(err)
	}

	// Missing apt.dat.
	if err := checkTree(opts); err == nil || !strings.Contains(err.Error(), AptDat) {
		t.Fatalf("expected apt.dat error, got %v", err)
	}

	if err := os.WriteFile(filepath.Join(navDir, AptDat), []byte("99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := checkTree(opts); err != nil {
		t.Fatalf("complete tree rejected: %v", err)
	}

	// Missing tool.
	opts.ToolPath = filepath.Join(dir, "nonexistent")
	if err := checkTree(opts); err == nil || !strings.Contains(err.Error(), "DSFTool") {
		t.Fatalf("expected tool error, got %v", err)
	}
}

func TestCountMismatchError(t *testing.T) {
	t.Parallel()

	err := &CountMismatchError{Defined: 12, Matched: 10}
	msg := err.Error()
	if !strings.Contains(msg, "12") || !strings.Contains(msg, "10") {
		t.Errorf("message must carry both counts: %q", msg)
	}
}

func TestCopyTree(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"apt.dat":      "1 123\n99\n",
		"sub/tile.dsf": "binary-ish",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	dst := filepath.Join(t.TempDir(), "copy")
	if err := copyTree(src, dst); err != nil {
		t.Fatalf("copyTree: %v", err)
	}

	for name, content := range files {
		raw, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if string(raw) != content {
			t.Errorf("%s: content mismatch", name)
		}
	}
}

func TestManifestRoundTrip(t *testing.T) {
	t.Parallel()

	m := manifest{JwType: 2}
	m.add(`Earth nav data\+40-080\tile.dsf`, []string{"a", "b"})

	if m.Tiles[0].Path != "Earth nav data/+40-080/tile.dsf" {
		t.Errorf("path not normalized: %q", m.Tiles[0].Path)
	}
	if len(m.Tiles[0].Hash) != 16 {
		t.Errorf("hash not 64-bit hex: %q", m.Tiles[0].Hash)
	}

	path := filepath.Join(t.TempDir(), ManifestFile)
	if err := m.write(path); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "jw_type: 2") {
		t.Errorf("manifest content unexpected:\n%s", raw)
	}
}

func TestRunRejectsBadJwType(t *testing.T) {
	t.Parallel()

	err := Run(Options{JwType: 7}, nil)
	if err == nil || !strings.Contains(err.Error(), "0..3") {
		t.Fatalf("expected jetway type error, got %v", err)
	}
}
