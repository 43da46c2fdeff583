package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestArchiveExport(t *testing.T) {
	tmpDir := t.TempDir()
	exportPath := filepath.Join(tmpDir, "episode1_exercises.json")
	if err := os.WriteFile(exportPath, []byte(`{"count":0}`), 0644); err != nil {
		t.Fatalf("Failed to create export: %v", err)
	}

	archived, err := ArchiveExport(exportPath)
	if err != nil {
		t.Fatalf("ArchiveExport failed: %v", err)
	}

	if _, err := os.Stat(exportPath); !os.IsNotExist(err) {
		t.Error("Export still exists after archiving")
	}
	if filepath.Dir(archived) != filepath.Join(tmpDir, "archive") {
		t.Errorf("Archived into %s, want the archive directory", filepath.Dir(archived))
	}

	name := filepath.Base(archived)
	if !strings.HasPrefix(name, "episode1_exercises-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("Unexpected archive name: %s", name)
	}

	content, err := os.ReadFile(archived)
	if err != nil {
		t.Fatalf("Failed to read archived file: %v", err)
	}
	if string(content) != `{"count":0}` {
		t.Errorf("Archived content = %q", content)
	}
}

func TestArchiveExportMissing(t *testing.T) {
	archived, err := ArchiveExport(filepath.Join(t.TempDir(), "nothing.json"))
	if err != nil {
		t.Errorf("Expected no error for missing file, got %v", err)
	}
	if archived != "" {
		t.Errorf("Expected empty path, got %s", archived)
	}
}

func TestArchiveExportDirectory(t *testing.T) {
	if _, err := ArchiveExport(t.TempDir()); err == nil {
		t.Error("Expected error when archiving a directory")
	}
}

func TestArchiveSameSecond(t *testing.T) {
	tmpDir := t.TempDir()
	exportPath := filepath.Join(tmpDir, "out.csv")
	now := time.Date(2024, 5, 6, 7, 8, 9, 123456000, time.UTC)

	var paths []string
	for i := 0; i < 2; i++ {
		if err := os.WriteFile(exportPath, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		p, err := archiveAt(exportPath, now)
		if err != nil {
			t.Fatalf("archiveAt failed: %v", err)
		}
		paths = append(paths, p)
	}

	if paths[0] == paths[1] {
		t.Fatalf("Both archives share the name %s", paths[0])
	}
	if filepath.Base(paths[0]) != "out-20240506-070809.csv" {
		t.Errorf("First archive = %s", filepath.Base(paths[0]))
	}
	if filepath.Base(paths[1]) != "out-20240506-070809.123456.csv" {
		t.Errorf("Second archive = %s", filepath.Base(paths[1]))
	}
}
