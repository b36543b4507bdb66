package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func writeLog(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, path, []byte(`{"type":"test"}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestProjects(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := "/logs"

	writeLog(t, fs, filepath.Join(base, "-home-alice-src-app", "b.jsonl"))
	writeLog(t, fs, filepath.Join(base, "-home-alice-src-app", "a.jsonl.zst"))
	writeLog(t, fs, filepath.Join(base, "-home-alice-src-app", "notes.txt"))
	writeLog(t, fs, filepath.Join(base, "-opt-tool", "c.jsonl"))
	writeLog(t, fs, filepath.Join(base, "empty", "settings.json"))
	writeLog(t, fs, filepath.Join(base, "stray.jsonl"))

	got, err := Projects(fs, base)
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}

	want := []Project{
		{
			Dir:  filepath.Join(base, "-home-alice-src-app"),
			Name: "~/alice/src/app",
			Logs: []string{
				filepath.Join(base, "-home-alice-src-app", "a.jsonl.zst"),
				filepath.Join(base, "-home-alice-src-app", "b.jsonl"),
			},
		},
		{
			Dir:  filepath.Join(base, "-opt-tool"),
			Name: "/opt/tool",
			Logs: []string{filepath.Join(base, "-opt-tool", "c.jsonl")},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Projects mismatch (-want +got):\n%s", diff)
	}
}

func TestProjects_MissingDir(t *testing.T) {
	if _, err := Projects(afero.NewMemMapFs(), "/nope"); err == nil {
		t.Error("expected error for missing log dir")
	}
}

func TestLogs_PlainShadowsCompressed(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeLog(t, fs, "/p/s1.jsonl")
	writeLog(t, fs, "/p/s1.jsonl.zst")
	writeLog(t, fs, "/p/s2.jsonl.zst")

	got, err := Logs(fs, "/p")
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	want := []string{"/p/s1.jsonl", "/p/s2.jsonl.zst"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Logs mismatch (-want +got):\n%s", diff)
	}
}

func TestReadableName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"-home-alice-src-app", "~/alice/src/app"},
		{"-opt-tool", "/opt/tool"},
		{"-Users-bob-code", "/Users/bob/code"},
		{"scratch", "scratch"},
		{"/logs/-home-carol-x", "~/carol/x"},
	}
	for _, tt := range tests {
		if got := ReadableName(tt.in); got != tt.want {
			t.Errorf("ReadableName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindBySessionID(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := "/logs"

	id := "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	expected := filepath.Join(base, "proj-a", id+".jsonl")
	writeLog(t, fs, expected)

	path, err := FindBySessionID(fs, base, id)
	if err != nil {
		t.Fatalf("FindBySessionID: %v", err)
	}
	if path != expected {
		t.Errorf("path = %q, want %q", path, expected)
	}

	// Not found
	_, err = FindBySessionID(fs, base, "00000000-0000-0000-0000-000000000000")
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got: %v", err)
	}
}

func TestFindBySessionIDCompressed(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := "/logs"

	id := "11111111-2222-3333-4444-555555555555"
	expected := filepath.Join(base, "proj", id+".jsonl.zst")
	writeLog(t, fs, expected)

	path, err := FindBySessionID(fs, base, id)
	if err != nil {
		t.Fatalf("FindBySessionID: %v", err)
	}
	if path != expected {
		t.Errorf("path = %q, want %q", path, expected)
	}
}
