package detect

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectEmptyDir(t *testing.T) {
	tmp := t.TempDir()

	r, err := Detect(tmp)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if r.ProjectName != filepath.Base(tmp) {
		t.Errorf("project name = %q", r.ProjectName)
	}
	if r.ServerCommand != "" || r.InstallCommand != "" || r.TypeScript {
		t.Errorf("nothing should be detected in an empty dir: %+v", r)
	}
}

func TestDetectNodeProject(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "package.json", `{"scripts": {"dev": "vite --port 5173", "start": "node server.js"}}`)
	writeFile(t, tmp, "package-lock.json", "{}")
	writeFile(t, tmp, "tsconfig.json", "{}")

	r, err := Detect(tmp)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if r.ServerCommand != "npm run dev" {
		t.Errorf("server command = %q", r.ServerCommand)
	}
	if r.Port != 5173 {
		t.Errorf("port = %d, want 5173", r.Port)
	}
	if r.InstallCommand != "npm install" {
		t.Errorf("install command = %q", r.InstallCommand)
	}
	if !r.TypeScript {
		t.Error("expected TypeScript detection from tsconfig.json")
	}
}

func TestDetectYarnWinsOverNpm(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "package.json", `{"scripts": {"start": "next start"}}`)
	writeFile(t, tmp, "yarn.lock", "")

	r, err := Detect(tmp)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if r.InstallCommand != "yarn install" {
		t.Errorf("install command = %q", r.InstallCommand)
	}
	if r.ServerCommand != "npm start" {
		t.Errorf("server command = %q", r.ServerCommand)
	}
}

func TestScrapePort(t *testing.T) {
	tests := []struct {
		script string
		want   int
	}{
		{"vite --port 5173", 5173},
		{"next dev -p 4000", 4000},
		{"webpack serve --port=9000", 9000},
		{"node server.js", 0},
	}
	for _, tt := range tests {
		if got := scrapePort(tt.script); got != tt.want {
			t.Errorf("scrapePort(%q) = %d, want %d", tt.script, got, tt.want)
		}
	}
}
