package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/justinpbarnett/devtop/internal/detect"
)

const tscWorkerBlock = `
workers:
  - id: tsc
    label: TypeScript
    command: "npx tsc --watch --noEmit --preserveWatchOutput"
    suppress: ["Found 0 errors"]
`

// runInit writes a starter devtop.yaml seeded from static project
// detection. An existing config file is never overwritten.
func runInit(dir string) error {
	path := filepath.Join(dir, "devtop.yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	result, err := detect.Detect(dir)
	if err != nil {
		return fmt.Errorf("project detection: %w", err)
	}

	serverCommand := result.ServerCommand
	if serverCommand == "" {
		serverCommand = "npm run dev"
	}
	port := result.Port
	if port == 0 {
		port = 3000
	}

	content := fmt.Sprintf(`project:
  name: %s

server:
  command: %q
  host: localhost
  port: %d
  protocol: http://

watch:
  paths: ["."]
  ignore: [node_modules, .git, dist, build]
  debounce_ms: 100
`, result.ProjectName, serverCommand, port)

	if result.InstallCommand != "" {
		content += fmt.Sprintf(`
install:
  command: %q
  marker: node_modules
`, result.InstallCommand)
	}
	if result.TypeScript {
		content += tscWorkerBlock
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("  created %s\n", path)
	if result.ServerCommand != "" {
		fmt.Printf("  detected dev server: %s\n", result.ServerCommand)
	}
	if result.TypeScript {
		fmt.Println("  detected TypeScript: added tsc worker")
	}
	return nil
}
