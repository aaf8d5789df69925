package detect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

var portRe = regexp.MustCompile(`(?:--port[= ]|-p )(\d{2,5})`)

// Result holds what static analysis could figure out about a project.
// Empty fields mean "not detected"; init falls back to defaults.
type Result struct {
	ProjectName    string
	ServerCommand  string
	InstallCommand string
	Port           int
	TypeScript     bool
}

// Detect inspects root for the usual web-project markers.
func Detect(root string) (*Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	r := &Result{
		ProjectName:    filepath.Base(absRoot),
		InstallCommand: detectInstall(absRoot),
		TypeScript:     fileExists(filepath.Join(absRoot, "tsconfig.json")),
	}
	r.ServerCommand, r.Port = detectServer(absRoot)
	return r, nil
}

func detectInstall(root string) string {
	switch {
	case fileExists(filepath.Join(root, "yarn.lock")):
		return "yarn install"
	case fileExists(filepath.Join(root, "pnpm-lock.yaml")):
		return "pnpm install"
	case fileExists(filepath.Join(root, "package.json")):
		return "npm install"
	}
	return ""
}

// detectServer reads package.json scripts: a "dev" script wins over
// "start". The port is scraped from the script text when it carries an
// explicit --port/-p flag.
func detectServer(root string) (string, int) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return "", 0
	}

	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", 0
	}

	if script, ok := pkg.Scripts["dev"]; ok {
		return "npm run dev", scrapePort(script)
	}
	if script, ok := pkg.Scripts["start"]; ok {
		return "npm start", scrapePort(script)
	}
	return "", 0
}

func scrapePort(script string) int {
	m := portRe.FindStringSubmatch(script)
	if m == nil {
		return 0
	}
	port, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return port
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
