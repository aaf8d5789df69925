package config

type Config struct {
	Project ProjectConfig  `yaml:"project"`
	Server  ServerConfig   `yaml:"server"`
	Install InstallConfig  `yaml:"install"`
	Watch   WatchConfig    `yaml:"watch"`
	Workers []WorkerConfig `yaml:"workers"`
	UI      UIConfig       `yaml:"ui"`
}

type ProjectConfig struct {
	Name string `yaml:"name"`
	Root string `yaml:"root"`
}

type ServerConfig struct {
	Command  string `yaml:"command"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Protocol string `yaml:"protocol"`
}

// InstallConfig describes the one-off dependency install step. The
// command runs before workers start whenever Marker does not exist.
type InstallConfig struct {
	Command string `yaml:"command"`
	Marker  string `yaml:"marker"`
}

type WatchConfig struct {
	Paths      []string `yaml:"paths"`
	Ignore     []string `yaml:"ignore"`
	DebounceMs int      `yaml:"debounce_ms"`
}

// WorkerConfig describes one background worker. Suppress lists output
// substrings that mean "no issues" — sections matching any of them are
// hidden from the dashboard.
type WorkerConfig struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Command  string   `yaml:"command"`
	Suppress []string `yaml:"suppress"`
}

type UIConfig struct {
	Theme string `yaml:"theme"`
}
