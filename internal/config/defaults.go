package config

func DefaultConfig() Config {
	return Config{
		Project: ProjectConfig{
			Root: ".",
		},
		Server: ServerConfig{
			Command:  "npm run dev",
			Host:     "localhost",
			Port:     3000,
			Protocol: "http://",
		},
		Install: InstallConfig{
			Marker: "node_modules",
		},
		Watch: WatchConfig{
			Paths:      []string{"."},
			Ignore:     []string{"node_modules", ".git", "dist", "build", ".next"},
			DebounceMs: 100,
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
}
