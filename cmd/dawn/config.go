package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// Config holds driver defaults read from an optional dawn.toml next to
// the invocation; flags override it.
type Config struct {
	Color  string `toml:"color"`
	Format string `toml:"format"`
	Jobs   int    `toml:"jobs"`
}

func loadConfig() Config {
	cfg := Config{Color: "auto", Format: "text"}
	data, err := os.ReadFile("dawn.toml")
	if err != nil {
		return cfg
	}
	// a malformed config is ignored rather than fatal; flags still work
	_ = toml.Unmarshal(data, &cfg)
	return cfg
}

// colorEnabled resolves the color mode from the flag, falling back to the
// config file, then to stderr being a terminal.
func colorEnabled(cmd *cobra.Command, cfg Config) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	if mode == "" {
		mode = cfg.Color
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		info, err := os.Stderr.Stat()
		return err == nil && info.Mode()&os.ModeCharDevice != 0
	}
}

func jobsFlag(cmd *cobra.Command, cfg Config) int {
	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")
	if jobs == 0 {
		jobs = cfg.Jobs
	}
	return jobs
}
