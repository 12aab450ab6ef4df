package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Environment variables providing flag defaults.
const (
	envMax    = "RANGEEXPR_MAX"
	envFormat = "RANGEEXPR_FORMAT"
	envColor  = "RANGEEXPR_COLOR"
)

var envDefaults = []struct {
	flag string
	key  string
}{
	{flag: "max", key: envMax},
	{flag: "format", key: envFormat},
	{flag: "color", key: envColor},
}

// loadEnv loads the dotenv file, if any, and applies environment defaults to
// flags that were not given on the command line.
func loadEnv(cmd *cobra.Command, args []string) error {
	if err := loadEnvFile(envFile); err != nil {
		return err
	}
	for _, d := range envDefaults {
		if err := applyEnvDefault(cmd, d.flag, d.key); err != nil {
			return err
		}
	}
	return nil
}

// loadEnvFile loads path, or .env from the current directory when path is
// empty and the file exists. Variables already set are not overridden.
func loadEnvFile(path string) error {
	if path == "" {
		if !fileExists(".env") {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func applyEnvDefault(cmd *cobra.Command, name, key string) error {
	f := cmd.Flags().Lookup(name)
	if f == nil || f.Changed {
		return nil
	}
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	if err := f.Value.Set(value); err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
