package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"reagent/pkg/engine"
	"reagent/pkg/logging"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: reagent [flags]\n\nInteractive console agent. Type a question, get an answer; the model may\ncall tools along the way.\n\nFlags:\n")
		flag.PrintDefaults()
	}

	configPath := flag.String("config", "", "path to configuration file (default: built-in local Ollama config)")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	model := flag.String("model", "", "model name (overrides config)")
	baseURL := flag.String("base-url", "", "model backend base URL (overrides config)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configPath, *model, *baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, model, baseURL string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if model != "" {
		cfg.Provider.Model = model
	}
	if baseURL != "" {
		cfg.Provider.BaseURL = baseURL
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	eng, err := engine.New(cfg, logger)
	if err != nil {
		return err
	}

	c := newConsole(os.Stdin, os.Stdout, eng)

	return c.loop()
}

// loadConfig reads the config at path, or returns the built-in default when
// no path was given.
func loadConfig(path string) (engine.Config, error) {
	if path == "" {
		return engine.DefaultConfig(), nil
	}

	return engine.LoadConfig(path)
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
