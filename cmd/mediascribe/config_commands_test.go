package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndShow(t *testing.T) {
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")

	out, err := runCLI(t, configPath, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "wrote sample config")
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("expected config file at %s: %v", configPath, err)
	}

	// init refuses to overwrite an existing file
	if _, err := runCLI(t, configPath, "config", "init"); err == nil {
		t.Fatal("expected error re-running config init")
	}

	out, err = runCLI(t, configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[paths]")
	requireContains(t, out, "[summarizer]")
}

func TestCacheListEmpty(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, err := runCLI(t, configPath, "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "cache is empty")
}
