package main

import (
	"path/filepath"
	"testing"

	"github.com/sallieha/HabitTrackerApp/internal/constants"
)

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	flag := filepath.Join(dir, "flag.yaml")
	env := filepath.Join(dir, "env.yaml")

	t.Setenv(constants.EnvConfigPath, env)
	if got := configPath(flag); got != flag {
		t.Errorf("configPath(flag) = %s, want %s", got, flag)
	}
	if got := configPath(""); got != env {
		t.Errorf("configPath(\"\") with env = %s, want %s", got, env)
	}

	t.Setenv(constants.EnvConfigPath, "")
	if got := configPath(""); filepath.Base(got) != "config.yaml" || got == constants.DefaultConfigFile {
		t.Errorf("configPath(\"\") = %s, want expanded default", got)
	}
}

func TestNeedsDatabase(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"init", false},
		{"settings", false},
		{"keyring set <conn-str>", false},
		{"keyring status", false},
		{"calendar", true},
		{"goal add <title>", true},
		{"backup restore", true},
		{"", true},
	}
	for _, tt := range tests {
		if got := needsDatabase(tt.command); got != tt.want {
			t.Errorf("needsDatabase(%q) = %v, want %v", tt.command, got, tt.want)
		}
	}
}
