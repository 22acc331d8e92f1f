package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PandocPath != "pandoc" {
		t.Errorf("Expected default pandoc_path to be pandoc, got %q", cfg.PandocPath)
	}
	if !cfg.PreserveAttributes {
		t.Error("Expected attribute preservation to default to true")
	}
	if cfg.DefaultOptions == nil {
		t.Error("Expected DefaultOptions to be an empty slice, not nil")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "empty pandoc_path",
			config: &Config{
				PandocPath: "",
			},
			wantErr: true,
		},
		{
			name: "custom pandoc path",
			config: &Config{
				PandocPath: "/opt/pandoc/bin/pandoc",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	// Create a temporary directory for test config
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	// Override ConfigPath for testing
	originalConfigPath := ConfigPath
	ConfigPath = func() string {
		return testConfigPath
	}
	defer func() {
		ConfigPath = originalConfigPath
	}()

	// Create test config
	testCfg := &Config{
		PandocPath:         "/usr/local/bin/pandoc",
		DefaultOptions:     []string{"--wrap=none"},
		PreserveAttributes: false,
		LogFile:            "/tmp/richbridge-test.log",
	}

	// Save config
	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	// Check file exists
	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	// Load config
	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.PandocPath != testCfg.PandocPath {
		t.Errorf("PandocPath mismatch: got %q, want %q", loadedCfg.PandocPath, testCfg.PandocPath)
	}
	if loadedCfg.PreserveAttributes != testCfg.PreserveAttributes {
		t.Errorf("PreserveAttributes mismatch: got %v, want %v",
			loadedCfg.PreserveAttributes, testCfg.PreserveAttributes)
	}
	if len(loadedCfg.DefaultOptions) != 1 || loadedCfg.DefaultOptions[0] != "--wrap=none" {
		t.Errorf("DefaultOptions mismatch: got %v", loadedCfg.DefaultOptions)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	// Create a temporary directory
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "nonexistent.yaml")

	// Override ConfigPath for testing
	originalConfigPath := ConfigPath
	ConfigPath = func() string {
		return testConfigPath
	}
	defer func() {
		ConfigPath = originalConfigPath
	}()

	// Load should return default config when file doesn't exist
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}

	if cfg.PandocPath != "pandoc" {
		t.Errorf("Expected default pandoc_path, got %q", cfg.PandocPath)
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		contains string // The output should contain this
	}{
		{
			name:     "tilde expansion",
			input:    "~/test",
			contains: homeDir,
		},
		{
			name:     "tilde only",
			input:    "~",
			contains: homeDir,
		},
		{
			name:     "absolute path",
			input:    "/tmp/test",
			contains: "/tmp/test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if result == "" {
				t.Error("expandPath() returned empty string")
			}
			// Just verify it's not the original unexpanded path
			if tt.input[0] == '~' && result == tt.input {
				t.Errorf("Path was not expanded: %s", result)
			}
		})
	}
}

func TestBarePandocCommandNotExpanded(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	originalConfigPath := ConfigPath
	ConfigPath = func() string {
		return testConfigPath
	}
	defer func() {
		ConfigPath = originalConfigPath
	}()

	testCfg := DefaultConfig()
	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// A bare command name must keep resolving via PATH
	if loadedCfg.PandocPath != "pandoc" {
		t.Errorf("Bare command was rewritten to %q", loadedCfg.PandocPath)
	}
}
