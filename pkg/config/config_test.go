package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.MaxResultBytes != 65536 {
		t.Errorf("Expected default 65536, got %d", cfg.MaxResultBytes)
	}
	if !cfg.RestrictToWorkspace {
		t.Error("Expected restriction enabled by default")
	}
	if cfg.Workspace == "" {
		t.Error("Expected workspace resolved")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOOLWIRE_LOG_LEVEL", "debug")
	t.Setenv("TOOLWIRE_WORKSPACE", "/tmp/tw-test")
	t.Setenv("TOOLWIRE_MAX_RESULT_BYTES", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected 'debug', got '%s'", cfg.LogLevel)
	}
	if cfg.Workspace != "/tmp/tw-test" {
		t.Errorf("Expected workspace override, got '%s'", cfg.Workspace)
	}
	if cfg.MaxResultBytes != 1024 {
		t.Errorf("Expected 1024, got %d", cfg.MaxResultBytes)
	}
}
