package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error: %v", err)
	}
	if dir == "" {
		t.Fatal("GetConfigDir() returned empty path")
	}
	if !strings.Contains(dir, appName) {
		t.Errorf("config dir = %s, want path containing %q", dir, appName)
	}
}

func TestGetConfigPath(t *testing.T) {
	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error: %v", err)
	}
	if filepath.Base(path) != configFile {
		t.Errorf("config path = %s, want basename %s", path, configFile)
	}
}

func TestNewSettings(t *testing.T) {
	s := NewSettings()

	if s.Version != 1 {
		t.Errorf("Version = %d, want 1", s.Version)
	}
	if s.Device == nil {
		t.Fatal("Device settings should not be nil")
	}
	if s.Device.Host != "192.168.1.10" {
		t.Errorf("Host = %s, want 192.168.1.10", s.Device.Host)
	}
	if s.Device.Port != 5000 {
		t.Errorf("Port = %d, want 5000", s.Device.Port)
	}
	if s.Device.Ports != 8 {
		t.Errorf("Ports = %d, want 8", s.Device.Ports)
	}
	if s.Command.DelayMillis != 1000 {
		t.Errorf("DelayMillis = %d, want 1000", s.Command.DelayMillis)
	}
	if s.Command.Retries != 3 {
		t.Errorf("Retries = %d, want 3", s.Command.Retries)
	}
}

func TestSettingsSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	s := NewSettings()
	s.Device.Host = "10.0.0.20"
	s.Device.Ports = 16
	s.Command.Retries = 5

	data, err := marshalSettings(s)
	if err != nil {
		t.Fatalf("Failed to marshal settings: %v", err)
	}

	if err := os.WriteFile(testConfigPath, data, 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	loaded, err := loadSettingsFromFile(testConfigPath)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if loaded.Device.Host != "10.0.0.20" {
		t.Errorf("Loaded host = %s, want 10.0.0.20", loaded.Device.Host)
	}
	if loaded.Device.Ports != 16 {
		t.Errorf("Loaded ports = %d, want 16", loaded.Device.Ports)
	}
	if loaded.Command.Retries != 5 {
		t.Errorf("Loaded retries = %d, want 5", loaded.Command.Retries)
	}
}

func TestLoadSettingsFromFile_PartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	// Only the device section; command and tui prefs fall back to defaults
	partial := `version: 1
device:
  host: 10.0.0.30
  port: 5001
  ports: 4
`
	if err := os.WriteFile(testConfigPath, []byte(partial), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	loaded, err := loadSettingsFromFile(testConfigPath)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if loaded.Device.Host != "10.0.0.30" {
		t.Errorf("Loaded host = %s, want 10.0.0.30", loaded.Device.Host)
	}
	if loaded.Command == nil || loaded.Command.DelayMillis != 1000 {
		t.Errorf("Command prefs = %+v, want defaults", loaded.Command)
	}
	if loaded.TUI == nil {
		t.Error("TUI prefs should fall back to defaults")
	}
}

func TestLoadSettingsFromFile_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(testConfigPath, []byte("version: [not closed"), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := loadSettingsFromFile(testConfigPath); err == nil {
		t.Fatal("loading malformed yaml should fail")
	}
}

func TestLoadSettingsFromFile_UnsupportedVersion(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(testConfigPath, []byte("version: 99\n"), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := loadSettingsFromFile(testConfigPath)
	if err == nil {
		t.Fatal("loading an unsupported version should fail")
	}
	if !strings.Contains(err.Error(), "version") {
		t.Errorf("error = %v, want mention of version", err)
	}
}

func TestMarshalSettings_Header(t *testing.T) {
	data, err := marshalSettings(NewSettings())
	if err != nil {
		t.Fatalf("marshalSettings() error: %v", err)
	}
	if !strings.HasPrefix(string(data), "# kvmctl configuration file") {
		t.Error("marshaled config should start with the header comment")
	}
}
