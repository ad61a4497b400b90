package config

// Settings represents the entire user configuration file.
// It stores the device endpoint and command pacing preferences so they
// do not have to be repeated as flags on every invocation.
type Settings struct {
	Version int             `yaml:"version"`
	Device  *DeviceSettings `yaml:"device,omitempty"`
	Command *CommandPrefs   `yaml:"command,omitempty"`
	TUI     *TUIPrefs       `yaml:"tui,omitempty"`
}

// DeviceSettings describes the switch endpoint.
type DeviceSettings struct {
	Host  string `yaml:"host"`  // Device IP address or hostname
	Port  int    `yaml:"port"`  // Device TCP port
	Ports int    `yaml:"ports"` // Number of selectable ports on the switch
}

// CommandPrefs configures command pacing and retry behavior. The defaults
// match what the switch hardware needs; lowering delay_ms below 1000 risks
// dropped replies.
type CommandPrefs struct {
	DelayMillis int `yaml:"delay_ms"` // Pause after every command exchange
	Retries     int `yaml:"retries"`  // Attempts for the get-port query
}

// TUIPrefs holds interactive-mode preferences.
type TUIPrefs struct {
	RefreshSeconds int `yaml:"refresh_seconds"` // Auto-refresh interval; 0 disables
}

// NewSettings creates Settings with the factory defaults.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Device: &DeviceSettings{
			Host:  "192.168.1.10",
			Port:  5000,
			Ports: 8,
		},
		Command: &CommandPrefs{
			DelayMillis: 1000,
			Retries:     3,
		},
		TUI: &TUIPrefs{
			RefreshSeconds: 0,
		},
	}
}
