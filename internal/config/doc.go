// Package config provides user configuration management for kvmctl.
//
// This package manages a YAML-based configuration file that stores the KVM
// switch endpoint (host, TCP port, selectable port count) and command
// pacing preferences, following OS-specific conventions for the storage
// location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/kvmctl/config.yaml or $HOME/.config/kvmctl/config.yaml
//   - macOS: $HOME/.config/kvmctl/config.yaml
//   - Windows: %LOCALAPPDATA%\kvmctl\config.yaml
//
// # Precedence
//
// Values from this file sit between compiled-in defaults and command-line
// flags: a missing file means pure defaults, and any flag given on the
// command line wins over the file.
//
// # Usage Example
//
//	settings, err := config.LoadSettings()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	settings.Device.Host = "10.0.0.20"
//
//	// Save changes atomically
//	if err := settings.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global settings use sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
