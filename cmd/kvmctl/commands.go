package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muurk/kvmctl/internal/config"
	"github.com/muurk/kvmctl/internal/device"
	"github.com/muurk/kvmctl/internal/tui"
)

// Device command flags. Zero values mean "not set": the config file and
// then the compiled-in defaults fill the gaps.
var (
	deviceHost  string
	devicePort  int
	portCount   int
	delayMillis int
	retries     int
)

func init() {
	// Common flags for device commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&deviceHost, "host", "", "Device IP address (default 192.168.1.10)")
	rootCmd.PersistentFlags().IntVar(&devicePort, "port", 0, "Device TCP port (default 5000)")
	rootCmd.PersistentFlags().IntVar(&portCount, "ports", 0, "Number of selectable ports on the switch (default 8)")
	rootCmd.PersistentFlags().IntVar(&delayMillis, "delay", -1, "Post-command delay in milliseconds (default 1000)")
	rootCmd.PersistentFlags().IntVar(&retries, "retries", 0, "Attempts for the get-port query (default 3)")

	// Add subcommands directly to root
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(buzzerCmd)
	rootCmd.AddCommand(lcdCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(configCmd)
}

// newClient builds a device client from defaults, the config file and
// command-line flags, in ascending precedence.
func newClient() (*device.Client, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	cfg := device.Config{
		Host:  settings.Device.Host,
		Port:  settings.Device.Port,
		Ports: settings.Device.Ports,
	}
	if deviceHost != "" {
		cfg.Host = deviceHost
	}
	if devicePort > 0 {
		cfg.Port = devicePort
	}
	if portCount > 0 {
		cfg.Ports = portCount
	}

	client := device.NewClient(cfg)

	if settings.Command != nil {
		if settings.Command.DelayMillis >= 0 {
			client.CommandDelay = time.Duration(settings.Command.DelayMillis) * time.Millisecond
		}
		if settings.Command.Retries > 0 {
			client.MaxAttempts = settings.Command.Retries
		}
	}
	if delayMillis >= 0 {
		client.CommandDelay = time.Duration(delayMillis) * time.Millisecond
	}
	if retries > 0 {
		client.MaxAttempts = retries
	}

	return client, nil
}

// getCmd queries the active port
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the active port",
	Long: `Query the switch for its currently active port.

The query is retried up to three times; the switch drops replies under
load, so a single failed read does not mean the device is down.`,
	Example: `  # Query the default device
  kvmctl get

  # Query a specific device
  kvmctl get --host 10.0.0.20`,
	Args: cobra.NoArgs,
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	port, err := client.CurrentPort()
	if err != nil {
		return err
	}

	fmt.Printf("Active port: %d\n", port)
	return nil
}

// setCmd switches the active port
var setCmd = &cobra.Command{
	Use:   "set <port>",
	Short: "Switch the active port",
	Long: `Switch the KVM to the given port (1-indexed).

The current port is read first: if the target is already active, no switch
command is sent. After switching, the port is read back and the observed
result is reported - the switch occasionally ignores a command, in which
case the reported port will not match the request.`,
	Example: `  # Switch to port 3
  kvmctl set 3

  # Switch a 16-port model
  kvmctl set 12 --ports 16`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	target, err := strconv.Atoi(args[0])
	if err != nil {
		return device.NewValidationError(fmt.Sprintf("port must be a number between 1 and %d, got %q", client.Ports(), args[0]))
	}

	result, err := client.SwitchPort(target)
	if err != nil {
		return err
	}

	if result.AlreadyActive {
		fmt.Printf("Port %d is already active\n", result.Current)
		return nil
	}

	fmt.Printf("Switched from port %d to port %d\n", result.Previous, result.Current)
	return nil
}

// buzzerCmd toggles the audible buzzer
var buzzerCmd = &cobra.Command{
	Use:   "buzzer <0|1>",
	Short: "Mute or unmute the buzzer",
	Long: `Set the switch's audible buzzer: 0 mutes, 1 unmutes.

The switch does not acknowledge this command reliably, so no confirmation
is read back.`,
	Example: `  # Mute the buzzer
  kvmctl buzzer 0

  # Unmute the buzzer
  kvmctl buzzer 1`,
	Args: cobra.ExactArgs(1),
	RunE: runBuzzer,
}

func runBuzzer(cmd *cobra.Command, args []string) error {
	mode, err := strconv.Atoi(args[0])
	if err != nil {
		return device.NewValidationError(fmt.Sprintf("buzzer mode must be 0 (mute) or 1 (unmute), got %q", args[0]))
	}

	client, cerr := newClient()
	if cerr != nil {
		return cerr
	}

	if err := client.SetBuzzerMode(mode); err != nil {
		return err
	}

	if mode == 1 {
		fmt.Println("Buzzer unmuted")
	} else {
		fmt.Println("Buzzer muted")
	}
	return nil
}

// lcdCmd sets the on-device display timeout
var lcdCmd = &cobra.Command{
	Use:   "lcd <0|10|30>",
	Short: "Set the LCD timeout in seconds",
	Long: `Set the switch's display timeout: 0 keeps the LCD always on,
10 and 30 turn it off after that many seconds of inactivity.

The switch does not acknowledge this command reliably, so no confirmation
is read back.`,
	Example: `  # Keep the display always on
  kvmctl lcd 0

  # Turn the display off after 30 seconds
  kvmctl lcd 30`,
	Args: cobra.ExactArgs(1),
	RunE: runLCD,
}

func runLCD(cmd *cobra.Command, args []string) error {
	seconds, err := strconv.Atoi(args[0])
	if err != nil {
		return device.NewValidationError(fmt.Sprintf("LCD timeout must be 0, 10 or 30 seconds, got %q", args[0]))
	}

	client, cerr := newClient()
	if cerr != nil {
		return cerr
	}

	if err := client.SetLCDTimeout(seconds); err != nil {
		return err
	}

	if seconds == 0 {
		fmt.Println("LCD display always on")
	} else {
		fmt.Printf("LCD timeout set to %d seconds\n", seconds)
	}
	return nil
}

// tuiCmd launches the interactive dashboard
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive port switcher",
	Long: `Launch an interactive dashboard for the switch.

The dashboard shows all ports with the active one highlighted. Switch
ports with the digit keys or the cursor, toggle the buzzer and LCD
timeout without leaving the screen.`,
	Example: `  # Dashboard for the default device
  kvmctl tui

  # Dashboard for a specific device
  kvmctl tui --host 10.0.0.20`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive dashboard needs a terminal (stdout is not a tty)")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	var refresh time.Duration
	if settings, err := config.LoadSettings(); err == nil && settings.TUI != nil {
		refresh = time.Duration(settings.TUI.RefreshSeconds) * time.Second
	}

	if err := tui.Run(client, refresh); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

// configCmd shows and edits the persisted settings
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persisted settings",
	Long: `Manage the kvmctl configuration file.

Without arguments the current settings and the file location are printed.
Use 'config set <key> <value>' to change a value; valid keys are
device.host, device.port, device.ports, command.delay_ms and
command.retries.`,
	Example: `  # Show current settings
  kvmctl config

  # Point the tool at a different switch permanently
  kvmctl config set device.host 10.0.0.20

  # Use a 16-port model by default
  kvmctl config set device.ports 16`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	fmt.Printf("Configuration file: %s\n\n", path)
	fmt.Printf("device.host:       %s\n", settings.Device.Host)
	fmt.Printf("device.port:       %d\n", settings.Device.Port)
	fmt.Printf("device.ports:      %d\n", settings.Device.Ports)
	fmt.Printf("command.delay_ms:  %d\n", settings.Command.DelayMillis)
	fmt.Printf("command.retries:   %d\n", settings.Command.Retries)
	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a persisted setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]

	intValue := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("value for %s must be a number, got %q", key, value)
		}
		return n, nil
	}

	switch key {
	case "device.host":
		settings.Device.Host = value
	case "device.port":
		n, err := intValue()
		if err != nil {
			return err
		}
		if n < 1 || n > 65535 {
			return fmt.Errorf("device.port must be 1-65535, got %d", n)
		}
		settings.Device.Port = n
	case "device.ports":
		n, err := intValue()
		if err != nil {
			return err
		}
		if n < 1 {
			return fmt.Errorf("device.ports must be at least 1, got %d", n)
		}
		settings.Device.Ports = n
	case "command.delay_ms":
		n, err := intValue()
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("command.delay_ms must not be negative, got %d", n)
		}
		settings.Command.DelayMillis = n
	case "command.retries":
		n, err := intValue()
		if err != nil {
			return err
		}
		if n < 1 {
			return fmt.Errorf("command.retries must be at least 1, got %d", n)
		}
		settings.Command.Retries = n
	default:
		return fmt.Errorf("unknown setting %q (valid: device.host, device.port, device.ports, command.delay_ms, command.retries)", key)
	}

	if err := settings.Save(); err != nil {
		return err
	}

	fmt.Printf("%s = %s\n", key, value)
	return nil
}
