// Package cli implements the padel-logger CLI commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"padel-logger/utils"
)

var (
	captureCfgPath string
	sessionCfgPath string
	logFilePath    string
	verbose        bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "padel-logger",
	Short: "Padel stroke capture and classification logger",
	Long: "Turns the line stream of an IMU stroke-sensing device into per-class\n" +
		"raw sample datasets and a live classified-stroke session.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&captureCfgPath, "capture-config", "", "capture config path (default: config/capture.yaml if present)")
	RootCmd.PersistentFlags().StringVar(&sessionCfgPath, "session-config", "", "session config path (default: config/session.yaml if present)")
	RootCmd.PersistentFlags().StringVar(&logFilePath, "log", "", "optional log file path (stdout is always included)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func initLogger() {
	level := utils.INFO
	if verbose {
		level = utils.DEBUG
	}
	utils.InitLogger(level, logFilePath)
}

func loadCaptureConfig() *utils.CaptureConfig {
	path := captureCfgPath
	if path == "" {
		if _, err := os.Stat("config/capture.yaml"); err != nil {
			return utils.DefaultCaptureConfig()
		}
		path = "config/capture.yaml"
	}
	cfg, err := utils.LoadCaptureConfig(path)
	if err != nil {
		exitErr("load capture config", err)
	}
	return cfg
}

func loadSessionConfig() *utils.SessionConfig {
	path := sessionCfgPath
	if path == "" {
		if _, err := os.Stat("config/session.yaml"); err != nil {
			return utils.DefaultSessionConfig()
		}
		path = "config/session.yaml"
	}
	cfg, err := utils.LoadSessionConfig(path)
	if err != nil {
		exitErr("load session config", err)
	}
	return cfg
}

// openInput resolves the --input flag: "-" is stdin, anything else is a
// file (a replayed device log, or a serial device node opened by the
// OS). Port discovery is outside this tool.
func openInput(input string) (io.ReadCloser, error) {
	if input == "" || input == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", input, err)
	}
	return f, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
