package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"padel-logger/controller"
)

func init() {
	cmd := &cobra.Command{
		Use:   "clear <class>",
		Short: "Delete a class dataset entirely",
		Args:  cobra.ExactArgs(1),
		Run:   runClear,
	}
	RootCmd.AddCommand(cmd)
}

func runClear(cmd *cobra.Command, args []string) {
	initLogger()
	cfg := loadCaptureConfig()
	class := args[0]

	datasets, err := controller.NewDatasetStore(
		cfg.Capture.OutputDir, cfg.Capture.SamplesPerBurst, cfg.Capture.Classes)
	if err != nil {
		exitErr("init dataset store", err)
	}

	if err := datasets.Clear(class); err != nil {
		exitErr("clear dataset", err)
	}
	fmt.Printf("%s dataset cleared\n", class)
}
