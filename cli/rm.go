package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"padel-logger/controller"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <class>",
		Short: "Remove the last recorded burst of a class",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}
	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	initLogger()
	cfg := loadCaptureConfig()
	class := args[0]

	datasets, err := controller.NewDatasetStore(
		cfg.Capture.OutputDir, cfg.Capture.SamplesPerBurst, cfg.Capture.Classes)
	if err != nil {
		exitErr("init dataset store", err)
	}

	removed, err := datasets.RemoveLast(class)
	if err != nil {
		exitErr("remove last burst", err)
	}
	if !removed {
		fmt.Printf("nothing to remove for %s\n", class)
		return
	}
	count, err := datasets.Count(class)
	if err != nil {
		exitErr("read dataset", err)
	}
	fmt.Printf("last %s burst removed, %d remaining\n", class, count)
}
