package cli

import (
	"github.com/spf13/cobra"

	"padel-logger/controller"
	"padel-logger/views"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show per-class burst counts",
		Run:   runStatus,
	}
	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	initLogger()
	cfg := loadCaptureConfig()

	datasets, err := controller.NewDatasetStore(
		cfg.Capture.OutputDir, cfg.Capture.SamplesPerBurst, cfg.Capture.Classes)
	if err != nil {
		exitErr("init dataset store", err)
	}

	counts, err := datasets.Counts()
	if err != nil {
		exitErr("read dataset counts", err)
	}
	views.RenderDatasetStatus(datasets.Classes(), counts)
}
