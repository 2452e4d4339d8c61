package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"padel-logger/controller"
	"padel-logger/models"
	"padel-logger/services/ingest"
	"padel-logger/utils"
	"padel-logger/views"
)

func init() {
	cmd := &cobra.Command{
		Use:   "capture <class>",
		Short: "Record raw stroke bursts into a per-class dataset",
		Long: "Drains the device line stream, frames complete bursts of N samples\n" +
			"and appends them to the selected class's dataset CSV.",
		Args: cobra.ExactArgs(1),
		Run:  runCapture,
	}

	cmd.Flags().StringP("input", "i", "-", "line source: '-' for stdin, or a file/device path")
	cmd.Flags().Int("max", 0, "stop after this many bursts (0 = until the stream ends)")

	RootCmd.AddCommand(cmd)
}

func runCapture(cmd *cobra.Command, args []string) {
	initLogger()
	cfg := loadCaptureConfig()
	class := args[0]

	input, _ := cmd.Flags().GetString("input")
	maxBursts, _ := cmd.Flags().GetInt("max")

	datasets, err := controller.NewDatasetStore(
		cfg.Capture.OutputDir, cfg.Capture.SamplesPerBurst, cfg.Capture.Classes)
	if err != nil {
		exitErr("init dataset store", err)
	}

	existing, err := datasets.Count(class)
	if err != nil {
		exitErr("read dataset", err)
	}
	utils.L().Info("recording %s  (existing=%d, samples_per_burst=%d, dir=%s)",
		class, existing, cfg.Capture.SamplesPerBurst, cfg.Capture.OutputDir)

	src, err := openInput(input)
	if err != nil {
		exitErr("open line source", err)
	}
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		utils.L().Info("received signal: %v — stopping", sig)
		cancel()
		// Unblock a drain loop waiting on the next line.
		src.Close()
	}()

	reader := ingest.NewStrokeReader(
		ingest.NewReaderSource(src),
		cfg.Capture.SamplesPerBurst, "", cfg.Capture.ChannelBuffer)

	pipe := controller.NewCapturePipeline(reader, datasets, class)
	saved := 0
	pipe.OnBurst = func(_ models.BurstSummary, _ int) {
		saved++
		if maxBursts > 0 && saved >= maxBursts {
			utils.L().Info("reached %d bursts — stopping", maxBursts)
			cancel()
		}
	}

	pipe.Start(ctx)
	pipe.Wait()

	counts, err := datasets.Counts()
	if err != nil {
		exitErr("read dataset counts", err)
	}
	views.RenderDatasetStatus(datasets.Classes(), counts)
	utils.L().Info("capture session finished  (class=%s, saved=%d)", class, saved)
}
