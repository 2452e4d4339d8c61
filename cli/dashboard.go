package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"padel-logger/controller"
	"padel-logger/services/ingest"
	"padel-logger/utils"
	"padel-logger/views"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Run the live classified-stroke session",
		Long: "Drains the device classifier output, accumulates stroke events and\n" +
			"statistics, renders periodic console snapshots and exports the\n" +
			"session CSV when the stream ends.",
		Run: runDashboard,
	}

	cmd.Flags().StringP("input", "i", "-", "line source: '-' for stdin, or a file/device path")
	cmd.Flags().Bool("no-export", false, "skip the session CSV export on exit")

	RootCmd.AddCommand(cmd)
}

func runDashboard(cmd *cobra.Command, args []string) {
	initLogger()
	cfg := loadSessionConfig()

	input, _ := cmd.Flags().GetString("input")
	noExport, _ := cmd.Flags().GetBool("no-export")

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
		utils.L().Info("received signal: %v — shutting down", sig)
		cancel()
		src.Close()
	}()

	store := controller.NewSessionStore(cfg)
	reader := ingest.NewStrokeReader(
		ingest.NewReaderSource(src),
		0, cfg.Session.RestClass, cfg.Session.ChannelBuffer)

	pipe := controller.NewDashboardPipeline(reader, store)
	pipe.OnStatus = func(st ingest.Status) {
		switch st {
		case ingest.StatusReady:
			fmt.Println("● device ready")
		case ingest.StatusDisconnected:
			fmt.Println("● connection lost")
		}
	}
	pipe.Start(ctx)

	done := make(chan struct{})
	go func() {
		pipe.Wait()
		close(done)
	}()

	board := views.NewConsoleBoard(cfg.Session.Classes)
	ticker := time.NewTicker(time.Duration(cfg.Session.RefreshMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			board.Render(store.Snapshot())
			exportSession(store, cfg, noExport)
			return
		case <-ticker.C:
			board.Render(store.Snapshot())
		}
	}
}

func exportSession(store *controller.SessionStore, cfg *utils.SessionConfig, skip bool) {
	if skip || store.Len() == 0 {
		utils.L().Info("nothing to export")
		return
	}
	path, err := store.Export(cfg.Session.Export.Dir, cfg.Session.Export.Prefix)
	if err != nil {
		// The in-memory session is unaffected by a failed export.
		utils.L().Error("export session: %v", err)
		return
	}
	fmt.Println("\n✓ session exported to:", path)
}
