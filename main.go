package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"probescan/internal/capture"
	"probescan/internal/config"
	"probescan/internal/scheduler"
	"probescan/internal/sink"
)

func main() {
	cfg := config.Load()

	iface := flag.String("i", cfg.Interface, "Monitor-mode interface to capture from (e.g., wlan0mon)")
	scannerID := flag.String("scanner-id", cfg.ScannerID, "Scanner identifier stamped on every record")
	hop := flag.Duration("hop", cfg.ChannelHopInterval, "Channel dwell time")
	statsInterval := flag.Duration("stats", cfg.StatsInterval, "Stats emission interval")
	ceiling := flag.Duration("session-ceiling", cfg.SessionCeiling, "Restart the session after this uptime (0 disables)")
	flag.Parse()

	cfg.Interface = *iface
	cfg.ScannerID = *scannerID
	cfg.ChannelHopInterval = *hop
	cfg.StatsInterval = *statsInterval
	cfg.SessionCeiling = *ceiling

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Records go to stdout; diagnostics stay on stderr via zap.
	out := sink.New(os.Stdout, logger)

	for {
		err := runSession(ctx, cfg, logger, out)
		if errors.Is(err, scheduler.ErrSessionCeiling) {
			logger.Info("session ceiling reached, restarting capture")
			continue
		}
		if err != nil {
			logger.Fatal("capture session failed", zap.Error(err))
		}
		return
	}
}

// runSession runs one complete capture session: fresh driver, fresh
// capture id, scheduler until cancellation or the uptime ceiling.
func runSession(ctx context.Context, cfg *config.Config, logger *zap.Logger, out *sink.Writer) error {
	driver, err := capture.NewPcapDriver(cfg.Interface, cfg.SnapLen, logger)
	if err != nil {
		return err
	}
	defer driver.Close()

	mon := capture.NewMonitor(cfg, logger, out)
	logger.Info("capture session starting",
		zap.String("capture_id", mon.CaptureID()),
		zap.String("interface", cfg.Interface),
		zap.String("scanner_id", cfg.ScannerID),
		zap.Uint8("max_channels", cfg.MaxChannels))

	if err := driver.Start(ctx, mon.HandleFrame); err != nil {
		return err
	}

	sched := scheduler.New(cfg, logger, driver, mon.Counters(), out, mon.CaptureID())
	return sched.Run(ctx)
}
