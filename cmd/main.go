package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/katiamach/wind-viability-report/internal/app"
	"github.com/katiamach/wind-viability-report/internal/config"
	"github.com/katiamach/wind-viability-report/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (overrides WINDREPORT_CONFIG)")
	interactive := flag.Bool("interactive", false, "ask for the run parameters on stdin")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load(ctx, *configPath)

	if *interactive {
		var err error
		cfg, err = config.Prompt(os.Stdin, os.Stdout, cfg)
		if err != nil {
			logger.Fatal(fmt.Errorf("failed to read parameters: %v", err))
		}
	}

	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Error(err)
	}

	summary, err := app.Run(ctx, cfg)
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to run wind viability report: %v", err))
	}

	fmt.Printf("Report written to %s\n", summary.Files.PDF)
}
