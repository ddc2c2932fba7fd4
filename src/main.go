package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"liftkata/src/config"
	"liftkata/src/dispatcher"
	"liftkata/src/elev"
	"liftkata/src/executor"
	"liftkata/src/input"
	"liftkata/src/machine"
	"liftkata/src/types"
	"liftkata/src/utils"
)

func main() {
	configPath := flag.String("config", "", "Path to a yaml config file")
	envPath := flag.String("env", "", "Path to a .env file overriding the config")
	scriptPath := flag.String("script", "", "Request script, read instead of the keyboard")
	logPath := flag.String("log", "", "Also write logs to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *logPath != "" {
		cfg.LogFile = *logPath
	}
	level, _ := cfg.Level()
	elev.InitLogger(level, cfg.LogFile)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stopSignals()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	sim := machine.NewSim(cfg.Machine)
	elevMgr := elev.StartStateMgr(ctx, dispatcher.New(sim))
	slog.Info("Car ready", "stepInterval", cfg.StepInterval, "machine", cfg.Machine)

	requestCh := make(chan int)
	statusCh := make(chan types.Snapshot, config.StatusBuffer)

	if *scriptPath != "" {
		script, err := os.Open(*scriptPath)
		if err != nil {
			slog.Error("Cannot open script", "path", *scriptPath, "err", err)
			os.Exit(1)
		}
		defer script.Close()
		go func() {
			if err := input.Script(ctx, script, requestCh); err != nil {
				slog.Error("Script stopped", "err", err)
				cancel()
			}
		}()
	} else {
		fmt.Println("Press 0-9 to request a floor, q to quit")
		go func() {
			if err := input.Keyboard(ctx, requestCh); err != nil {
				slog.Error("Keyboard stopped", "err", err)
			}
			cancel()
		}()
	}

	printerDone := make(chan struct{})
	go func() {
		defer close(printerDone)
		for snap := range statusCh {
			utils.PrintStatus(os.Stdout, snap, elevMgr.PlanRoute())
		}
	}()

	err = executor.Run(ctx, elevMgr, cfg.StepInterval, requestCh, statusCh)
	close(statusCh)
	<-printerDone
	fmt.Println()

	switch {
	case err == nil, errors.Is(err, context.Canceled):
		slog.Info("Shutting down")
	case errors.Is(err, executor.ErrMaintenance):
		os.Exit(2)
	default:
		slog.Error("Control loop failed", "err", err)
		os.Exit(1)
	}
}
