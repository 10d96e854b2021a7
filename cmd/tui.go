package main

import (
	"context"
	"fmt"

	"sgsd/internal/clocks"
	"sgsd/internal/core/controller"
	"sgsd/internal/logging"
	"sgsd/internal/platform"
	"sgsd/internal/ui/terminal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func tuiCmd(opts *options) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui [flags]",
		Short: "Run the timer in the terminal instead of the system tray",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminal(opts, logFile)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "Log file. Defaults to sgsd.log next to the settings file.")
	return cmd
}

func runTerminal(opts *options, logFile string) error {
	loaded, err := opts.load(platform.NewService())
	if err != nil {
		return err
	}
	config, err := loaded.active.TimerConfig()
	if err != nil {
		return err
	}

	if logFile == "" {
		logFile = logPath(loaded.path)
	}
	logger, file, err := logging.NewFile(logFile)
	if err != nil {
		return err
	}
	defer file.Close()

	display := &terminal.Display{}
	keeper, err := controller.New(config, clocks.NewSystemClock(), display,
		platform.NewNotifier(appName, nil), logger, controller.Options{Strict: opts.strict})
	if err != nil {
		return err
	}

	program := tea.NewProgram(terminal.NewModel(keeper, config.Glyphs.Idle))
	display.Attach(program)
	go display.Forward(keeper.Subscribe(16))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		if err := keeper.Run(ctx); err != nil {
			logger.Error("controller stopped", "error", err)
		}
	}()
	// The log file outlives the controller and its notification deliveries.
	defer func() {
		cancel()
		<-runDone
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
