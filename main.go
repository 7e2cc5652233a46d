package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nstehr/bastion/agent"
	"github.com/nstehr/bastion/ipc"
	"github.com/nstehr/bastion/journal"
	"github.com/nstehr/bastion/rules"
)

const banner = `
██████╗  █████╗ ███████╗████████╗██╗ ██████╗ ███╗   ██╗
██╔══██╗██╔══██╗██╔════╝╚══██╔══╝██║██╔═══██╗████╗  ██║
██████╔╝███████║███████╗   ██║   ██║██║   ██║██╔██╗ ██║
██╔══██╗██╔══██║╚════██║   ██║   ██║██║   ██║██║╚██╗██║
██████╔╝██║  ██║███████║   ██║   ██║╚██████╔╝██║ ╚████║
╚═════╝ ╚═╝  ╚═╝╚══════╝   ╚═╝   ╚═╝ ╚═════╝ ╚═╝  ╚═══╝

Doctrine-Driven Siege Defense`

type options struct {
	doctrine string
	seed     int64
	logLevel string
	journal  string
	record   string
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:          "bastion",
		Short:        "Turn-based siege algo that plays over stdin/stdout",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd, opts)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.doctrine, "doctrine", "d", "", "Path to YAML doctrine file")
	rootCmd.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&opts.journal, "journal", "", "Path to sqlite turn journal")
	rootCmd.Flags().StringVar(&opts.record, "record", "", "Path to write a zstd match recording")

	rootCmd.AddCommand(newReplayCmd(&opts), newJournalCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging installs a text handler on stderr; stdout carries the game
// protocol.
func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
	return nil
}

// loadDoctrine reads the doctrine file if one was given and applies the
// --seed flag when it was set explicitly.
func loadDoctrine(cmd *cobra.Command, opts options) (rules.Doctrine, error) {
	d := rules.DefaultDoctrine()
	if opts.doctrine != "" {
		var err error
		d, err = rules.LoadDoctrine(opts.doctrine)
		if err != nil {
			return d, err
		}
	}
	if cmd.Flags().Changed("seed") {
		d.Seed = opts.seed
	}
	return d, nil
}

func play(cmd *cobra.Command, opts options) error {
	color.New(color.FgCyan, color.Bold).Fprintln(os.Stderr, banner)

	d, err := loadDoctrine(cmd, opts)
	if err != nil {
		return err
	}
	if d.Seed == 0 {
		d.Seed = time.Now().UnixNano()
	}
	slog.Info("starting bastion", "doctrine", d.Name, "seed", d.Seed)

	var j agent.Journal
	if opts.journal != "" {
		jn, err := journal.Open(opts.journal)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer jn.Close()
		j = jn
	}

	a := agent.New(d, j)
	conn := ipc.NewConnection(os.Stdin, os.Stdout, a.Handlers())

	if opts.record != "" {
		rec, err := journal.NewRecorder(opts.record)
		if err != nil {
			return fmt.Errorf("open recording: %w", err)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				slog.Error("failed to close recording", "path", opts.record, "error", err)
			}
		}()
		if err := rec.WriteMeta(journal.Meta{Doctrine: d.Name, Seed: d.Seed}); err != nil {
			return fmt.Errorf("write recording header: %w", err)
		}
		conn.Tap = func(kind string, raw []byte) {
			if err := rec.Write(kind, raw); err != nil {
				slog.Warn("failed to record line", "kind", kind, "error", err)
			}
		}
		slog.Info("recording match", "path", opts.record)
	}

	err = conn.ReadLoop(cmd.Context())
	slog.Info("shutting down")
	return err
}
