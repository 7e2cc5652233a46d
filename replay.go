package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nstehr/bastion/agent"
	"github.com/nstehr/bastion/ipc"
	"github.com/nstehr/bastion/journal"
	"github.com/nstehr/bastion/rules"
)

func newReplayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "replay FILE",
		Short: "Re-run the algo over a match recording and print each turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDoctrine(cmd, *opts)
			if err != nil {
				return err
			}
			sums, seed, err := replay(args[0], d, cmd.Flags().Changed("seed"))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			color.New(color.FgCyan, color.Bold).Fprintf(w, "Replay of %s (doctrine %s, seed %d)\n", args[0], d.Name, seed)
			printSummaries(w, sums)
			return nil
		},
	}
}

// replay feeds every recorded line to a fresh agent. The seed comes from
// the recording header unless keepSeed is set.
func replay(path string, d rules.Doctrine, keepSeed bool) ([]agent.Summary, int64, error) {
	var (
		a    *agent.Agent
		sums []agent.Summary
	)
	err := journal.ReadRecording(path, func(e journal.Entry) error {
		if e.Kind == journal.KindMeta {
			var m journal.Meta
			if err := json.Unmarshal(e.Line, &m); err != nil {
				return fmt.Errorf("recording header: %w", err)
			}
			if !keepSeed {
				d.Seed = m.Seed
			}
			return nil
		}
		if a == nil {
			a = agent.New(d, nil)
			a.OnSummary = func(s agent.Summary) { sums = append(sums, s) }
		}
		h, ok := a.Handlers()[e.Kind]
		if !ok {
			slog.Debug("skipping recorded line", "seq", e.Seq, "kind", e.Kind)
			return nil
		}
		if _, err := h(ipc.Message{Kind: e.Kind, Raw: e.Line}); err != nil {
			slog.Warn("replayed line failed", "seq", e.Seq, "kind", e.Kind, "error", err)
		}
		return nil
	})
	return sums, d.Seed, err
}

func printSummaries(w io.Writer, sums []agent.Summary) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Turn", "Health", "Enemy", "SP", "MP", "Phase", "Defense", "Build", "Deploy", "Events"}),
	)
	failed := 0
	for _, s := range sums {
		phase := s.Report.Phase.String()
		if s.Err != nil {
			phase = "error"
			failed++
		}
		kinds := make([]string, 0, len(s.Events))
		for _, e := range s.Events {
			kinds = append(kinds, string(e.Kind))
		}
		row := []string{
			fmt.Sprintf("%d", s.Turn),
			fmt.Sprintf("%.0f", s.Health),
			fmt.Sprintf("%.0f", s.EnemyHealth),
			fmt.Sprintf("%.1f", s.SP),
			fmt.Sprintf("%.1f", s.MP),
			phase,
			strings.Join(s.Report.Defense, ","),
			fmt.Sprintf("%d", len(s.Commands.Build)),
			fmt.Sprintf("%d", len(s.Commands.Deploy)),
			strings.Join(kinds, ","),
		}
		_ = table.Append(row)
	}
	_ = table.Render()

	if failed > 0 {
		color.New(color.FgYellow).Fprintf(w, "%d turn(s) failed and submitted nothing\n", failed)
	}
}
