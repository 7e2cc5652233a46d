package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nstehr/bastion/journal"
)

func newJournalCmd() *cobra.Command {
	var (
		dbPath string
		gameID int64
		last   bool
	)
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print journaled games, or the turns of one game",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer j.Close()

			w := cmd.OutOrStdout()
			if last {
				if gameID, err = j.LastGame(); err != nil {
					return fmt.Errorf("latest game: %w", err)
				}
			}
			if gameID == 0 {
				games, err := j.Games()
				if err != nil {
					return err
				}
				printGames(w, games)
				return nil
			}
			turns, err := j.Turns(gameID)
			if err != nil {
				return err
			}
			color.New(color.FgCyan, color.Bold).Fprintf(w, "Game %d\n", gameID)
			printTurns(w, turns)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the sqlite journal")
	cmd.Flags().Int64Var(&gameID, "game", 0, "Game id to show turns for (0 lists games)")
	cmd.Flags().BoolVar(&last, "last", false, "Show turns of the most recent game")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func printGames(w io.Writer, games []journal.Game) {
	if len(games) == 0 {
		color.New(color.FgYellow).Fprintln(w, "No games journaled")
		return
	}
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Game", "Doctrine", "Seed", "Started", "Turns", "Result"}),
	)
	for _, g := range games {
		_ = table.Append([]string{
			fmt.Sprintf("%d", g.ID),
			g.Doctrine,
			fmt.Sprintf("%d", g.Seed),
			g.StartedAt,
			fmt.Sprintf("%d", g.Turns),
			g.Result,
		})
	}
	_ = table.Render()
}

func printTurns(w io.Writer, turns []journal.TurnRow) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Turn", "Health", "Enemy", "SP", "MP", "Phase", "Defense", "Build", "Deploy", "Events", "Error"}),
	)
	for _, r := range turns {
		_ = table.Append([]string{
			fmt.Sprintf("%d", r.Turn),
			fmt.Sprintf("%.0f", r.Health),
			fmt.Sprintf("%.0f", r.EnemyHealth),
			fmt.Sprintf("%.1f", r.SP),
			fmt.Sprintf("%.1f", r.MP),
			r.Phase,
			r.Defense,
			fmt.Sprintf("%d", r.Build),
			fmt.Sprintf("%d", r.Deploy),
			r.Events,
			r.Error,
		})
	}
	_ = table.Render()
}
