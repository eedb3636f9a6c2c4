package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/pipeline"
	"github.com/spf13/cobra"
)

var rosterTier string

// rosterCmd represents the roster command
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List tracked players and their latest rumours",
	Long: `Roster prints the tracked players with their club, sweep tier,
tracking status and most recent recorded rumour.

Example:
  aytt roster
  aytt roster --tier A`,
	Args: cobra.NoArgs,
	RunE: runRoster,
}

func init() {
	rootCmd.AddCommand(rosterCmd)

	rosterCmd.Flags().StringVar(&rosterTier, "tier", "", "only show players in this sweep tier (A, B or C)")
}

func runRoster(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, nil, verbose)
	roster, err := p.LoadRoster()
	if err != nil {
		return err
	}

	tier := strings.ToUpper(strings.TrimSpace(rosterTier))
	players := roster.Players
	if tier != "" {
		filtered := make([]model.Player, 0, len(players))
		for _, pl := range players {
			if pl.SweepTier == tier {
				filtered = append(filtered, pl)
			}
		}
		players = filtered
	}

	headers := []string{"ID", "Name", "Club", "Country", "Tier", "Status", "Last Rumour"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
	rows := make([][]string, 0, len(players))
	for _, pl := range players {
		last := "-"
		if len(pl.Rumours) > 0 {
			r := pl.Rumours[0]
			last = fmt.Sprintf("%s (%s)", r.Date, r.Club)
		}
		rows = append(rows, []string{
			strconv.Itoa(pl.ID),
			pl.Name,
			pl.Club,
			pl.Country,
			pl.SweepTier,
			pl.Status,
			last,
		})
	}

	if !cfg.Output.NoColor && stdoutIsTerminal() {
		fmt.Println(renderTable(headers, rows, aligns))
	} else {
		fmt.Println(strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Println(strings.Join(row, "\t"))
		}
	}

	if tier != "" {
		fmt.Printf("%d player(s) in tier %s\n", len(players), tier)
	} else {
		fmt.Printf("%d player(s) tracked, %d sweep(s) recorded\n", len(players), roster.Metadata.SweepCount)
	}

	return nil
}
