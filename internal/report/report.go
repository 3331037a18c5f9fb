// Package report renders stored player records for humans: a console
// summary of the database and a CSV export.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Emirken/scout-backend/pkg/models"
)

// PrintDatabaseStats prints per-league record counts and the overall
// total.
func PrintDatabaseStats(total int64, byLeague map[string]int64) {
	fmt.Println("\n=========== SCOUT DATABASE ===========")
	fmt.Printf("%-28s | %-7s\n", "League", "Players")
	fmt.Printf("%-28s | %-7s\n", strings.Repeat("-", 28), strings.Repeat("-", 7))

	leagues := make([]string, 0, len(byLeague))
	for league := range byLeague {
		leagues = append(leagues, league)
	}
	sort.Strings(leagues)

	for _, league := range leagues {
		fmt.Printf("%-28s | %7d\n", league, byLeague[league])
	}
	fmt.Printf("%-28s | %7d\n", "TOTAL", total)
	fmt.Println(strings.Repeat("=", 38))
}

// PrintPlayers prints a compact listing of player records, grouped by team.
func PrintPlayers(records []models.PlayerRecord) {
	fmt.Printf("\n%-24s | %-3s | %-12s | %-20s | %-8s | %-13s\n",
		"Player", "Age", "Position", "Team", "ID", "Contract End")
	fmt.Printf("%-24s | %-3s | %-12s | %-20s | %-8s | %-13s\n",
		strings.Repeat("-", 24), strings.Repeat("-", 3), strings.Repeat("-", 12),
		strings.Repeat("-", 20), strings.Repeat("-", 8), strings.Repeat("-", 13))

	teamPlayers := make(map[string][]models.PlayerRecord)
	for _, record := range records {
		teamPlayers[record.Team] = append(teamPlayers[record.Team], record)
	}

	var teams []string
	for team := range teamPlayers {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	for _, team := range teams {
		players := teamPlayers[team]
		sort.Slice(players, func(i, j int) bool {
			return players[i].FullName < players[j].FullName
		})

		fmt.Printf("\n%s\n", team)
		for _, p := range players {
			contract := p.ContractEnd
			if p.ContractEstimated && contract != "" {
				contract += " *"
			}
			fmt.Printf("%-24s | %3d | %-12s | %-20s | %-8s | %-13s\n",
				p.FullName, p.Age, p.Position, p.Team, p.FbrefID, contract)
		}
	}
	fmt.Println("\n* contract end estimated from age")
}

// SavePlayersToCSV writes the records to a CSV file, one row per player.
func SavePlayersToCSV(records []models.PlayerRecord, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating csv file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"fbrefId", "fullName", "age", "team", "league", "country",
		"position", "detailedPosition", "height", "weight",
		"preferredFoot", "contractEnd", "contractEstimated",
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "writing csv header")
	}

	for _, p := range records {
		row := []string{
			p.FbrefID, p.FullName, strconv.Itoa(p.Age), p.Team, p.League,
			p.Country, p.Position, p.DetailedPosition, p.Height, p.Weight,
			p.PreferredFoot, p.ContractEnd, strconv.FormatBool(p.ContractEstimated),
		}
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "writing csv row for %s", p.FbrefID)
		}
	}

	w.Flush()
	return errors.Wrap(w.Error(), "flushing csv")
}
