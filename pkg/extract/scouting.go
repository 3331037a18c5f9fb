package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Emirken/scout-backend/pkg/models"
	"github.com/Emirken/scout-backend/pkg/normalize"
)

const similarPlayerLimit = 10

// ScoutingURL builds the scouting-report page URL for a player. The name
// is slugified into the Name-With-Dashes form the site expects.
func (e *Extractor) ScoutingURL(playerID, fullName string) string {
	slug := strings.ReplaceAll(normalize.CleanText(fullName), " ", "-")
	return fmt.Sprintf("%s/en/players/%s/scout/365_m1/%s-Scouting-Report", e.baseURL, playerID, slug)
}

// ExtractScoutingReport fetches and parses the player's scouting-report
// page. Every per-position scouting table (ids prefixed "scout_") is
// parsed and the results merged into one flat map. A fetch failure or a
// page with no scouting tables yields an empty report, never an error.
func (e *Extractor) ExtractScoutingReport(ctx context.Context, playerID, fullName string) map[string]models.ScoutingStat {
	report := map[string]models.ScoutingStat{}
	if e.fetcher == nil || playerID == "" || fullName == "" {
		return report
	}

	url := e.ScoutingURL(playerID, fullName)
	doc, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		e.log.Debugw("scouting report fetch failed", "url", url, "error", err)
		return report
	}

	doc.Find("table.stats_table").Each(func(_ int, table *goquery.Selection) {
		id, _ := table.Attr("id")
		if !strings.HasPrefix(id, "scout_") {
			return
		}
		for name, stat := range ParseScoutingTable(table) {
			report[name] = stat
		}
	})

	e.log.Debugw("scouting report parsed", "player", fullName, "stats", len(report))
	return report
}

// ExtractSimilarPlayers reads the "Similar Players" block from a scouting
// or profile page. The dedicated container is preferred; failing that any
// heading mentioning similar players is used to locate the block. Capped
// at ten entries.
func (e *Extractor) ExtractSimilarPlayers(doc *goquery.Document) []models.SimilarPlayer {
	container := doc.Find("div#all_similar")
	if container.Length() == 0 {
		doc.Find("h2, h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(heading.Text()), "similar player") {
				container = heading.Parent()
				return false
			}
			return true
		})
	}
	if container.Length() == 0 {
		return nil
	}

	var players []models.SimilarPlayer
	seen := map[string]bool{}
	container.Find("a[href*='/players/']").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		id, ok := normalize.ExtractIDFromURL(href)
		if !ok || seen[id] {
			return true
		}
		name := normalize.CleanText(link.Text())
		if name == "" {
			return true
		}
		seen[id] = true
		players = append(players, models.SimilarPlayer{
			Name:    name,
			FbrefID: id,
			URL:     normalize.BuildFullURL(e.baseURL, href),
		})
		return len(players) < similarPlayerLimit
	})
	return players
}

// ExtractTransfers reads the transfer-history table. Rows need at least
// season, date, origin and destination cells; the fee is optional.
func (e *Extractor) ExtractTransfers(doc *goquery.Document) []models.Transfer {
	var transfers []models.Transfer
	doc.Find("table#transfers tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 4 {
			return
		}
		transfer := models.Transfer{
			Season:   normalize.CleanText(cells.Eq(0).Text()),
			Date:     normalize.CleanText(cells.Eq(1).Text()),
			FromTeam: normalize.CleanText(cells.Eq(2).Text()),
			ToTeam:   normalize.CleanText(cells.Eq(3).Text()),
		}
		if cells.Length() > 4 {
			transfer.Fee = normalize.CleanText(cells.Eq(4).Text())
		}
		if transfer.FromTeam == "" && transfer.ToTeam == "" {
			return
		}
		transfers = append(transfers, transfer)
	})
	return transfers
}
