package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Emirken/scout-backend/pkg/models"
	"github.com/Emirken/scout-backend/pkg/normalize"
)

// statNameKeywords marks a scouting row label as an actual statistic.
// Rows whose labels match none of these (section headers, club names,
// navigation junk) are dropped.
var statNameKeywords = []string{
	"goals", "assists", "shots", "shot", "passes", "pass", "touches",
	"tackles", "tackle", "interceptions", "blocks", "clearances",
	"carries", "dribbles", "take-ons", "crosses", "aerials", "aerial",
	"fouls", "fouled", "offsides", "xg", "xa", "npxg", "sca", "gca",
	"progressive", "key", "completion", "save", "clean sheet",
	"yellow", "red", "minutes", "pressures", "distance", "won", "lost",
	"attempted", "received", "%",
}

// ParseStatsTable reads a season statistics table into a flat stat-name ->
// value map. Column names come from the data-stat attributes of the header
// row; values come from the last body row, which the site keeps as the
// most recent season. A missing table, header or body yields an empty map.
func ParseStatsTable(table *goquery.Selection) map[string]float64 {
	stats := map[string]float64{}
	if table == nil || table.Length() == 0 {
		return stats
	}

	var columns []string
	table.Find("thead tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		name, _ := cell.Attr("data-stat")
		columns = append(columns, name)
	})
	if len(columns) == 0 {
		return stats
	}

	lastRow := table.Find("tbody tr").Last()
	if lastRow.Length() == 0 {
		return stats
	}

	lastRow.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		if i >= len(columns) || columns[i] == "" {
			return
		}
		stats[columns[i]] = normalize.ExtractNumericStat(cell.Text())
	})
	return stats
}

// ParseScoutingTable reads a scouting-report table into stat-name ->
// {per-90, percentile} entries. Rows need at least three cells (label,
// per-90, percentile); labels that don't look like statistics and rows
// where either value cell holds a placeholder are skipped.
func ParseScoutingTable(table *goquery.Selection) map[string]models.ScoutingStat {
	report := map[string]models.ScoutingStat{}
	if table == nil || table.Length() == 0 {
		return report
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 3 {
			return
		}

		name := normalize.CleanText(cells.Eq(0).Text())
		per90Raw := normalize.CleanText(cells.Eq(1).Text())
		percentileRaw := normalize.CleanText(cells.Eq(2).Text())

		if name == "" || !isStatName(name) {
			return
		}
		if normalize.IsPlaceholder(per90Raw) || normalize.IsPlaceholder(percentileRaw) {
			return
		}

		report[name] = models.ScoutingStat{
			Per90:      normalize.ExtractNumericStat(per90Raw),
			Percentile: normalize.ExtractPercentile(percentileRaw),
		}
	})
	return report
}

// isStatName reports whether a scouting row label names a statistic
// rather than a section header or stray page text.
func isStatName(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range statNameKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
