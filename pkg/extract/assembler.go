package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/Emirken/scout-backend/pkg/models"
	"github.com/Emirken/scout-backend/pkg/normalize"
)

// seasonTables maps on-page table ids to record category keys, in the
// order the categories are assembled.
var seasonTables = []struct {
	tableID  string
	category string
}{
	{"stats_standard", models.CategoryStandard},
	{"stats_shooting", models.CategoryShooting},
	{"stats_passing", models.CategoryPassing},
	{"stats_pass_types", models.CategoryPassTypes},
	{"stats_gca", models.CategoryGoalShotCreation},
	{"stats_defense", models.CategoryDefensiveActions},
	{"stats_possession", models.CategoryPossession},
	{"stats_misc", models.CategoryMiscellaneous},
}

// ScrapePlayer fetches a player's profile page, assembles the full record
// and validates it. Only an unreachable page, an unusable player URL or a
// record failing hard validation produce an error; every per-field
// extraction failure degrades to that field's neutral value.
func (e *Extractor) ScrapePlayer(ctx context.Context, playerURL string, basic *models.BasicInfo) (*models.PlayerRecord, error) {
	doc, err := e.fetcher.Fetch(ctx, playerURL)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching profile page %s", playerURL)
	}

	record, err := e.Assemble(ctx, doc, playerURL, basic)
	if err != nil {
		return nil, err
	}
	if err := e.validator.Validate(record); err != nil {
		return nil, errors.Wrapf(err, "record for %s failed validation", playerURL)
	}
	return record, nil
}

// Assemble builds a complete PlayerRecord from a parsed profile page.
// Listing-derived basic info (which may be nil) only fills fields the page
// itself could not produce; page values always win. The record id comes
// from the player URL, falling back to the listing id.
func (e *Extractor) Assemble(ctx context.Context, doc *goquery.Document, playerURL string, basic *models.BasicInfo) (*models.PlayerRecord, error) {
	if basic == nil {
		basic = &models.BasicInfo{}
	}

	id, ok := normalize.ExtractIDFromURL(playerURL)
	if !ok {
		if basic.FbrefID == "" {
			return nil, errors.Newf("no player id in url %q", playerURL)
		}
		id = basic.FbrefID
	}

	record := models.NewPlayerRecord()
	record.FbrefID = id
	record.SetName(firstNonEmpty(e.ExtractName(doc), basic.Name))

	age := e.ExtractAge(doc)
	if age == 0 {
		age = basic.Age
	}
	if age == 0 {
		age = e.ExtractAgeFromBirthDate(doc)
	}
	record.Age = age

	record.Team = firstNonEmpty(e.ExtractTeam(doc), basic.Team, models.UnknownTeam)

	league := e.ExtractLeague(ctx, doc, record.Team)
	if league == models.UnknownLeague && basic.League != "" {
		league = basic.League
	}
	record.League = league
	record.Country = firstNonEmpty(e.CountryForLeague(league), basic.Country)

	record.DetailedPosition = firstNonEmpty(e.ExtractPosition(doc), basic.Position)
	record.Position = NormalizePosition(record.DetailedPosition)
	record.PreferredFoot = e.ExtractPreferredFoot(doc)
	record.Height, record.Weight = e.ExtractHeightWeight(doc)
	record.Photo = e.ExtractPhoto(doc)
	record.ContractEnd, record.ContractEstimated = e.ExtractContractEnd(doc, record.Age)

	for _, st := range seasonTables {
		stats := ParseStatsTable(doc.Find("table#" + st.tableID))
		if len(stats) > 0 {
			record.SeasonStats[st.category] = stats
		}
	}
	// Headline listing numbers stand in when the page carried no standard
	// stats table at all.
	if _, ok := record.SeasonStats[models.CategoryStandard]; !ok && len(basic.BasicStats) > 0 {
		record.SeasonStats[models.CategoryStandard] = basic.BasicStats
	}

	record.ScoutingReport = e.ExtractScoutingReport(ctx, record.FbrefID, record.FullName)
	if similar := e.ExtractSimilarPlayers(doc); len(similar) > 0 {
		record.SimilarPlayers = similar
	}
	if transfers := e.ExtractTransfers(doc); len(transfers) > 0 {
		record.TransferHistory = transfers
	}

	record.Touch()
	e.log.Debugw("player record assembled",
		"id", record.FbrefID,
		"name", record.FullName,
		"team", record.Team,
		"league", record.League,
		"statCategories", len(record.SeasonStats),
		"scoutingStats", len(record.ScoutingReport),
	)
	return record, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
